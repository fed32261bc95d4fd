package state

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/marker/model/exam"
)

type memoryPersister struct {
	saved []exam.Rubric
	err   error
}

func (m *memoryPersister) Save(_ context.Context, rubric exam.Rubric) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, rubric)
	return nil
}

func newShared(t *testing.T, persister Persister, students ...int) *Shared {
	var records []exam.Record
	for i, student := range students {
		records = append(records, exam.Record{Index: i, URL: "exam" + string(rune('0'+i)), StudentNumber: student})
	}
	shared, err := New(exam.Rubric{"A, bad", "B", "C", "D", "E"}, records, persister)
	require.NoError(t, err)
	_, err = shared.LoadExam(0)
	require.NoError(t, err)
	return shared
}

func TestNew_Validation(t *testing.T) {
	_, err := New(exam.Rubric{}, nil, nil)
	assert.Error(t, err)
	_, err = New(exam.Rubric{}, []exam.Record{{StudentNumber: exam.Sentinel}}, nil)
	assert.Error(t, err)
}

func TestShared_LoadExam(t *testing.T) {
	shared := newShared(t, nil, 100, 200)
	assert.Equal(t, 0, shared.CurrentExam())
	assert.Equal(t, 100, shared.StudentNumber())
	assert.Equal(t, 2, shared.TotalExams())
	assert.True(t, shared.HasNext())

	for i := 0; i < 3; i++ {
		_, ok := shared.ClaimNext()
		require.True(t, ok)
	}
	require.NoError(t, shared.Commit(0))

	record, err := shared.LoadExam(1)
	require.NoError(t, err)
	assert.Equal(t, 200, record.StudentNumber)
	assert.Equal(t, 1, shared.CurrentExam())
	assert.False(t, shared.HasNext())
	for i, status := range shared.Statuses() {
		assert.Equal(t, exam.NotStarted, status, "question %d", i)
	}

	_, err = shared.LoadExam(2)
	assert.Error(t, err)
}

func TestShared_LoadExamIsIdempotent(t *testing.T) {
	shared := newShared(t, nil, 100)
	for i := 0; i < exam.Questions; i++ {
		index, ok := shared.ClaimNext()
		require.True(t, ok)
		if i%2 == 0 {
			require.NoError(t, shared.Commit(index))
		}
	}
	for round := 0; round < 2; round++ {
		_, err := shared.LoadExam(0)
		require.NoError(t, err)
		assert.Equal(t, [exam.Questions]exam.Status{}, shared.Statuses())
	}
}

func TestShared_ClaimSkipsInProgress(t *testing.T) {
	shared := newShared(t, nil, 100)
	for i := 0; i < 2; i++ {
		index, ok := shared.ClaimNext()
		require.True(t, ok)
		require.NoError(t, shared.Commit(index))
	}
	index, ok := shared.ClaimNext()
	require.True(t, ok)
	assert.Equal(t, 2, index)

	next, ok := shared.ClaimNext()
	require.True(t, ok)
	assert.Equal(t, 3, next)
	assert.Equal(t, exam.InProgress, shared.Status(2))

	require.NoError(t, shared.Commit(2))
	assert.Equal(t, exam.Done, shared.Status(2))
	assert.ErrorIs(t, shared.Commit(2), ErrNotClaimed)
	assert.ErrorIs(t, shared.Commit(4), ErrNotClaimed)
}

func TestShared_AllDoneAndTerminate(t *testing.T) {
	shared := newShared(t, nil, 100)
	assert.False(t, shared.AllDone())
	for {
		index, ok := shared.ClaimNext()
		if !ok {
			break
		}
		require.NoError(t, shared.Commit(index))
	}
	assert.True(t, shared.AllDone())
	assert.False(t, shared.HasNext())

	shared.Terminate()
	assert.True(t, shared.Terminated())
	assert.Equal(t, exam.Sentinel, shared.StudentNumber())
	assert.Equal(t, 0, shared.CurrentExam())

	_, err := shared.LoadExam(0)
	assert.ErrorIs(t, err, ErrTerminated)
	assert.True(t, shared.Terminated())
	assert.NotPanics(t, shared.CheckExam)
}

func TestShared_EditRubricLine(t *testing.T) {
	persister := &memoryPersister{}
	shared := newShared(t, persister, 100)

	require.NoError(t, shared.EditRubricLine(context.Background(), 0, "A, cad"))
	assert.Equal(t, "A, cad", shared.RubricLine(0))
	require.Len(t, persister.saved, 1)
	assert.Equal(t, "A, cad", persister.saved[0][0])

	assert.Error(t, shared.EditRubricLine(context.Background(), exam.Questions, "x"))
	assert.Error(t, shared.EditRubricLine(context.Background(), 1, string(make([]byte, exam.MaxLineLength+1))))

	persister.err = errors.New("disk full")
	err := shared.EditRubricLine(context.Background(), 0, "A, dad")
	assert.Error(t, err)
	assert.Equal(t, "A, cad", shared.RubricLine(0), "failed save rolls the line back")
}

func TestShared_Close(t *testing.T) {
	shared := newShared(t, &memoryPersister{}, 100)
	require.NoError(t, shared.Close())
	assert.ErrorIs(t, shared.Close(), ErrReleased)
	_, err := shared.LoadExam(0)
	assert.ErrorIs(t, err, ErrReleased)
	assert.ErrorIs(t, shared.EditRubricLine(context.Background(), 0, "x"), ErrReleased)
	_, ok := shared.ClaimNext()
	assert.False(t, ok)
}

func TestShared_Invariants(t *testing.T) {
	shared := newShared(t, nil, 100, 200)
	assert.NotPanics(t, shared.CheckRubric)
	assert.NotPanics(t, shared.CheckQuestions)
	assert.NotPanics(t, shared.CheckExam)

	shared.statuses[1].Store(42)
	assert.Panics(t, shared.CheckQuestions)

	shared.current.Store(5)
	assert.Panics(t, shared.CheckExam)
}

package state

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/viant/marker/model/exam"
)

var (
	// ErrReleased is returned by mutating operations after Close.
	ErrReleased = errors.New("state: shared exam state released")

	// ErrTerminated is returned when an exam is loaded after the sentinel was set.
	ErrTerminated = errors.New("state: marking terminated")

	// ErrNotClaimed is returned when committing a question that is not in progress.
	ErrNotClaimed = errors.New("state: question not claimed")
)

// Persister writes the full rubric to its backing store.
type Persister interface {
	Save(ctx context.Context, rubric exam.Rubric) error
}

// Shared is the single block of mutable data visible to every worker.
//
// Field ownership follows the lock set: rubric lines belong to the rubric lock,
// question statuses to the question lock, and the exam index and student number
// to the exam lock. None of the methods lock on their own; the caller must hold
// the lock named in the method documentation. Statuses, the exam index and the
// student number are kept in atomics so that reads made under a different lock,
// or under no lock at all, observe a consistent value.
type Shared struct {
	rubric    exam.Rubric
	persister Persister
	records   []exam.Record

	studentNumber atomic.Int64
	current       atomic.Int64
	statuses      [exam.Questions]atomic.Int32
	released      atomic.Bool
}

// New creates shared state for the supplied rubric and exam sequence. The
// first exam is not loaded; the supervisor does that with LoadExam(0).
func New(rubric exam.Rubric, records []exam.Record, persister Persister) (*Shared, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("state: at least one exam is required")
	}
	if err := rubric.Validate(); err != nil {
		return nil, fmt.Errorf("state: %w", err)
	}
	for i, record := range records {
		if record.StudentNumber == exam.Sentinel {
			return nil, fmt.Errorf("state: exam %d uses reserved student number %d", i, exam.Sentinel)
		}
	}
	ret := &Shared{
		rubric:    rubric,
		persister: persister,
		records:   append([]exam.Record(nil), records...),
	}
	return ret, nil
}

// TotalExams returns the number of exams in the sequence
func (s *Shared) TotalExams() int {
	return len(s.records)
}

// Record returns exam record at index
func (s *Shared) Record(index int) exam.Record {
	return s.records[index]
}

// CurrentExam returns the index of the exam being marked
func (s *Shared) CurrentExam() int {
	return int(s.current.Load())
}

// StudentNumber returns the student number of the current exam, or the sentinel
func (s *Shared) StudentNumber() int {
	return int(s.studentNumber.Load())
}

// Terminated reports whether the termination sentinel has been set. Safe without any lock.
func (s *Shared) Terminated() bool {
	return s.studentNumber.Load() == exam.Sentinel
}

// HasNext reports whether another exam follows the current one.
// Caller holds the exam lock.
func (s *Shared) HasNext() bool {
	return s.CurrentExam()+1 < len(s.records)
}

// LoadExam makes the exam at index current: it resets every question to
// NotStarted and takes the student number from the exam record.
// Caller holds the exam lock.
func (s *Shared) LoadExam(index int) (exam.Record, error) {
	if s.released.Load() {
		return exam.Record{}, ErrReleased
	}
	if s.Terminated() {
		return exam.Record{}, ErrTerminated
	}
	if index < 0 || index >= len(s.records) {
		return exam.Record{}, fmt.Errorf("state: exam index %d out of range [0,%d)", index, len(s.records))
	}
	record := s.records[index]
	// index and student are published before the reset; a claimer that sees
	// NotStarted therefore reads the new exam.
	s.current.Store(int64(index))
	s.studentNumber.Store(int64(record.StudentNumber))
	for i := range s.statuses {
		s.statuses[i].Store(int32(exam.NotStarted))
	}
	return record, nil
}

// Terminate sets the termination sentinel. Once set it is never cleared.
// Caller holds the exam lock.
func (s *Shared) Terminate() {
	s.studentNumber.Store(exam.Sentinel)
}

// Close releases the state; later mutations fail with ErrReleased.
func (s *Shared) Close() error {
	if !s.released.CompareAndSwap(false, true) {
		return ErrReleased
	}
	s.persister = nil
	return nil
}

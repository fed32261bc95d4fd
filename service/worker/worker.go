package worker

import (
	"context"
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/viant/marker/model/exam"
	"github.com/viant/marker/model/state"
	"github.com/viant/marker/progress"
	"github.com/viant/marker/service/event"
	"github.com/viant/marker/service/lock"
	"github.com/viant/marker/tracing"
)

// Phase is a worker state machine state
type Phase int32

const (
	Polling Phase = iota
	ReviewingRubric
	ClaimingQuestions
	CheckingCompletion
	Stopped
)

// String returns phase name
func (p Phase) String() string {
	switch p {
	case Polling:
		return "polling"
	case ReviewingRubric:
		return "reviewingRubric"
	case ClaimingQuestions:
		return "claimingQuestions"
	case CheckingCompletion:
		return "checkingCompletion"
	case Stopped:
		return "stopped"
	}
	return fmt.Sprintf("phase(%d)", int32(p))
}

// Outcome is the result of a completion check
type Outcome int

const (
	// Pending means the current exam still has questions not Done
	Pending Outcome = iota
	// Advanced means the next exam was loaded
	Advanced
	// Finished means the termination sentinel is set
	Finished
)

// Worker is one grader running the marking state machine against the shared state
type Worker struct {
	id     int
	runID  string
	config Config
	shared *state.Shared
	locks  *lock.Set
	events event.Sink
	rnd    *rand.Rand
	diff   func(before, after exam.Rubric) string
	phase  atomic.Int32
}

// Phase returns the current state machine phase
func (w *Worker) Phase() Phase {
	return Phase(w.phase.Load())
}

// Run executes the state machine until the termination sentinel is observed.
// It returns an error only when ctx is cancelled or the shared state rejects
// an operation the protocol guarantees to be valid.
func (w *Worker) Run(ctx context.Context) (err error) {
	ctx, span := tracing.StartSpan(ctx, "worker.run")
	span.WithInt("worker.id", w.id)
	defer func() { tracing.EndSpan(span, err) }()
	defer w.setPhase(Stopped)

	phase := Polling
	for {
		w.setPhase(phase)
		switch phase {
		case Polling:
			if w.shared.Terminated() {
				w.publish(ctx, event.Terminated, nil)
				return nil
			}
			if err = ctx.Err(); err != nil {
				return err
			}
			w.publish(ctx, event.WorkStarted, nil)
			phase = ReviewingRubric
		case ReviewingRubric:
			if err = w.reviewRubric(ctx); err != nil {
				return err
			}
			phase = ClaimingQuestions
			if w.shared.Terminated() {
				phase = Polling
			}
		case ClaimingQuestions:
			if err = w.markQuestions(ctx); err != nil {
				return err
			}
			phase = CheckingCompletion
		case CheckingCompletion:
			outcome, checkErr := w.checkCompletion(ctx)
			if checkErr != nil {
				return checkErr
			}
			if outcome == Pending {
				w.publish(ctx, event.ExamPending, nil)
				if err = w.sleep(ctx, w.config.Retry); err != nil {
					return err
				}
			}
			phase = Polling
		}
	}
}

// reviewRubric visits every rubric line while holding the rubric lock and
// applies random corrections. The pass stops early once the sentinel is set.
func (w *Worker) reviewRubric(ctx context.Context) (err error) {
	w.locks.Do(lock.Rubric, func() {
		for i := 0; i < exam.Questions; i++ {
			if w.shared.Terminated() {
				return
			}
			line := w.shared.RubricLine(i)
			w.publish(ctx, event.RubricLineChecked, func(e *event.Event) {
				e.WithQuestion(i).WithText(line)
			})
			if err = w.sleep(ctx, w.config.Review); err != nil {
				return
			}
			progress.UpdateCtx(ctx, progress.Delta{Reviewed: 1})
			if w.rnd.Float64() >= w.config.CorrectionRate {
				continue
			}
			corrected, ok := exam.Correct(line)
			if !ok || w.shared.Terminated() {
				continue
			}
			before := w.shared.Rubric()
			if saveErr := w.shared.EditRubricLine(ctx, i, corrected); saveErr != nil {
				w.publish(ctx, event.RubricSaveFailed, func(e *event.Event) {
					e.WithQuestion(i).WithText(corrected).WithError(saveErr)
				})
				continue
			}
			progress.UpdateCtx(ctx, progress.Delta{Corrected: 1})
			w.publish(ctx, event.RubricCorrected, func(e *event.Event) {
				e.WithQuestion(i).WithText(corrected)
				if w.diff != nil {
					e.Diff = w.diff(before, w.shared.Rubric())
				}
			})
		}
	})
	return err
}

// markQuestions claims, marks and commits questions until none is left to claim.
func (w *Worker) markQuestions(ctx context.Context) error {
	for {
		index, examIndex, claimed := -1, 0, false
		w.locks.Do(lock.Question, func() {
			index, claimed = w.shared.ClaimNext()
			examIndex = w.shared.CurrentExam()
		})
		if !claimed {
			return nil
		}
		progress.UpdateCtx(ctx, progress.Delta{Claimed: 1})
		w.publishAt(ctx, examIndex, event.QuestionClaimed, func(e *event.Event) { e.WithQuestion(index) })

		if err := w.sleep(ctx, w.config.Marking); err != nil {
			return err
		}

		var err error
		w.locks.Do(lock.Question, func() {
			err = w.shared.Commit(index)
		})
		if err != nil {
			return err
		}
		progress.UpdateCtx(ctx, progress.Delta{Marked: 1})
		w.publishAt(ctx, examIndex, event.QuestionMarked, func(e *event.Event) { e.WithQuestion(index) })
	}
}

// checkCompletion decides, under the exam lock, whether the pool advances to
// the next exam, terminates, or keeps working on the current one.
func (w *Worker) checkCompletion(ctx context.Context) (outcome Outcome, err error) {
	w.locks.Do(lock.Exam, func() {
		if w.shared.Terminated() {
			outcome = Finished
			return
		}
		if !w.shared.AllDone() {
			outcome = Pending
			return
		}
		spanCtx, span := tracing.StartSpan(ctx, "exam.advance")
		defer func() { tracing.EndSpan(span, err) }()
		completed := w.shared.CurrentExam()
		span.WithInt("exam.index", completed)
		progress.UpdateCtx(spanCtx, progress.Delta{Exams: 1})
		if !w.shared.HasNext() {
			w.shared.Terminate()
			outcome = Finished
			w.publish(spanCtx, event.SentinelSet, func(e *event.Event) {
				e.Context.ExamIndex = completed
			})
			return
		}
		var record exam.Record
		if record, err = w.shared.LoadExam(completed + 1); err != nil {
			return
		}
		outcome = Advanced
		w.publish(spanCtx, event.ExamLoaded, func(e *event.Event) { e.URL = record.URL })
	})
	return outcome, err
}

func (w *Worker) sleep(ctx context.Context, delay Delay) error {
	duration := delay.Pick(w.rnd)
	if duration <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (w *Worker) setPhase(phase Phase) {
	w.phase.Store(int32(phase))
}

func (w *Worker) publish(ctx context.Context, eventType event.Type, fn func(e *event.Event)) {
	w.publishAt(ctx, w.shared.CurrentExam(), eventType, fn)
}

// publishAt stamps the event with exam index; a claim holder uses the index
// observed at claim time since the pool may advance right after its commit.
func (w *Worker) publishAt(ctx context.Context, index int, eventType event.Type, fn func(e *event.Event)) {
	if w.events == nil {
		return
	}
	e := event.NewEvent(event.Context{
		RunID:         w.runID,
		WorkerID:      w.id,
		ExamIndex:     index,
		StudentNumber: w.shared.Record(index).StudentNumber,
	}, eventType)
	if fn != nil {
		fn(e)
	}
	_ = w.events.Publish(ctx, e)
}

// New creates a worker. IDs are expected to start at 1; zero is reserved for the supervisor.
func New(id int, shared *state.Shared, locks *lock.Set, options ...Option) *Worker {
	ret := &Worker{
		id:     id,
		config: DefaultConfig(),
		shared: shared,
		locks:  locks,
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.rnd == nil {
		ret.rnd = rand.New(rand.NewSource(time.Now().UnixNano() ^ int64(id)<<32))
	}
	return ret
}

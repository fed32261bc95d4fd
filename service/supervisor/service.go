package supervisor

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/jacobsa/syncutil"
	"github.com/viant/afs"
	"github.com/viant/marker/internal/clock"
	"github.com/viant/marker/internal/idgen"
	"github.com/viant/marker/model/exam"
	"github.com/viant/marker/model/state"
	"github.com/viant/marker/progress"
	"github.com/viant/marker/service/dao/examlist"
	"github.com/viant/marker/service/dao/rubric"
	"github.com/viant/marker/service/event"
	"github.com/viant/marker/service/lock"
	"github.com/viant/marker/service/worker"
	"github.com/viant/marker/tracing"
)

// Config represents supervisor configuration
type Config struct {
	// Workers is the number of graders launched
	Workers int

	// Worker holds per-worker timing
	Worker worker.Config

	// Diff attaches rubric diffs to correction events
	Diff bool
}

// DefaultConfig returns the default supervisor configuration
func DefaultConfig() Config {
	return Config{
		Workers: 1,
		Worker:  worker.DefaultConfig(),
	}
}

// Summary describes a finished run
type Summary struct {
	RunID         string
	Workers       int
	Exams         int
	CurrentExam   int
	StudentNumber int
	Rubric        exam.Rubric
	RubricSaves   int
	Progress      progress.Progress
	Acquisitions  map[lock.Kind]int64
	Elapsed       time.Duration
}

// Service builds the shared state and the lock set, launches the workers and
// joins them.
type Service struct {
	config Config
	fs     afs.Service
	events *event.Service
	fatal  lock.FatalFunc
	seed   int64
}

// Run marks every exam listed at examListURL against the rubric at rubricURL.
func (s *Service) Run(ctx context.Context, examListURL, rubricURL string) (summary *Summary, err error) {
	if s.config.Workers < 1 {
		return nil, fmt.Errorf("worker count must be > 0: %d", s.config.Workers)
	}
	if err = s.config.Worker.Validate(); err != nil {
		return nil, fmt.Errorf("invalid worker config: %w", err)
	}
	runID := idgen.RunID()
	ctx, span := tracing.StartSpan(ctx, "supervisor.Run")
	span.WithAttributes(map[string]string{"run.id": runID, "exam.list": examListURL, "rubric": rubricURL}).WithInt("workers", s.config.Workers)
	defer func() { tracing.EndSpan(span, err) }()

	rubricService := rubric.New(s.fs, rubricURL)
	aRubric, err := rubricService.Load(ctx)
	if err != nil {
		return nil, err
	}
	records, err := examlist.New(s.fs).Records(ctx, examListURL)
	if err != nil {
		return nil, err
	}
	shared, err := state.New(aRubric, records, rubricService)
	if err != nil {
		return nil, err
	}
	defer func() { _ = shared.Close() }() // released exactly once here

	record, err := shared.LoadExam(0)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, event.NewEvent(event.Context{RunID: runID, StudentNumber: record.StudentNumber}, event.ExamLoaded), func(e *event.Event) {
		e.URL = record.URL
	})

	locks := s.newLocks(shared)
	ctx, tracker := progress.WithNewTracker(ctx, runID, nil)
	tracker.OnChange(func(p progress.Progress) {
		s.publish(ctx, event.NewEvent(event.Context{RunID: runID, ExamIndex: shared.CurrentExam(), StudentNumber: shared.StudentNumber()}, event.ProgressUpdated), func(e *event.Event) {
			e.Text = fmt.Sprintf("reviewed %d, corrected %d, claimed %d, marked %d, exams %d",
				p.ReviewedLines, p.CorrectedLines, p.ClaimedTasks, p.MarkedTasks, p.CompletedExams)
		})
	})
	started := clock.Now()

	bundle := syncutil.NewBundle(ctx)
	for i := 1; i <= s.config.Workers; i++ {
		aWorker := worker.New(i, shared, locks, s.workerOptions(runID, i, rubricService)...)
		bundle.Add(aWorker.Run)
	}
	if err = bundle.Join(); err != nil {
		return nil, fmt.Errorf("marking run %s failed: %w", runID, err)
	}

	summary = &Summary{
		RunID:         runID,
		Workers:       s.config.Workers,
		Exams:         shared.TotalExams(),
		CurrentExam:   shared.CurrentExam(),
		StudentNumber: shared.StudentNumber(),
		Rubric:        shared.Rubric(),
		RubricSaves:   rubricService.Saves(),
		Progress:      tracker.Snapshot(),
		Acquisitions: map[lock.Kind]int64{
			lock.Rubric:   locks.Acquisitions(lock.Rubric),
			lock.Question: locks.Acquisitions(lock.Question),
			lock.Exam:     locks.Acquisitions(lock.Exam),
		},
		Elapsed: clock.Since(started),
	}
	s.publish(ctx, event.NewEvent(event.Context{RunID: runID, ExamIndex: summary.CurrentExam, StudentNumber: summary.StudentNumber}, event.Finished), func(e *event.Event) {
		e.Text = fmt.Sprintf("%d exam(s), %d question(s) marked, %d rubric correction(s) in %v",
			summary.Progress.CompletedExams, summary.Progress.MarkedTasks, summary.Progress.CorrectedLines, summary.Elapsed.Round(time.Millisecond))
	})
	return summary, nil
}

func (s *Service) newLocks(shared *state.Shared) *lock.Set {
	options := []lock.Option{
		lock.WithInvariant(lock.Rubric, shared.CheckRubric),
		lock.WithInvariant(lock.Question, shared.CheckQuestions),
		lock.WithInvariant(lock.Exam, shared.CheckExam),
	}
	if s.fatal != nil {
		options = append(options, lock.WithFatal(s.fatal))
	}
	return lock.New(options...)
}

func (s *Service) workerOptions(runID string, id int, rubricService *rubric.Service) []worker.Option {
	seed := s.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	ret := []worker.Option{
		worker.WithConfig(s.config.Worker),
		worker.WithRunID(runID),
		worker.WithEvents(s.events),
		worker.WithRandom(rand.New(rand.NewSource(seed + int64(id)*7919))),
	}
	if s.config.Diff {
		location := rubricService.Location()
		ret = append(ret, worker.WithDiff(func(before, after exam.Rubric) string {
			diff, _ := rubric.Diff(before, after, location)
			return diff
		}))
	}
	return ret
}

func (s *Service) publish(ctx context.Context, e *event.Event, fn func(e *event.Event)) {
	if fn != nil {
		fn(e)
	}
	_ = s.events.Publish(ctx, e)
}

// New creates a supervisor
func New(config Config, options ...Option) *Service {
	ret := &Service{config: config}
	for _, opt := range options {
		opt(ret)
	}
	if ret.fs == nil {
		ret.fs = afs.New()
	}
	if ret.events == nil {
		ret.events = event.New()
	}
	return ret
}

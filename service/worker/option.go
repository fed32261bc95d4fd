package worker

import (
	"math/rand"

	"github.com/viant/marker/model/exam"
	"github.com/viant/marker/service/event"
)

// Option configures a worker
type Option func(w *Worker)

// WithConfig sets timing configuration
func WithConfig(config Config) Option {
	return func(w *Worker) {
		w.config = config
	}
}

// WithEvents sets the event sink
func WithEvents(sink event.Sink) Option {
	return func(w *Worker) {
		w.events = sink
	}
}

// WithRandom sets the worker's random source
func WithRandom(rnd *rand.Rand) Option {
	return func(w *Worker) {
		w.rnd = rnd
	}
}

// WithRunID sets the run identifier stamped on events
func WithRunID(runID string) Option {
	return func(w *Worker) {
		w.runID = runID
	}
}

// WithDiff sets a renderer attaching a rubric diff to correction events
func WithDiff(fn func(before, after exam.Rubric) string) Option {
	return func(w *Worker) {
		w.diff = fn
	}
}

package event

import (
	"context"
	"sync"
)

// Sink receives events emitted by workers and the supervisor. Implementations
// must be safe for concurrent use.
type Sink interface {
	Publish(ctx context.Context, e *Event) error
}

// Func adapts a function to Sink
type Func func(ctx context.Context, e *Event) error

// Publish calls f
func (f Func) Publish(ctx context.Context, e *Event) error {
	return f(ctx, e)
}

// Service fans events out to every registered sink
type Service struct {
	mux   sync.RWMutex
	sinks []Sink
}

// Publish delivers e to all sinks; the first error is returned after every sink was called.
func (s *Service) Publish(ctx context.Context, e *Event) error {
	s.mux.RLock()
	sinks := s.sinks
	s.mux.RUnlock()
	var firstErr error
	for _, sink := range sinks {
		if err := sink.Publish(ctx, e); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Register adds sinks
func (s *Service) Register(sinks ...Sink) {
	s.mux.Lock()
	defer s.mux.Unlock()
	for _, sink := range sinks {
		if sink != nil {
			s.sinks = append(s.sinks, sink)
		}
	}
}

// New creates a fan-out service
func New(sinks ...Sink) *Service {
	ret := &Service{}
	ret.Register(sinks...)
	return ret
}

package supervisor

import (
	"github.com/viant/afs"
	"github.com/viant/marker/service/event"
	"github.com/viant/marker/service/lock"
)

// Option configures the supervisor
type Option func(s *Service)

// WithFs sets the storage service used for the rubric and exam files
func WithFs(fs afs.Service) Option {
	return func(s *Service) {
		s.fs = fs
	}
}

// WithSinks registers event sinks
func WithSinks(sinks ...event.Sink) Option {
	return func(s *Service) {
		if s.events == nil {
			s.events = event.New()
		}
		s.events.Register(sinks...)
	}
}

// WithFatal sets the lock failure handler
func WithFatal(fn lock.FatalFunc) Option {
	return func(s *Service) {
		s.fatal = fn
	}
}

// WithSeed makes worker random sources deterministic; worker i uses a seed derived from seed and i
func WithSeed(seed int64) Option {
	return func(s *Service) {
		s.seed = seed
	}
}

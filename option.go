package marker

import (
	"io"

	"github.com/viant/afs"
	"github.com/viant/marker/service/event"
	"github.com/viant/marker/service/lock"
)

// Option configures the service
type Option func(s *Service)

// WithConfig replaces the whole configuration
func WithConfig(config *Config) Option {
	return func(s *Service) {
		if config != nil {
			s.config = config
		}
	}
}

// WithWorkers sets the number of graders
func WithWorkers(count int) Option {
	return func(s *Service) {
		s.config.Workers = count
	}
}

// WithVerbose enables debug events and rubric diffs in the log
func WithVerbose(verbose bool) Option {
	return func(s *Service) {
		s.config.Verbose = verbose
	}
}

// WithTracing writes OpenTelemetry spans to outputFile; empty means stdout.
func WithTracing(outputFile string) Option {
	return func(s *Service) {
		s.tracing = true
		s.config.TraceFile = outputFile
	}
}

// WithFs sets the storage service
func WithFs(fs afs.Service) Option {
	return func(s *Service) {
		s.fs = fs
	}
}

// WithLogWriter sets where event lines are written; stdout by default
func WithLogWriter(w io.Writer) Option {
	return func(s *Service) {
		s.logWriter = w
	}
}

// WithSinks registers additional event sinks
func WithSinks(sinks ...event.Sink) Option {
	return func(s *Service) {
		s.sinks = append(s.sinks, sinks...)
	}
}

// WithFatal sets the lock failure handler
func WithFatal(fn lock.FatalFunc) Option {
	return func(s *Service) {
		s.fatal = fn
	}
}

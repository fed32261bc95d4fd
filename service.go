package marker

import (
	"context"
	"fmt"
	"io"

	"github.com/viant/afs"
	"github.com/viant/marker/service/event"
	"github.com/viant/marker/service/lock"
	"github.com/viant/marker/service/supervisor"
	"github.com/viant/marker/tracing"
)

const (
	serviceName    = "marker"
	serviceVersion = "0.1.0"
)

// Service is the entry point wiring configuration, storage, logging and
// tracing around the supervisor.
type Service struct {
	config    *Config
	fs        afs.Service
	logWriter io.Writer
	sinks     []event.Sink
	fatal     lock.FatalFunc
	tracing   bool
}

// Config returns the effective configuration
func (s *Service) Config() *Config {
	return s.config
}

// Run marks every exam listed at examList against the rubric and returns the run summary.
func (s *Service) Run(ctx context.Context, examList, rubric string) (*supervisor.Summary, error) {
	if err := s.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if s.tracing || s.config.TraceFile != "" {
		if err := tracing.Init(serviceName, serviceVersion, s.config.TraceFile); err != nil {
			return nil, fmt.Errorf("failed to init tracing: %w", err)
		}
		defer tracing.Shutdown(context.Background())
	}
	sinks := append([]event.Sink{event.NewLogSink(s.logWriter, s.config.Verbose)}, s.sinks...)
	options := []supervisor.Option{
		supervisor.WithFs(s.fs),
		supervisor.WithSinks(sinks...),
		supervisor.WithSeed(s.config.Seed),
	}
	if s.fatal != nil {
		options = append(options, supervisor.WithFatal(s.fatal))
	}
	return supervisor.New(s.config.supervisor(), options...).Run(ctx, examList, rubric)
}

// New creates a service
func New(options ...Option) *Service {
	ret := &Service{config: DefaultConfig()}
	for _, opt := range options {
		opt(ret)
	}
	if ret.fs == nil {
		ret.fs = afs.New()
	}
	return ret
}

package procman

import (
	"io"

	"github.com/sirupsen/logrus"
	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/viant/procman/progress"
	"github.com/viant/procman/service/control"
	"github.com/viant/procman/service/event"
	"github.com/viant/procman/service/report"
	"github.com/viant/procman/tracing"
)

// Option customises the Service
type Option func(s *Service)

// WithFs sets the file system used to load workloads
func WithFs(fs afs.Service, options ...storage.Option) Option {
	return func(s *Service) {
		s.fs = fs
		s.fsOptions = options
	}
}

// WithSpawner overrides the worker spawner selected by config
func WithSpawner(spawner control.Spawner) Option {
	return func(s *Service) {
		s.spawner = spawner
	}
}

// WithLogger sets the logger
func WithLogger(logger *logrus.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithOutput sets where event lines and statistics are written
func WithOutput(w io.Writer) Option {
	return func(s *Service) {
		s.output = w
	}
}

// WithListener registers an additional event listener
func WithListener(listener event.Listener) Option {
	return func(s *Service) {
		s.listeners = append(s.listeners, listener)
	}
}

// WithProgress registers a per-state counters observer
func WithProgress(onChange func(progress.Counters)) Option {
	return func(s *Service) {
		s.onProgress = onChange
	}
}

// WithReportStore sets the store receiving a report after each completed run
func WithReportStore(store report.Store) Option {
	return func(s *Service) {
		s.reports = store
	}
}

// WithTracing configures OpenTelemetry tracing with the stdout exporter. If outputFile is
// empty spans are written to stdout, otherwise to the supplied file. An
// initialisation error is returned by New.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		if err := tracing.Init(serviceName, serviceVersion, outputFile); err != nil {
			s.tracingErr = err
		}
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom SpanExporter.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		if err := tracing.InitWithExporter(serviceName, serviceVersion, exporter); err != nil {
			s.tracingErr = err
		}
	}
}

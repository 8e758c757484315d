package procman

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/viant/afs"
	"github.com/viant/afs/storage"

	"github.com/viant/procman/internal/clock"
	"github.com/viant/procman/internal/idgen"
	"github.com/viant/procman/internal/logging"
	"github.com/viant/procman/model"
	"github.com/viant/procman/progress"
	"github.com/viant/procman/service/control"
	"github.com/viant/procman/service/control/local"
	"github.com/viant/procman/service/control/memory"
	"github.com/viant/procman/service/event"
	"github.com/viant/procman/service/report"
	fsreport "github.com/viant/procman/service/report/fs"
	"github.com/viant/procman/service/scheduler"
	"github.com/viant/procman/service/workload"
	"github.com/viant/procman/tracing"
)

// Version is reported as the tracing service version
const Version = "0.1.0"

// Service represents the simulator facade
type Service struct {
	config     *Config
	fs         afs.Service
	fsOptions  []storage.Option
	workload   *workload.Service
	spawner    control.Spawner
	controller *control.Service
	logger     *logrus.Logger
	output     io.Writer
	listeners  []event.Listener
	onProgress func(progress.Counters)
	reports    report.Store
	tracingErr error
}

// Config returns the effective configuration
func (s *Service) Config() *Config {
	return s.config
}

// Load loads and validates a workload
func (s *Service) Load(ctx context.Context, URL string) ([]*model.Process, error) {
	return s.workload.Load(ctx, URL)
}

// Scheduler creates a simulation loop for the configured policy, wired to the
// service worker control, logger and listeners
func (s *Service) Scheduler(runID string, tracker *progress.Progress, listeners ...event.Listener) (*scheduler.Service, error) {
	config, err := s.config.SchedulerConfig()
	if err != nil {
		return nil, err
	}
	options := []scheduler.Option{
		scheduler.WithLogger(s.logger),
		scheduler.WithRunID(runID),
		scheduler.WithProgress(tracker),
	}
	all := append(append([]event.Listener{}, s.listeners...), listeners...)
	for _, listener := range all {
		options = append(options, scheduler.WithListener(listener))
	}
	return scheduler.New(config, s.controller, options...)
}

// Reports returns the run report store or nil when reports are disabled
func (s *Service) Reports() report.Store {
	return s.reports
}

// Run simulates the workload at URL, writing event lines followed by the
// statistics summary to the service output.
func (s *Service) Run(ctx context.Context, URL string) (stats *scheduler.Stats, err error) {
	runID := idgen.New()
	ctx, span := tracing.StartSpan(ctx, "procman.run", "INTERNAL")
	span.WithAttributes(map[string]string{"runId": runID, "workload": URL})
	defer func() { tracing.EndSpan(span, err) }()

	processes, err := s.Load(ctx, URL)
	if err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{"runId": runID, "workload": URL, "processes": len(processes)}).Info("workload loaded")

	printer := event.NewPrinter(s.output)
	ctx, _ = progress.WithNewTracker(ctx, runID, URL, s.onProgress)
	simulation, err := s.Scheduler(runID, nil, printer.Listen)
	if err != nil {
		return nil, err
	}
	if err = simulation.Load(processes); err != nil {
		return nil, err
	}
	if stats, err = simulation.Run(ctx); err != nil {
		s.logger.WithFields(logrus.Fields{"runId": runID, "time": simulation.Now()}).WithError(err).Error("simulation aborted")
		return nil, err
	}
	if err = printer.Err(); err != nil {
		return nil, fmt.Errorf("failed to write events: %w", err)
	}
	if err = stats.Report(s.output); err != nil {
		return nil, fmt.Errorf("failed to write statistics: %w", err)
	}
	fields := logrus.Fields{"runId": runID, "makespan": stats.Makespan, "finished": stats.Finished}
	if counters, ok := progress.GetSnapshot(ctx); ok {
		fields["pending"] = counters.Pending()
	}
	s.logger.WithFields(fields).Info("simulation completed")
	if s.reports != nil {
		config, _ := s.config.SchedulerConfig()
		runReport := report.New(runID, URL, config, stats, simulation.Finished(), clock.Now())
		if err = s.reports.Save(ctx, runReport); err != nil {
			return nil, err
		}
	}
	return stats, nil
}

func (s *Service) init(options []Option) error {
	if s.config.Tracing.Enabled {
		options = append([]Option{WithTracing("procman", Version, s.config.Tracing.File)}, options...)
	}
	for _, option := range options {
		option(s)
	}
	if s.fs == nil {
		s.fs = afs.New()
	}
	if s.output == nil {
		s.output = os.Stdout
	}
	if s.logger == nil {
		logger, err := logging.New(s.config.Log.Level, os.Stderr)
		if err != nil {
			return err
		}
		s.logger = logger
	}
	if s.spawner == nil {
		switch s.config.Worker.Kind {
		case WorkerMemory:
			s.spawner = memory.New(0)
		default:
			s.spawner = local.New(s.config.Worker.Path, local.WithProbe(s.config.Worker.Probe))
		}
	}
	if s.tracingErr != nil {
		return fmt.Errorf("failed to initialise tracing: %w", s.tracingErr)
	}
	if s.reports == nil && s.config.Report.URL != "" {
		s.reports = fsreport.New(s.fs, s.config.Report.URL)
	}
	s.workload = workload.New(s.fs, s.fsOptions...)
	s.controller = control.New(s.spawner)
	return nil
}

// New creates a simulator; a nil config means DefaultConfig
func New(config *Config, options ...Option) (*Service, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	ret := &Service{config: config}
	if err := ret.init(options); err != nil {
		return nil, err
	}
	return ret, nil
}

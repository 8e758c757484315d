package scheduler

import (
	"github.com/sirupsen/logrus"

	"github.com/viant/procman/progress"
	"github.com/viant/procman/service/event"
)

// Option customises the scheduler
type Option func(s *Service)

// WithListener registers an event listener
func WithListener(listener event.Listener) Option {
	return func(s *Service) {
		s.listener = event.Multi(s.listener, listener)
	}
}

// WithLogger sets the logger used for state transitions
func WithLogger(logger *logrus.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithProgress sets the per-state counters tracker
func WithProgress(tracker *progress.Progress) Option {
	return func(s *Service) {
		s.progress = tracker
	}
}

// WithRunID sets the run identifier attached to logs and spans
func WithRunID(runID string) Option {
	return func(s *Service) {
		s.runID = runID
	}
}

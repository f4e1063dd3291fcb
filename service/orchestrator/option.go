package orchestrator

import (
	"github.com/viant/sweeper/model/trial"
	"github.com/viant/sweeper/progress"
	"github.com/viant/sweeper/service/dao/outcome"
)

// Option customises the orchestrator.
type Option func(s *Service)

// WithCapacity sets the number of gate slots.
func WithCapacity(capacity int) Option {
	return func(s *Service) {
		s.capacity = capacity
	}
}

// WithSupervisor sets the component running individual trials.
func WithSupervisor(supervisor Supervisor) Option {
	return func(s *Service) {
		s.supervisor = supervisor
	}
}

// WithNamer sets the output path resolver.
func WithNamer(namer Namer) Option {
	return func(s *Service) {
		s.namer = namer
	}
}

// WithOutcomeStore records every terminal outcome in store.
func WithOutcomeStore(store outcome.Service) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithListener registers a callback invoked once per terminal outcome.
func WithListener(listener func(o *trial.Outcome)) Option {
	return func(s *Service) {
		s.listener = listener
	}
}

// WithProgressListener registers a callback invoked with the run counters
// after every change.
func WithProgressListener(listener func(c progress.Counters)) Option {
	return func(s *Service) {
		s.onProgress = listener
	}
}

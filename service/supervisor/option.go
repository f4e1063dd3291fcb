package supervisor

import "time"

// Option customises a supervisor.
type Option func(s *Service)

// WithConfig replaces the whole configuration.
func WithConfig(config Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithTimeout sets the per-trial wall-clock budget.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		s.config.Timeout = timeout
	}
}

// WithKillGrace sets the SIGTERM to SIGKILL delay used on timeout.
func WithKillGrace(grace time.Duration) Option {
	return func(s *Service) {
		s.config.KillGrace = grace
	}
}

// WithStderrLimit sets how many trailing stderr bytes are kept.
func WithStderrLimit(limit int) Option {
	return func(s *Service) {
		s.config.StderrLimit = limit
	}
}

// WithWaitDelay bounds how long stderr is drained after the program exited.
func WithWaitDelay(delay time.Duration) Option {
	return func(s *Service) {
		s.config.WaitDelay = delay
	}
}

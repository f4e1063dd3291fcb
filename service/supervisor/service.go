package supervisor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/viant/sweeper/internal/clock"
	"github.com/viant/sweeper/model/trial"
	"github.com/viant/sweeper/tracing"
)

// Config represents supervisor configuration
type Config struct {
	// Timeout is the wall-clock budget of one trial, measured from process start.
	Timeout time.Duration
	// KillGrace is how long a timed out process group gets between SIGTERM and
	// SIGKILL. Zero kills immediately.
	KillGrace time.Duration
	// WaitDelay bounds how long Wait keeps draining stderr after the process exited.
	WaitDelay time.Duration
	// StderrLimit is the number of trailing stderr bytes kept on the outcome.
	StderrLimit int
	// FileMode is used when creating output files.
	FileMode os.FileMode
}

// DefaultConfig returns the default supervisor configuration
func DefaultConfig() Config {
	return Config{
		Timeout:     36000 * time.Second,
		KillGrace:   0,
		WaitDelay:   time.Second,
		StderrLimit: 64 * 1024,
		FileMode:    0o644,
	}
}

// Service runs exactly one program invocation per Run call and reclaims the
// process on every exit path. It never touches the admission gate.
type Service struct {
	config  Config
	builder CommandBuilder
}

// New creates a supervisor launching commands produced by builder.
func New(builder CommandBuilder, options ...Option) *Service {
	s := &Service{config: DefaultConfig(), builder: builder}
	for _, opt := range options {
		opt(s)
	}
	if s.config.Timeout <= 0 {
		s.config.Timeout = DefaultConfig().Timeout
	}
	if s.config.FileMode == 0 {
		s.config.FileMode = DefaultConfig().FileMode
	}
	return s
}

// Config returns the effective configuration.
func (s *Service) Config() Config {
	return s.config
}

// Run executes spec, streaming the program's stdout into outputPath. Failures
// are reported on the returned outcome, never as an error. When Run returns no
// process it started is alive.
func (s *Service) Run(ctx context.Context, spec trial.Spec, outputPath string) (outcome *trial.Outcome) {
	outcome = trial.NewOutcome(spec, outputPath)

	output, err := os.OpenFile(outputPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, s.config.FileMode)
	if err != nil {
		outcome.Fail(clock.Now(), trial.ReasonSpawnFailure, fmt.Errorf("failed to open output %s: %w", outputPath, err))
		return outcome
	}
	defer func() {
		if cErr := output.Close(); cErr != nil && outcome.Status == trial.StatusCompleted {
			outcome.Fail(clock.Now(), trial.ReasonRuntimeFailure, fmt.Errorf("failed to close output %s: %w", outputPath, cErr))
		}
	}()

	if s.builder == nil {
		outcome.Fail(clock.Now(), trial.ReasonSpawnFailure, fmt.Errorf("command builder was nil"))
		return outcome
	}
	cmd, err := s.builder.Build(ctx, spec)
	if err != nil {
		outcome.Fail(clock.Now(), trial.ReasonSpawnFailure, fmt.Errorf("failed to build command: %w", err))
		return outcome
	}
	stderr := newTailBuffer(s.config.StderrLimit)
	cmd.Stdout = output
	cmd.Stderr = stderr
	cmd.WaitDelay = s.config.WaitDelay
	configureProcess(cmd)
	defer func() { outcome.StderrTail = stderr.String() }()

	if err = cmd.Start(); err != nil {
		outcome.Fail(clock.Now(), trial.ReasonSpawnFailure, fmt.Errorf("failed to start %s: %w", cmd.Path, err))
		return outcome
	}
	// Harmless when the group is already gone; also reaps orphaned children.
	defer terminateProcess(cmd, 0)
	outcome.Start(clock.Now(), cmd.Process.Pid)
	if span, ok := tracing.SpanFromContext(ctx); ok {
		span.WithInt("pid", cmd.Process.Pid)
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	timer := time.NewTimer(s.config.Timeout)
	defer timer.Stop()

	select {
	case err = <-done:
		s.finish(cmd, outcome, err)
	case <-timer.C:
		terminateProcess(cmd, s.config.KillGrace)
		<-done
		outcome.TimeOut(clock.Now(), s.config.Timeout)
	case <-ctx.Done():
		terminateProcess(cmd, s.config.KillGrace)
		<-done
		outcome.Fail(clock.Now(), trial.ReasonRuntimeFailure, fmt.Errorf("trial cancelled: %w", ctx.Err()))
	}
	return outcome
}

func (s *Service) finish(cmd *exec.Cmd, outcome *trial.Outcome, err error) {
	now := clock.Now()
	// A clean exit whose stderr is still held by a straggler counts as
	// completed; the deferred group kill reclaims the straggler.
	if errors.Is(err, exec.ErrWaitDelay) && cmd.ProcessState != nil && cmd.ProcessState.Success() {
		err = nil
	}
	if err == nil {
		outcome.Complete(now)
		return
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		outcome.ExitCode = exitErr.ExitCode()
		outcome.Fail(now, trial.ReasonRuntimeFailure, fmt.Errorf("program exited: %w", err))
		return
	}
	outcome.Fail(now, trial.ReasonRuntimeFailure, fmt.Errorf("failed to wait for program: %w", err))
}

package orchestrator

import (
	"context"
	"fmt"
	"log"

	"github.com/viant/sweeper/internal/clock"
	"github.com/viant/sweeper/internal/idgen"
	"github.com/viant/sweeper/model/trial"
	"github.com/viant/sweeper/progress"
	"github.com/viant/sweeper/service/dao/outcome"
	"github.com/viant/sweeper/service/gate"
	"github.com/viant/sweeper/tracing"
	"golang.org/x/sync/errgroup"
)

// DefaultCapacity is the number of concurrently running trials.
const DefaultCapacity = 20

// Supervisor runs a single trial to completion.
type Supervisor interface {
	Run(ctx context.Context, spec trial.Spec, outputPath string) *trial.Outcome
}

// Namer resolves the output path of a trial.
type Namer interface {
	Path(spec trial.Spec) string
}

// Service runs trials concurrently behind an admission gate.
type Service struct {
	capacity   int
	supervisor Supervisor
	namer      Namer
	store      outcome.Service
	listener   func(o *trial.Outcome)
	onProgress func(c progress.Counters)
}

// New creates an orchestrator.
func New(options ...Option) (*Service, error) {
	s := &Service{capacity: DefaultCapacity}
	for _, opt := range options {
		opt(s)
	}
	if s.supervisor == nil {
		return nil, ErrNoSupervisor
	}
	if s.namer == nil {
		return nil, ErrNoNamer
	}
	if s.capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", gate.ErrInvalidCapacity, s.capacity)
	}
	return s, nil
}

// Capacity returns the configured number of slots.
func (s *Service) Capacity() int {
	return s.capacity
}

// Run executes specs and blocks until every admitted trial finished. Each
// admitted spec yields exactly one outcome. When ctx is cancelled no further
// trials are admitted, running ones are terminated by their supervisor and
// ctx.Err() is returned together with the partial report.
func (s *Service) Run(ctx context.Context, name string, specs []trial.Spec) (report *Report, err error) {
	if err = validate(specs); err != nil {
		return nil, err
	}
	admission, err := gate.New(s.capacity)
	if err != nil {
		return nil, err
	}
	runID := idgen.New()
	report = &Report{ID: runID, Name: name, StartedAt: clock.Now(), Capacity: s.capacity}

	ctx, span := tracing.StartSpan(ctx, "sweep.run "+name)
	span.WithAttributes(map[string]string{"run.id": runID, "sweep": name}).WithInt("trials", len(specs))
	defer func() { tracing.EndSpan(span, err) }()

	tracker := progress.New(runID, name, s.onProgress)
	tracker.Update(progress.Delta{Total: len(specs), Queued: len(specs)})

	outcomes := make([]*trial.Outcome, len(specs))
	group := errgroup.Group{}
	for i, spec := range specs {
		lifecycle := trial.NewLifecycle()
		if err = admission.Acquire(ctx); err != nil {
			log.Printf("sweep %s: admission stopped after %d of %d trials: %v", name, i, len(specs), err)
			break
		}
		advance(spec, lifecycle, trial.StateSlotAcquired)
		group.Go(func() error {
			outcomes[i] = s.runTrial(ctx, admission, tracker, runID, spec, lifecycle)
			return nil
		})
	}
	_ = group.Wait()
	if err == nil {
		err = ctx.Err()
	}

	for _, o := range outcomes {
		if o != nil {
			report.Outcomes = append(report.Outcomes, o)
		}
	}
	report.EndedAt = clock.Now()
	report.Progress = tracker.Snapshot()
	report.Available = admission.Available()
	return report, err
}

// runTrial owns one admitted slot and gives it back on every exit path.
func (s *Service) runTrial(ctx context.Context, admission *gate.Gate, tracker *progress.Progress, runID string, spec trial.Spec, lifecycle *trial.Lifecycle) (ret *trial.Outcome) {
	var outputPath string
	var span *tracing.Span
	defer func() {
		if r := recover(); r != nil {
			ret = trial.NewOutcome(spec, outputPath)
			ret.Fail(clock.Now(), trial.ReasonRuntimeFailure, fmt.Errorf("trial panic: %v", r))
		}
		if ret == nil {
			ret = trial.NewOutcome(spec, outputPath)
		}
		if !ret.Terminal() {
			ret.Fail(clock.Now(), trial.ReasonRuntimeFailure, fmt.Errorf("supervisor returned no terminal outcome"))
		}
		advance(spec, lifecycle, ret.Status.State())
		if err := admission.Release(); err != nil {
			log.Printf("trial %s: %v", spec.Name(), err)
		}
		advance(spec, lifecycle, trial.StateSlotReleased)
		counters := tracker.Update(terminalDelta(ret.Status))
		ret.State = lifecycle.State()
		ret.RunID = runID
		ret.Sequence = counters.Finished()
		log.Printf("%s (%d) %s", ret.OutputPath, ret.Sequence, ret.Status)

		if s.store != nil {
			if err := s.store.Save(ctx, ret); err != nil {
				log.Printf("trial %s: failed to save outcome: %v", spec.Name(), err)
			}
		}
		span.WithAttributes(map[string]string{
			"dataset":   spec.Dataset,
			"algorithm": string(spec.Algorithm),
			"status":    string(ret.Status),
		})
		var spanErr error
		if ret.Status != trial.StatusCompleted {
			spanErr = fmt.Errorf("%s: %s", ret.Status, ret.Error)
		}
		tracing.EndSpan(span, spanErr)
		if s.listener != nil {
			s.listener(ret)
		}
	}()
	advance(spec, lifecycle, trial.StateRunning)
	tracker.Update(progress.Delta{Queued: -1, Running: 1})
	outputPath = s.namer.Path(spec)
	ctx, span = tracing.StartSpan(ctx, "trial.run "+spec.Name())
	return s.supervisor.Run(ctx, spec, outputPath)
}

// advance logs transitions the lifecycle rejects.
func advance(spec trial.Spec, lifecycle *trial.Lifecycle, to trial.State) {
	if err := lifecycle.Advance(to); err != nil {
		log.Printf("trial %s: %v", spec.Name(), err)
	}
}

func terminalDelta(status trial.Status) progress.Delta {
	ret := progress.Delta{Running: -1}
	switch status {
	case trial.StatusCompleted:
		ret.Completed = 1
	case trial.StatusTimedOut:
		ret.TimedOut = 1
	default:
		ret.Failed = 1
	}
	return ret
}

func validate(specs []trial.Spec) error {
	seen := make(map[string]bool, len(specs))
	for _, spec := range specs {
		if err := spec.Validate(); err != nil {
			return err
		}
		name := spec.Name()
		if seen[name] {
			return fmt.Errorf("%w: %s", ErrDuplicateTrial, name)
		}
		seen[name] = true
	}
	return nil
}

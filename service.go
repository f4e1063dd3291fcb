package sweeper

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/sweeper/model/sweep"
	"github.com/viant/sweeper/model/trial"
	"github.com/viant/sweeper/progress"
	"github.com/viant/sweeper/service/aggregate"
	"github.com/viant/sweeper/service/dao"
	"github.com/viant/sweeper/service/dao/outcome"
	ofs "github.com/viant/sweeper/service/dao/outcome/fs"
	omemory "github.com/viant/sweeper/service/dao/outcome/memory"
	"github.com/viant/sweeper/service/host"
	"github.com/viant/sweeper/service/orchestrator"
	"github.com/viant/sweeper/service/sink"
	"github.com/viant/sweeper/service/supervisor"
	"github.com/viant/sweeper/tracing"
)

// Version is reported in traces and by the CLI.
const Version = "0.1.0"

// Service wires the sweep harness together.
type Service struct {
	config     *Config
	fs         afs.Service
	builder    supervisor.CommandBuilder
	supervisor orchestrator.Supervisor
	outcomes   outcome.Service
	listener   func(o *trial.Outcome)
	onProgress func(c progress.Counters)
	sink       *sink.Sink
	aggregator *aggregate.Service
	host       *host.Service
}

// Planned is a trial that a sweep would run.
type Planned struct {
	Spec       trial.Spec
	OutputPath string
	// Exists is set when running the trial would overwrite an output file.
	Exists bool
}

// New creates a service. Configuration errors are reported here, before
// anything is launched.
func New(options ...Option) (*Service, error) {
	s := &Service{config: DefaultConfig()}
	for _, option := range options {
		option(s)
	}
	if err := s.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := s.ensureBaseSetup(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Service) ensureBaseSetup() error {
	if s.fs == nil {
		s.fs = afs.New()
	}
	if s.config.Tracing.Enabled {
		if err := tracing.Init("sweeper", Version, s.config.Tracing.OutputFile); err != nil {
			return fmt.Errorf("failed to init tracing: %w", err)
		}
	}
	s.sink = sink.New(s.config.Sink.ResultDir, s.fs)
	s.aggregator = aggregate.New(s.fs)
	s.host = host.New(0)
	if s.outcomes == nil {
		if URL := s.config.Store.URL; URL != "" {
			store, err := ofs.New(context.Background(), URL, s.fs)
			if err != nil {
				return fmt.Errorf("failed to create outcome store: %w", err)
			}
			s.outcomes = store
		} else {
			s.outcomes = omemory.New()
		}
	}
	if s.supervisor == nil {
		builder := s.builder
		if builder == nil && s.config.Supervisor.Program != "" {
			cfg := s.config.Supervisor
			builder = supervisor.NewCommandBuilder(cfg.Program, cfg.DataRoot, cfg.DataExt)
		}
		if builder != nil {
			s.supervisor = supervisor.New(builder, supervisor.WithConfig(s.supervisorConfig()))
		}
	}
	return nil
}

func (s *Service) supervisorConfig() supervisor.Config {
	ret := supervisor.DefaultConfig()
	ret.Timeout = s.config.Supervisor.Timeout
	ret.KillGrace = s.config.Supervisor.KillGrace
	ret.StderrLimit = s.config.Supervisor.StderrLimit
	return ret
}

// Config returns the effective configuration.
func (s *Service) Config() *Config {
	return s.config
}

// ResultDir returns the local directory receiving trial outputs.
func (s *Service) ResultDir() string {
	return s.sink.Dir()
}

// Definition returns a configured or preset sweep.
func (s *Service) Definition(name string) (*sweep.Definition, error) {
	return s.config.Definition(name)
}

// Plan expands the named sweep without launching anything and flags trials
// whose output file is already present.
func (s *Service) Plan(ctx context.Context, name string) ([]*Planned, error) {
	definition, err := s.Definition(name)
	if err != nil {
		return nil, err
	}
	specs, err := definition.Expand()
	if err != nil {
		return nil, err
	}
	names, err := s.sink.Names(ctx)
	if err != nil {
		return nil, err
	}
	existing := make(map[string]bool, len(names))
	for _, name := range names {
		existing[name] = true
	}
	ret := make([]*Planned, 0, len(specs))
	for _, spec := range specs {
		ret = append(ret, &Planned{Spec: spec, OutputPath: s.sink.Path(spec), Exists: existing[spec.Name()]})
	}
	return ret, nil
}

// Run executes the named sweep.
func (s *Service) Run(ctx context.Context, name string) (*orchestrator.Report, error) {
	definition, err := s.Definition(name)
	if err != nil {
		return nil, err
	}
	return s.RunDefinition(ctx, definition)
}

// RunDefinition validates, expands and executes definition. It returns an
// error only for configuration problems or cancellation; per-trial failures
// are reported on the outcomes.
func (s *Service) RunDefinition(ctx context.Context, definition *sweep.Definition) (*orchestrator.Report, error) {
	if s.supervisor == nil {
		return nil, ErrNoProgram
	}
	specs, err := definition.Expand()
	if err != nil {
		return nil, err
	}
	if err = s.sink.Init(ctx); err != nil {
		return nil, err
	}
	runner, err := orchestrator.New(
		orchestrator.WithCapacity(s.config.Gate.Capacity),
		orchestrator.WithSupervisor(s.supervisor),
		orchestrator.WithNamer(s.sink),
		orchestrator.WithOutcomeStore(s.outcomes),
		orchestrator.WithListener(s.listener),
		orchestrator.WithProgressListener(s.onProgress),
	)
	if err != nil {
		return nil, err
	}
	return runner.Run(ctx, definition.Name, specs)
}

// Aggregate summarises the result directory and, when a summary URL is
// configured, uploads the summary there.
func (s *Service) Aggregate(ctx context.Context) ([]*aggregate.Row, error) {
	rows, err := s.aggregator.Collect(ctx, s.sink.Dir())
	if err != nil {
		return nil, err
	}
	if URL := s.config.Sink.SummaryURL; URL != "" {
		if err = s.aggregator.Write(ctx, URL, rows); err != nil {
			return nil, err
		}
	}
	return rows, nil
}

// Outcomes lists recorded outcomes, optionally filtered by status.
func (s *Service) Outcomes(ctx context.Context, statuses ...trial.Status) ([]*trial.Outcome, error) {
	var parameters []*dao.Parameter
	if len(statuses) > 0 {
		values := make([]string, 0, len(statuses))
		for _, status := range statuses {
			values = append(values, string(status))
		}
		parameters = append(parameters, &dao.Parameter{Name: dao.StatusParameter, Value: values})
	}
	return s.outcomes.List(ctx, parameters...)
}

// Probe reports host details.
func (s *Service) Probe(ctx context.Context) (*host.Info, error) {
	return s.host.Probe(ctx)
}

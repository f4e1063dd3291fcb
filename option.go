package sweeper

import (
	"time"

	"github.com/viant/afs"
	"github.com/viant/sweeper/model/trial"
	"github.com/viant/sweeper/progress"
	"github.com/viant/sweeper/service/dao/outcome"
	"github.com/viant/sweeper/service/orchestrator"
	"github.com/viant/sweeper/service/supervisor"
	"github.com/viant/sweeper/tracing"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option customises the service. Options are applied in order, so WithConfig
// should come before options adjusting individual settings.
type Option func(s *Service)

// WithConfig replaces the whole configuration.
func WithConfig(config *Config) Option {
	return func(s *Service) {
		if config != nil {
			s.config = config
		}
	}
}

// WithCapacity sets the number of trials running at once.
func WithCapacity(capacity int) Option {
	return func(s *Service) {
		s.config.Gate.Capacity = capacity
	}
}

// WithProgram sets the partitioning binary and its data root.
func WithProgram(program, dataRoot string) Option {
	return func(s *Service) {
		s.config.Supervisor.Program = program
		if dataRoot != "" {
			s.config.Supervisor.DataRoot = dataRoot
		}
	}
}

// WithTimeout sets the per-trial wall-clock budget.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		s.config.Supervisor.Timeout = timeout
	}
}

// WithResultDir sets the directory receiving trial outputs.
func WithResultDir(dir string) Option {
	return func(s *Service) {
		s.config.Sink.ResultDir = dir
	}
}

// WithCommandBuilder overrides how trial commands are built.
func WithCommandBuilder(builder supervisor.CommandBuilder) Option {
	return func(s *Service) {
		s.builder = builder
	}
}

// WithSupervisor overrides the trial supervisor entirely.
func WithSupervisor(supervisor orchestrator.Supervisor) Option {
	return func(s *Service) {
		s.supervisor = supervisor
	}
}

// WithOutcomeStore sets the outcome store.
func WithOutcomeStore(store outcome.Service) Option {
	return func(s *Service) {
		s.outcomes = store
	}
}

// WithListener registers a callback invoked once per finished trial.
func WithListener(listener func(o *trial.Outcome)) Option {
	return func(s *Service) {
		s.listener = listener
	}
}

// WithFs sets the storage service used for results, summaries and outcomes.
func WithFs(fs afs.Service) Option {
	return func(s *Service) {
		s.fs = fs
	}
}

// WithTracing configures OpenTelemetry tracing with the stdout exporter. An
// empty outputFile writes spans to stdout. The first initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		_ = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom exporter.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		_ = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}

// WithProgressListener registers a callback invoked with the run counters
// after every change. It may be called from several goroutines at once.
func WithProgressListener(listener func(c progress.Counters)) Option {
	return func(s *Service) {
		s.onProgress = listener
	}
}

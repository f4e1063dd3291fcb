package sweeper

import (
	"context"
	"fmt"
	"time"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/sweeper/internal/expand"
	"github.com/viant/sweeper/model/sweep"
	"gopkg.in/yaml.v3"
)

// Config is a serialisable representation of the harness configuration. It
// can be populated from YAML or JSON; fields left out keep their defaults
// when loaded through LoadConfig.
type Config struct {
	Gate       GateConfig       `json:"gate" yaml:"gate"`
	Supervisor SupervisorConfig `json:"supervisor" yaml:"supervisor"`
	Sink       SinkConfig       `json:"sink" yaml:"sink"`
	Store      StoreConfig      `json:"store" yaml:"store"`
	Tracing    TracingConfig    `json:"tracing" yaml:"tracing"`
	// Sweeps are user defined sweeps; a name shadows the preset of the same name.
	Sweeps []*sweep.Definition `json:"sweeps,omitempty" yaml:"sweeps,omitempty"`
}

type GateConfig struct {
	Capacity int `json:"capacity" yaml:"capacity"`
}

type SupervisorConfig struct {
	Program     string        `json:"program" yaml:"program"`
	DataRoot    string        `json:"dataRoot" yaml:"dataRoot"`
	DataExt     string        `json:"dataExt" yaml:"dataExt"`
	Timeout     time.Duration `json:"timeout" yaml:"timeout"`
	KillGrace   time.Duration `json:"killGrace" yaml:"killGrace"`
	StderrLimit int           `json:"stderrLimit" yaml:"stderrLimit"`
}

type SinkConfig struct {
	ResultDir  string `json:"resultDir" yaml:"resultDir"`
	SummaryURL string `json:"summaryURL" yaml:"summaryURL"`
}

// StoreConfig selects the outcome store; an empty URL keeps outcomes in memory.
type StoreConfig struct {
	URL string `json:"url" yaml:"url"`
}

type TracingConfig struct {
	Enabled    bool   `json:"enabled" yaml:"enabled"`
	OutputFile string `json:"outputFile" yaml:"outputFile"`
}

// DefaultConfig returns a Config populated with the default values.
func DefaultConfig() *Config {
	return &Config{
		Gate: GateConfig{Capacity: 20},
		Supervisor: SupervisorConfig{
			DataRoot:    "data",
			DataExt:     ".txt",
			Timeout:     36000 * time.Second,
			StderrLimit: 64 * 1024,
		},
		Sink: SinkConfig{
			ResultDir:  "result",
			SummaryURL: "result.csv",
		},
	}
}

// Validate returns the first invalid setting or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.Gate.Capacity <= 0 {
		return fmt.Errorf("gate.capacity must be > 0")
	}
	if c.Supervisor.Timeout <= 0 {
		return fmt.Errorf("supervisor.timeout must be > 0")
	}
	if c.Supervisor.KillGrace < 0 {
		return fmt.Errorf("supervisor.killGrace must be >= 0")
	}
	if c.Supervisor.StderrLimit < 0 {
		return fmt.Errorf("supervisor.stderrLimit must be >= 0")
	}
	if c.Sink.ResultDir == "" {
		return fmt.Errorf("sink.resultDir was empty")
	}
	names := map[string]bool{}
	for i, definition := range c.Sweeps {
		if err := definition.Validate(); err != nil {
			return fmt.Errorf("sweeps[%d]: %w", i, err)
		}
		if names[definition.Name] {
			return fmt.Errorf("sweeps[%d]: duplicate sweep %q", i, definition.Name)
		}
		names[definition.Name] = true
	}
	return nil
}

// Definition returns the named sweep, looking at configured sweeps first and
// presets second.
func (c *Config) Definition(name string) (*sweep.Definition, error) {
	for _, definition := range c.Sweeps {
		if definition.Name == name {
			return definition, nil
		}
	}
	return sweep.Preset(name)
}

// SweepNames lists configured sweeps followed by presets they do not shadow.
func (c *Config) SweepNames() []string {
	var ret []string
	seen := map[string]bool{}
	for _, definition := range c.Sweeps {
		ret = append(ret, definition.Name)
		seen[definition.Name] = true
	}
	for _, name := range sweep.Presets() {
		if !seen[name] {
			ret = append(ret, name)
		}
	}
	return ret
}

// LoadConfig reads a YAML or JSON configuration from URL on top of the
// defaults. ${env.KEY} expressions are expanded before decoding. Storage
// options are passed to the download, e.g. an embed.FS.
func LoadConfig(ctx context.Context, URL string, options ...storage.Option) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", URL, err)
	}
	ret := DefaultConfig()
	if err = yaml.Unmarshal([]byte(expand.Env(string(data))), ret); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", URL, err)
	}
	if err = ret.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", URL, err)
	}
	return ret, nil
}

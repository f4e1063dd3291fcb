package supervisor

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/viant/sweeper/model/trial"
)

// CommandBuilder returns a ready-to-start command for a spec. The command
// must not be started; the supervisor wires its output and process group.
type CommandBuilder interface {
	Build(ctx context.Context, spec trial.Spec) (*exec.Cmd, error)
}

// BuilderFunc adapts a function to CommandBuilder.
type BuilderFunc func(ctx context.Context, spec trial.Spec) (*exec.Cmd, error)

// Build calls f.
func (f BuilderFunc) Build(ctx context.Context, spec trial.Spec) (*exec.Cmd, error) {
	return f(ctx, spec)
}

// Program launches the partitioning binary with the standard flag set.
type Program struct {
	Path     string
	DataRoot string
	// DataExt is appended to the dataset name to locate its file, ".txt" by default.
	DataExt string
	Workdir string
	Env     []string
}

// NewCommandBuilder creates a Program builder.
func NewCommandBuilder(path, dataRoot, dataExt string) *Program {
	return &Program{Path: path, DataRoot: dataRoot, DataExt: dataExt}
}

// DatasetPath returns the input file passed with -d.
func (p *Program) DatasetPath(dataset string) string {
	ext := p.DataExt
	if ext == "" {
		ext = ".txt"
	}
	return filepath.Join(p.DataRoot, dataset+ext)
}

// Build implements CommandBuilder.
func (p *Program) Build(_ context.Context, spec trial.Spec) (*exec.Cmd, error) {
	if p.Path == "" {
		return nil, fmt.Errorf("program path was empty")
	}
	cmd := exec.Command(p.Path, spec.Args(p.DatasetPath(spec.Dataset))...)
	cmd.Dir = p.Workdir
	if len(p.Env) > 0 {
		cmd.Env = p.Env
	}
	return cmd, nil
}

package sink

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/sweeper/model/trial"
)

// Sink owns the result directory.
type Sink struct {
	dir string
	fs  afs.Service
}

// New creates a sink rooted at resultDir, which may be a plain path or a
// file:// URL. Result files are written by child processes, so only local
// directories are supported.
func New(resultDir string, fs afs.Service) *Sink {
	if fs == nil {
		fs = afs.New()
	}
	dir := resultDir
	if strings.HasPrefix(resultDir, file.Scheme+"://") {
		dir = url.Path(resultDir)
	}
	return &Sink{dir: filepath.Clean(dir), fs: fs}
}

// Dir returns the local result directory.
func (s *Sink) Dir() string {
	return s.dir
}

// Init creates the result directory when missing.
func (s *Sink) Init(ctx context.Context) error {
	if s.dir == "" || s.dir == "." {
		return fmt.Errorf("result dir was empty")
	}
	exists, err := s.fs.Exists(ctx, s.dir)
	if err != nil {
		return fmt.Errorf("failed to check result dir %s: %w", s.dir, err)
	}
	if exists {
		return nil
	}
	if err = s.fs.Create(ctx, s.dir, file.DefaultDirOsMode, true); err != nil {
		return fmt.Errorf("failed to create result dir %s: %w", s.dir, err)
	}
	return nil
}

// Path returns the output path of spec.
func (s *Sink) Path(spec trial.Spec) string {
	return filepath.Join(s.dir, spec.Name())
}

// Names returns the sorted names of files present in the result directory.
// A missing directory has no names.
func (s *Sink) Names(ctx context.Context) ([]string, error) {
	exists, err := s.fs.Exists(ctx, s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to check result dir %s: %w", s.dir, err)
	}
	if !exists {
		return nil, nil
	}
	objects, err := s.fs.List(ctx, s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list result dir %s: %w", s.dir, err)
	}
	var names []string
	for _, object := range objects {
		if object.IsDir() {
			continue
		}
		names = append(names, object.Name())
	}
	sort.Strings(names)
	return names, nil
}

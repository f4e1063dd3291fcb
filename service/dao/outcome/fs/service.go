package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/sweeper/model/trial"
	"github.com/viant/sweeper/service/dao"
	"github.com/viant/sweeper/service/dao/outcome"
)

// Service stores one JSON document per trial under basePath.
type Service struct {
	basePath string
	fs       afs.Service
	mu       sync.RWMutex
}

var _ outcome.Service = (*Service)(nil)

// Save persists an outcome, replacing any previous outcome of the same trial.
func (s *Service) Save(ctx context.Context, o *trial.Outcome) error {
	if o == nil {
		return dao.ErrNilEntity
	}
	if o.ID == "" {
		return dao.ErrInvalidID
	}
	data, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("failed to marshal outcome: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	filePath := s.outcomePath(o.ID)
	if err = s.fs.Upload(ctx, filePath, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save outcome to file %s: %w", filePath, err)
	}
	return nil
}

// Load retrieves the outcome of a trial.
func (s *Service) Load(ctx context.Context, id string) (*trial.Outcome, error) {
	if id == "" {
		return nil, dao.ErrInvalidID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	filePath := s.outcomePath(id)
	exists, err := s.fs.Exists(ctx, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to check if outcome exists: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", dao.ErrNotFound, id)
	}
	data, err := s.fs.DownloadWithURL(ctx, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read outcome file: %w", err)
	}
	ret := &trial.Outcome{}
	if err = json.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to unmarshal outcome %s: %w", id, err)
	}
	return ret, nil
}

// Delete removes the outcome of a trial.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return dao.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	filePath := s.outcomePath(id)
	exists, err := s.fs.Exists(ctx, filePath)
	if err != nil {
		return fmt.Errorf("failed to check if outcome exists: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", dao.ErrNotFound, id)
	}
	if err = s.fs.Delete(ctx, filePath); err != nil {
		return fmt.Errorf("failed to delete outcome file: %w", err)
	}
	return nil
}

// List returns stored outcomes matching parameters ordered by run counter value.
func (s *Service) List(ctx context.Context, parameters ...*dao.Parameter) ([]*trial.Outcome, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	objects, err := s.fs.List(ctx, s.basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to list outcome files: %w", err)
	}
	var outcomes []*trial.Outcome
	for _, object := range objects {
		if object.IsDir() || !strings.HasSuffix(object.Name(), ".json") {
			continue
		}
		data, err := s.fs.Download(ctx, object)
		if err != nil {
			log.Printf("outcome store: failed to read %s: %v", object.URL(), err)
			continue
		}
		candidate := &trial.Outcome{}
		if err = json.Unmarshal(data, candidate); err != nil {
			log.Printf("outcome store: failed to unmarshal %s: %v", object.URL(), err)
			continue
		}
		if outcome.Matches(candidate, parameters) {
			outcomes = append(outcomes, candidate)
		}
	}
	outcome.Sort(outcomes)
	return outcomes, nil
}

func (s *Service) outcomePath(id string) string {
	return url.Join(s.basePath, id+".json")
}

// New creates a filesystem outcome store rooted at basePath.
func New(ctx context.Context, basePath string, fs afs.Service) (*Service, error) {
	if basePath == "" {
		return nil, fmt.Errorf("base path cannot be empty")
	}
	if fs == nil {
		fs = afs.New()
	}
	exists, _ := fs.Exists(ctx, basePath)
	if !exists {
		if err := fs.Create(ctx, basePath, file.DefaultDirOsMode, true); err != nil {
			return nil, fmt.Errorf("failed to create base directory: %w", err)
		}
	}
	return &Service{
		basePath: url.Normalize(basePath, file.Scheme),
		fs:       fs,
	}, nil
}

package memory

import (
	"context"

	"github.com/viant/sweeper/model/trial"
	"github.com/viant/sweeper/service/dao"
	"github.com/viant/sweeper/service/dao/outcome"
	"github.com/viant/sweeper/service/dao/store"
)

// Service is an in-memory, thread-safe outcome store. It works with copies
// so callers cannot mutate recorded outcomes.
type Service struct {
	*store.MemoryStore[string, trial.Outcome]
}

var _ outcome.Service = (*Service)(nil)

// List returns outcomes matching parameters ordered by run counter value.
func (s *Service) List(ctx context.Context, parameters ...*dao.Parameter) ([]*trial.Outcome, error) {
	all, err := s.MemoryStore.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*trial.Outcome, 0, len(all))
	for _, candidate := range all {
		if outcome.Matches(candidate, parameters) {
			out = append(out, candidate)
		}
	}
	outcome.Sort(out)
	return out, nil
}

func New() *Service {
	return &Service{
		MemoryStore: store.NewMemoryStore[string, trial.Outcome](
			func(o *trial.Outcome) string { return o.ID },
			(*trial.Outcome).Clone,
		),
	}
}

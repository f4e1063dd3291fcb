// Package outcome holds helpers shared by the trial outcome stores.
package outcome

import (
	"sort"

	"github.com/viant/sweeper/model/trial"
	"github.com/viant/sweeper/service/dao"
	"github.com/viant/sweeper/service/dao/criteria"
)

// Service persists trial outcomes keyed by trial name.
type Service = dao.Service[string, trial.Outcome]

// Matches reports whether o satisfies parameters.
func Matches(o *trial.Outcome, parameters []*dao.Parameter) bool {
	return criteria.Match(map[string]string{
		dao.StatusParameter: string(o.Status),
		dao.RunParameter:    o.RunID,
	}, parameters)
}

// Sort orders outcomes by run counter value, then by ID.
func Sort(outcomes []*trial.Outcome) {
	sort.SliceStable(outcomes, func(i, j int) bool {
		if outcomes[i].Sequence != outcomes[j].Sequence {
			return outcomes[i].Sequence < outcomes[j].Sequence
		}
		return outcomes[i].ID < outcomes[j].ID
	})
}

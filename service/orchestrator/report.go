package orchestrator

import (
	"time"

	"github.com/viant/sweeper/model/trial"
	"github.com/viant/sweeper/progress"
)

// Report summarises one orchestrator run.
type Report struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartedAt time.Time `json:"startedAt"`
	EndedAt   time.Time `json:"endedAt"`
	// Outcomes of admitted trials, in spec order.
	Outcomes []*trial.Outcome  `json:"outcomes"`
	Progress progress.Counters `json:"progress"`
	// Available is the number of free gate slots once every trial returned.
	Available int `json:"available"`
	Capacity  int `json:"capacity"`
}

// Count returns the number of outcomes with status.
func (r *Report) Count(status trial.Status) int {
	ret := 0
	for _, o := range r.Outcomes {
		if o.Status == status {
			ret++
		}
	}
	return ret
}

// Elapsed returns the wall-clock duration of the run.
func (r *Report) Elapsed() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}

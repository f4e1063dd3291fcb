package progress

import (
	"sync"
	"time"

	"github.com/viant/sweeper/internal/clock"
)

// Delta represents an incremental counter change. The fields are signed and
// can be either positive (increment) or negative (decrement).
type Delta struct {
	Total     int
	Queued    int
	Running   int
	Completed int
	TimedOut  int
	Failed    int
}

// Counters is a point-in-time copy of a tracker.
type Counters struct {
	RunID     string    `json:"runId"`
	Sweep     string    `json:"sweep"`
	StartedAt time.Time `json:"startedAt"`

	Total     int `json:"total"`
	Queued    int `json:"queued"`
	Running   int `json:"running"`
	Completed int `json:"completed"`
	TimedOut  int `json:"timedOut"`
	Failed    int `json:"failed"`
}

// Finished returns the run counter: the number of trials that reached a
// terminal status.
func (c Counters) Finished() int {
	return c.Completed + c.TimedOut + c.Failed
}

// Done reports whether every trial of the run finished.
func (c Counters) Done() bool {
	return c.Total > 0 && c.Finished() == c.Total
}

// Progress keeps aggregated trial counters of one run. It is safe for
// concurrent use.
type Progress struct {
	mu       sync.Mutex
	counters Counters
	onChange func(Counters)
}

// New creates a tracker for a run.
func New(runID, sweep string, onChange func(Counters)) *Progress {
	return &Progress{
		counters: Counters{RunID: runID, Sweep: sweep, StartedAt: clock.Now()},
		onChange: onChange,
	}
}

// Update applies d and returns the counters as they were right after the
// change, so callers can log a consistent value. The onChange callback, if
// any, runs outside the critical section.
func (p *Progress) Update(d Delta) Counters {
	if p == nil {
		return Counters{}
	}
	p.mu.Lock()
	p.counters.Total += d.Total
	p.counters.Queued += d.Queued
	p.counters.Running += d.Running
	p.counters.Completed += d.Completed
	p.counters.TimedOut += d.TimedOut
	p.counters.Failed += d.Failed
	snapshot := p.counters
	cb := p.onChange
	p.mu.Unlock()

	if cb != nil {
		cb(snapshot)
	}
	return snapshot
}

// Snapshot returns a copy of the counters.
func (p *Progress) Snapshot() Counters {
	if p == nil {
		return Counters{}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.counters
}

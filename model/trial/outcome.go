package trial

import (
	"time"
)

// Outcome records how a single trial terminated. It is produced once by the
// supervisor, stamped by the orchestrator and not changed afterwards.
type Outcome struct {
	ID     string `json:"id"`
	RunID  string `json:"runId,omitempty"`
	Spec   Spec   `json:"spec"`
	Status Status `json:"status"`
	// State is the last lifecycle state the trial reached.
	State      State      `json:"state,omitempty"`
	Reason     Reason     `json:"reason,omitempty"`
	Error      string     `json:"error,omitempty"`
	OutputPath string     `json:"outputPath"`
	PID        int        `json:"pid,omitempty"`
	ExitCode   int        `json:"exitCode"`
	StartedAt  *time.Time `json:"startedAt,omitempty"`
	EndedAt    *time.Time `json:"endedAt,omitempty"`
	// Sequence is the run counter value assigned when the trial reached a terminal state.
	Sequence   int    `json:"sequence,omitempty"`
	StderrTail string `json:"stderrTail,omitempty"`
}

// NewOutcome creates an outcome for spec writing to outputPath.
func NewOutcome(spec Spec, outputPath string) *Outcome {
	return &Outcome{
		ID:         spec.Name(),
		Spec:       spec,
		OutputPath: outputPath,
		ExitCode:   -1,
	}
}

// Start records the moment the program was launched.
func (o *Outcome) Start(at time.Time, pid int) {
	o.StartedAt = &at
	o.PID = pid
}

// Complete marks the trial as finished on its own with a zero exit code.
func (o *Outcome) Complete(at time.Time) {
	o.EndedAt = &at
	o.Status = StatusCompleted
	o.Reason = ReasonNone
	o.ExitCode = 0
}

// TimeOut marks the trial as killed after exceeding its time budget.
func (o *Outcome) TimeOut(at time.Time, limit time.Duration) {
	o.EndedAt = &at
	o.Status = StatusTimedOut
	o.Reason = ReasonTimeout
	o.Error = "exceeded " + limit.String()
}

// Fail marks the trial as failed for reason.
func (o *Outcome) Fail(at time.Time, reason Reason, err error) {
	o.EndedAt = &at
	o.Status = StatusFailed
	o.Reason = reason
	if err != nil {
		o.Error = err.Error()
	}
}

// Elapsed returns the wall-clock time between launch and termination.
func (o *Outcome) Elapsed() time.Duration {
	if o.StartedAt == nil || o.EndedAt == nil {
		return 0
	}
	return o.EndedAt.Sub(*o.StartedAt)
}

// Terminal reports whether a status has been assigned.
func (o *Outcome) Terminal() bool {
	switch o.Status {
	case StatusCompleted, StatusTimedOut, StatusFailed:
		return true
	}
	return false
}

// Clone returns a deep copy.
func (o *Outcome) Clone() *Outcome {
	if o == nil {
		return nil
	}
	ret := *o
	if o.StartedAt != nil {
		started := *o.StartedAt
		ret.StartedAt = &started
	}
	if o.EndedAt != nil {
		ended := *o.EndedAt
		ret.EndedAt = &ended
	}
	return &ret
}

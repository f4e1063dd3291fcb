package trial

import "fmt"

// State is the lifecycle position of a trial inside an orchestrator run.
type State string

const (
	StateQueued       State = "queued"
	StateSlotAcquired State = "slotAcquired"
	StateRunning      State = "running"
	StateCompleted    State = "completed"
	StateTimedOut     State = "timedOut"
	StateFailed       State = "failed"
	StateSlotReleased State = "slotReleased" // terminal
)

// Status is the terminal result of a trial.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusTimedOut  Status = "timedOut"
	StatusFailed    Status = "failed"
)

// Statuses returns every terminal status.
func Statuses() []Status {
	return []Status{StatusCompleted, StatusTimedOut, StatusFailed}
}

// State maps a status onto its lifecycle state.
func (s Status) State() State {
	switch s {
	case StatusCompleted:
		return StateCompleted
	case StatusTimedOut:
		return StateTimedOut
	default:
		return StateFailed
	}
}

// Reason classifies why a trial ended the way it did.
type Reason string

const (
	ReasonNone Reason = ""
	// ReasonSpawnFailure: the program (or its output file) could not be set up or started.
	ReasonSpawnFailure Reason = "spawnFailure"
	// ReasonTimeout: the program exceeded its allotted wall-clock time.
	ReasonTimeout Reason = "timeout"
	// ReasonRuntimeFailure: waiting on a started program failed, it exited non-zero,
	// or the run was cancelled underneath it.
	ReasonRuntimeFailure Reason = "runtimeFailure"
)

var transitions = map[State][]State{
	StateQueued:       {StateSlotAcquired},
	StateSlotAcquired: {StateRunning},
	StateRunning:      {StateCompleted, StateTimedOut, StateFailed},
	StateCompleted:    {StateSlotReleased},
	StateTimedOut:     {StateSlotReleased},
	StateFailed:       {StateSlotReleased},
}

// CanTransition reports whether a trial may move from one state to the next.
func CanTransition(from, to State) bool {
	for _, candidate := range transitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}

// Lifecycle walks one trial through its states. It is not safe for
// concurrent use; a trial is owned by one goroutine at a time.
type Lifecycle struct {
	state State
}

// NewLifecycle starts a trial in StateQueued.
func NewLifecycle() *Lifecycle {
	return &Lifecycle{state: StateQueued}
}

// State returns the current state.
func (l *Lifecycle) State() State {
	return l.state
}

// Advance moves to the next state, rejecting moves the state machine does not allow.
func (l *Lifecycle) Advance(to State) error {
	if !CanTransition(l.state, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidState, l.state, to)
	}
	l.state = to
	return nil
}

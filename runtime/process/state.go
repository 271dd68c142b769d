package process

// State represents the lifecycle state of a process
type State string

const (
	StateReady      State = "ready"
	StateRunning    State = "running"
	StateTerminated State = "terminated"
)

// ParseState maps a state name, case sensitive, to State
func ParseState(name string) (State, bool) {
	switch state := State(name); state {
	case StateReady, StateRunning, StateTerminated:
		return state, true
	}
	return "", false
}

// IsTerminated returns true for the terminal state
func (s State) IsTerminated() bool {
	return s == StateTerminated
}

// Lifecycle event types published by the scheduler
const (
	EventCreated     = "created"
	EventOutOfMemory = "outOfMemory"
	EventScheduled   = "scheduled"
	EventPreempted   = "preempted"
	EventFaulted     = "faulted"
	EventTerminated  = "terminated"
	EventKilled      = "killed"
)

package domain

import "fmt"

// TaskState is the scheduler state of one task.
type TaskState int

const (
	// StatePending means the task waits for its dependencies.
	StatePending TaskState = iota
	// StateReady means every dependency is terminal and the task waits for a slot.
	StateReady
	// StateRunning means the task is resolving dependencies or running its action.
	StateRunning
	// StateSucceeded means the task's action ran and succeeded.
	StateSucceeded
	// StateFailed means the task failed.
	StateFailed
	// StateSkipped means the task's action never ran: it was fresh, blocked by a failure or cancelled.
	StateSkipped
)

var stateNames = [...]string{"Pending", "Ready", "Running", "Succeeded", "Failed", "Skipped"}

// String returns the state name.
func (s TaskState) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("TaskState(%d)", int(s))
}

// IsTerminal reports whether no further transition is allowed.
func (s TaskState) IsTerminal() bool {
	return s == StateSucceeded || s == StateFailed || s == StateSkipped
}

var allowedTransitions = map[TaskState][]TaskState{
	StatePending: {StateReady, StateSkipped},
	StateReady:   {StateRunning, StateSkipped},
	// Freshness is only known once dependencies are resolved, so a running task may still be skipped.
	StateRunning: {StateSucceeded, StateFailed, StateSkipped},
}

// Transition validates a state change and returns the new state.
func (s TaskState) Transition(to TaskState) (TaskState, error) {
	for _, allowed := range allowedTransitions[s] {
		if allowed == to {
			return to, nil
		}
	}
	return s, Annotate(ErrInvalidTransition, "from", s.String(), "to", to.String())
}

package execution

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition is returned for a state change the lifecycle does not allow
	ErrInvalidTransition = errors.New("execution: invalid state transition")
	// ErrWorkerMismatch is returned when a process enters a dispatched state
	// without a worker, or an undispatched one with a worker
	ErrWorkerMismatch = errors.New("execution: worker does not match state")
)

// State represents the lifecycle state of a simulated process
type State string

const (
	StateNotArrived State = "notArrived"
	StateInput      State = "input"
	StateReady      State = "ready"
	StateRunning    State = "running"
	StateSuspended  State = "suspended"
	StateTerminated State = "terminated"
)

var transitions = map[State][]State{
	StateNotArrived: {StateInput},
	StateInput:      {StateReady},
	StateReady:      {StateRunning},
	StateRunning:    {StateSuspended, StateTerminated},
	StateSuspended:  {StateRunning},
}

// CanTransition reports whether the lifecycle allows moving from s to next
func (s State) CanTransition(next State) bool {
	for _, candidate := range transitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// IsDispatched reports whether a process in this state has been started
func (s State) IsDispatched() bool {
	switch s {
	case StateRunning, StateSuspended, StateTerminated:
		return true
	}
	return false
}

func transitionError(name string, from, to State) error {
	return fmt.Errorf("%w: %v %v -> %v", ErrInvalidTransition, name, from, to)
}

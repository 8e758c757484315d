package execution

import (
	"fmt"

	"github.com/markphelps/optional"

	"github.com/viant/procman/model"
	"github.com/viant/procman/service/control"
)

// Process is the runtime record of a simulated process
type Process struct {
	*model.Process
	Remaining int            `json:"remaining"`
	State     State          `json:"state"`
	Block     optional.Int   `json:"-"`
	Handle    control.Handle `json:"-"`
	Finished  int            `json:"finished,omitempty"`
	Digest    string         `json:"digest,omitempty"`
}

// Transition moves the process to the next lifecycle state.  A process has a
// worker handle exactly when the next state is a dispatched one.
func (p *Process) Transition(next State) error {
	if !p.State.CanTransition(next) {
		return transitionError(p.Name, p.State, next)
	}
	if next.IsDispatched() != p.Dispatched() {
		return fmt.Errorf("%w: %v -> %v with worker %v", ErrWorkerMismatch, p.Name, next, p.PID())
	}
	p.State = next
	return nil
}

// PID returns worker process id, 0 until first dispatch
func (p *Process) PID() int {
	if p.Handle == nil {
		return 0
	}
	return p.Handle.PID()
}

// Dispatched reports whether the worker has been started
func (p *Process) Dispatched() bool {
	return p.Handle != nil
}

// Run charges one quantum of CPU time; remaining time never drops below zero
func (p *Process) Run(quantum int) {
	p.Remaining -= quantum
	if p.Remaining < 0 {
		p.Remaining = 0
	}
}

// Completed reports whether no CPU time is left
func (p *Process) Completed() bool {
	return p.Remaining <= 0
}

// Turnaround returns completion time minus arrival
func (p *Process) Turnaround() int {
	return p.Finished - p.Arrival
}

// Overhead returns turnaround divided by service time
func (p *Process) Overhead() float64 {
	return float64(p.Turnaround()) / float64(p.Service)
}

func (p *Process) String() string {
	block := "-"
	if id, err := p.Block.Get(); err == nil {
		block = fmt.Sprint(id)
	}
	return fmt.Sprintf("%v(%v rem=%v block=%v pid=%v)", p.Name, p.State, p.Remaining, block, p.PID())
}

// NewProcess wraps a workload item into a not yet arrived runtime record
func NewProcess(def *model.Process) *Process {
	return &Process{Process: def, Remaining: def.Service, State: StateNotArrived}
}

// Less orders runtime records the way the wrapped workload items are ordered
func Less(less func(a, b *model.Process) bool) func(a, b *Process) bool {
	return func(a, b *Process) bool {
		return less(a.Process, b.Process)
	}
}

package execution

import (
	"testing"

	"github.com/markphelps/optional"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/procman/model"
	"github.com/viant/procman/service/control"
)

type stubHandle struct {
	control.Handle
}

func (h *stubHandle) PID() int { return 7 }

func TestProcess_Transition(t *testing.T) {
	var testCases = []struct {
		description string
		path        []State
		noWorker    bool
		expectErr   error
	}{
		{description: "run to completion", path: []State{StateInput, StateReady, StateRunning, StateTerminated}},
		{description: "preempted and resumed", path: []State{StateInput, StateReady, StateRunning, StateSuspended, StateRunning, StateSuspended, StateRunning, StateTerminated}},
		{description: "skip input", path: []State{StateReady}, expectErr: ErrInvalidTransition},
		{description: "terminate from ready", path: []State{StateInput, StateReady, StateTerminated}, expectErr: ErrInvalidTransition},
		{description: "terminated is absorbing", path: []State{StateInput, StateReady, StateRunning, StateTerminated, StateRunning}, expectErr: ErrInvalidTransition},
		{description: "running without worker", path: []State{StateInput, StateReady, StateRunning}, noWorker: true, expectErr: ErrWorkerMismatch},
	}

	for _, testCase := range testCases {
		process := NewProcess(&model.Process{Name: "P1", Service: 2})
		var err error
		for _, next := range testCase.path {
			if next == StateRunning && !testCase.noWorker {
				process.Handle = &stubHandle{}
			}
			if err = process.Transition(next); err != nil {
				break
			}
		}
		if testCase.expectErr != nil {
			assert.ErrorIs(t, err, testCase.expectErr, testCase.description)
			continue
		}
		assert.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.path[len(testCase.path)-1], process.State, testCase.description)
	}
}

func TestProcess_Run(t *testing.T) {
	var testCases = []struct {
		description string
		service     int
		quantum     int
		steps       int
		expect      int
	}{
		{description: "exact", service: 3, quantum: 1, steps: 3, expect: 0},
		{description: "floored at zero", service: 3, quantum: 2, steps: 2, expect: 0},
		{description: "partial", service: 5, quantum: 2, steps: 1, expect: 3},
	}

	for _, testCase := range testCases {
		process := NewProcess(&model.Process{Name: "P1", Service: testCase.service})
		for i := 0; i < testCase.steps; i++ {
			process.Run(testCase.quantum)
		}
		assert.Equal(t, testCase.expect, process.Remaining, testCase.description)
		assert.Equal(t, testCase.expect == 0, process.Completed(), testCase.description)
	}
}

func TestProcess_Stats(t *testing.T) {
	process := NewProcess(&model.Process{Name: "P1", Arrival: 2, Service: 4})
	process.Finished = 8
	assert.Equal(t, 6, process.Turnaround())
	assert.InDelta(t, 1.5, process.Overhead(), 1e-9)
	assert.Equal(t, 0, process.PID())
	assert.False(t, process.Dispatched())
	assert.Equal(t, "P1(notArrived rem=4 block=- pid=0)", process.String())

	process.Block = optional.NewInt(3)
	id, err := process.Block.Get()
	require.NoError(t, err)
	assert.Equal(t, 3, id)
	assert.Equal(t, "P1(notArrived rem=4 block=3 pid=0)", process.String())
}

func TestState(t *testing.T) {
	assert.True(t, StateSuspended.IsDispatched())
	assert.False(t, StateReady.IsDispatched())
	assert.False(t, StateTerminated.CanTransition(StateRunning))
}

func TestProcess_TransitionWorkerCheck(t *testing.T) {
	process := NewProcess(&model.Process{Name: "P1", Service: 2})
	process.Handle = &stubHandle{}
	err := process.Transition(StateInput)
	assert.ErrorIs(t, err, ErrWorkerMismatch)
	assert.Equal(t, StateNotArrived, process.State)
}

package scheduler

import (
	"github.com/viant/procman/runtime/execution"
	"github.com/viant/procman/service/memory"
	"github.com/viant/procman/service/queue"
)

// Snapshot is a read-only view of the simulation state
type Snapshot struct {
	Time     int            `json:"time"`
	NotReady []string       `json:"notReady,omitempty"`
	Input    []string       `json:"input,omitempty"`
	Ready    []string       `json:"ready,omitempty"`
	Running  string         `json:"running,omitempty"`
	Finished []string       `json:"finished,omitempty"`
	Blocks   []memory.Block `json:"blocks,omitempty"`
}

// Snapshot returns current simulation state
func (s *Service) Snapshot() *Snapshot {
	ret := &Snapshot{
		Time:     s.clock.Now(),
		NotReady: names(s.notReady),
		Input:    names(s.input),
		Ready:    names(s.ready),
	}
	if s.running != nil {
		ret.Running = s.running.Name
	}
	for _, process := range s.finished {
		ret.Finished = append(ret.Finished, process.Name)
	}
	if s.space != nil {
		ret.Blocks = s.space.Blocks()
	}
	return ret
}

func names(q *queue.Queue[execution.Process]) []string {
	var ret []string
	for _, process := range q.Items() {
		ret = append(ret, process.Name)
	}
	return ret
}

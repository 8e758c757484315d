package progress

import (
	"context"
	"sync"
	"time"

	"github.com/viant/procman/internal/clock"
)

// Delta represents an incremental counter change emitted by the scheduler.
// Fields are signed: a state transition decrements the old state and
// increments the new one.
type Delta struct {
	Total      int
	NotArrived int
	Input      int
	Ready      int
	Running    int
	Suspended  int
	Finished   int
}

// Counters holds aggregated process counts for one run
type Counters struct {
	RunID     string
	Workload  string
	StartedAt time.Time

	Total      int
	NotArrived int
	Input      int
	Ready      int
	Running    int
	Suspended  int
	Finished   int
}

// Pending returns processes that still need CPU time
func (c Counters) Pending() int {
	return c.Total - c.Finished
}

// Progress keeps counters for a run.  It is safe for concurrent use.
type Progress struct {
	counters Counters
	mux      sync.Mutex
	onChange func(Counters)
}

// Update applies the supplied delta.  The onChange callback, if any, is
// invoked with a copy of the counters outside the critical section.
func (p *Progress) Update(d Delta) {
	if p == nil {
		return
	}
	p.mux.Lock()
	p.counters.Total += d.Total
	p.counters.NotArrived += d.NotArrived
	p.counters.Input += d.Input
	p.counters.Ready += d.Ready
	p.counters.Running += d.Running
	p.counters.Suspended += d.Suspended
	p.counters.Finished += d.Finished
	snapshot := p.counters
	cb := p.onChange
	p.mux.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

// Snapshot returns a copy of the counters
func (p *Progress) Snapshot() Counters {
	if p == nil {
		return Counters{}
	}
	p.mux.Lock()
	defer p.mux.Unlock()
	return p.counters
}

// OnChange registers a callback invoked after every Update; nil disables it
func (p *Progress) OnChange(cb func(Counters)) {
	if p == nil {
		return
	}
	p.mux.Lock()
	p.onChange = cb
	p.mux.Unlock()
}

// New creates a tracker for a run
func New(runID, workload string, onChange func(Counters)) *Progress {
	return &Progress{
		counters: Counters{RunID: runID, Workload: workload, StartedAt: clock.Now()},
		onChange: onChange,
	}
}

type trackerKeyT struct{}

var trackerKey trackerKeyT

// WithNewTracker creates a tracker and embeds it in a derived context
func WithNewTracker(ctx context.Context, runID, workload string, onChange func(Counters)) (context.Context, *Progress) {
	if ctx == nil {
		ctx = context.Background()
	}
	tr := New(runID, workload, onChange)
	return context.WithValue(ctx, trackerKey, tr), tr
}

// FromContext extracts the tracker from ctx
func FromContext(ctx context.Context) (*Progress, bool) {
	if ctx == nil {
		return nil, false
	}
	tr, ok := ctx.Value(trackerKey).(*Progress)
	return tr, ok
}

// GetSnapshot combines FromContext and Snapshot
func GetSnapshot(ctx context.Context) (Counters, bool) {
	if tr, ok := FromContext(ctx); ok {
		return tr.Snapshot(), true
	}
	return Counters{}, false
}

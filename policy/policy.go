package policy

import (
	"errors"
	"fmt"
	"strings"

	"github.com/viant/procman/model"
)

// Discipline names recognised by the engine.
const (
	DisciplineSJF Discipline = "SJF" // shortest job first, non-preemptive
	DisciplineRR  Discipline = "RR"  // round robin, one quantum per turn
)

// Memory strategies recognised by the engine.
const (
	MemoryBestFit  MemoryStrategy = "best-fit"
	MemoryInfinite MemoryStrategy = "infinite"
)

// Configuration errors, reported before any simulation state is created.
var (
	ErrInvalidDiscipline     = errors.New("policy: invalid scheduler")
	ErrInvalidMemoryStrategy = errors.New("policy: invalid memory strategy")
)

// Discipline controls ready queue ordering and preemption.
type Discipline string

// ParseDiscipline converts a textual discipline into Discipline.  Matching is
// case-insensitive.
func ParseDiscipline(value string) (Discipline, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case string(DisciplineSJF):
		return DisciplineSJF, nil
	case string(DisciplineRR):
		return DisciplineRR, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDiscipline, value)
}

// IsPreemptive returns true when a running process yields the CPU to ready
// processes after every quantum.
func (d Discipline) IsPreemptive() bool {
	return d == DisciplineRR
}

// IsOrdered returns true when the ready queue is kept sorted rather than FIFO.
func (d Discipline) IsOrdered() bool {
	return d == DisciplineSJF
}

// MemoryStrategy controls whether processes need a memory block to become ready.
type MemoryStrategy string

// ParseMemoryStrategy converts a textual strategy into MemoryStrategy.
func ParseMemoryStrategy(value string) (MemoryStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(MemoryBestFit):
		return MemoryBestFit, nil
	case string(MemoryInfinite):
		return MemoryInfinite, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMemoryStrategy, value)
}

// IsFinite returns true when processes are constrained by the allocator.
func (m MemoryStrategy) IsFinite() bool {
	return m == MemoryBestFit
}

// Less orders processes for shortest job first: service time, then arrival
// time, then name.  The order is total for processes with distinct names.
func Less(a, b *model.Process) bool {
	if a.Service != b.Service {
		return a.Service < b.Service
	}
	if a.Arrival != b.Arrival {
		return a.Arrival < b.Arrival
	}
	return a.Name < b.Name
}

// Package report defines the persisted summary of a simulation run and the
// stores that keep it.
package report

import (
	"context"
	"errors"
	"time"

	"github.com/viant/procman/runtime/execution"
	"github.com/viant/procman/service/scheduler"
)

var (
	// ErrNotFound is returned when the requested report does not exist
	ErrNotFound = errors.New("report: not found")
	// ErrInvalidID indicates an empty run id
	ErrInvalidID = errors.New("report: invalid id")
	// ErrNilEntity is returned when saving a nil report
	ErrNilEntity = errors.New("report: nil entity")
)

// Store persists run reports keyed by run id
type Store interface {
	Save(ctx context.Context, report *Report) error

	Load(ctx context.Context, runID string) (*Report, error)

	Delete(ctx context.Context, runID string) error

	List(ctx context.Context) ([]*Report, error)
}

// Process is the outcome of one simulated process
type Process struct {
	Name       string  `json:"name"`
	Arrival    int     `json:"arrival"`
	Service    int     `json:"service"`
	Memory     int     `json:"memory"`
	Finished   int     `json:"finished"`
	Turnaround int     `json:"turnaround"`
	Overhead   float64 `json:"overhead"`
	Digest     string  `json:"digest"`
}

// Report summarises a run
type Report struct {
	RunID      string           `json:"runId"`
	Workload   string           `json:"workload"`
	Discipline string           `json:"discipline"`
	Memory     string           `json:"memory"`
	Quantum    int              `json:"quantum"`
	CreatedAt  time.Time        `json:"createdAt"`
	Stats      *scheduler.Stats `json:"stats"`
	Processes  []*Process       `json:"processes"`
}

// New creates a report from finished runtime records in completion order
func New(runID, workload string, config scheduler.Config, stats *scheduler.Stats, finished []*execution.Process, createdAt time.Time) *Report {
	ret := &Report{
		RunID:      runID,
		Workload:   workload,
		Discipline: string(config.Discipline),
		Memory:     string(config.Memory),
		Quantum:    config.Quantum,
		CreatedAt:  createdAt,
		Stats:      stats,
	}
	for _, process := range finished {
		ret.Processes = append(ret.Processes, &Process{
			Name:       process.Name,
			Arrival:    process.Arrival,
			Service:    process.Service,
			Memory:     process.Memory,
			Finished:   process.Finished,
			Turnaround: process.Turnaround(),
			Overhead:   process.Overhead(),
			Digest:     process.Digest,
		})
	}
	return ret
}

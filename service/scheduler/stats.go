package scheduler

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarises a simulation run
type Stats struct {
	Finished    int     `json:"finished"`
	Turnaround  int     `json:"turnaround"`
	OverheadMax float64 `json:"overheadMax"`
	OverheadAvg float64 `json:"overheadAvg"`
	Makespan    int     `json:"makespan"`
}

// Report writes the three line summary
func (s *Stats) Report(w io.Writer) error {
	_, err := fmt.Fprintf(w, "Turnaround time %d\nTime overhead %.2f %.2f\nMakespan %d\n",
		s.Turnaround, s.OverheadMax, s.OverheadAvg, s.Makespan)
	return err
}

type collector struct {
	turnarounds []float64
	overheads   []float64
}

func (c *collector) add(turnaround int, overhead float64) {
	c.turnarounds = append(c.turnarounds, float64(turnaround))
	c.overheads = append(c.overheads, overhead)
}

// stats computes the ceiling of mean turnaround and 2-decimal rounded overheads.
// An empty run reports zeros.
func (c *collector) stats(makespan int) *Stats {
	ret := &Stats{Finished: len(c.turnarounds), Makespan: makespan}
	if ret.Finished == 0 {
		return ret
	}
	ret.Turnaround = int(math.Ceil(stat.Mean(c.turnarounds, nil)))
	ret.OverheadAvg = round2(stat.Mean(c.overheads, nil))
	ret.OverheadMax = round2(floats.Max(c.overheads))
	return ret
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

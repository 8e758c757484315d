package clock

import "time"

// NowFunc returns current wall time. Override in tests for determinism.
var NowFunc = time.Now

// Now is a thin wrapper around NowFunc.
func Now() time.Time { return NowFunc() }

// Simulated is a discrete clock advanced in fixed quantum increments
type Simulated struct {
	now     int
	quantum int
}

// Now returns current simulated time
func (s *Simulated) Now() int { return s.now }

// Quantum returns the tick size
func (s *Simulated) Quantum() int { return s.quantum }

// Tick advances the clock by one quantum and returns the new time
func (s *Simulated) Tick() int {
	s.now += s.quantum
	return s.now
}

// NewSimulated creates a clock starting at start
func NewSimulated(start, quantum int) *Simulated {
	return &Simulated{now: start, quantum: quantum}
}

package scheduler

import (
	"errors"
	"fmt"

	"github.com/viant/procman/policy"
)

// DefaultMemoryLimit is the simulated memory size under best fit
const DefaultMemoryLimit = 2048

// ErrInvalidQuantum is returned for a non positive quantum
var ErrInvalidQuantum = errors.New("scheduler: invalid quantum")

// Config represents simulation settings
type Config struct {
	Discipline  policy.Discipline
	Memory      policy.MemoryStrategy
	MemoryLimit int
	Quantum     int
}

// Validate checks settings before any simulation state is created
func (c *Config) Validate() error {
	if _, err := policy.ParseDiscipline(string(c.Discipline)); err != nil {
		return err
	}
	if _, err := policy.ParseMemoryStrategy(string(c.Memory)); err != nil {
		return err
	}
	if c.Quantum <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidQuantum, c.Quantum)
	}
	if c.Memory.IsFinite() && c.MemoryLimit < 0 {
		return fmt.Errorf("scheduler: invalid memory limit: %d", c.MemoryLimit)
	}
	return nil
}

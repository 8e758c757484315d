package procman

import (
	"fmt"

	"github.com/viant/procman/internal/logging"
	"github.com/viant/procman/policy"
	"github.com/viant/procman/service/scheduler"
)

// Worker kinds
const (
	WorkerLocal  = "local"
	WorkerMemory = "memory"
)

// Config is a serialisable representation of the simulator configuration.
// It can be populated from YAML, JSON, flags or environment variables.
type Config struct {
	Scheduler   string        `json:"scheduler" yaml:"scheduler" mapstructure:"scheduler"`
	Memory      string        `json:"memory" yaml:"memory" mapstructure:"memory"`
	MemoryLimit int           `json:"memoryLimit" yaml:"memoryLimit" mapstructure:"memoryLimit"`
	Quantum     int           `json:"quantum" yaml:"quantum" mapstructure:"quantum"`
	Worker      WorkerConfig  `json:"worker" yaml:"worker" mapstructure:"worker"`
	Log         LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
	Tracing     TracingConfig `json:"tracing" yaml:"tracing" mapstructure:"tracing"`
	Report      ReportConfig  `json:"report" yaml:"report" mapstructure:"report"`
}

// WorkerConfig selects how worker processes are spawned
type WorkerConfig struct {
	Kind  string `json:"kind" yaml:"kind" mapstructure:"kind"`
	Path  string `json:"path" yaml:"path" mapstructure:"path"`
	Probe bool   `json:"probe" yaml:"probe" mapstructure:"probe"`
}

type LogConfig struct {
	Level string `json:"level" yaml:"level" mapstructure:"level"`
}

type TracingConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	File    string `json:"file" yaml:"file" mapstructure:"file"`
}

// ReportConfig sets where JSON run reports are stored; empty URL disables them
type ReportConfig struct {
	URL string `json:"url" yaml:"url" mapstructure:"url"`
}

// DefaultConfig returns a Config populated with default values
func DefaultConfig() *Config {
	return &Config{
		Scheduler:   string(policy.DisciplineSJF),
		Memory:      string(policy.MemoryInfinite),
		MemoryLimit: scheduler.DefaultMemoryLimit,
		Quantum:     1,
		Worker: WorkerConfig{
			Kind: WorkerLocal,
			Path: "./process",
		},
		Log: LogConfig{Level: logging.DefaultLevel},
	}
}

// Validate returns an error describing the first invalid setting or nil
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config was nil")
	}
	if _, err := c.SchedulerConfig(); err != nil {
		return err
	}
	switch c.Worker.Kind {
	case WorkerLocal:
		if c.Worker.Path == "" {
			return fmt.Errorf("worker.path was empty")
		}
	case WorkerMemory:
	default:
		return fmt.Errorf("unsupported worker.kind: %q", c.Worker.Kind)
	}
	return nil
}

// SchedulerConfig converts settings into the simulation loop config
func (c *Config) SchedulerConfig() (scheduler.Config, error) {
	discipline, err := policy.ParseDiscipline(c.Scheduler)
	if err != nil {
		return scheduler.Config{}, err
	}
	strategy, err := policy.ParseMemoryStrategy(c.Memory)
	if err != nil {
		return scheduler.Config{}, err
	}
	ret := scheduler.Config{Discipline: discipline, Memory: strategy, MemoryLimit: c.MemoryLimit, Quantum: c.Quantum}
	if err = ret.Validate(); err != nil {
		return scheduler.Config{}, err
	}
	return ret, nil
}

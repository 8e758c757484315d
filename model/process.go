package model

import (
	"errors"
	"fmt"
)

// MaxNameLength is the longest process name accepted by the worker contract.
const MaxNameLength = 8

// Validation errors
var (
	ErrInvalidName    = errors.New("model: invalid process name")
	ErrInvalidArrival = errors.New("model: invalid arrival time")
	ErrInvalidService = errors.New("model: invalid service time")
	ErrInvalidMemory  = errors.New("model: invalid memory requirement")
)

// Process represents a single workload item
type Process struct {
	Name    string `json:"name" yaml:"name"`
	Arrival int    `json:"arrival" yaml:"arrival"`
	Service int    `json:"service" yaml:"service"`
	Memory  int    `json:"memory" yaml:"memory"`
}

// NewProcess creates a process definition
func NewProcess(name string, arrival, service, memory int) *Process {
	return &Process{Name: name, Arrival: arrival, Service: service, Memory: memory}
}

// Validate checks the process definition, service time has to be positive
// since overhead is computed as turnaround / service.
func (p *Process) Validate() error {
	if len(p.Name) == 0 || len(p.Name) > MaxNameLength {
		return fmt.Errorf("%w: %q", ErrInvalidName, p.Name)
	}
	for i := 0; i < len(p.Name); i++ {
		if c := p.Name[i]; c <= ' ' || c > '~' {
			return fmt.Errorf("%w: %q", ErrInvalidName, p.Name)
		}
	}
	if p.Arrival < 0 {
		return fmt.Errorf("%w: %v: %d", ErrInvalidArrival, p.Name, p.Arrival)
	}
	if p.Service <= 0 {
		return fmt.Errorf("%w: %v: %d", ErrInvalidService, p.Name, p.Service)
	}
	if p.Memory < 0 {
		return fmt.Errorf("%w: %v: %d", ErrInvalidMemory, p.Name, p.Memory)
	}
	return nil
}

func (p *Process) String() string {
	return fmt.Sprintf("%s{arrival: %d, service: %d, memory: %d}", p.Name, p.Arrival, p.Service, p.Memory)
}

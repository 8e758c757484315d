package control

import (
	"context"
	"fmt"
)

// Signal represents a lifecycle signal delivered to a worker
type Signal int

const (
	SignalStop Signal = iota + 1
	SignalContinue
	SignalTerminate
)

func (s Signal) String() string {
	switch s {
	case SignalStop:
		return "stop"
	case SignalContinue:
		return "continue"
	case SignalTerminate:
		return "terminate"
	}
	return fmt.Sprintf("signal(%d)", int(s))
}

// Status is the worker state reported by a blocking wait
type Status int

const (
	StatusUnknown Status = iota
	StatusStopped
	StatusExited
)

func (s Status) String() string {
	switch s {
	case StatusStopped:
		return "stopped"
	case StatusExited:
		return "exited"
	}
	return "unknown"
}

// Handle is the capability to control one spawned worker.  It owns the
// worker's pipes and process id.
type Handle interface {
	// PID returns worker process id
	PID() int

	// SendTime writes a time message to the worker
	SendTime(t int32) error

	// ReadAck reads a single acknowledgement byte
	ReadAck() (byte, error)

	// Signal delivers a lifecycle signal
	Signal(sig Signal) error

	// Wait blocks until the worker stops or exits
	Wait() (Status, error)

	// ReadDigest reads the DigestSize bytes left by a terminated worker
	ReadDigest() (string, error)

	// Close releases pipes and process resources
	Close() error
}

// Spawner starts workers
type Spawner interface {
	// Spawn starts a worker for the named process
	Spawn(ctx context.Context, name string) (Handle, error)
}

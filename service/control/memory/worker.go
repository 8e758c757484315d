// Package memory provides an in-process worker honouring the control
// protocol, so the simulator can run without an external worker binary.
package memory

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"

	"github.com/viant/procman/service/control"
)

var (
	// ErrWouldBlock is returned where a real worker pipe or wait would block forever
	ErrWouldBlock = errors.New("memory: operation would block")
	// ErrExited is returned when writing to or signalling an exited worker
	ErrExited = errors.New("memory: worker exited")
)

// State is an in-process worker state
type State string

const (
	StateRunning State = "running"
	StateStopped State = "stopped"
	StateExited  State = "exited"
)

// Worker emulates a worker process: it echoes the low byte of every time
// message it consumes, stops and continues on signals and leaves a digest of
// its name and the times it received on termination.
type Worker struct {
	name     string
	pid      int
	state    State
	pending  []byte
	out      []byte
	received []int32
	reported bool
	mux      sync.Mutex
}

// Name returns process name the worker was spawned for
func (w *Worker) Name() string { return w.name }

// PID returns emulated process id
func (w *Worker) PID() int { return w.pid }

// State returns current worker state
func (w *Worker) State() State {
	w.mux.Lock()
	defer w.mux.Unlock()
	return w.state
}

// Received returns the time messages consumed so far
func (w *Worker) Received() []int32 {
	w.mux.Lock()
	defer w.mux.Unlock()
	return append([]int32(nil), w.received...)
}

// SendTime queues a time message; a running worker consumes it immediately
func (w *Worker) SendTime(t int32) error {
	w.mux.Lock()
	defer w.mux.Unlock()
	if w.state == StateExited {
		return fmt.Errorf("%w: %v", ErrExited, w.name)
	}
	message := control.Encode(t)
	w.pending = append(w.pending, message[:]...)
	w.consume()
	return nil
}

// ReadAck reads one byte the worker produced
func (w *Worker) ReadAck() (byte, error) {
	w.mux.Lock()
	defer w.mux.Unlock()
	if len(w.out) == 0 {
		return 0, fmt.Errorf("%w: no acknowledgement from %v", ErrWouldBlock, w.name)
	}
	ret := w.out[0]
	w.out = w.out[1:]
	return ret, nil
}

// Signal applies a lifecycle signal
func (w *Worker) Signal(sig control.Signal) error {
	w.mux.Lock()
	defer w.mux.Unlock()
	if w.state == StateExited {
		return fmt.Errorf("%w: %v", ErrExited, w.name)
	}
	switch sig {
	case control.SignalStop:
		w.state = StateStopped
	case control.SignalContinue:
		w.state = StateRunning
		w.consume()
	case control.SignalTerminate:
		w.state = StateExited
		w.out = append(w.out, w.digest()...)
	default:
		return fmt.Errorf("memory: unsupported signal %v", sig)
	}
	return nil
}

// Wait reports a stop or exit that has not been reported yet
func (w *Worker) Wait() (control.Status, error) {
	w.mux.Lock()
	defer w.mux.Unlock()
	switch w.state {
	case StateStopped:
		return control.StatusStopped, nil
	case StateExited:
		if w.reported {
			return control.StatusUnknown, fmt.Errorf("memory: %v already reaped", w.name)
		}
		w.reported = true
		return control.StatusExited, nil
	}
	return control.StatusUnknown, fmt.Errorf("%w: %v is running", ErrWouldBlock, w.name)
}

// ReadDigest reads the digest left by a terminated worker
func (w *Worker) ReadDigest() (string, error) {
	w.mux.Lock()
	defer w.mux.Unlock()
	if len(w.out) < control.DigestSize {
		return "", fmt.Errorf("%w: digest of %v not available", ErrWouldBlock, w.name)
	}
	ret := string(w.out[:control.DigestSize])
	w.out = w.out[control.DigestSize:]
	return ret, nil
}

// Close releases the worker
func (w *Worker) Close() error {
	return nil
}

func (w *Worker) consume() {
	if w.state != StateRunning {
		return
	}
	for len(w.pending) >= control.MessageSize {
		var message [control.MessageSize]byte
		copy(message[:], w.pending[:control.MessageSize])
		w.pending = w.pending[control.MessageSize:]
		t := control.Decode(message)
		w.received = append(w.received, t)
		w.out = append(w.out, control.AckByte(t))
	}
}

func (w *Worker) digest() []byte {
	hash := sha256.New()
	hash.Write([]byte(w.name))
	for _, t := range w.received {
		message := control.Encode(t)
		hash.Write(message[:])
	}
	return []byte(hex.EncodeToString(hash.Sum(nil)))
}

// Spawner creates in-process workers
type Spawner struct {
	nextPID int
	workers map[string]*Worker
	mux     sync.Mutex
}

// Spawn starts a new in-process worker
func (s *Spawner) Spawn(ctx context.Context, name string) (control.Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	s.nextPID++
	worker := &Worker{name: name, pid: s.nextPID, state: StateRunning}
	s.workers[name] = worker
	return worker, nil
}

// Worker returns the last worker spawned for a name
func (s *Spawner) Worker(name string) (*Worker, bool) {
	s.mux.Lock()
	defer s.mux.Unlock()
	ret, ok := s.workers[name]
	return ret, ok
}

// New creates a spawner; emulated pids start after firstPID
func New(firstPID int) *Spawner {
	return &Spawner{nextPID: firstPID, workers: map[string]*Worker{}}
}

package control

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/viant/procman/tracing"
)

var (
	// ErrAckMismatch is returned when a worker acknowledges a different time
	ErrAckMismatch = errors.New("control: acknowledgement mismatch")
	// ErrUnexpectedStatus is returned when a wait reports an unexpected worker state
	ErrUnexpectedStatus = errors.New("control: unexpected worker status")
	// ErrNilHandle is returned when an operation targets a worker that was never started
	ErrNilHandle = errors.New("control: nil handle")
)

// Service runs the control protocol over worker handles
type Service struct {
	spawner Spawner
}

// New creates a protocol service using the supplied spawner
func New(spawner Spawner) *Service {
	return &Service{spawner: spawner}
}

// Start spawns a worker and delivers its first time message
func (s *Service) Start(ctx context.Context, name string, t int32) (handle Handle, err error) {
	_, span := tracing.StartSpan(ctx, "control.start", "CLIENT")
	span.WithAttributes(map[string]string{"process": name, "time": strconv.Itoa(int(t))})
	defer func() { tracing.EndSpan(span, err) }()

	if handle, err = s.spawner.Spawn(ctx, name); err != nil {
		return nil, fmt.Errorf("failed to spawn %v: %w", name, err)
	}
	if err = send(handle, t); err != nil {
		return nil, err
	}
	if err = acknowledge(handle, t); err != nil {
		return nil, err
	}
	return handle, nil
}

// Resume sends the current time and continues the worker.  The same exchange
// keeps an already running worker in step with simulated time.
func (s *Service) Resume(ctx context.Context, handle Handle, t int32) (err error) {
	_, span := tracing.StartSpan(ctx, "control.resume", "CLIENT")
	span.WithAttributes(map[string]string{"pid": pidOf(handle), "time": strconv.Itoa(int(t))})
	defer func() { tracing.EndSpan(span, err) }()

	if err = send(handle, t); err != nil {
		return err
	}
	if err = signal(handle, SignalContinue); err != nil {
		return err
	}
	return acknowledge(handle, t)
}

// Suspend sends the current time, stops the worker and blocks until the OS
// reports it stopped.
func (s *Service) Suspend(ctx context.Context, handle Handle, t int32) (err error) {
	_, span := tracing.StartSpan(ctx, "control.suspend", "CLIENT")
	span.WithAttributes(map[string]string{"pid": pidOf(handle), "time": strconv.Itoa(int(t))})
	defer func() { tracing.EndSpan(span, err) }()

	if err = send(handle, t); err != nil {
		return err
	}
	if err = acknowledge(handle, t); err != nil {
		return err
	}
	if err = signal(handle, SignalStop); err != nil {
		return err
	}
	return await(handle, StatusStopped)
}

// Terminate sends the current time, terminates the worker, blocks until it
// exited and returns the digest it left behind.  The handle is closed.
func (s *Service) Terminate(ctx context.Context, handle Handle, t int32) (digest string, err error) {
	_, span := tracing.StartSpan(ctx, "control.terminate", "CLIENT")
	span.WithAttributes(map[string]string{"pid": pidOf(handle), "time": strconv.Itoa(int(t))})
	defer func() { tracing.EndSpan(span, err) }()

	if err = send(handle, t); err != nil {
		return "", err
	}
	if err = acknowledge(handle, t); err != nil {
		return "", err
	}
	if err = signal(handle, SignalTerminate); err != nil {
		return "", err
	}
	if err = await(handle, StatusExited); err != nil {
		return "", err
	}
	if digest, err = handle.ReadDigest(); err != nil {
		return "", fmt.Errorf("failed to read digest from %v: %w", handle.PID(), err)
	}
	if err = handle.Close(); err != nil {
		return digest, fmt.Errorf("failed to release worker %v: %w", handle.PID(), err)
	}
	return digest, nil
}

func send(handle Handle, t int32) error {
	if handle == nil {
		return ErrNilHandle
	}
	if err := handle.SendTime(t); err != nil {
		return fmt.Errorf("failed to send time %v to %v: %w", t, handle.PID(), err)
	}
	return nil
}

func acknowledge(handle Handle, t int32) error {
	ack, err := handle.ReadAck()
	if err != nil {
		return fmt.Errorf("failed to read acknowledgement from %v: %w", handle.PID(), err)
	}
	if expected := AckByte(t); ack != expected {
		return fmt.Errorf("%w: worker %v sent %#02x for time %v, expected %#02x", ErrAckMismatch, handle.PID(), ack, t, expected)
	}
	return nil
}

func signal(handle Handle, sig Signal) error {
	if err := handle.Signal(sig); err != nil {
		return fmt.Errorf("failed to deliver %v to %v: %w", sig, handle.PID(), err)
	}
	return nil
}

func await(handle Handle, expected Status) error {
	status, err := handle.Wait()
	if err != nil {
		return fmt.Errorf("failed to wait for %v: %w", handle.PID(), err)
	}
	if status != expected {
		return fmt.Errorf("%w: worker %v is %v, expected %v", ErrUnexpectedStatus, handle.PID(), status, expected)
	}
	return nil
}

func pidOf(handle Handle) string {
	if handle == nil {
		return "0"
	}
	return strconv.Itoa(handle.PID())
}

package local

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"

	"github.com/viant/procman/service/control"
)

type handle struct {
	pid     int
	process *os.Process
	to      *os.File
	from    *os.File
	reaped  bool
}

func (h *handle) PID() int {
	return h.pid
}

func (h *handle) SendTime(t int32) error {
	message := control.Encode(t)
	_, err := h.to.Write(message[:])
	return err
}

func (h *handle) ReadAck() (byte, error) {
	var ack [1]byte
	if _, err := io.ReadFull(h.from, ack[:]); err != nil {
		return 0, err
	}
	return ack[0], nil
}

func (h *handle) Signal(sig control.Signal) error {
	var number unix.Signal
	switch sig {
	case control.SignalStop:
		number = unix.SIGTSTP
	case control.SignalContinue:
		number = unix.SIGCONT
	case control.SignalTerminate:
		number = unix.SIGTERM
	default:
		return fmt.Errorf("unsupported signal: %v", sig)
	}
	return unix.Kill(h.pid, number)
}

func (h *handle) Wait() (control.Status, error) {
	var status unix.WaitStatus
	for {
		_, err := unix.Wait4(h.pid, &status, unix.WUNTRACED, nil)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return control.StatusUnknown, err
		}
		switch {
		case status.Stopped():
			return control.StatusStopped, nil
		case status.Exited(), status.Signaled():
			h.reaped = true
			return control.StatusExited, nil
		}
	}
}

func (h *handle) ReadDigest() (string, error) {
	digest := make([]byte, control.DigestSize)
	if _, err := io.ReadFull(h.from, digest); err != nil {
		return "", err
	}
	return string(digest), nil
}

func (h *handle) Close() error {
	err := h.to.Close()
	if e := h.from.Close(); err == nil {
		err = e
	}
	if h.reaped {
		// already collected by Wait4, the os.Process only holds a descriptor now
		if e := h.process.Release(); err == nil {
			err = e
		}
	}
	return err
}

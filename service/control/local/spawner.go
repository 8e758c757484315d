package local

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/viant/procman/service/control"
)

// Spawner starts worker binaries
type Spawner struct {
	path   string
	probe  bool
	probed bool
	mux    sync.Mutex
}

// Spawn starts "<path> <name>" with stdin and stdout connected to fresh pipes
func (s *Spawner) Spawn(ctx context.Context, name string) (control.Handle, error) {
	if err := s.preflight(ctx); err != nil {
		return nil, err
	}
	toChild, toWorker, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create input pipe: %w", err)
	}
	fromWorker, fromChild, err := os.Pipe()
	if err != nil {
		_ = toChild.Close()
		_ = toWorker.Close()
		return nil, fmt.Errorf("failed to create output pipe: %w", err)
	}
	process, err := os.StartProcess(s.path, []string{s.path, name}, &os.ProcAttr{
		Files: []*os.File{toChild, fromChild, os.Stderr},
	})
	// the child owns its ends from now on
	_ = toChild.Close()
	_ = fromChild.Close()
	if err != nil {
		_ = toWorker.Close()
		_ = fromWorker.Close()
		return nil, err
	}
	return &handle{pid: process.Pid, process: process, to: toWorker, from: fromWorker}, nil
}

func (s *Spawner) preflight(ctx context.Context) error {
	if !s.probe {
		return nil
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.probed {
		return nil
	}
	if err := Probe(ctx, s.path); err != nil {
		return err
	}
	s.probed = true
	return nil
}

// New creates a spawner for the worker binary at path
func New(path string, options ...Option) *Spawner {
	ret := &Spawner{path: path}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

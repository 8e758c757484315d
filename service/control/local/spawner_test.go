package local

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/procman/service/control"
)

func TestSpawner_Lifecycle(t *testing.T) {
	if runtime.GOOS != "linux" && runtime.GOOS != "darwin" {
		t.Skip("unix only")
	}
	sleep, err := os.Stat("/bin/sleep")
	if err != nil || sleep.IsDir() {
		t.Skip("/bin/sleep not available")
	}

	spawner := New("/bin/sleep")
	handle, err := spawner.Spawn(context.Background(), "30")
	require.NoError(t, err)
	assert.True(t, handle.PID() > 0)

	require.NoError(t, handle.Signal(control.SignalStop))
	status, err := handle.Wait()
	require.NoError(t, err)
	assert.Equal(t, control.StatusStopped, status)

	require.NoError(t, handle.Signal(control.SignalContinue))
	require.NoError(t, handle.Signal(control.SignalTerminate))
	status, err = handle.Wait()
	require.NoError(t, err)
	assert.Equal(t, control.StatusExited, status)
	assert.NoError(t, handle.Close())
}

func TestSpawner_Missing(t *testing.T) {
	spawner := New(filepath.Join(t.TempDir(), "missing"))
	_, err := spawner.Spawn(context.Background(), "P1")
	assert.Error(t, err)
}

func TestProbe(t *testing.T) {
	if runtime.GOOS != "linux" && runtime.GOOS != "darwin" {
		t.Skip("unix only")
	}
	dir := t.TempDir()
	executable := filepath.Join(dir, "worker")
	require.NoError(t, os.WriteFile(executable, []byte("#!/bin/sh\n"), 0o755))
	plain := filepath.Join(dir, "plain")
	require.NoError(t, os.WriteFile(plain, []byte("data"), 0o644))

	var testCases = []struct {
		description string
		path        string
		expectErr   bool
	}{
		{description: "executable file", path: executable},
		{description: "not executable", path: plain, expectErr: true},
		{description: "missing file", path: filepath.Join(dir, "missing"), expectErr: true},
		{description: "directory", path: dir, expectErr: true},
	}

	for _, testCase := range testCases {
		err := Probe(context.Background(), testCase.path)
		if testCase.expectErr {
			assert.ErrorIs(t, err, ErrNotExecutable, testCase.description)
			continue
		}
		assert.NoError(t, err, testCase.description)
	}
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `'./process'`, quote("./process"))
	assert.Equal(t, `'it'\''s'`, quote("it's"))
}

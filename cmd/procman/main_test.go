package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	workload := filepath.Join(dir, "sjf.txt")
	require.NoError(t, os.WriteFile(workload, []byte("0 P1 5 0\n0 P2 3 0\n"), 0o644))
	configFile := filepath.Join(dir, "procman.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("scheduler: RR\nworker:\n  kind: memory\n"), 0o644))

	var testCases = []struct {
		description string
		args        []string
		expectCode  int
		expectTail  []string
	}{
		{
			description: "shortest job first",
			args:        []string{"-f", workload, "-s", "SJF", "-m", "infinite", "-q", "1", "--worker", "memory"},
			expectTail:  []string{"Turnaround time 6", "Time overhead 1.60 1.30", "Makespan 8"},
		},
		{
			description: "config file with flag override",
			args:        []string{"-f", workload, "-c", configFile, "-q", "2"},
			expectTail:  []string{"Makespan 10"},
		},
		{
			description: "missing workload flag",
			args:        []string{"-s", "SJF", "--worker", "memory"},
			expectCode:  2,
		},
		{
			description: "invalid scheduler",
			args:        []string{"-f", workload, "-s", "LIFO", "--worker", "memory"},
			expectCode:  2,
		},
		{
			description: "missing workload file",
			args:        []string{"-f", filepath.Join(dir, "missing.txt"), "--worker", "memory"},
			expectCode:  1,
		},
	}

	for _, testCase := range testCases {
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		code := run(context.Background(), testCase.args, stdout, stderr)
		assert.Equal(t, testCase.expectCode, code, testCase.description+": "+stderr.String())
		if len(testCase.expectTail) == 0 {
			continue
		}
		lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
		require.GreaterOrEqual(t, len(lines), len(testCase.expectTail), testCase.description)
		assert.Equal(t, testCase.expectTail, lines[len(lines)-len(testCase.expectTail):], testCase.description)
	}
}

func TestRunReport(t *testing.T) {
	dir := t.TempDir()
	workload := filepath.Join(dir, "sjf.txt")
	require.NoError(t, os.WriteFile(workload, []byte("0 P1 5 0\n0 P2 3 0\n"), 0o644))
	reports := filepath.Join(dir, "reports")

	code := run(context.Background(), []string{"-f", workload, "--worker", "memory", "--report", reports}, &bytes.Buffer{}, &bytes.Buffer{})
	require.Equal(t, 0, code)

	entries, err := os.ReadDir(reports)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasSuffix(entries[0].Name(), ".json"))
	data, err := os.ReadFile(filepath.Join(reports, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"makespan": 8`)
}

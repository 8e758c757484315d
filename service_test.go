package procman_test

import (
	"bytes"
	"context"
	"embed"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	_ "github.com/viant/afs/embed"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/viant/procman"
	"github.com/viant/procman/policy"
	"github.com/viant/procman/progress"
	"github.com/viant/procman/service/report/memory"
	"github.com/viant/procman/service/scheduler"
)

//go:embed testdata/*
var embedFS embed.FS

var digestExpr = regexp.MustCompile(`sha=[0-9a-f]{64}$`)

func TestService_Run(t *testing.T) {
	var testCases = []struct {
		description string
		URL         string
		scheduler   string
		memory      string
		expect      []string
		stats       *scheduler.Stats
	}{
		{
			description: "shortest job first",
			URL:         "embed:///testdata/sjf.txt",
			scheduler:   "SJF",
			memory:      "infinite",
			expect: []string{
				"0,RUNNING,process_name=P2,remaining_time=3",
				"3,FINISHED,process_name=P2,proc_remaining=1",
				"3,FINISHED-PROCESS,process_name=P2,sha=",
				"3,RUNNING,process_name=P1,remaining_time=5",
				"8,FINISHED,process_name=P1,proc_remaining=0",
				"8,FINISHED-PROCESS,process_name=P1,sha=",
				"Turnaround time 6",
				"Time overhead 1.60 1.30",
				"Makespan 8",
			},
			stats: &scheduler.Stats{Finished: 2, Turnaround: 6, OverheadMax: 1.6, OverheadAvg: 1.3, Makespan: 8},
		},
		{
			description: "round robin with best fit",
			URL:         "embed:///testdata/rr.yaml",
			scheduler:   "rr",
			memory:      "best-fit",
			expect: []string{
				"0,READY,process_name=A,assigned_at=0",
				"0,READY,process_name=B,assigned_at=100",
				"0,READY,process_name=C,assigned_at=300",
				"0,RUNNING,process_name=A,remaining_time=2",
				"1,RUNNING,process_name=B,remaining_time=2",
				"2,RUNNING,process_name=C,remaining_time=2",
				"3,RUNNING,process_name=A,remaining_time=1",
				"4,FINISHED,process_name=A,proc_remaining=2",
				"4,FINISHED-PROCESS,process_name=A,sha=",
				"4,RUNNING,process_name=B,remaining_time=1",
				"5,FINISHED,process_name=B,proc_remaining=1",
				"5,FINISHED-PROCESS,process_name=B,sha=",
				"5,RUNNING,process_name=C,remaining_time=1",
				"6,FINISHED,process_name=C,proc_remaining=0",
				"6,FINISHED-PROCESS,process_name=C,sha=",
				"Turnaround time 5",
				"Time overhead 3.00 2.50",
				"Makespan 6",
			},
			stats: &scheduler.Stats{Finished: 3, Turnaround: 5, OverheadMax: 3, OverheadAvg: 2.5, Makespan: 6},
		},
	}

	for _, testCase := range testCases {
		config := procman.DefaultConfig()
		config.Scheduler = testCase.scheduler
		config.Memory = testCase.memory
		config.Worker.Kind = procman.WorkerMemory
		output := &bytes.Buffer{}
		var counters []progress.Counters
		srv, err := procman.New(config,
			procman.WithFs(afs.New(), &embedFS),
			procman.WithOutput(output),
			procman.WithProgress(func(c progress.Counters) { counters = append(counters, c) }),
		)
		require.NoError(t, err, testCase.description)
		stats, err := srv.Run(context.Background(), testCase.URL)
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.stats, stats, testCase.description)

		lines := strings.Split(strings.TrimSpace(output.String()), "\n")
		for i, line := range lines {
			if strings.Contains(line, "FINISHED-PROCESS") {
				assert.Regexp(t, digestExpr, line, testCase.description)
				lines[i] = digestExpr.ReplaceAllString(line, "sha=")
			}
		}
		assert.Equal(t, testCase.expect, lines, testCase.description)
		require.NotEmpty(t, counters, testCase.description)
		assert.Equal(t, stats.Finished, counters[len(counters)-1].Finished, testCase.description)
	}
}

func TestService_RunReport(t *testing.T) {
	config := procman.DefaultConfig()
	config.Worker.Kind = procman.WorkerMemory
	store := memory.New()
	srv, err := procman.New(config,
		procman.WithFs(afs.New(), &embedFS),
		procman.WithOutput(&bytes.Buffer{}),
		procman.WithReportStore(store),
	)
	require.NoError(t, err)
	stats, err := srv.Run(context.Background(), "embed:///testdata/sjf.txt")
	require.NoError(t, err)

	reports, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 1)
	actual := reports[0]
	assert.NotEmpty(t, actual.RunID)
	assert.Equal(t, "embed:///testdata/sjf.txt", actual.Workload)
	assert.Equal(t, "SJF", actual.Discipline)
	assert.Equal(t, stats, actual.Stats)
	require.Len(t, actual.Processes, 2)
	assert.Equal(t, "P2", actual.Processes[0].Name)
	assert.Equal(t, 3, actual.Processes[0].Finished)
	assert.Len(t, actual.Processes[1].Digest, 64)

	config.Report.URL = "mem://localhost/procman/reports"
	srv, err = procman.New(config, procman.WithFs(afs.New(), &embedFS), procman.WithOutput(&bytes.Buffer{}))
	require.NoError(t, err)
	require.NotNil(t, srv.Reports())
}

func TestService_RunTracing(t *testing.T) {
	config := procman.DefaultConfig()
	config.Worker.Kind = procman.WorkerMemory

	_, err := procman.New(config, procman.WithTracing("procman", procman.Version, filepath.Join(t.TempDir(), "missing", "spans.json")))
	assert.Error(t, err)

	exporter := tracetest.NewInMemoryExporter()
	srv, err := procman.New(config,
		procman.WithFs(afs.New(), &embedFS),
		procman.WithOutput(&bytes.Buffer{}),
		procman.WithTracingExporter("procman", procman.Version, exporter),
	)
	require.NoError(t, err)
	_, err = srv.Run(context.Background(), "embed:///testdata/sjf.txt")
	require.NoError(t, err)

	names := map[string]int{}
	for _, span := range exporter.GetSpans() {
		names[span.Name]++
	}
	assert.Equal(t, 1, names["procman.run"])
	assert.Equal(t, 1, names["scheduler.run"])
	assert.Equal(t, 2, names["control.start"])
	assert.Equal(t, 2, names["control.terminate"])
	assert.Equal(t, 9, names["scheduler.step"])
}

func TestService_RunCancelled(t *testing.T) {
	config := procman.DefaultConfig()
	config.Memory = "best-fit"
	config.Worker.Kind = procman.WorkerMemory
	srv, err := procman.New(config, procman.WithFs(afs.New(), &embedFS), procman.WithOutput(&bytes.Buffer{}))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = srv.Run(ctx, "embed:///testdata/starve.txt")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNew(t *testing.T) {
	var testCases = []struct {
		description string
		mutate      func(c *procman.Config)
		expectErr   error
		shouldError bool
	}{
		{description: "defaults", mutate: func(c *procman.Config) {}},
		{description: "invalid scheduler", mutate: func(c *procman.Config) { c.Scheduler = "FCFS" }, expectErr: policy.ErrInvalidDiscipline},
		{description: "invalid memory", mutate: func(c *procman.Config) { c.Memory = "worst-fit" }, expectErr: policy.ErrInvalidMemoryStrategy},
		{description: "invalid quantum", mutate: func(c *procman.Config) { c.Quantum = 0 }, expectErr: scheduler.ErrInvalidQuantum},
		{description: "invalid worker", mutate: func(c *procman.Config) { c.Worker.Kind = "remote" }, shouldError: true},
		{description: "invalid log level", mutate: func(c *procman.Config) { c.Log.Level = "verbose" }, shouldError: true},
	}
	for _, testCase := range testCases {
		config := procman.DefaultConfig()
		testCase.mutate(config)
		srv, err := procman.New(config)
		switch {
		case testCase.expectErr != nil:
			assert.ErrorIs(t, err, testCase.expectErr, testCase.description)
		case testCase.shouldError:
			assert.Error(t, err, testCase.description)
		default:
			require.NoError(t, err, testCase.description)
			assert.Equal(t, config, srv.Config(), testCase.description)
		}
	}
}

package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/procman/model"
	"github.com/viant/procman/policy"
	"github.com/viant/procman/runtime/execution"
	"github.com/viant/procman/service/report"
	"github.com/viant/procman/service/scheduler"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	store := New()

	finished := execution.NewProcess(model.NewProcess("P1", 1, 4, 10))
	finished.Finished = 7
	finished.Digest = "ff"
	config := scheduler.Config{Discipline: policy.DisciplineRR, Memory: policy.MemoryBestFit, Quantum: 2}
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	r := report.New("run-1", "rr.yaml", config, &scheduler.Stats{Finished: 1}, []*execution.Process{finished}, created)

	require.NoError(t, store.Save(ctx, r))
	loaded, err := store.Load(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "RR", loaded.Discipline)
	assert.Equal(t, "best-fit", loaded.Memory)
	require.Len(t, loaded.Processes, 1)
	assert.Equal(t, &report.Process{Name: "P1", Arrival: 1, Service: 4, Memory: 10, Finished: 7, Turnaround: 6, Overhead: 1.5, Digest: "ff"}, loaded.Processes[0])

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	assert.ErrorIs(t, store.Save(ctx, nil), report.ErrNilEntity)
	_, err = store.Load(ctx, "")
	assert.ErrorIs(t, err, report.ErrInvalidID)
	require.NoError(t, store.Delete(ctx, "run-1"))
	_, err = store.Load(ctx, "run-1")
	assert.ErrorIs(t, err, report.ErrNotFound)
}

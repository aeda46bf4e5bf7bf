package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GardenKeeper_Go/internal/database/sqlitegen"
	"github.com/osse101/GardenKeeper_Go/internal/repository"
	"github.com/osse101/GardenKeeper_Go/internal/repository/repositorytest"
)

func TestSnapshotRepository(t *testing.T) {
	repositorytest.RunSnapshotSuite(t, func(t *testing.T) repository.SnapshotRepository {
		repo, err := Open(context.Background(), filepath.Join(t.TempDir(), "garden.db"))
		require.NoError(t, err)
		t.Cleanup(func() { repo.Close() })
		return repo
	})
}

func TestOpen_InMemoryAndIdempotentMigrations(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "garden.db")

	repo, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	// reopening applies no new migrations
	repo, err = Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	mem, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	defer mem.Close()
	require.NoError(t, mem.Ping(ctx))
}

func TestGeneratedQueries_RowsReadBackThroughRepository(t *testing.T) {
	ctx := context.Background()
	repo, err := Open(ctx, filepath.Join(t.TempDir(), "garden.db"))
	require.NoError(t, err)
	defer repo.Close()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	insert := func(cell int64, status int64, observed time.Time) {
		t.Helper()
		require.NoError(t, repo.q.InsertSnapshot(ctx, sqlitegen.InsertSnapshotParams{
			Player: "0xabc", PlotID: 7, CellIndex: cell, Packed: "5",
			Status: status, SeedType: 1, PlantedAt: "18446744073709551615", GrowDuration: 60,
			ObservedAt: observed.UnixNano(),
		}))
	}
	insert(2, 0, base)
	insert(2, 1, base.Add(time.Minute))
	insert(9, 1, base)

	latest, err := repo.LatestSnapshots(ctx, "0xabc", 7)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, 2, latest[0].CellIndex)
	assert.Equal(t, uint8(1), latest[0].Status, "newest observation of the cell wins")
	assert.Equal(t, base.Add(time.Minute), latest[0].ObservedAt)
	assert.Equal(t, uint64(18446744073709551615), latest[0].PlantedAt)
	assert.Equal(t, 9, latest[1].CellIndex)

	history, err := repo.History(ctx, "0xabc", 7, 2, 1)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, uint8(1), history[0].Status)
}

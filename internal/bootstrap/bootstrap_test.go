package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GardenKeeper_Go/internal/config"
	"github.com/osse101/GardenKeeper_Go/internal/database"
	"github.com/osse101/GardenKeeper_Go/internal/database/memory"
	"github.com/osse101/GardenKeeper_Go/internal/database/sqlite"
)

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		store, err := OpenStore(ctx, &config.Config{StoreDriver: config.StoreDriverMemory})
		require.NoError(t, err)
		assert.IsType(t, &memory.SnapshotRepository{}, store)
		assert.NoError(t, store.Ping(ctx))
	})

	t.Run("sqlite migrates on open", func(t *testing.T) {
		store, err := OpenStore(ctx, &config.Config{
			StoreDriver:  config.StoreDriverSQLite,
			SQLitePath:   database.SQLiteInMemory,
			MigrateOnRun: true,
		})
		require.NoError(t, err)
		defer store.Close()
		assert.IsType(t, &sqlite.SnapshotRepository{}, store)

		latest, err := store.LatestSnapshots(ctx, "0xAbCdEf0123456789aBcDeF0123456789AbCdEf01", 0)
		require.NoError(t, err)
		assert.Empty(t, latest)
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := OpenStore(ctx, &config.Config{StoreDriver: "mongo"})
		assert.ErrorContains(t, err, ErrMsgUnsupportedDriver)
	})
}

func TestInitializeEventSystem(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deadletter.jsonl")

	events, err := InitializeEventSystem(&config.Config{EventDeadLetterPath: path})
	require.NoError(t, err)
	require.NotNil(t, events.Bus)
	require.NotNil(t, events.Publisher)

	_, err = os.Stat(path)
	assert.NoError(t, err, "dead-letter file is created up front")

	GracefulShutdown(context.Background(), ShutdownComponents{Events: events})
}

func TestCleanupLogs(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		"session_2026-01-01_00-00-00.log",
		"session_2026-01-02_00-00-00.log",
		"session_2026-01-03_00-00-00.log",
		"session_2026-01-04_00-00-00.log",
	}
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, LogFilePermission))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, LogFilePermission))

	cleanupLogs(dir, 2)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var left []string
	for _, e := range entries {
		left = append(left, e.Name())
	}
	assert.ElementsMatch(t, []string{names[2], names[3], "notes.txt"}, left)
}

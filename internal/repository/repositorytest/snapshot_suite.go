// Package repositorytest holds behaviour suites shared by every repository
// implementation.
package repositorytest

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GardenKeeper_Go/internal/domain"
	"github.com/osse101/GardenKeeper_Go/internal/plotcodec"
	"github.com/osse101/GardenKeeper_Go/internal/repository"
)

const (
	PlayerA = "0xAbCdEf0123456789aBcDeF0123456789AbCdEf01"
	PlayerB = "0x00000000000000000000000000000000000000b0"
)

// Snapshot builds a snapshot whose packed value matches its fields
func Snapshot(t *testing.T, player string, plotID uint16, cell int, state plotcodec.CellState, at time.Time) domain.PlotSnapshot {
	t.Helper()
	packed, err := plotcodec.Encode(state)
	require.NoError(t, err)
	return domain.PlotSnapshot{
		Player:       player,
		PlotID:       plotID,
		CellIndex:    cell,
		Packed:       packed.Dec(),
		Status:       state.Status,
		SeedType:     state.SeedType,
		PlantedAt:    state.PlantedAt,
		GrowDuration: state.GrowDuration,
		ObservedAt:   at.UTC(),
	}
}

// RunSnapshotSuite exercises a SnapshotRepository. newRepo must return an empty store.
func RunSnapshotSuite(t *testing.T, newRepo func(t *testing.T) repository.SnapshotRepository) {
	ctx := context.Background()
	t0 := time.Unix(1_700_000_000, 0).UTC()
	carrot := plotcodec.CellState{Status: 1, SeedType: 1, PlantedAt: 1_699_999_990, GrowDuration: 60}
	mint := plotcodec.CellState{Status: 1, SeedType: 2, PlantedAt: 1_699_999_995, GrowDuration: 10}

	t.Run("ping", func(t *testing.T) {
		repo := newRepo(t)
		assert.NoError(t, repo.Ping(ctx))
	})

	t.Run("empty save is a no-op", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.SaveSnapshots(ctx, nil))

		latest, err := repo.LatestSnapshots(ctx, PlayerA, 0)
		require.NoError(t, err)
		assert.Empty(t, latest)
	})

	t.Run("latest keeps newest value per cell", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.SaveSnapshots(ctx, []domain.PlotSnapshot{
			Snapshot(t, PlayerA, 0, 3, carrot, t0),
			Snapshot(t, PlayerA, 0, 0, mint, t0),
		}))
		require.NoError(t, repo.SaveSnapshots(ctx, []domain.PlotSnapshot{
			{Player: PlayerA, PlotID: 0, CellIndex: 0, Packed: "0", ObservedAt: t0.Add(5 * time.Second)},
		}))

		latest, err := repo.LatestSnapshots(ctx, PlayerA, 0)
		require.NoError(t, err)
		require.Len(t, latest, 2)

		assert.Equal(t, 0, latest[0].CellIndex)
		assert.True(t, latest[0].Empty())
		assert.True(t, latest[0].ObservedAt.Equal(t0.Add(5*time.Second)))

		assert.Equal(t, 3, latest[1].CellIndex)
		assert.Equal(t, uint16(1), latest[1].SeedType)
		assert.Equal(t, uint32(60), latest[1].GrowDuration)
		assert.Equal(t, Snapshot(t, PlayerA, 0, 3, carrot, t0).Packed, latest[1].Packed)
	})

	t.Run("history is newest first and limited", func(t *testing.T) {
		repo := newRepo(t)
		for i := 0; i < 5; i++ {
			state := carrot
			state.PlantedAt += uint64(i)
			require.NoError(t, repo.SaveSnapshots(ctx, []domain.PlotSnapshot{
				Snapshot(t, PlayerA, 1, 7, state, t0.Add(time.Duration(i)*time.Second)),
			}))
		}

		history, err := repo.History(ctx, PlayerA, 1, 7, 3)
		require.NoError(t, err)
		require.Len(t, history, 3)
		assert.Equal(t, carrot.PlantedAt+4, history[0].PlantedAt)
		assert.Equal(t, carrot.PlantedAt+2, history[2].PlantedAt)

		all, err := repo.History(ctx, PlayerA, 1, 7, 0)
		require.NoError(t, err)
		assert.Len(t, all, 5)

		none, err := repo.History(ctx, PlayerA, 1, 8, 10)
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("full width values round trip", func(t *testing.T) {
		repo := newRepo(t)
		wide := plotcodec.CellState{Status: 3, SeedType: plotcodec.MaxSeedType, PlantedAt: math.MaxUint64, GrowDuration: math.MaxUint32}
		snap := Snapshot(t, PlayerA, math.MaxUint16, 11, wide, t0)
		require.NoError(t, repo.SaveSnapshots(ctx, []domain.PlotSnapshot{snap}))

		latest, err := repo.LatestSnapshots(ctx, PlayerA, math.MaxUint16)
		require.NoError(t, err)
		require.Len(t, latest, 1)
		got := latest[0]
		assert.Equal(t, snap.Packed, got.Packed)
		assert.Equal(t, uint64(math.MaxUint64), got.PlantedAt)
		assert.Equal(t, uint32(math.MaxUint32), got.GrowDuration)
		assert.Equal(t, uint16(plotcodec.MaxSeedType), got.SeedType)
		assert.Equal(t, uint8(3), got.Status)
	})

	t.Run("players and plots are isolated", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.SaveSnapshots(ctx, []domain.PlotSnapshot{
			Snapshot(t, PlayerA, 0, 0, carrot, t0),
			Snapshot(t, PlayerB, 0, 0, mint, t0),
			Snapshot(t, PlayerA, 1, 0, mint, t0),
		}))

		latest, err := repo.LatestSnapshots(ctx, PlayerB, 0)
		require.NoError(t, err)
		require.Len(t, latest, 1)
		assert.Equal(t, uint16(2), latest[0].SeedType)
		assert.Equal(t, PlayerB, latest[0].Player)

		latest, err = repo.LatestSnapshots(ctx, PlayerA, 2)
		require.NoError(t, err)
		assert.Empty(t, latest)
	})
}

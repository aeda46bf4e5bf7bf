// Package memory is an in-process snapshot store for tests and
// single-process deployments that do not need history across restarts.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/osse101/GardenKeeper_Go/internal/domain"
	"github.com/osse101/GardenKeeper_Go/internal/repository"
)

type cellKey struct {
	player string
	plotID uint16
	cell   int
}

// SnapshotRepository keeps every snapshot in memory
type SnapshotRepository struct {
	mu    sync.RWMutex
	cells map[cellKey][]domain.PlotSnapshot // oldest first
}

// NewSnapshotRepository creates an empty store
func NewSnapshotRepository() *SnapshotRepository {
	return &SnapshotRepository{cells: make(map[cellKey][]domain.PlotSnapshot)}
}

func keyOf(player string, plotID uint16, cell int) cellKey {
	return cellKey{player: strings.ToLower(player), plotID: plotID, cell: cell}
}

// SaveSnapshots implements repository.SnapshotRepository
func (r *SnapshotRepository) SaveSnapshots(ctx context.Context, snapshots []domain.PlotSnapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range snapshots {
		k := keyOf(s.Player, s.PlotID, s.CellIndex)
		r.cells[k] = append(r.cells[k], s)
	}
	return nil
}

// LatestSnapshots implements repository.SnapshotRepository
func (r *SnapshotRepository) LatestSnapshots(ctx context.Context, player string, plotID uint16) ([]domain.PlotSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []domain.PlotSnapshot{}
	for cell := 0; cell < domain.CellsPerPlot; cell++ {
		if history := r.cells[keyOf(player, plotID, cell)]; len(history) > 0 {
			out = append(out, newest(history))
		}
	}
	return out, nil
}

// History implements repository.SnapshotRepository
func (r *SnapshotRepository) History(ctx context.Context, player string, plotID uint16, cellIndex int, limit int) ([]domain.PlotSnapshot, error) {
	limit = repository.ClampHistoryLimit(limit)

	r.mu.RLock()
	history := append([]domain.PlotSnapshot(nil), r.cells[keyOf(player, plotID, cellIndex)]...)
	r.mu.RUnlock()

	// stable keeps insertion order for equal timestamps, then reverse
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].ObservedAt.Before(history[j].ObservedAt)
	})
	out := make([]domain.PlotSnapshot, 0, min(limit, len(history)))
	for i := len(history) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, history[i])
	}
	return out, nil
}

func newest(history []domain.PlotSnapshot) domain.PlotSnapshot {
	best := history[0]
	for _, s := range history[1:] {
		if !s.ObservedAt.Before(best.ObservedAt) {
			best = s
		}
	}
	return best
}

// Ping implements repository.SnapshotRepository
func (r *SnapshotRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Close implements repository.SnapshotRepository
func (r *SnapshotRepository) Close() error {
	return nil
}

var _ repository.SnapshotRepository = (*SnapshotRepository)(nil)

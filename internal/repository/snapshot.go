package repository

import (
	"context"

	"github.com/osse101/GardenKeeper_Go/internal/domain"
)

// DefaultHistoryLimit caps History when the caller passes no limit
const DefaultHistoryLimit = 50

// MaxHistoryLimit is the largest page History returns
const MaxHistoryLimit = 500

// SnapshotRepository persists observed cell values
type SnapshotRepository interface {
	// SaveSnapshots appends snapshots atomically; an empty slice is a no-op
	SaveSnapshots(ctx context.Context, snapshots []domain.PlotSnapshot) error

	// LatestSnapshots returns the newest snapshot of each recorded cell of a
	// plot, ordered by cell index. Cells never observed are absent.
	LatestSnapshots(ctx context.Context, player string, plotID uint16) ([]domain.PlotSnapshot, error)

	// History returns snapshots of one cell, newest first
	History(ctx context.Context, player string, plotID uint16, cellIndex int, limit int) ([]domain.PlotSnapshot, error)

	// Ping reports whether the store is reachable
	Ping(ctx context.Context) error

	Close() error
}

// ClampHistoryLimit applies the default and maximum page size
func ClampHistoryLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		return MaxHistoryLimit
	default:
		return limit
	}
}

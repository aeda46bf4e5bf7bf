// Package sqlite stores cell snapshots in a local SQLite file through the
// pure-Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/osse101/GardenKeeper_Go/internal/database"
	"github.com/osse101/GardenKeeper_Go/internal/database/sqlitegen"
	"github.com/osse101/GardenKeeper_Go/internal/domain"
	"github.com/osse101/GardenKeeper_Go/internal/repository"
)

// SnapshotRepository implements repository.SnapshotRepository for SQLite
type SnapshotRepository struct {
	db *sql.DB
	q  *sqlitegen.Queries
}

// Open opens (and migrates) a SQLite snapshot store
func Open(ctx context.Context, path string) (*SnapshotRepository, error) {
	db, err := database.OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	if err := database.MigrateSQLite(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return NewSnapshotRepository(db), nil
}

// NewSnapshotRepository wraps an already migrated database
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{
		db: db,
		q:  sqlitegen.New(db),
	}
}

// SaveSnapshots implements repository.SnapshotRepository
func (r *SnapshotRepository) SaveSnapshots(ctx context.Context, snapshots []domain.PlotSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %w", domain.ErrDatabaseError, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	q := r.q.WithTx(tx)
	for _, s := range snapshots {
		if err := q.InsertSnapshot(ctx, sqlitegen.InsertSnapshotParams{
			Player:       s.Player,
			PlotID:       int64(s.PlotID),
			CellIndex:    int64(s.CellIndex),
			Packed:       packedOrZero(s.Packed),
			Status:       int64(s.Status),
			SeedType:     int64(s.SeedType),
			PlantedAt:    strconv.FormatUint(s.PlantedAt, 10),
			GrowDuration: int64(s.GrowDuration),
			ObservedAt:   s.ObservedAt.UnixNano(),
		}); err != nil {
			return fmt.Errorf("%w: insert snapshot: %w", domain.ErrDatabaseError, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", domain.ErrDatabaseError, err)
	}
	return nil
}

// LatestSnapshots implements repository.SnapshotRepository
func (r *SnapshotRepository) LatestSnapshots(ctx context.Context, player string, plotID uint16) ([]domain.PlotSnapshot, error) {
	rows, err := r.q.GetLatestSnapshots(ctx, sqlitegen.GetLatestSnapshotsParams{
		Player: player,
		PlotID: int64(plotID),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: latest snapshots: %w", domain.ErrDatabaseError, err)
	}
	records := make([]snapshotRow, len(rows))
	for i, row := range rows {
		records[i] = snapshotRow(row)
	}
	return toSnapshots(records)
}

// History implements repository.SnapshotRepository
func (r *SnapshotRepository) History(ctx context.Context, player string, plotID uint16, cellIndex int, limit int) ([]domain.PlotSnapshot, error) {
	rows, err := r.q.GetCellHistory(ctx, sqlitegen.GetCellHistoryParams{
		Player:    player,
		PlotID:    int64(plotID),
		CellIndex: int64(cellIndex),
		RowLimit:  int64(repository.ClampHistoryLimit(limit)),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: history: %w", domain.ErrDatabaseError, err)
	}
	records := make([]snapshotRow, len(rows))
	for i, row := range rows {
		records[i] = snapshotRow(row)
	}
	return toSnapshots(records)
}

// Ping implements repository.SnapshotRepository
func (r *SnapshotRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close implements repository.SnapshotRepository
func (r *SnapshotRepository) Close() error {
	return r.db.Close()
}

type snapshotRow sqlitegen.GetCellHistoryRow

func toSnapshots(records []snapshotRow) ([]domain.PlotSnapshot, error) {
	out := make([]domain.PlotSnapshot, 0, len(records))
	for _, rec := range records {
		planted, err := strconv.ParseUint(rec.PlantedAt, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: planted_at %q: %w", domain.ErrDatabaseError, rec.PlantedAt, err)
		}
		out = append(out, domain.PlotSnapshot{
			Player:       rec.Player,
			PlotID:       uint16(rec.PlotID),
			CellIndex:    int(rec.CellIndex),
			Packed:       rec.Packed,
			Status:       uint8(rec.Status),
			SeedType:     uint16(rec.SeedType),
			PlantedAt:    planted,
			GrowDuration: uint32(rec.GrowDuration),
			ObservedAt:   time.Unix(0, rec.ObservedAt).UTC(),
		})
	}
	return out, nil
}

func packedOrZero(p string) string {
	if p == "" {
		return "0"
	}
	return p
}

var _ repository.SnapshotRepository = (*SnapshotRepository)(nil)

package postgres

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/GardenKeeper_Go/internal/database/generated"
	"github.com/osse101/GardenKeeper_Go/internal/domain"
	"github.com/osse101/GardenKeeper_Go/internal/repository"
)

// SnapshotRepository implements repository.SnapshotRepository for PostgreSQL
type SnapshotRepository struct {
	db *pgxpool.Pool
	q  *generated.Queries
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(db *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{
		db: db,
		q:  generated.New(db),
	}
}

// SaveSnapshots writes all snapshots in one transaction
func (r *SnapshotRepository) SaveSnapshots(ctx context.Context, snapshots []domain.PlotSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		q := r.q.WithTx(tx)
		for _, s := range snapshots {
			if err := q.InsertSnapshot(ctx, insertParams(s)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrDatabaseError, ErrMsgFailedToSaveSnapshots, err)
	}
	return nil
}

// LatestSnapshots returns the newest snapshot of each recorded cell
func (r *SnapshotRepository) LatestSnapshots(ctx context.Context, player string, plotID uint16) ([]domain.PlotSnapshot, error) {
	rows, err := r.q.GetLatestSnapshots(ctx, generated.GetLatestSnapshotsParams{
		Player: player,
		PlotID: int32(plotID),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrDatabaseError, ErrMsgFailedToGetLatest, err)
	}
	records := make([]snapshotRow, len(rows))
	for i, row := range rows {
		records[i] = snapshotRow(row)
	}
	return toSnapshots(records)
}

// History returns snapshots of one cell, newest first
func (r *SnapshotRepository) History(ctx context.Context, player string, plotID uint16, cellIndex int, limit int) ([]domain.PlotSnapshot, error) {
	rows, err := r.q.GetCellHistory(ctx, generated.GetCellHistoryParams{
		Player:    player,
		PlotID:    int32(plotID),
		CellIndex: int16(cellIndex),
		RowLimit:  int32(repository.ClampHistoryLimit(limit)),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrDatabaseError, ErrMsgFailedToGetHistory, err)
	}
	records := make([]snapshotRow, len(rows))
	for i, row := range rows {
		records[i] = snapshotRow(row)
	}
	return toSnapshots(records)
}

// Ping checks the pool can reach the server
func (r *SnapshotRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

// Close releases the pool
func (r *SnapshotRepository) Close() error {
	r.db.Close()
	return nil
}

// snapshotRow is the column set shared by the latest and history queries
type snapshotRow generated.GetCellHistoryRow

func insertParams(s domain.PlotSnapshot) generated.InsertSnapshotParams {
	packed := s.Packed
	if packed == "" {
		packed = "0"
	}
	return generated.InsertSnapshotParams{
		Player:       s.Player,
		PlotID:       int32(s.PlotID),
		CellIndex:    int16(s.CellIndex),
		Packed:       packed,
		Status:       int16(s.Status),
		SeedType:     int32(s.SeedType),
		PlantedAt:    strconv.FormatUint(s.PlantedAt, 10),
		GrowDuration: int64(s.GrowDuration),
		ObservedAt:   pgtype.Timestamptz{Time: s.ObservedAt, Valid: true},
	}
}

func toSnapshots(records []snapshotRow) ([]domain.PlotSnapshot, error) {
	out := make([]domain.PlotSnapshot, 0, len(records))
	for _, rec := range records {
		planted, err := strconv.ParseUint(rec.PlantedAt, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s %q: %w", domain.ErrDatabaseError, ErrMsgInvalidPlantedAt, rec.PlantedAt, err)
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
			ObservedAt:   rec.ObservedAt.Time.UTC(),
		})
	}
	return out, nil
}

var _ repository.SnapshotRepository = (*SnapshotRepository)(nil)

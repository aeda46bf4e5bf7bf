package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/GardenKeeper_Go/internal/domain"
	"github.com/osse101/GardenKeeper_Go/internal/repository"
)

// MockSnapshotRepository is a mock implementation of repository.SnapshotRepository
type MockSnapshotRepository struct {
	mock.Mock
}

func (m *MockSnapshotRepository) SaveSnapshots(ctx context.Context, snapshots []domain.PlotSnapshot) error {
	args := m.Called(ctx, snapshots)
	return args.Error(0)
}

func (m *MockSnapshotRepository) LatestSnapshots(ctx context.Context, player string, plotID uint16) ([]domain.PlotSnapshot, error) {
	args := m.Called(ctx, player, plotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PlotSnapshot), args.Error(1)
}

func (m *MockSnapshotRepository) History(ctx context.Context, player string, plotID uint16, cellIndex int, limit int) ([]domain.PlotSnapshot, error) {
	args := m.Called(ctx, player, plotID, cellIndex, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PlotSnapshot), args.Error(1)
}

func (m *MockSnapshotRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSnapshotRepository) Close() error {
	args := m.Called()
	return args.Error(0)
}

var _ repository.SnapshotRepository = (*MockSnapshotRepository)(nil)

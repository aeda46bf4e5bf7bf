package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GardenKeeper_Go/internal/domain"
	"github.com/osse101/GardenKeeper_Go/internal/plotcodec"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()
	handled := false

	bus.Subscribe(CellReady, func(ctx context.Context, event Event) error {
		assert.Equal(t, CellReady, event.Type)
		assert.Equal(t, "payload", event.Payload)
		handled = true
		return nil
	})

	err := bus.Publish(context.Background(), Event{Version: "1.0", Type: CellReady, Payload: "payload"})

	require.NoError(t, err)
	assert.True(t, handled, "Handler was not called")
}

func TestMemoryBus_PublishMultipleHandlers(t *testing.T) {
	bus := NewMemoryBus()
	count := 0
	handler := func(ctx context.Context, event Event) error {
		count++
		return nil
	}

	bus.Subscribe(CellPlanted, handler)
	bus.Subscribe(CellPlanted, handler)
	bus.Subscribe(CellCleared, handler)

	require.NoError(t, bus.Publish(context.Background(), Event{Version: "1.0", Type: CellPlanted}))
	assert.Equal(t, 2, count)
}

func TestMemoryBus_NoSubscribers(t *testing.T) {
	assert.NoError(t, NewMemoryBus().Publish(context.Background(), Event{Type: CellReady}))
}

func TestMemoryBus_PublishError(t *testing.T) {
	bus := NewMemoryBus()
	second := false

	bus.Subscribe(CellReady, func(ctx context.Context, event Event) error {
		return errors.New("handler error")
	})
	bus.Subscribe(CellReady, func(ctx context.Context, event Event) error {
		second = true
		return nil
	})

	err := bus.Publish(context.Background(), Event{Version: "1.0", Type: CellReady})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encountered 1 errors")
	assert.True(t, second, "later handlers still run after a failure")
}

func TestNewCellEvent(t *testing.T) {
	observed := time.Unix(1_700_000_100, 0)
	transition := domain.CellTransition{
		Player:     "0xabc",
		PlotID:     1,
		CellIndex:  7,
		SeedType:   2,
		SeedName:   "Mint",
		ObservedAt: observed,
	}
	view := &domain.CellView{State: &plotcodec.CellState{Status: 1, SeedType: 2, PlantedAt: 1_700_000_000, GrowDuration: 10}}

	evt := NewCellEvent(CellPlanted, transition, view)

	assert.Equal(t, EventSchemaVersion, evt.Version)
	assert.Equal(t, CellPlanted, evt.Type)
	assert.Equal(t, "0xabc", evt.GetMetadataValue("player"))

	payload, err := DecodePayload[CellTransitionPayloadV1](evt.Payload)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_700_000_010), payload.ReadyAt)
	assert.Equal(t, int64(1_700_000_100), payload.Timestamp)
	assert.Equal(t, 7, payload.CellIndex)
}

func TestDecodePayload_FromMap(t *testing.T) {
	payload, err := DecodePayload[CellTransitionPayloadV1](map[string]interface{}{
		"player":     "0xabc",
		"plot_id":    3,
		"cell_index": 11,
	})
	require.NoError(t, err)
	assert.Equal(t, uint16(3), payload.PlotID)
	assert.Equal(t, 11, payload.CellIndex)
}

func TestParseType(t *testing.T) {
	got, ok := ParseType("cell.ready")
	assert.True(t, ok)
	assert.Equal(t, CellReady, got)

	_, ok = ParseType("item.sold")
	assert.False(t, ok)
}

func TestCalculateRetryDelay(t *testing.T) {
	base := 100 * time.Millisecond
	assert.Equal(t, base, CalculateRetryDelay(base, 0))
	assert.Equal(t, base, CalculateRetryDelay(base, 1))
	assert.Equal(t, 4*base, CalculateRetryDelay(base, 3))
}

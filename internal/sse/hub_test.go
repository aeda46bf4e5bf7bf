package sse

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GardenKeeper_Go/internal/domain"
	"github.com/osse101/GardenKeeper_Go/internal/event"
)

const (
	playerA = "0xAbCdEf0123456789aBcDeF0123456789AbCdEf01"
	playerB = "0x00000000000000000000000000000000000000b0"
)

func receive(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case evt, ok := <-c.EventChannel:
		require.True(t, ok, "client channel closed")
		return evt
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func assertNothing(t *testing.T, c *Client) {
	t.Helper()
	select {
	case evt := <-c.EventChannel:
		t.Fatalf("unexpected event %s", evt.Type)
	case <-time.After(30 * time.Millisecond):
	}
}

func TestHub_Filters(t *testing.T) {
	hub := NewHub()
	hub.Start()
	defer hub.Stop()

	all := hub.Register(Filter{})
	readyOnly := hub.Register(Filter{Types: []string{string(event.CellReady)}})
	onlyB := hub.Register(Filter{Player: strings.ToUpper(playerB)})
	assert.Equal(t, 3, hub.ClientCount())

	hub.Broadcast(string(event.CellPlanted), playerA, "p")
	assert.Equal(t, string(event.CellPlanted), receive(t, all).Type)
	assertNothing(t, readyOnly)
	assertNothing(t, onlyB)

	hub.Broadcast(string(event.CellReady), playerB, "r")
	assert.Equal(t, string(event.CellReady), receive(t, all).Type)
	got := receive(t, readyOnly)
	assert.Equal(t, playerB, got.Player)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, string(event.CellReady), receive(t, onlyB).Type)
}

func TestHub_UnregisterAndStop(t *testing.T) {
	hub := NewHub()
	hub.Start()

	a := hub.Register(Filter{})
	b := hub.Register(Filter{})

	hub.Unregister(a.ID)
	hub.Unregister(a.ID)
	_, ok := <-a.EventChannel
	assert.False(t, ok)
	assert.Equal(t, 1, hub.ClientCount())

	hub.Stop()
	hub.Stop()
	_, ok = <-b.EventChannel
	assert.False(t, ok)
	assert.Zero(t, hub.ClientCount())

	late := hub.Register(Filter{})
	_, ok = <-late.EventChannel
	assert.False(t, ok, "clients registered after Stop are closed immediately")
	hub.Unregister(b.ID)
}

func TestFormatSSEMessage(t *testing.T) {
	msg, err := FormatSSEMessage(Event{ID: "abc", Type: "cell.ready", Timestamp: 1, Payload: map[string]int{"cell": 3}})
	require.NoError(t, err)

	text := string(msg)
	assert.True(t, strings.HasPrefix(text, "id: abc\nevent: cell.ready\ndata: {"))
	assert.True(t, strings.HasSuffix(text, "}\n\n"))
	assert.Contains(t, text, `"cell":3`)
}

func TestSubscriber_BridgesCellEvents(t *testing.T) {
	hub := NewHub()
	hub.Start()
	defer hub.Stop()

	bus := event.NewMemoryBus()
	NewSubscriber(hub, bus).Subscribe()
	client := hub.Register(Filter{Player: playerA})

	transition := domain.CellTransition{Player: playerA, PlotID: 1, CellIndex: 4, SeedType: 2, SeedName: "Mint", ObservedAt: time.Unix(1_700_000_000, 0)}
	require.NoError(t, bus.Publish(context.Background(), event.NewCellEvent(event.CellCleared, transition, nil)))

	got := receive(t, client)
	assert.Equal(t, string(event.CellCleared), got.Type)
	payload, ok := got.Payload.(event.CellTransitionPayloadV1)
	require.True(t, ok)
	assert.Equal(t, 4, payload.CellIndex)
	assert.Equal(t, "Mint", payload.SeedName)

	// malformed payloads are dropped, not returned as handler errors
	require.NoError(t, bus.Publish(context.Background(), event.Event{Type: event.CellReady, Payload: "garbage"}))
	assertNothing(t, client)
}

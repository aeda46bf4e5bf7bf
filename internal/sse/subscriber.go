package sse

import (
	"context"
	"log/slog"

	"github.com/osse101/GardenKeeper_Go/internal/event"
)

// Subscriber bridges the internal event bus to the hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new stream subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe registers the hub for every cell event type
func (s *Subscriber) Subscribe() {
	for _, t := range event.CellEventTypes {
		s.bus.Subscribe(t, s.handleCellEvent)
	}
	slog.Info("Stream subscriber registered for event types", "types", event.CellEventTypes)
}

func (s *Subscriber) handleCellEvent(_ context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.CellTransitionPayloadV1](evt.Payload)
	if err != nil {
		slog.Warn(LogMsgInvalidPayload, "event_type", evt.Type, "error", err)
		return nil
	}

	s.hub.Broadcast(string(evt.Type), payload.Player, payload)

	slog.Debug(LogMsgEventBroadcast,
		"event_type", evt.Type,
		"player", payload.Player,
		"plot", payload.PlotID,
		"cell", payload.CellIndex)
	return nil
}

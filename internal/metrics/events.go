package metrics

import (
	"context"

	"github.com/osse101/GardenKeeper_Go/internal/domain"
	"github.com/osse101/GardenKeeper_Go/internal/event"
	"github.com/osse101/GardenKeeper_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all cell events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	for _, eventType := range event.CellEventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}
	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	payload, ok := evt.Payload.(event.CellTransitionPayloadV1)
	if !ok {
		log.Debug(LogMsgEventPayloadUnexpected, "type", evt.Type)
		return nil
	}

	seed := payload.SeedName
	if seed == "" {
		seed = domain.SeedType(payload.SeedType).String()
	}
	CellTransitions.WithLabelValues(string(evt.Type), seed).Inc()

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

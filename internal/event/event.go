package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/GardenKeeper_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata,omitempty"`
}

// GetMetadataValue extracts a value from map metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// Cell event types. Each is published once per observed transition.
const (
	// CellPlanted fires when an empty cell is seen holding a seed
	CellPlanted Type = "cell.planted"
	// CellReady fires when a growing cell crosses its ready time
	CellReady Type = "cell.ready"
	// CellCleared fires when an occupied cell is seen empty again (harvested)
	CellCleared Type = "cell.cleared"
)

// CellEventTypes lists every cell event type
var CellEventTypes = []Type{CellPlanted, CellReady, CellCleared}

// ParseType validates a cell event type name
func ParseType(s string) (Type, bool) {
	for _, t := range CellEventTypes {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// CellTransitionPayloadV1 is the typed payload for cell events
type CellTransitionPayloadV1 struct {
	Player       string `json:"player"`
	PlotID       uint16 `json:"plot_id"`
	CellIndex    int    `json:"cell_index"`
	SeedType     uint16 `json:"seed_type,omitempty"`
	SeedName     string `json:"seed_name,omitempty"`
	PlantedAt    uint64 `json:"planted_at,omitempty"`
	GrowDuration uint32 `json:"grow_duration,omitempty"`
	ReadyAt      uint64 `json:"ready_at,omitempty"`
	Timestamp    int64  `json:"timestamp"`
}

// NewCellEvent creates a cell event from an observed transition
func NewCellEvent(eventType Type, t domain.CellTransition, state *domain.CellView) Event {
	payload := CellTransitionPayloadV1{
		Player:    t.Player,
		PlotID:    t.PlotID,
		CellIndex: t.CellIndex,
		SeedType:  t.SeedType,
		SeedName:  t.SeedName,
		Timestamp: t.ObservedAt.Unix(),
	}
	if state != nil && state.State != nil {
		payload.PlantedAt = state.State.PlantedAt
		payload.GrowDuration = state.State.GrowDuration
		payload.ReadyAt = state.State.ReadyAt()
	}
	if payload.Timestamp <= 0 {
		payload.Timestamp = time.Now().Unix()
	}
	return Event{
		Version: EventSchemaVersion,
		Type:    eventType,
		Payload: payload,
		Metadata: map[string]interface{}{
			"player": t.Player,
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish delivers an event to every subscriber synchronously. All handlers
// run even when one fails.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Type]...)
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}
	return nil
}

// Subscribe registers a handler for an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

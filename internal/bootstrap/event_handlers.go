package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/GardenKeeper_Go/internal/event"
	"github.com/osse101/GardenKeeper_Go/internal/metrics"
	"github.com/osse101/GardenKeeper_Go/internal/sse"
)

// RegisterEventHandlers subscribes the metrics collector and the stream
// bridge to the bus
func RegisterEventHandlers(bus event.Bus, hub *sse.Hub) error {
	collector := metrics.NewEventMetricsCollector()
	if err := collector.Register(bus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	sse.NewSubscriber(hub, bus).Subscribe()
	slog.Info(LogMsgStreamSubscriberRegistered, "clients", hub.ClientCount())

	return nil
}

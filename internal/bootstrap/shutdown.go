package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/GardenKeeper_Go/internal/event"
	"github.com/osse101/GardenKeeper_Go/internal/poller"
	"github.com/osse101/GardenKeeper_Go/internal/repository"
	"github.com/osse101/GardenKeeper_Go/internal/server"
	"github.com/osse101/GardenKeeper_Go/internal/sse"
)

// ShutdownComponents holds everything that needs graceful shutdown.
// Nil fields are skipped.
type ShutdownComponents struct {
	Server *server.Server
	Poller *poller.Poller
	Hub    *sse.Hub
	Events *EventSystem
	Store  repository.SnapshotRepository
	// Chain closes the RPC connection
	Chain func()
}

// GracefulShutdown stops components in dependency order:
//  1. HTTP server (stop accepting requests)
//  2. Poller (no new transitions)
//  3. Stream hub (disconnect clients)
//  4. Event publisher (dead-letter pending retries)
//  5. Store and RPC connection
//
// Errors are logged and never stop the sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	if c.Server != nil {
		slog.Info(LogMsgShuttingDownServer)
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if c.Poller != nil {
		slog.Info(LogMsgShuttingDownPoller)
		c.Poller.Stop(ctx)
	}

	if c.Hub != nil {
		slog.Info(LogMsgShuttingDownStream, "clients", c.Hub.ClientCount())
		c.Hub.Stop()
	}

	if c.Events != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		shutdownPublisher(ctx, c.Events.Publisher)
		if c.Events.DeadLetter != nil {
			if err := c.Events.DeadLetter.Close(); err != nil {
				slog.Error(LogMsgDeadLetterCloseFailed, "error", err)
			}
		}
	}

	if c.Store != nil {
		if err := c.Store.Close(); err != nil {
			slog.Error(LogMsgStoreCloseFailed, "error", err)
		}
	}
	if c.Chain != nil {
		c.Chain()
	}

	slog.Info(LogMsgServerStopped)
}

func shutdownPublisher(ctx context.Context, p *event.ResilientPublisher) {
	if p == nil {
		return
	}
	if err := p.Shutdown(ctx); err != nil {
		slog.Error(LogMsgResilientPublisherFailed, "error", err)
	}
}

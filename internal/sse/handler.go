package sse

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/osse101/GardenKeeper_Go/internal/chain"
	"github.com/osse101/GardenKeeper_Go/internal/domain"
	"github.com/osse101/GardenKeeper_Go/internal/event"
)

// ParseFilter reads the "types" and "player" query parameters
func ParseFilter(r *http.Request) (Filter, error) {
	var filter Filter
	q := r.URL.Query()

	if raw := q.Get("types"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			t, ok := event.ParseType(name)
			if !ok {
				return Filter{}, fmt.Errorf("%w: unknown event type %q", domain.ErrInvalidInput, name)
			}
			filter.Types = append(filter.Types, string(t))
		}
	}

	if raw := q.Get("player"); raw != "" {
		player, err := chain.NormalizeAddress(raw)
		if err != nil {
			return Filter{}, err
		}
		filter.Player = player
	}
	return filter, nil
}

// Handler returns an HTTP handler for SSE connections
func Handler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := ParseFilter(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "SSE not supported", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")

		client := hub.Register(filter)
		slog.Info(LogMsgClientConnected,
			"transport", "sse",
			"client_id", client.ID,
			"filters", filter.Types,
			"player", filter.Player,
			"total_clients", hub.ClientCount())

		defer func() {
			hub.Unregister(client.ID)
			slog.Info(LogMsgClientDisconnected,
				"transport", "sse",
				"client_id", client.ID,
				"total_clients", hub.ClientCount())
		}()

		if msg, err := FormatSSEMessage(connectedEvent(client, filter)); err == nil {
			if _, err := w.Write(msg); err != nil {
				return
			}
			flusher.Flush()
		}

		ticker := time.NewTicker(KeepaliveInterval)
		defer ticker.Stop()

		ctx := r.Context()
		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-client.EventChannel:
				if !ok {
					// hub is shutting down
					return
				}

				msg, err := FormatSSEMessage(event)
				if err != nil {
					slog.Error(LogMsgWriteError, "error", err)
					continue
				}
				if _, err := w.Write(msg); err != nil {
					slog.Warn(LogMsgWriteError, "error", err)
					return
				}
				flusher.Flush()

			case <-ticker.C:
				msg, _ := FormatSSEMessage(Event{Type: EventTypeKeepalive, Timestamp: time.Now().Unix()})
				if _, err := w.Write(msg); err != nil {
					return
				}
				flusher.Flush()
			}
		}
	}
}

func connectedEvent(client *Client, filter Filter) Event {
	return Event{
		ID:        client.ID,
		Type:      EventTypeConnected,
		Timestamp: time.Now().Unix(),
		Payload: map[string]interface{}{
			"client_id": client.ID,
			"filters":   filter.Types,
			"player":    filter.Player,
		},
	}
}

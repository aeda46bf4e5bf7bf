package sse

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// WebSocketHandler relays hub events as JSON text frames. Clients only
// receive; anything they send is discarded.
func WebSocketHandler(hub *Hub, checkOrigin func(r *http.Request) bool) http.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  WSBufferSize,
		WriteBufferSize: WSBufferSize,
		CheckOrigin:     checkOrigin,
	}

	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := ParseFilter(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade has already written the error response
			slog.Warn(LogMsgUpgradeFailed, "error", err)
			return
		}
		defer conn.Close()

		client := hub.Register(filter)
		slog.Info(LogMsgClientConnected,
			"transport", "websocket",
			"client_id", client.ID,
			"filters", filter.Types,
			"player", filter.Player,
			"total_clients", hub.ClientCount())
		defer func() {
			hub.Unregister(client.ID)
			slog.Info(LogMsgClientDisconnected,
				"transport", "websocket",
				"client_id", client.ID,
				"total_clients", hub.ClientCount())
		}()

		readerDone := make(chan struct{})
		go readPump(conn, readerDone)

		if err := writeJSON(conn, connectedEvent(client, filter)); err != nil {
			return
		}

		ticker := time.NewTicker(WSPingPeriod)
		defer ticker.Stop()

		for {
			select {
			case <-readerDone:
				return

			case event, ok := <-client.EventChannel:
				if !ok {
					_ = conn.WriteControl(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
						time.Now().Add(time.Second))
					return
				}
				if err := writeJSON(conn, event); err != nil {
					slog.Warn(LogMsgWriteError, "transport", "websocket", "error", err)
					return
				}

			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(WSWriteWait)); err != nil {
					return
				}
			}
		}
	}
}

// readPump consumes control frames until the peer goes away
func readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	conn.SetReadLimit(WSMaxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(WSPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(WSPongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writeJSON(conn *websocket.Conn, v interface{}) error {
	_ = conn.SetWriteDeadline(time.Now().Add(WSWriteWait))
	return conn.WriteJSON(v)
}

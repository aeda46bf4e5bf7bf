package sse

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the broadcast channel
	BroadcastBufferSize = 100

	// ClientEventBuffer is the buffer size for each client's event channel
	ClientEventBuffer = 50
)

// SSE connection settings
const (
	// KeepaliveInterval is how often to send keepalive pings
	KeepaliveInterval = 30 * time.Second
)

// WebSocket connection settings
const (
	WSWriteWait      = 10 * time.Second
	WSPongWait       = 60 * time.Second
	WSPingPeriod     = WSPongWait * 9 / 10
	WSMaxMessageSize = 1024
	WSBufferSize     = 4096
)

// Stream-only event types
const (
	// EventTypeConnected is the first event a client receives
	EventTypeConnected = "connected"

	// EventTypeKeepalive is the keepalive ping event type
	EventTypeKeepalive = "keepalive"
)

// Log messages
const (
	LogMsgClientConnected    = "Stream client connected"
	LogMsgClientDisconnected = "Stream client disconnected"
	LogMsgEventBroadcast     = "Broadcasting stream event"
	LogMsgEventDropped       = "Stream broadcast buffer full, event dropped"
	LogMsgWriteError         = "Failed to write stream event"
	LogMsgUpgradeFailed      = "WebSocket upgrade failed"
	LogMsgInvalidPayload     = "Invalid cell event payload"
)

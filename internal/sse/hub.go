package sse

import (
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event represents an event sent to stream clients
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Player    string      `json:"player,omitempty"`
	Timestamp int64       `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// Filter selects the events a client receives. Empty fields match everything.
type Filter struct {
	Types  []string
	Player string
}

// Client represents a connected stream client
type Client struct {
	ID           string
	EventChannel chan Event
	EventFilter  map[string]bool // nil means all events, otherwise only specified types
	Player       string          // lowercased; empty means every player
}

func (c *Client) wants(event Event) bool {
	if c.EventFilter != nil && !c.EventFilter[event.Type] {
		return false
	}
	return c.Player == "" || c.Player == strings.ToLower(event.Player)
}

// Hub manages stream client connections and event broadcasting
type Hub struct {
	clients   map[string]*Client
	broadcast chan Event
	mu        sync.RWMutex
	shutdown  chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		clients:   make(map[string]*Client),
		broadcast: make(chan Event, BroadcastBufferSize),
		shutdown:  make(chan struct{}),
	}
}

// Start starts the hub's broadcast loop
func (h *Hub) Start() {
	h.wg.Add(1)
	go h.run()
}

// Stop shuts down the hub and closes every client channel
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.shutdown)
		h.wg.Wait()

		h.mu.Lock()
		for id, client := range h.clients {
			close(client.EventChannel)
			delete(h.clients, id)
		}
		h.mu.Unlock()
	})
}

func (h *Hub) run() {
	defer h.wg.Done()

	for {
		select {
		case event := <-h.broadcast:
			h.mu.RLock()
			for _, client := range h.clients {
				if !client.wants(event) {
					continue
				}
				// slow clients miss events rather than stall the hub
				select {
				case client.EventChannel <- event:
				default:
				}
			}
			h.mu.RUnlock()

		case <-h.shutdown:
			return
		}
	}
}

// Register adds a new client to the hub. The client is registered before
// Register returns.
func (h *Hub) Register(filter Filter) *Client {
	client := &Client{
		ID:           uuid.New().String(),
		EventChannel: make(chan Event, ClientEventBuffer),
		Player:       strings.ToLower(filter.Player),
	}
	if len(filter.Types) > 0 {
		client.EventFilter = make(map[string]bool, len(filter.Types))
		for _, t := range filter.Types {
			client.EventFilter[t] = true
		}
	}

	h.mu.Lock()
	select {
	case <-h.shutdown:
		close(client.EventChannel)
	default:
		h.clients[client.ID] = client
	}
	h.mu.Unlock()
	return client
}

// Unregister removes a client from the hub and closes its channel
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if client, ok := h.clients[clientID]; ok {
		close(client.EventChannel)
		delete(h.clients, clientID)
	}
}

// Broadcast sends an event to all interested clients
func (h *Hub) Broadcast(eventType, player string, payload interface{}) {
	event := Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Player:    player,
		Timestamp: time.Now().Unix(),
		Payload:   payload,
	}

	select {
	case h.broadcast <- event:
	default:
		slog.Warn(LogMsgEventDropped, "event_type", eventType)
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// FormatSSEMessage formats an event for transmission
func FormatSSEMessage(event Event) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	// SSE format: "id: <id>\nevent: <type>\ndata: <json>\n\n"
	msg := "id: " + event.ID + "\n"
	msg += "event: " + event.Type + "\n"
	msg += "data: " + string(data) + "\n\n"

	return []byte(msg), nil
}

// Package sse fans community activity out to live subscribers as
// server-sent events, and reads such streams back on the client side.
package sse

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/osse101/TheDigger_Go/internal/domain"
)

// Event represents an event sent over SSE
type Event struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Timestamp int64           `json:"timestamp"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// Client represents a connected subscriber
type Client struct {
	ID           string
	EventChannel chan Event
	EventFilter  map[string]bool // nil means all events, otherwise only specified types
}

// Hub manages subscriber registration and event broadcasting
type Hub struct {
	clients    map[string]*Client
	broadcast  chan Event
	register   chan *Client
	unregister chan string
	mu         sync.RWMutex
	shutdown   chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
}

// NewHub creates a new SSE Hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		broadcast:  make(chan Event, BroadcastBufferSize),
		register:   make(chan *Client, ClientChannelBuffer),
		unregister: make(chan string, ClientChannelBuffer),
		shutdown:   make(chan struct{}),
	}
}

// Start starts the hub's broadcast loop
func (h *Hub) Start() {
	h.wg.Add(1)
	go h.run()
}

// Stop shuts the loop down and closes every client channel. Safe to call twice.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.shutdown)
		h.wg.Wait()

		h.mu.Lock()
		for _, client := range h.clients {
			close(client.EventChannel)
		}
		h.clients = make(map[string]*Client)
		h.mu.Unlock()
	})
}

func (h *Hub) run() {
	defer h.wg.Done()

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()

		case clientID := <-h.unregister:
			h.mu.Lock()
			if client, ok := h.clients[clientID]; ok {
				close(client.EventChannel)
				delete(h.clients, clientID)
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			h.mu.RLock()
			for _, client := range h.clients {
				if client.EventFilter != nil && !client.EventFilter[event.Type] {
					continue
				}
				// slow subscribers miss events rather than stall the hub
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

// Register adds a new client. Empty eventTypes subscribes to everything.
func (h *Hub) Register(eventTypes []string) *Client {
	client := &Client{
		ID:           uuid.New().String(),
		EventChannel: make(chan Event, ClientEventBuffer),
	}

	if len(eventTypes) > 0 {
		client.EventFilter = make(map[string]bool, len(eventTypes))
		for _, t := range eventTypes {
			client.EventFilter[t] = true
		}
	}

	select {
	case h.register <- client:
	case <-h.shutdown:
		close(client.EventChannel)
	}
	return client
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(clientID string) {
	select {
	case h.unregister <- clientID:
	case <-h.shutdown:
	}
}

// Broadcast queues an event for every interested client. The event is
// dropped when the broadcast buffer is full.
func (h *Hub) Broadcast(eventType string, payload any) {
	event, err := NewEvent(uuid.New().String(), eventType, payload)
	if err != nil {
		slog.Error(LogMsgWriteError, "error", err, "type", eventType)
		return
	}

	select {
	case h.broadcast <- event:
	default:
		slog.Warn(LogMsgEventDropped, "type", eventType)
	}
}

// PublishActivity broadcasts a feed entry under its activity event type.
func (h *Hub) PublishActivity(a domain.Activity) {
	h.Broadcast(ActivityEventType(a.ActivityType), a)
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// FormatSSEMessage formats an SSE event for transmission
func FormatSSEMessage(event Event) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	// "id: <id>\nevent: <type>\ndata: <json>\n\n"
	msg := "id: " + event.ID + "\n"
	msg += "event: " + event.Type + "\n"
	msg += "data: " + string(data) + "\n\n"

	return []byte(msg), nil
}

// Package sse streams engine events to browsers over Server-Sent Events.
package sse

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wrecklessracks/racks/internal/logger"
)

// Event is one message on the stream
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Timestamp int64       `json:"timestamp"`
	Payload   interface{} `json:"payload"`

	// Empty for events every client may see
	accountID string
}

// Client is one connected stream
type Client struct {
	ID        string
	Events    chan Event
	types     map[string]bool // nil means every type
	accountID string
}

// wants reports whether the client should receive e. Account-scoped events only go to
// clients watching that account.
func (c *Client) wants(e Event) bool {
	if c.types != nil && !c.types[e.Type] {
		return false
	}
	return e.accountID == "" || e.accountID == c.accountID
}

// Hub fans events out to connected clients. Slow clients miss events rather than
// holding up the broadcast loop.
type Hub struct {
	mu         sync.RWMutex
	clients    map[string]*Client
	broadcast  chan Event
	register   chan *Client
	unregister chan string
	shutdown   chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
}

// NewHub creates a hub; call Start before broadcasting
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		broadcast:  make(chan Event, BroadcastBufferSize),
		register:   make(chan *Client, ClientChannelBuffer),
		unregister: make(chan string, ClientChannelBuffer),
		shutdown:   make(chan struct{}),
	}
}

// Start runs the broadcast loop
func (h *Hub) Start() {
	h.wg.Add(1)
	go h.run()
}

// Stop ends the broadcast loop and closes every client stream. Safe to call twice.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.shutdown)
		h.wg.Wait()

		h.mu.Lock()
		for id, c := range h.clients {
			close(c.Events)
			delete(h.clients, id)
		}
		h.mu.Unlock()

		// Registrations the loop never picked up
		for {
			select {
			case c := <-h.register:
				close(c.Events)
			default:
				return
			}
		}
	})
}

func (h *Hub) run() {
	defer h.wg.Done()

	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c.ID] = c
			h.mu.Unlock()

		case id := <-h.unregister:
			h.mu.Lock()
			if c, ok := h.clients[id]; ok {
				close(c.Events)
				delete(h.clients, id)
			}
			h.mu.Unlock()

		case e := <-h.broadcast:
			h.mu.RLock()
			for _, c := range h.clients {
				if !c.wants(e) {
					continue
				}
				select {
				case c.Events <- e:
				default:
					logger.Debug(LogMsgClientLagging, "client_id", c.ID, "event_type", e.Type)
				}
			}
			h.mu.RUnlock()

		case <-h.shutdown:
			return
		}
	}
}

// Register adds a client. An empty types list receives every type; an empty accountID
// receives only public events.
func (h *Hub) Register(types []string, accountID string) *Client {
	c := &Client{
		ID:        uuid.NewString(),
		Events:    make(chan Event, ClientEventBuffer),
		accountID: accountID,
	}
	if len(types) > 0 {
		c.types = make(map[string]bool, len(types))
		for _, t := range types {
			c.types[t] = true
		}
	}

	select {
	case <-h.shutdown:
		close(c.Events)
		return c
	default:
	}
	select {
	case h.register <- c:
	case <-h.shutdown:
		close(c.Events)
	}
	return c
}

// Unregister removes a client and closes its channel
func (h *Hub) Unregister(clientID string) {
	select {
	case h.unregister <- clientID:
	case <-h.shutdown:
	}
}

// Broadcast queues an event. accountID scopes it to clients watching that account.
func (h *Hub) Broadcast(eventType, accountID string, payload interface{}) {
	e := Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().Unix(),
		Payload:   payload,
		accountID: accountID,
	}

	select {
	case h.broadcast <- e:
	default:
		logger.Warn(LogMsgBroadcastDropped, "event_type", eventType)
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// FormatMessage renders an event in the text/event-stream wire format
func FormatMessage(e Event) ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to encode SSE event: %w", err)
	}
	return fmt.Appendf(nil, "id: %s\nevent: %s\ndata: %s\n\n", e.ID, e.Type, data), nil
}

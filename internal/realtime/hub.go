package realtime

import (
	"sync"
)

// Event is what order-table changes look like on the wire. Clients
// treat any event as a signal to re-fetch the list; no incremental
// patching.
type Event struct {
	Table   string `json:"table"`
	Action  string `json:"action"`
	OrderID string `json:"order_id,omitempty"`
}

// Hub fans order-change events out to connected admin sessions.
type Hub struct {
	mu      sync.Mutex
	clients map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// Broadcast pushes the event to every client. Slow clients are dropped
// rather than blocking the feed.
func (h *Hub) Broadcast(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- ev:
		default:
			delete(h.clients, c)
			close(c.send)
		}
	}
}

// ClientCount reports connected admin sessions.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

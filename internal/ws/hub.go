package ws

import (
	"encoding/json"
	"sync"

	"taskboard/internal/domain"
	"taskboard/internal/logger"
)

// Hub fans task events out to connected dashboards. It satisfies
// service.EventPublisher.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	ConnectedClients.Set(float64(n))
	logger.Debug("ws client registered", "user_id", c.UserID, "role", c.Role, "clients", n)
}

// Unregister removes c and closes its send channel. Calling it twice is
// harmless.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c)
	close(c.Send)
	n := len(h.clients)
	h.mu.Unlock()
	ConnectedClients.Set(float64(n))
	logger.Debug("ws client unregistered", "user_id", c.UserID, "clients", n)
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publish never blocks: a client whose buffer is full is dropped.
func (h *Hub) Publish(ev domain.TaskEvent) {
	msg, err := json.Marshal(taskMessage(ev))
	if err != nil {
		logger.Error("ws marshal event failed", "event", ev.Type, "error", err)
		return
	}

	var slow []*Client
	h.mu.RLock()
	for c := range h.clients {
		if !c.wants(ev) {
			continue
		}
		select {
		case c.Send <- msg:
			EventsSent.WithLabelValues(ev.Type).Inc()
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		logger.Warn("ws client too slow, dropping", "user_id", c.UserID)
		h.Unregister(c)
	}
}

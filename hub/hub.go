package hub

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"huddle-relay-server/domain"
)

type Hub struct {
	conns map[domain.ConnectionID]domain.Connection
	order []domain.ConnectionID
	mu    sync.RWMutex
}

func New() *Hub {
	return &Hub{
		conns: make(map[domain.ConnectionID]domain.Connection),
	}
}

func (h *Hub) Attach(conn domain.Connection) {
	h.mu.Lock()
	if _, exists := h.conns[conn.ID()]; !exists {
		h.order = append(h.order, conn.ID())
	}
	h.conns[conn.ID()] = conn
	count := len(h.conns)
	h.mu.Unlock()

	slog.Info("client connected", "clientId", conn.ID(), "clients", count)
}

func (h *Hub) Detach(conn domain.Connection) {
	h.mu.Lock()
	current, exists := h.conns[conn.ID()]
	if !exists || current != conn {
		h.mu.Unlock()
		return
	}
	delete(h.conns, conn.ID())
	for i, id := range h.order {
		if id == conn.ID() {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
	count := len(h.conns)
	h.mu.Unlock()

	slog.Info("client disconnected", "clientId", conn.ID(), "clients", count)
}

// Unicast reports whether the target was attached. An absent target is not an error.
func (h *Hub) Unicast(id domain.ConnectionID, event string, payload any) bool {
	h.mu.RLock()
	conn, exists := h.conns[id]
	h.mu.RUnlock()

	if !exists {
		slog.Debug("unicast target not connected", "event", event, "clientId", id)
		return false
	}

	data, err := encode(event, payload)
	if err != nil {
		slog.Warn("encode error", "event", event, "error", err)
		return false
	}
	h.deliver(conn, data)
	return true
}

func (h *Hub) Broadcast(event string, payload any) {
	data, err := encode(event, payload)
	if err != nil {
		slog.Warn("encode error", "event", event, "error", err)
		return
	}

	for _, conn := range h.snapshot() {
		h.deliver(conn, data)
	}
}

func (h *Hub) Stats() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

func (h *Hub) snapshot() []domain.Connection {
	h.mu.RLock()
	defer h.mu.RUnlock()

	conns := make([]domain.Connection, 0, len(h.order))
	for _, id := range h.order {
		conns = append(conns, h.conns[id])
	}
	return conns
}

// deliver closes a connection whose outbound queue is full; its read loop then
// runs the regular disconnect path. Close must not block and must tolerate
// repeated calls.
func (h *Hub) deliver(conn domain.Connection, data []byte) {
	if err := conn.Send(data); err != nil {
		slog.Warn("send failed, closing connection", "clientId", conn.ID(), "error", err)
		conn.Close()
	}
}

func encode(event string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", event, err)
	}
	out, err := json.Marshal(domain.Envelope{Event: event, Data: data})
	if err != nil {
		return nil, fmt.Errorf("marshal %s envelope: %w", event, err)
	}
	return out, nil
}

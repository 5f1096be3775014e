package chat

import (
	"sync"

	"huddle-relay-server/domain"
)

type sentEvent struct {
	to      string
	event   string
	payload any
}

type mockDispatcher struct {
	online     map[string]bool
	broadcasts []sentEvent
	unicasts   []sentEvent
	mu         sync.Mutex
}

func newMockDispatcher(online ...string) *mockDispatcher {
	m := &mockDispatcher{online: make(map[string]bool)}
	for _, id := range online {
		m.online[id] = true
	}
	return m
}

func (m *mockDispatcher) Attach(conn domain.Connection) {}
func (m *mockDispatcher) Detach(conn domain.Connection) {}
func (m *mockDispatcher) Stats() int                    { return len(m.online) }

func (m *mockDispatcher) Unicast(id domain.ConnectionID, event string, payload any) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.online[id] {
		return false
	}
	m.unicasts = append(m.unicasts, sentEvent{to: id, event: event, payload: payload})
	return true
}

func (m *mockDispatcher) Broadcast(event string, payload any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.broadcasts = append(m.broadcasts, sentEvent{event: event, payload: payload})
}

func (m *mockDispatcher) getBroadcasts() []sentEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentEvent(nil), m.broadcasts...)
}

func (m *mockDispatcher) getUnicasts() []sentEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentEvent(nil), m.unicasts...)
}

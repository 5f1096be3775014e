package presence

import (
	"log/slog"
	"sync"

	"huddle-relay-server/domain"
)

// HistoryReplayer hands the global log to fn while holding the log's lock, so no
// post can interleave with a join broadcast.
type HistoryReplayer interface {
	Replay(fn func(history []domain.Message))
}

type Registry struct {
	users      map[domain.ConnectionID]domain.User
	order      []domain.ConnectionID
	dispatcher domain.Dispatcher
	history    HistoryReplayer
	mu         sync.RWMutex
}

func New(dispatcher domain.Dispatcher, history HistoryReplayer) *Registry {
	return &Registry{
		users:      make(map[domain.ConnectionID]domain.User),
		dispatcher: dispatcher,
		history:    history,
	}
}

func (r *Registry) Register(id domain.ConnectionID, displayName string) []domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[id]; !exists {
		r.order = append(r.order, id)
	}
	r.users[id] = domain.User{ID: id, Name: displayName}
	users := r.snapshotLocked()

	r.history.Replay(func(history []domain.Message) {
		r.dispatcher.Broadcast(domain.EventUserJoined, domain.UserJoined{
			UserID:   id,
			Name:     displayName,
			Users:    users,
			Messages: history,
		})
	})

	slog.Info("user joined", "clientId", id, "name", displayName, "users", len(users))
	return users
}

// Unregister removes id. The second result is false when id was not present, in
// which case nothing is broadcast.
func (r *Registry) Unregister(id domain.ConnectionID) ([]domain.User, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, exists := r.users[id]
	if !exists {
		return r.snapshotLocked(), false
	}
	delete(r.users, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	users := r.snapshotLocked()

	r.dispatcher.Broadcast(domain.EventUserLeft, domain.UserLeft{
		UserID: id,
		Name:   user.Name,
		Users:  users,
	})

	slog.Info("user left", "clientId", id, "name", user.Name, "users", len(users))
	return users, true
}

func (r *Registry) Lookup(id domain.ConnectionID) (domain.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	return user, ok
}

func (r *Registry) Users() []domain.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotLocked()
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

func (r *Registry) snapshotLocked() []domain.User {
	users := make([]domain.User, 0, len(r.order))
	for _, id := range r.order {
		users = append(users, r.users[id])
	}
	return users
}

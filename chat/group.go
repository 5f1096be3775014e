package chat

import (
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"huddle-relay-server/domain"
)

var (
	ErrUnknownGroup   = errors.New("group does not exist")
	ErrEmptyGroupName = errors.New("group name is empty")
)

type Groups struct {
	groups     map[string]*domain.Group
	dispatcher domain.Dispatcher
	mu         sync.RWMutex
}

func NewGroups(dispatcher domain.Dispatcher) *Groups {
	return &Groups{
		groups:     make(map[string]*domain.Group),
		dispatcher: dispatcher,
	}
}

func (s *Groups) Create(creatorName, name string, members []domain.User) (domain.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Group{}, ErrEmptyGroupName
	}

	group := &domain.Group{
		ID:        NewID(),
		Name:      name,
		CreatedBy: creatorName,
		Members:   []domain.User{},
		Messages:  []domain.Message{},
		CreatedAt: time.Now().UnixMilli(),
	}
	for _, m := range members {
		addMember(group, m)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.groups[group.ID] = group
	s.dispatcher.Broadcast(domain.EventGroupCreated, domain.GroupCreated{
		GroupID:   group.ID,
		Name:      group.Name,
		CreatedBy: group.CreatedBy,
		Members:   slices.Clone(group.Members),
		CreatedAt: group.CreatedAt,
	})

	slog.Info("group created", "groupId", group.ID, "name", group.Name, "members", len(group.Members))
	return cloneGroup(group), nil
}

// Post appends to a group's log and broadcasts it to every connection. Membership
// is not checked.
func (s *Groups) Post(groupID string, authorID domain.ConnectionID, authorName, text string) (domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	group, ok := s.groups[groupID]
	if !ok {
		slog.Debug("message to unknown group", "groupId", groupID)
		return domain.Message{}, ErrUnknownGroup
	}

	text, err := ValidateText(text)
	if err != nil {
		slog.Debug("group message rejected", "groupId", groupID, "error", err)
		return domain.Message{}, err
	}

	msg := newMessage(authorID, authorName, text)
	group.Messages = append(group.Messages, msg)

	out := msg.Clone()
	s.dispatcher.Broadcast(domain.EventNewGroupMessage, domain.GroupMessage{
		GroupID: groupID,
		Message: out,
	})
	return out, nil
}

func (s *Groups) Join(groupID string, user domain.User) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	group, ok := s.groups[groupID]
	if !ok {
		return false, ErrUnknownGroup
	}
	if !addMember(group, user) {
		return false, nil
	}

	s.dispatcher.Broadcast(domain.EventGroupJoined, domain.GroupJoined{
		GroupID: groupID,
		User:    user,
	})
	return true, nil
}

func (s *Groups) Get(groupID string) (domain.Group, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	group, ok := s.groups[groupID]
	if !ok {
		return domain.Group{}, false
	}
	return cloneGroup(group), true
}

func (s *Groups) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.groups)
}

func addMember(group *domain.Group, user domain.User) bool {
	for _, m := range group.Members {
		if m.ID == user.ID {
			return false
		}
	}
	group.Members = append(group.Members, user)
	return true
}

func cloneGroup(group *domain.Group) domain.Group {
	out := *group
	out.Members = slices.Clone(group.Members)
	out.Messages = make([]domain.Message, len(group.Messages))
	for i, msg := range group.Messages {
		out.Messages[i] = msg.Clone()
	}
	return out
}

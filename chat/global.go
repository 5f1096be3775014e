package chat

import (
	"log/slog"
	"slices"
	"sync"

	"huddle-relay-server/domain"
)

type Global struct {
	messages   []domain.Message
	index      map[string]int
	dispatcher domain.Dispatcher
	mu         sync.Mutex
}

func NewGlobal(dispatcher domain.Dispatcher) *Global {
	return &Global{
		index:      make(map[string]int),
		dispatcher: dispatcher,
	}
}

func (g *Global) Post(authorID domain.ConnectionID, authorName, text string) (domain.Message, error) {
	text, err := ValidateText(text)
	if err != nil {
		slog.Debug("global message rejected", "clientId", authorID, "error", err)
		return domain.Message{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	msg := newMessage(authorID, authorName, text)
	g.index[msg.ID] = len(g.messages)
	g.messages = append(g.messages, msg)

	out := msg.Clone()
	g.dispatcher.Broadcast(domain.EventNewMessage, out)
	return out, nil
}

func (g *Global) AddReaction(messageID, emoji, reactorName string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	i, ok := g.index[messageID]
	if !ok {
		slog.Debug("reaction to unknown message", "messageId", messageID)
		return false
	}

	msg := &g.messages[i]
	if !slices.Contains(msg.Reactions[emoji], reactorName) {
		msg.Reactions[emoji] = append(msg.Reactions[emoji], reactorName)
	}

	g.dispatcher.Broadcast(domain.EventReactionAdded, domain.Reaction{
		MessageID: messageID,
		Emoji:     emoji,
		UserName:  reactorName,
	})
	return true
}

func (g *Global) ToggleLike(messageID, likerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	i, ok := g.index[messageID]
	if !ok {
		slog.Debug("like on unknown message", "messageId", messageID)
		return false
	}

	msg := &g.messages[i]
	if at := slices.Index(msg.Likes, likerID); at >= 0 {
		msg.Likes = slices.Delete(msg.Likes, at, at+1)
	} else {
		msg.Likes = append(msg.Likes, likerID)
	}

	g.dispatcher.Broadcast(domain.EventLikeToggled, domain.Like{
		MessageID: messageID,
		UserID:    likerID,
	})
	return true
}

func (g *Global) Replay(fn func(history []domain.Message)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fn(g.historyLocked())
}

func (g *Global) History() []domain.Message {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.historyLocked()
}

func (g *Global) Get(messageID string) (domain.Message, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	i, ok := g.index[messageID]
	if !ok {
		return domain.Message{}, false
	}
	return g.messages[i].Clone(), true
}

func (g *Global) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.messages)
}

func (g *Global) historyLocked() []domain.Message {
	history := make([]domain.Message, len(g.messages))
	for i, msg := range g.messages {
		history[i] = msg.Clone()
	}
	return history
}

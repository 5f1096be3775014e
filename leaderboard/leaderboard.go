package leaderboard

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"huddle-relay-server/domain"
)

const Size = 10

// Leaderboard keeps the top Size scores, highest first. Equal scores keep
// submission order.
type Leaderboard struct {
	entries    []domain.ScoreEntry
	dispatcher domain.Dispatcher
	mu         sync.Mutex
}

func New(dispatcher domain.Dispatcher) *Leaderboard {
	return &Leaderboard{dispatcher: dispatcher}
}

func (l *Leaderboard) Submit(playerID domain.ConnectionID, playerName string, score int64) []domain.ScoreEntry {
	entry := domain.ScoreEntry{
		UserID:    playerID,
		UserName:  playerName,
		Score:     score,
		Timestamp: time.Now().UnixMilli(),
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, entry)
	slices.SortStableFunc(l.entries, func(a, b domain.ScoreEntry) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return 0
	})
	if len(l.entries) > Size {
		l.entries = l.entries[:Size]
	}

	top := slices.Clone(l.entries)
	l.dispatcher.Broadcast(domain.EventNewGameScore, domain.NewGameScore{
		ScoreEntry:  entry,
		Leaderboard: top,
	})

	slog.Debug("score submitted", "clientId", playerID, "score", score, "entries", len(top))
	return top
}

func (l *Leaderboard) Entries() []domain.ScoreEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]domain.ScoreEntry{}, l.entries...)
}

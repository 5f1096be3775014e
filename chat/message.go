package chat

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"huddle-relay-server/domain"
)

const MaxTextLength = 1000

var (
	ErrEmptyText   = errors.New("message text is empty")
	ErrTextTooLong = errors.New("message text exceeds 1000 characters")
)

func ValidateText(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", ErrEmptyText
	}
	if utf8.RuneCountInString(trimmed) > MaxTextLength {
		return "", ErrTextTooLong
	}
	return trimmed, nil
}

func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func newMessage(authorID domain.ConnectionID, authorName, text string) domain.Message {
	return domain.Message{
		ID:        NewID(),
		From:      authorName,
		FromID:    authorID,
		Text:      text,
		Timestamp: time.Now().UnixMilli(),
		Reactions: make(map[string][]string),
		Likes:     []string{},
	}
}

package domain

import "encoding/json"

type ConnectionID = string

type User struct {
	ID   ConnectionID `json:"socketId"`
	Name string       `json:"name"`
}

type Message struct {
	ID        string              `json:"id"`
	From      string              `json:"from"`
	FromID    ConnectionID        `json:"fromId"`
	Text      string              `json:"text"`
	Timestamp int64               `json:"timestamp"`
	Reactions map[string][]string `json:"reactions"`
	Likes     []string            `json:"likes"`
}

func (m Message) Clone() Message {
	out := m
	out.Reactions = make(map[string][]string, len(m.Reactions))
	for emoji, names := range m.Reactions {
		out.Reactions[emoji] = append([]string(nil), names...)
	}
	out.Likes = append([]string{}, m.Likes...)
	return out
}

type Group struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedBy string    `json:"createdBy"`
	Members   []User    `json:"members"`
	Messages  []Message `json:"messages"`
	CreatedAt int64     `json:"createdAt"`
}

type ScoreEntry struct {
	UserID    ConnectionID `json:"userId"`
	UserName  string       `json:"userName"`
	Score     int64        `json:"score"`
	Timestamp int64        `json:"timestamp"`
}

type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type Connection interface {
	ID() ConnectionID
	Send(data []byte) error
	Close() error
}

type Dispatcher interface {
	Attach(conn Connection)
	Detach(conn Connection)
	Unicast(id ConnectionID, event string, payload any) bool
	Broadcast(event string, payload any)
	Stats() int
}

type MessageHandler interface {
	Handle(conn Connection, data []byte)
	Disconnect(conn Connection)
}

package domain

import "encoding/json"

// Client to server.
const (
	EventJoin           = "join"
	EventMessage        = "message"
	EventAddReaction    = "addReaction"
	EventToggleLike     = "toggleLike"
	EventPrivateMessage = "privateMessage"
	EventCreateGroup    = "createGroup"
	EventGroupMessage   = "groupMessage"
	EventJoinGroup      = "joinGroup"
	EventSubmitScore    = "submitGameScore"
	EventInitiateCall   = "initiateCall"
	EventAnswerCall     = "answerCall"
	EventIceCandidate   = "iceCandidate"
	EventEndCall        = "endCall"
	EventPing           = "ping"
)

// Server to client.
const (
	EventUserJoined             = "userJoined"
	EventUserLeft               = "userLeft"
	EventNewMessage             = "newMessage"
	EventReactionAdded          = "reactionAdded"
	EventLikeToggled            = "likeToggled"
	EventPrivateMessageReceived = "privateMessageReceived"
	EventPrivateMessageSent     = "privateMessageSent"
	EventGroupCreated           = "groupCreated"
	EventNewGroupMessage        = "newGroupMessage"
	EventGroupJoined            = "groupJoined"
	EventNewGameScore           = "newGameScore"
	EventIncomingCall           = "incomingCall"
	EventCallAnswered           = "callAnswered"
	EventCallEnded              = "callEnded"
	EventPong                   = "pong"
)

type Ping struct {
	Timestamp int64        `json:"timestamp"`
	ClientID  ConnectionID `json:"clientId,omitempty"`
}

type JoinRequest struct {
	DisplayName string `json:"displayName"`
	Name        string `json:"name"`
}

type UserJoined struct {
	UserID   ConnectionID `json:"userId"`
	Name     string       `json:"name"`
	Users    []User       `json:"users"`
	Messages []Message    `json:"messages"`
}

type UserLeft struct {
	UserID ConnectionID `json:"userId"`
	Name   string       `json:"name"`
	Users  []User       `json:"users"`
}

type PostRequest struct {
	Text string `json:"text"`
	Name string `json:"name"`
}

type Reaction struct {
	MessageID string `json:"messageId"`
	Emoji     string `json:"emoji"`
	UserName  string `json:"userName"`
}

type Like struct {
	MessageID string `json:"messageId"`
	UserID    string `json:"userId"`
}

type PrivateRequest struct {
	To       ConnectionID `json:"to"`
	Text     string       `json:"text"`
	FromName string       `json:"fromName"`
}

// PrivateMessage carries the sender's connection id under "from", shadowing the
// embedded author name, which moves to "fromName".
type PrivateMessage struct {
	Message
	From     ConnectionID `json:"from"`
	FromName string       `json:"fromName"`
	To       ConnectionID `json:"to"`
}

type CreateGroupRequest struct {
	GroupName string `json:"groupName"`
	Members   []User `json:"members"`
}

type GroupCreated struct {
	GroupID   string `json:"groupId"`
	Name      string `json:"name"`
	CreatedBy string `json:"createdBy"`
	Members   []User `json:"members"`
	CreatedAt int64  `json:"createdAt"`
}

type GroupMessageRequest struct {
	GroupID  string `json:"groupId"`
	Text     string `json:"text"`
	FromName string `json:"fromName"`
}

type GroupMessage struct {
	GroupID string  `json:"groupId"`
	Message Message `json:"message"`
}

type JoinGroupRequest struct {
	GroupID string `json:"groupId"`
}

type GroupJoined struct {
	GroupID string `json:"groupId"`
	User    User   `json:"user"`
}

type ScoreRequest struct {
	Score    int64  `json:"score"`
	UserName string `json:"userName"`
}

type NewGameScore struct {
	ScoreEntry
	Leaderboard []ScoreEntry `json:"leaderboard"`
}

type CallSignal struct {
	To        ConnectionID    `json:"to"`
	Offer     json.RawMessage `json:"offer,omitempty"`
	Answer    json.RawMessage `json:"answer,omitempty"`
	Candidate json.RawMessage `json:"candidate,omitempty"`
}

type IncomingCall struct {
	From     ConnectionID    `json:"from"`
	FromName string          `json:"fromName"`
	Offer    json.RawMessage `json:"offer"`
}

type CallAnswered struct {
	From   ConnectionID    `json:"from"`
	Answer json.RawMessage `json:"answer"`
}

type IceCandidate struct {
	From      ConnectionID    `json:"from"`
	Candidate json.RawMessage `json:"candidate"`
}

type CallEnded struct {
	From ConnectionID `json:"from"`
}

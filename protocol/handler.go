package protocol

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"huddle-relay-server/chat"
	"huddle-relay-server/domain"
	"huddle-relay-server/leaderboard"
	"huddle-relay-server/presence"
	"huddle-relay-server/signaling"
)

type Services struct {
	Dispatcher  domain.Dispatcher
	Presence    *presence.Registry
	Global      *chat.Global
	Private     *chat.Private
	Groups      *chat.Groups
	Calls       *signaling.Relay
	Leaderboard *leaderboard.Leaderboard
}

// NewServices builds every component on top of one dispatcher.
func NewServices(dispatcher domain.Dispatcher) Services {
	global := chat.NewGlobal(dispatcher)
	registry := presence.New(dispatcher, global)
	return Services{
		Dispatcher:  dispatcher,
		Presence:    registry,
		Global:      global,
		Private:     chat.NewPrivate(dispatcher),
		Groups:      chat.NewGroups(dispatcher),
		Calls:       signaling.New(dispatcher, registry),
		Leaderboard: leaderboard.New(dispatcher),
	}
}

type Handler struct {
	svc Services
}

func NewHandler(svc Services) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Handle(conn domain.Connection, data []byte) {
	var env domain.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		slog.Warn("invalid message", "clientId", conn.ID(), "error", err)
		return
	}

	if err := h.route(conn.ID(), env); err != nil {
		slog.Warn("invalid payload", "clientId", conn.ID(), "event", env.Event, "error", err)
	}
}

// Disconnect is called once by the transport when a connection goes away.
func (h *Handler) Disconnect(conn domain.Connection) {
	h.svc.Presence.Unregister(conn.ID())
}

func (h *Handler) route(id domain.ConnectionID, env domain.Envelope) error {
	switch env.Event {
	case domain.EventPing:
		var req domain.Ping
		if err := decode(env, &req); err != nil {
			return err
		}
		h.svc.Dispatcher.Unicast(id, domain.EventPong, domain.Ping{Timestamp: req.Timestamp, ClientID: id})

	case domain.EventJoin:
		var req domain.JoinRequest
		if err := decode(env, &req); err != nil {
			return err
		}
		name := strings.TrimSpace(req.DisplayName)
		if name == "" {
			name = strings.TrimSpace(req.Name)
		}
		if name == "" {
			slog.Debug("join without a name", "clientId", id)
			return nil
		}
		h.svc.Presence.Register(id, name)

	case domain.EventMessage:
		var req domain.PostRequest
		if err := decode(env, &req); err != nil {
			return err
		}
		h.svc.Global.Post(id, h.nameOr(id, req.Name), req.Text)

	case domain.EventAddReaction:
		var req domain.Reaction
		if err := decode(env, &req); err != nil {
			return err
		}
		h.svc.Global.AddReaction(req.MessageID, req.Emoji, h.nameOr(id, req.UserName))

	case domain.EventToggleLike:
		var req domain.Like
		if err := decode(env, &req); err != nil {
			return err
		}
		if req.UserID == "" {
			req.UserID = id
		}
		h.svc.Global.ToggleLike(req.MessageID, req.UserID)

	case domain.EventPrivateMessage:
		var req domain.PrivateRequest
		if err := decode(env, &req); err != nil {
			return err
		}
		h.svc.Private.Send(id, h.nameOr(id, req.FromName), req.To, req.Text)

	case domain.EventCreateGroup:
		var req domain.CreateGroupRequest
		if err := decode(env, &req); err != nil {
			return err
		}
		if _, err := h.svc.Groups.Create(h.nameOr(id, ""), req.GroupName, req.Members); err != nil {
			slog.Debug("group not created", "clientId", id, "error", err)
		}

	case domain.EventGroupMessage:
		var req domain.GroupMessageRequest
		if err := decode(env, &req); err != nil {
			return err
		}
		h.svc.Groups.Post(req.GroupID, id, h.nameOr(id, req.FromName), req.Text)

	case domain.EventJoinGroup:
		var req domain.JoinGroupRequest
		if err := decode(env, &req); err != nil {
			return err
		}
		user, ok := h.svc.Presence.Lookup(id)
		if !ok {
			slog.Debug("joinGroup before join", "clientId", id)
			return nil
		}
		if _, err := h.svc.Groups.Join(req.GroupID, user); err != nil {
			slog.Debug("group not joined", "clientId", id, "groupId", req.GroupID, "error", err)
		}

	case domain.EventSubmitScore:
		var req domain.ScoreRequest
		if err := decode(env, &req); err != nil {
			return err
		}
		h.svc.Leaderboard.Submit(id, h.nameOr(id, req.UserName), req.Score)

	case domain.EventInitiateCall:
		var req domain.CallSignal
		if err := decode(env, &req); err != nil {
			return err
		}
		h.svc.Calls.InitiateCall(id, req.To, req.Offer)

	case domain.EventAnswerCall:
		var req domain.CallSignal
		if err := decode(env, &req); err != nil {
			return err
		}
		h.svc.Calls.AnswerCall(id, req.To, req.Answer)

	case domain.EventIceCandidate:
		var req domain.CallSignal
		if err := decode(env, &req); err != nil {
			return err
		}
		h.svc.Calls.RelayIceCandidate(id, req.To, req.Candidate)

	case domain.EventEndCall:
		var req domain.CallSignal
		if err := decode(env, &req); err != nil {
			return err
		}
		h.svc.Calls.EndCall(id, req.To)

	default:
		return fmt.Errorf("unknown event %q", env.Event)
	}
	return nil
}

// nameOr prefers the name the client sent and falls back to its registry entry.
func (h *Handler) nameOr(id domain.ConnectionID, sent string) string {
	if name := strings.TrimSpace(sent); name != "" {
		return name
	}
	if user, ok := h.svc.Presence.Lookup(id); ok {
		return user.Name
	}
	return ""
}

func decode(env domain.Envelope, target any) error {
	if len(env.Data) == 0 {
		return fmt.Errorf("%s: missing data", env.Event)
	}
	if err := json.Unmarshal(env.Data, target); err != nil {
		return fmt.Errorf("%s: %w", env.Event, err)
	}
	return nil
}

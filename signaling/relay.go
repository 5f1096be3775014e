package signaling

import (
	"encoding/json"
	"log/slog"

	"huddle-relay-server/domain"
)

type NameLookup interface {
	Lookup(id domain.ConnectionID) (domain.User, bool)
}

// Relay forwards call setup payloads to exactly one target. It keeps no per-call
// state and never broadcasts.
type Relay struct {
	dispatcher domain.Dispatcher
	names      NameLookup
}

func New(dispatcher domain.Dispatcher, names NameLookup) *Relay {
	return &Relay{dispatcher: dispatcher, names: names}
}

// InitiateCall reports whether the callee was reachable. The caller is never told.
func (r *Relay) InitiateCall(callerID, calleeID domain.ConnectionID, offer json.RawMessage) bool {
	var callerName string
	if user, ok := r.names.Lookup(callerID); ok {
		callerName = user.Name
	}

	delivered := r.dispatcher.Unicast(calleeID, domain.EventIncomingCall, domain.IncomingCall{
		From:     callerID,
		FromName: callerName,
		Offer:    offer,
	})
	slog.Info("call initiated", "from", callerID, "to", calleeID, "delivered", delivered)
	return delivered
}

func (r *Relay) AnswerCall(calleeID, callerID domain.ConnectionID, answer json.RawMessage) bool {
	return r.dispatcher.Unicast(callerID, domain.EventCallAnswered, domain.CallAnswered{
		From:   calleeID,
		Answer: answer,
	})
}

func (r *Relay) RelayIceCandidate(fromID, toID domain.ConnectionID, candidate json.RawMessage) bool {
	return r.dispatcher.Unicast(toID, domain.EventIceCandidate, domain.IceCandidate{
		From:      fromID,
		Candidate: candidate,
	})
}

func (r *Relay) EndCall(fromID, toID domain.ConnectionID) bool {
	delivered := r.dispatcher.Unicast(toID, domain.EventCallEnded, domain.CallEnded{From: fromID})
	slog.Info("call ended", "from", fromID, "to", toID, "delivered", delivered)
	return delivered
}

package chat

import (
	"log/slog"

	"huddle-relay-server/domain"
)

type Private struct {
	dispatcher domain.Dispatcher
}

func NewPrivate(dispatcher domain.Dispatcher) *Private {
	return &Private{dispatcher: dispatcher}
}

// Send unicasts the message to toID and broadcasts the sent confirmation to every
// connection. The confirmation fan-out mirrors the established client protocol.
func (p *Private) Send(fromID domain.ConnectionID, fromName string, toID domain.ConnectionID, text string) (domain.PrivateMessage, error) {
	text, err := ValidateText(text)
	if err != nil {
		slog.Debug("private message rejected", "clientId", fromID, "error", err)
		return domain.PrivateMessage{}, err
	}

	msg := domain.PrivateMessage{
		Message:  newMessage(fromID, fromName, text),
		From:     fromID,
		FromName: fromName,
		To:       toID,
	}

	if !p.dispatcher.Unicast(toID, domain.EventPrivateMessageReceived, msg) {
		slog.Debug("private message recipient offline", "from", fromID, "to", toID)
	}
	p.dispatcher.Broadcast(domain.EventPrivateMessageSent, msg)
	return msg, nil
}

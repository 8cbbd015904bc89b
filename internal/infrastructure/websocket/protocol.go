package websocket

import (
	"encoding/json"

	"upcyclehub/internal/domain/entity"
	"upcyclehub/pkg/errors"
)

// Client-to-server event types
const (
	EventTypeAuth = "auth"
	EventTypeChat = "chat"
)

// Server-to-client event types
const (
	EventTypeMessage     = "message"      // delivered to the recipient
	EventTypeMessageSent = "message_sent" // persistence acknowledgment to the sender
	EventTypeError       = "error"
)

// Event is one of the closed set of inbound protocol events. Decoding
// validates the required-field shape of each kind at the boundary, so a
// handler never sees a half-formed event.
type Event interface {
	eventType() string
}

// AuthEvent binds the connection to a user identity. It must be the first
// event on a connection.
type AuthEvent struct {
	UserID int64 `json:"userId"`
}

func (AuthEvent) eventType() string { return EventTypeAuth }

// ChatEvent sends a message in an existing conversation.
type ChatEvent struct {
	ConversationID int64  `json:"conversationId"`
	Content        string `json:"content"`
}

func (ChatEvent) eventType() string { return EventTypeChat }

// ParseEvent decodes an inbound frame into a typed event. Anything that
// does not match a known kind with all required fields present is a
// BAD_REQUEST error; the connection stays open.
func ParseEvent(data []byte) (Event, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, errors.BadRequest("Invalid message format", err)
	}

	switch head.Type {
	case EventTypeAuth:
		var ev AuthEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, errors.BadRequest("Invalid auth payload", err)
		}
		if ev.UserID <= 0 {
			return nil, errors.BadRequest("userId is required", nil)
		}
		return &ev, nil

	case EventTypeChat:
		var ev ChatEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, errors.BadRequest("Invalid chat payload", err)
		}
		if ev.ConversationID <= 0 {
			return nil, errors.BadRequest("conversationId is required", nil)
		}
		if ev.Content == "" {
			return nil, errors.BadRequest("content must not be empty", nil)
		}
		return &ev, nil

	case "":
		return nil, errors.BadRequest("Missing event type", nil)

	default:
		return nil, errors.BadRequest("Unknown message type", nil)
	}
}

type messageFrame struct {
	Type string          `json:"type"`
	Data *entity.Message `json:"data"`
}

type errorFrame struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func encodeMessageFrame(eventType string, message *entity.Message) []byte {
	payload, _ := json.Marshal(messageFrame{Type: eventType, Data: message})
	return payload
}

func encodeErrorFrame(message string) []byte {
	payload, _ := json.Marshal(errorFrame{Type: EventTypeError, Message: message})
	return payload
}

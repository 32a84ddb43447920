package ws

import (
	"encoding/json"
	"time"

	"github.com/MateoL17/LinKage/internal/domain"
)

// Event types - Client → Server
const (
	EventTypeConversationSubscribe   = "conversation.subscribe"
	EventTypeConversationUnsubscribe = "conversation.unsubscribe"
	EventTypeMessageSend             = "message.send"
	EventTypePing                    = "ping"
)

// Event types - Server → Client
const (
	EventTypeMessageNew = "message.new"
	EventTypeMatchNew   = "match.new"
	EventTypePong       = "pong"
	EventTypeError      = "error"
)

// Event is the base envelope for all WebSocket messages.
type Event struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"ts,omitempty"`
}

// --- Client → Server payloads ---

type ConversationPayload struct {
	Counterpart string `json:"counterpart"`
}

type MessageSendPayload struct {
	Recipient   string `json:"recipient"`
	Body        string `json:"body"`
	ClientToken string `json:"client_token,omitempty"`
}

// --- Server → Client payloads ---

type MessagePayload struct {
	domain.ChatMessage
}

type MatchPayload struct {
	Record domain.LikeRecord `json:"record"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewEvent creates a server→client event with the current timestamp.
func NewEvent(eventType string, payload any) (*Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Event{
		Type:      eventType,
		Payload:   data,
		Timestamp: time.Now().Unix(),
	}, nil
}

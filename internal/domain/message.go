package domain

import (
	"time"

	"github.com/google/uuid"
)

// GeneralRoom is the broadcast pseudo-user. Messages addressed to it skip
// the recipient-existence check and never show up in conversation lists.
const GeneralRoom = "general"

type ChatMessage struct {
	ID        uuid.UUID `json:"id"`
	Sender    string    `json:"sender"`
	Recipient string    `json:"recipient"`
	Body      string    `json:"body"`
	SentAt    time.Time `json:"sent_at"`
	Read      bool      `json:"read"`
	// ClientToken echoes the caller-generated idempotency token so
	// optimistic UI state can be reconciled by exact key. Never persisted.
	ClientToken string `json:"client_token,omitempty"`
	// Joined fields
	SenderPhoto string `json:"sender_photo,omitempty"`
}

// ConversationSummary is one entry of a user's conversation list: the
// counterpart plus the most recent message exchanged with them.
type ConversationSummary struct {
	Counterpart string    `json:"counterpart"`
	LastBody    string    `json:"last_body"`
	LastAt      time.Time `json:"last_at"`
	// Joined fields
	CounterpartPhoto       string `json:"counterpart_photo,omitempty"`
	CounterpartDisplayName string `json:"counterpart_display_name,omitempty"`
}

// IsGeneralRoom reports whether username names the broadcast pseudo-user.
func IsGeneralRoom(username string) bool {
	return username == GeneralRoom || username == "@"+GeneralRoom
}

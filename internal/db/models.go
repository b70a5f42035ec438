package db

import (
	"time"

	"github.com/google/uuid"
)

// Conversation is one persisted dialogue session.
type Conversation struct {
	ID        uuid.UUID
	Provider  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ConversationTurn is one utterance within a conversation.
// Mood, Confidence and Topic are set only on user turns once the
// analyzer has produced them.
type ConversationTurn struct {
	ConversationID uuid.UUID
	Seq            int
	Speaker        string
	Text           string
	Mood           *string  // nullable
	Confidence     *float64 // nullable
	Topic          *string  // nullable
	CreatedAt      time.Time
}

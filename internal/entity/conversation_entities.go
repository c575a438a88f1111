package entity

import (
	"time"

	"github.com/google/uuid"
)

// ConversationMessage is one entry of the active conversation. Messages are
// append-only: they are never edited and only removed by clearing the whole
// conversation.
type ConversationMessage struct {
	Id     uuid.UUID
	UserId uuid.UUID
	// Seq is the insertion order of the message, assigned by the store.
	// Conversation rendering sorts by Seq, not CreatedAt, so exchanges
	// written within the same clock tick keep their order.
	Seq       int64
	Content   string
	IsUser    bool
	CreatedAt time.Time
}

// HistoryEntry is the day-level summary of a conversation: created once per
// calendar day on the first completed user+bot exchange, capped to the ten
// most recent entries per user.
type HistoryEntry struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	Date         string // localized calendar date, dd/mm/yyyy
	Summary      string
	MessageCount int
	CreatedAt    time.Time
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is the flattened per-turn record, kept in lockstep with
// the conversation's embedded history by the reconciler.
type ChatMessage struct {
	Id             uuid.UUID
	ConversationId uuid.UUID
	Role           string
	Content        string
	CreatedAt      time.Time
}

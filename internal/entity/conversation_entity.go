package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatTurn is one entry of a conversation's embedded history.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Conversation is a titled, owned sequence of turns. ExternalId is the
// caller-supplied id, unique per owner; SequenceNumber is globally
// unique across all owners and assigned at first write.
type Conversation struct {
	Id             uuid.UUID
	ExternalId     string
	SequenceNumber int64
	UserId         uuid.UUID
	Title          string
	History        []ChatTurn
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Conversation struct {
	Id uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	// ExternalId is unique per owner; SequenceNumber is unique across
	// all owners. Both constraints back the create-or-fetch and
	// insert-with-retry paths, do not relax them.
	ExternalId     string         `gorm:"type:varchar(100);not null;uniqueIndex:idx_conversations_external_user"`
	UserId         uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:idx_conversations_external_user"`
	SequenceNumber int64          `gorm:"not null;uniqueIndex"`
	Title          string         `gorm:"type:varchar(200);not null"`
	History        datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (Conversation) TableName() string {
	return "conversations"
}

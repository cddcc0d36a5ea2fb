package entity

import (
	"time"

	"github.com/google/uuid"
)

// Document is the durable record of an upload. ExtractedText is nil
// when extraction produced nothing. Immutable after creation except
// deletion.
type Document struct {
	Id            uuid.UUID
	UserId        uuid.UUID
	Filename      string
	FileType      string
	FileSize      int64
	ExtractedText *string
	UploadedAt    time.Time
}

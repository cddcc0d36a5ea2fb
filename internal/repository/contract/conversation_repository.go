package contract

import (
	"context"

	"docchat-be/internal/entity"
	"docchat-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ConversationRepository interface {
	Create(ctx context.Context, conversation *entity.Conversation) error
	Update(ctx context.Context, conversation *entity.Conversation) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Conversation, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Conversation, error)
	// MaxSequenceNumber returns the highest sequence number across all
	// owners, soft-deleted rows included; 0 when no conversation exists.
	MaxSequenceNumber(ctx context.Context) (int64, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

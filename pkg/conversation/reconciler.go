package conversation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"docchat-be/internal/constant"
	"docchat-be/internal/entity"
	"docchat-be/internal/repository/specification"
	"docchat-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// How many times we re-derive the next sequence number before giving up.
// Two writers colliding on the same number is rare; three in a row racing
// each other through five rounds is not a thing that happens.
const maxSequenceRetries = 5

// Exchange is one user/assistant round trip to be appended to a
// conversation.
type Exchange struct {
	UserContent      string
	AssistantContent string
	// Title is applied only while the conversation still carries the
	// placeholder title.
	Title string
}

// Reconciler appends exchanges to conversations, creating them on first
// contact. It keeps the flattened chat_messages table and the embedded
// history column in lockstep: both are written in the same transaction.
type Reconciler struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewReconciler(uowFactory unitofwork.RepositoryFactory) *Reconciler {
	return &Reconciler{
		uowFactory: uowFactory,
	}
}

// Record persists one exchange under the conversation identified by
// externalId, creating the conversation if needed. An empty externalId
// means "start a new conversation"; the generated id is returned so the
// caller can hand it back to the client.
func (r *Reconciler) Record(ctx context.Context, userId uuid.UUID, externalId string, exchange Exchange) (string, *entity.Conversation, error) {
	if externalId == "" {
		externalId = uuid.NewString()
	}

	conv, err := r.ensureConversation(ctx, userId, externalId)
	if err != nil {
		return "", nil, err
	}

	conv, err = r.appendExchange(ctx, conv, exchange)
	if err != nil {
		return "", nil, err
	}

	return externalId, conv, nil
}

// Ensure finds or creates the conversation identified by externalId for
// the given owner without appending any turns. Used by flows that manage
// the turn list themselves.
func (r *Reconciler) Ensure(ctx context.Context, userId uuid.UUID, externalId string) (*entity.Conversation, error) {
	return r.ensureConversation(ctx, userId, externalId)
}

// ensureConversation finds or creates the (externalId, userId) row.
// Creation runs outside any transaction: the sequence number is claimed
// by inserting under its unique index and retrying on collision, and a
// failed insert must not poison a surrounding transaction.
func (r *Reconciler) ensureConversation(ctx context.Context, userId uuid.UUID, externalId string) (*entity.Conversation, error) {
	uow := r.uowFactory.NewUnitOfWork(ctx)
	repo := uow.ConversationRepository()

	existing, err := repo.FindOne(ctx,
		specification.ByExternalId{ExternalId: externalId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	for attempt := 0; attempt < maxSequenceRetries; attempt++ {
		maxSeq, err := repo.MaxSequenceNumber(ctx)
		if err != nil {
			return nil, err
		}

		conv := &entity.Conversation{
			Id:             uuid.New(),
			ExternalId:     externalId,
			SequenceNumber: maxSeq + 1,
			UserId:         userId,
			Title:          constant.DefaultChatTitle,
			History:        []entity.ChatTurn{},
			CreatedAt:      time.Now(),
		}

		err = repo.Create(ctx, conv)
		if err == nil {
			return conv, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}

		// Either another writer claimed our sequence number, or a
		// concurrent request created this same conversation. The latter
		// ends the loop with the winner's row.
		existing, ferr := repo.FindOne(ctx,
			specification.ByExternalId{ExternalId: externalId},
			specification.UserOwnedBy{UserID: userId},
		)
		if ferr != nil {
			return nil, ferr
		}
		if existing != nil {
			return existing, nil
		}
	}

	return nil, fmt.Errorf("could not claim a conversation sequence number after %d attempts", maxSequenceRetries)
}

// appendExchange writes the two message rows and the updated history
// column in a single transaction.
func (r *Reconciler) appendExchange(ctx context.Context, conv *entity.Conversation, exchange Exchange) (*entity.Conversation, error) {
	uow := r.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	now := time.Now()
	messages := []*entity.ChatMessage{
		{
			Id:             uuid.New(),
			ConversationId: conv.Id,
			Role:           constant.ChatMessageRoleUser,
			Content:        exchange.UserContent,
			CreatedAt:      now,
		},
		{
			Id:             uuid.New(),
			ConversationId: conv.Id,
			Role:           constant.ChatMessageRoleAssistant,
			Content:        exchange.AssistantContent,
			// Nudged forward so created_at ordering never interleaves
			// the pair.
			CreatedAt: now.Add(time.Millisecond),
		},
	}
	if err := uow.ChatMessageRepository().CreateBulk(ctx, messages); err != nil {
		return nil, err
	}

	conv.History = append(conv.History,
		entity.ChatTurn{Role: constant.ChatMessageRoleUser, Content: exchange.UserContent},
		entity.ChatTurn{Role: constant.ChatMessageRoleAssistant, Content: exchange.AssistantContent},
	)
	if exchange.Title != "" && (conv.Title == "" || conv.Title == constant.DefaultChatTitle) {
		conv.Title = exchange.Title
	}
	updatedAt := now
	conv.UpdatedAt = &updatedAt

	if err := uow.ConversationRepository().Update(ctx, conv); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return conv, nil
}

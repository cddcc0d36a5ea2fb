package service

import (
	"context"
	"strings"
	"time"

	"docchat-be/internal/constant"
	"docchat-be/internal/dto"
	"docchat-be/internal/entity"
	"docchat-be/internal/pkg/apperrors"
	"docchat-be/internal/pkg/logger"
	"docchat-be/internal/repository/memory"
	"docchat-be/internal/repository/specification"
	"docchat-be/internal/repository/unitofwork"
	"docchat-be/pkg/chatcontext"
	"docchat-be/pkg/conversation"
	"docchat-be/pkg/llm"
	"docchat-be/pkg/utils"

	"github.com/google/uuid"
)

type IChatService interface {
	SendChat(ctx context.Context, userId uuid.UUID, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
	GetChats(ctx context.Context, userId uuid.UUID) ([]dto.ChatSessionResponse, error)
	GetChat(ctx context.Context, userId uuid.UUID, chatId string) (*dto.GetChatResponse, error)
	SaveChat(ctx context.Context, userId uuid.UUID, chatId string, req *dto.SaveChatRequest) (*dto.SaveChatResponse, error)
	DeleteChat(ctx context.Context, userId uuid.UUID, chatId string) error
}

type chatService struct {
	uowFactory    unitofwork.RepositoryFactory
	documentCache *memory.DocumentCache
	assembler     *chatcontext.Assembler
	provider      llm.LLMProvider
	reconciler    *conversation.Reconciler
	llmLog        logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	documentCache *memory.DocumentCache,
	provider llm.LLMProvider,
	reconciler *conversation.Reconciler,
	llmLog logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:    uowFactory,
		documentCache: documentCache,
		assembler:     chatcontext.NewAssembler(),
		provider:      provider,
		reconciler:    reconciler,
		llmLog:        llmLog,
	}
}

func (s *chatService) SendChat(ctx context.Context, userId uuid.UUID, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	message := strings.TrimSpace(req.Message)

	docs := s.documentCache.Get(req.ChatId)

	history := make([]llm.Message, 0, len(req.History))
	for _, turn := range req.History {
		history = append(history, llm.Message{Role: turn.Role, Content: turn.Content})
	}

	messages, err := s.assembler.BuildChatMessages(docs, history, message)
	if err != nil {
		return nil, err
	}

	s.llmLog.Info("chat", "gateway call", map[string]interface{}{
		"chat_id":   req.ChatId,
		"messages":  len(messages),
		"documents": len(docs),
	})

	response, err := s.provider.Chat(ctx, messages,
		llm.WithTemperature(0.7),
		llm.WithMaxTokens(800),
	)
	if err != nil {
		return nil, apperrors.NewExternal("failed to get response from AI service", err)
	}

	chatId, _, err := s.reconciler.Record(ctx, userId, req.ChatId, conversation.Exchange{
		UserContent:      message,
		AssistantContent: response,
		Title:            utils.HardCut(message, constant.ChatTitleMaxLen),
	})
	if err != nil {
		return nil, err
	}

	return &dto.SendChatResponse{
		Response: response,
		ChatId:   chatId,
	}, nil
}

func (s *chatService) GetChats(ctx context.Context, userId uuid.UUID) ([]dto.ChatSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversations, err := uow.ConversationRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "updated_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	sessions := make([]dto.ChatSessionResponse, 0, len(conversations))
	for _, conv := range conversations {
		sessions = append(sessions, dto.ChatSessionResponse{
			ChatId:    conv.ExternalId,
			Title:     conv.Title,
			CreatedAt: conv.CreatedAt,
			UpdatedAt: conv.UpdatedAt,
		})
	}
	return sessions, nil
}

func (s *chatService) GetChat(ctx context.Context, userId uuid.UUID, chatId string) (*dto.GetChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conv, err := uow.ConversationRepository().FindOne(ctx,
		specification.ByExternalId{ExternalId: chatId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, apperrors.NewNotFound("Chat not found")
	}

	rows, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByConversationID{ConversationID: conv.Id},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	messages := make([]dto.ChatMessageResponse, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, dto.ChatMessageResponse{
			Role:      row.Role,
			Content:   row.Content,
			CreatedAt: row.CreatedAt,
		})
	}

	// Backward-compat read path: conversations recorded before the
	// flattened table existed only carry the embedded history.
	if len(messages) == 0 && len(conv.History) > 0 {
		for _, turn := range conv.History {
			messages = append(messages, dto.ChatMessageResponse{
				Role:      turn.Role,
				Content:   turn.Content,
				CreatedAt: conv.CreatedAt,
			})
		}
	}

	return &dto.GetChatResponse{
		ChatId:   conv.ExternalId,
		Title:    conv.Title,
		Messages: messages,
	}, nil
}

func (s *chatService) SaveChat(ctx context.Context, userId uuid.UUID, chatId string, req *dto.SaveChatRequest) (*dto.SaveChatResponse, error) {
	turns := make([]entity.ChatTurn, 0, len(req.History))
	for _, t := range req.History {
		if t.Role == constant.ChatMessageRoleSystem {
			continue
		}
		role := t.Role
		if role == "" {
			role = constant.ChatMessageRoleUser
		}
		turns = append(turns, entity.ChatTurn{Role: role, Content: t.Content})
	}

	conv, err := s.reconciler.Ensure(ctx, userId, chatId)
	if err != nil {
		return nil, err
	}

	title := deriveTitle(req.Title, turns)
	if title == "" {
		title = conv.Title
	}

	// Replacing the turn list wholesale keeps repeated saves of the same
	// chat idempotent: one conversation, one copy of the messages.
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().DeleteByConversationId(ctx, conv.Id); err != nil {
		return nil, err
	}

	now := time.Now()
	rows := make([]*entity.ChatMessage, 0, len(turns))
	for i, turn := range turns {
		rows = append(rows, &entity.ChatMessage{
			Id:             uuid.New(),
			ConversationId: conv.Id,
			Role:           turn.Role,
			Content:        turn.Content,
			// Spaced out to keep created_at ordering stable.
			CreatedAt: now.Add(time.Duration(i) * time.Millisecond),
		})
	}
	if err := uow.ChatMessageRepository().CreateBulk(ctx, rows); err != nil {
		return nil, err
	}

	conv.Title = title
	conv.History = turns
	updatedAt := now
	conv.UpdatedAt = &updatedAt
	if err := uow.ConversationRepository().Update(ctx, conv); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &dto.SaveChatResponse{
		ChatId:       conv.ExternalId,
		Title:        conv.Title,
		MessageCount: len(turns),
	}, nil
}

func (s *chatService) DeleteChat(ctx context.Context, userId uuid.UUID, chatId string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conv, err := uow.ConversationRepository().FindOne(ctx,
		specification.ByExternalId{ExternalId: chatId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if conv == nil {
		return apperrors.NewNotFound("Chat not found")
	}

	if err := uow.ConversationRepository().Delete(ctx, conv.Id); err != nil {
		return err
	}

	s.documentCache.Clear(chatId)
	return nil
}

// deriveTitle prefers the explicit title, then the first user turn,
// hard-cut to the display limit. Empty when neither yields anything.
func deriveTitle(explicit string, turns []entity.ChatTurn) string {
	if t := strings.TrimSpace(explicit); t != "" {
		return utils.HardCut(t, constant.ChatTitleMaxLen)
	}
	for _, turn := range turns {
		if turn.Role == constant.ChatMessageRoleUser {
			if t := strings.TrimSpace(turn.Content); t != "" {
				return utils.HardCut(t, constant.ChatTitleMaxLen)
			}
		}
	}
	return ""
}

package service

import (
	"context"
	"errors"
	"testing"

	"docchat-be/internal/dto"
	"docchat-be/internal/pkg/apperrors"
	"docchat-be/internal/repository/memory"
	"docchat-be/internal/repository/unitofwork"
	"docchat-be/pkg/conversation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatService(t *testing.T, provider *fakeLLM) (IChatService, *memory.DocumentCache, unitofwork.RepositoryFactory) {
	t.Helper()
	uowFactory := unitofwork.NewRepositoryFactory(newTestDB(t))
	cache := memory.NewDocumentCache()
	reconciler := conversation.NewReconciler(uowFactory)
	svc := NewChatService(uowFactory, cache, provider, reconciler, nopLogger{})
	return svc, cache, uowFactory
}

func TestSendChatRoundTrip(t *testing.T) {
	ctx := context.Background()
	provider := &fakeLLM{response: "the answer is 42"}
	svc, _, _ := newChatService(t, provider)
	userId := uuid.New()

	res, err := svc.SendChat(ctx, userId, &dto.SendChatRequest{
		Message: "what is the answer?",
	})
	require.NoError(t, err)

	assert.Equal(t, "the answer is 42", res.Response)
	assert.NotEmpty(t, res.ChatId)

	// The recorded exchange comes back through the read path.
	chat, err := svc.GetChat(ctx, userId, res.ChatId)
	require.NoError(t, err)
	require.Len(t, chat.Messages, 2)
	assert.Equal(t, "what is the answer?", chat.Messages[0].Content)
	assert.Equal(t, "the answer is 42", chat.Messages[1].Content)
	assert.Equal(t, "what is the answer?", chat.Title)

	sessions, err := svc.GetChats(ctx, userId)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, res.ChatId, sessions[0].ChatId)
}

func TestSendChatEmptyMessage(t *testing.T) {
	provider := &fakeLLM{response: "unused"}
	svc, _, _ := newChatService(t, provider)

	_, err := svc.SendChat(context.Background(), uuid.New(), &dto.SendChatRequest{
		Message: "   ",
	})
	require.Error(t, err)

	var validationErr *apperrors.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Empty(t, provider.calls, "gateway must not be called for an empty message")
}

func TestSendChatGatewayFailureNoPersistence(t *testing.T) {
	ctx := context.Background()
	provider := &fakeLLM{err: errors.New("connection refused")}
	svc, _, uowFactory := newChatService(t, provider)
	userId := uuid.New()

	_, err := svc.SendChat(ctx, userId, &dto.SendChatRequest{Message: "hello"})
	require.Error(t, err)

	var externalErr *apperrors.ExternalServiceError
	assert.ErrorAs(t, err, &externalErr)

	count, err := uowFactory.NewUnitOfWork(ctx).ConversationRepository().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count, "a failed gateway call must leave no partial state")
}

func TestSendChatInjectsActiveDocuments(t *testing.T) {
	ctx := context.Background()
	provider := &fakeLLM{response: "summary"}
	svc, cache, _ := newChatService(t, provider)

	cache.Upsert("chat-1", "doc-1", "report.pdf", "revenue was 4M")

	_, err := svc.SendChat(ctx, uuid.New(), &dto.SendChatRequest{
		Message: "summarize",
		ChatId:  "chat-1",
	})
	require.NoError(t, err)

	require.Len(t, provider.calls, 1)
	sent := provider.calls[0]
	require.GreaterOrEqual(t, len(sent), 3)
	assert.Contains(t, sent[1].Content, "report.pdf")
	assert.Contains(t, sent[1].Content, "revenue was 4M")
}

func TestSendChatReplaysHistory(t *testing.T) {
	ctx := context.Background()
	provider := &fakeLLM{response: "follow-up answer"}
	svc, _, _ := newChatService(t, provider)

	_, err := svc.SendChat(ctx, uuid.New(), &dto.SendChatRequest{
		Message: "and then?",
		History: []dto.ChatTurnDTO{
			{Role: "user", Content: "first question"},
			{Role: "assistant", Content: "first answer"},
		},
	})
	require.NoError(t, err)

	sent := provider.calls[0]
	require.Len(t, sent, 4)
	assert.Equal(t, "first question", sent[1].Content)
	assert.Equal(t, "first answer", sent[2].Content)
	assert.Equal(t, "and then?", sent[3].Content)
}

func TestGetChatNotFound(t *testing.T) {
	svc, _, _ := newChatService(t, &fakeLLM{})

	_, err := svc.GetChat(context.Background(), uuid.New(), "missing")
	require.Error(t, err)

	var notFoundErr *apperrors.NotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
}

func TestGetChatIsOwnerScoped(t *testing.T) {
	ctx := context.Background()
	provider := &fakeLLM{response: "private answer"}
	svc, _, _ := newChatService(t, provider)

	res, err := svc.SendChat(ctx, uuid.New(), &dto.SendChatRequest{Message: "secret"})
	require.NoError(t, err)

	_, err = svc.GetChat(ctx, uuid.New(), res.ChatId)
	var notFoundErr *apperrors.NotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
}

func TestSaveChatIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, _, uowFactory := newChatService(t, &fakeLLM{})
	userId := uuid.New()

	req := &dto.SaveChatRequest{
		Title: "saved session",
		History: []dto.ChatTurnDTO{
			{Role: "user", Content: "q"},
			{Role: "assistant", Content: "a"},
		},
	}

	first, err := svc.SaveChat(ctx, userId, "chat-save", req)
	require.NoError(t, err)
	second, err := svc.SaveChat(ctx, userId, "chat-save", req)
	require.NoError(t, err)

	assert.Equal(t, first.ChatId, second.ChatId)
	assert.Equal(t, 2, second.MessageCount)

	count, err := uowFactory.NewUnitOfWork(ctx).ConversationRepository().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "repeated saves must not duplicate the conversation")

	chat, err := svc.GetChat(ctx, userId, "chat-save")
	require.NoError(t, err)
	assert.Len(t, chat.Messages, 2, "repeated saves must not duplicate messages")
	assert.Equal(t, "saved session", chat.Title)
}

func TestSaveChatDropsSystemEntries(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newChatService(t, &fakeLLM{})
	userId := uuid.New()

	res, err := svc.SaveChat(ctx, userId, "chat-sys", &dto.SaveChatRequest{
		History: []dto.ChatTurnDTO{
			{Role: "system", Content: "instruction"},
			{Role: "user", Content: "q"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.MessageCount)
}

func TestDeleteChat(t *testing.T) {
	ctx := context.Background()
	provider := &fakeLLM{response: "bye"}
	svc, cache, _ := newChatService(t, provider)
	userId := uuid.New()

	res, err := svc.SendChat(ctx, userId, &dto.SendChatRequest{Message: "hello"})
	require.NoError(t, err)
	cache.Upsert(res.ChatId, "doc-1", "a.txt", "text")

	require.NoError(t, svc.DeleteChat(ctx, userId, res.ChatId))

	sessions, err := svc.GetChats(ctx, userId)
	require.NoError(t, err)
	assert.Empty(t, sessions)
	assert.Empty(t, cache.Get(res.ChatId))

	var notFoundErr *apperrors.NotFoundError
	assert.ErrorAs(t, svc.DeleteChat(ctx, userId, res.ChatId), &notFoundErr)
}

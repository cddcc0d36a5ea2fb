package conversation

import (
	"context"
	"testing"

	"docchat-be/internal/constant"
	"docchat-be/internal/repository/specification"
	"docchat-be/internal/repository/unitofwork"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testSchema = []string{
	`CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		full_name TEXT,
		password_hash TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	)`,
	`CREATE TABLE conversations (
		id TEXT PRIMARY KEY,
		external_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		sequence_number INTEGER NOT NULL,
		title TEXT NOT NULL,
		history TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	)`,
	`CREATE UNIQUE INDEX idx_conversations_external_user ON conversations(external_id, user_id)`,
	`CREATE UNIQUE INDEX idx_conversations_sequence_number ON conversations(sequence_number)`,
	`CREATE TABLE chat_messages (
		id TEXT PRIMARY KEY,
		conversation_id TEXT NOT NULL,
		role TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at DATETIME
	)`,
	`CREATE TABLE documents (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		filename TEXT NOT NULL,
		file_type TEXT NOT NULL,
		file_size INTEGER NOT NULL,
		extracted_text TEXT,
		created_at DATETIME,
		deleted_at DATETIME
	)`,
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// One connection keeps every session on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	for _, ddl := range testSchema {
		require.NoError(t, db.Exec(ddl).Error)
	}
	return db
}

func TestRecordCreatesConversation(t *testing.T) {
	ctx := context.Background()
	uowFactory := unitofwork.NewRepositoryFactory(newTestDB(t))
	r := NewReconciler(uowFactory)
	userId := uuid.New()

	chatId, conv, err := r.Record(ctx, userId, "chat-abc", Exchange{
		UserContent:      "what is the revenue?",
		AssistantContent: "about 4 million",
		Title:            "what is the revenue?",
	})
	require.NoError(t, err)

	assert.Equal(t, "chat-abc", chatId)
	assert.Equal(t, int64(1), conv.SequenceNumber)
	assert.Equal(t, "what is the revenue?", conv.Title)
	require.Len(t, conv.History, 2)
	assert.Equal(t, constant.ChatMessageRoleUser, conv.History[0].Role)
	assert.Equal(t, constant.ChatMessageRoleAssistant, conv.History[1].Role)

	uow := uowFactory.NewUnitOfWork(ctx)
	rows, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByConversationID{ConversationID: conv.Id},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "what is the revenue?", rows[0].Content)
	assert.Equal(t, "about 4 million", rows[1].Content)
}

func TestRecordAppendsToExistingConversation(t *testing.T) {
	ctx := context.Background()
	uowFactory := unitofwork.NewRepositoryFactory(newTestDB(t))
	r := NewReconciler(uowFactory)
	userId := uuid.New()

	_, first, err := r.Record(ctx, userId, "chat-abc", Exchange{
		UserContent: "q1", AssistantContent: "a1", Title: "q1",
	})
	require.NoError(t, err)

	_, second, err := r.Record(ctx, userId, "chat-abc", Exchange{
		UserContent: "q2", AssistantContent: "a2", Title: "q2",
	})
	require.NoError(t, err)

	assert.Equal(t, first.Id, second.Id)
	assert.Equal(t, first.SequenceNumber, second.SequenceNumber)
	require.Len(t, second.History, 4)

	// The title was set on creation and is not re-derived afterwards.
	assert.Equal(t, "q1", second.Title)

	uow := uowFactory.NewUnitOfWork(ctx)
	count, err := uow.ChatMessageRepository().Count(ctx,
		specification.ByConversationID{ConversationID: first.Id},
	)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}

func TestRecordGeneratesExternalId(t *testing.T) {
	ctx := context.Background()
	r := NewReconciler(unitofwork.NewRepositoryFactory(newTestDB(t)))

	chatId, conv, err := r.Record(ctx, uuid.New(), "", Exchange{
		UserContent: "hello", AssistantContent: "hi", Title: "hello",
	})
	require.NoError(t, err)

	_, parseErr := uuid.Parse(chatId)
	assert.NoError(t, parseErr)
	assert.Equal(t, chatId, conv.ExternalId)
}

func TestRecordGlobalSequenceAcrossOwners(t *testing.T) {
	ctx := context.Background()
	r := NewReconciler(unitofwork.NewRepositoryFactory(newTestDB(t)))

	_, convA, err := r.Record(ctx, uuid.New(), "chat-a", Exchange{
		UserContent: "u", AssistantContent: "a", Title: "t",
	})
	require.NoError(t, err)

	_, convB, err := r.Record(ctx, uuid.New(), "chat-b", Exchange{
		UserContent: "u", AssistantContent: "a", Title: "t",
	})
	require.NoError(t, err)

	// The counter is global, never per owner.
	assert.Equal(t, int64(1), convA.SequenceNumber)
	assert.Equal(t, int64(2), convB.SequenceNumber)
}

func TestRecordPlaceholderTitleUpgradedOnce(t *testing.T) {
	ctx := context.Background()
	r := NewReconciler(unitofwork.NewRepositoryFactory(newTestDB(t)))
	userId := uuid.New()

	_, conv, err := r.Record(ctx, userId, "chat-abc", Exchange{
		UserContent: "u1", AssistantContent: "a1",
	})
	require.NoError(t, err)
	assert.Equal(t, constant.DefaultChatTitle, conv.Title)

	_, conv, err = r.Record(ctx, userId, "chat-abc", Exchange{
		UserContent: "u2", AssistantContent: "a2", Title: "real title",
	})
	require.NoError(t, err)
	assert.Equal(t, "real title", conv.Title)

	_, conv, err = r.Record(ctx, userId, "chat-abc", Exchange{
		UserContent: "u3", AssistantContent: "a3", Title: "another title",
	})
	require.NoError(t, err)
	assert.Equal(t, "real title", conv.Title)
}

func TestEnsureIsIdempotent(t *testing.T) {
	ctx := context.Background()
	uowFactory := unitofwork.NewRepositoryFactory(newTestDB(t))
	r := NewReconciler(uowFactory)
	userId := uuid.New()

	first, err := r.Ensure(ctx, userId, "chat-abc")
	require.NoError(t, err)
	second, err := r.Ensure(ctx, userId, "chat-abc")
	require.NoError(t, err)

	assert.Equal(t, first.Id, second.Id)

	uow := uowFactory.NewUnitOfWork(ctx)
	count, err := uow.ConversationRepository().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestEnsureSameExternalIdDifferentOwners(t *testing.T) {
	ctx := context.Background()
	r := NewReconciler(unitofwork.NewRepositoryFactory(newTestDB(t)))

	a, err := r.Ensure(ctx, uuid.New(), "shared-id")
	require.NoError(t, err)
	b, err := r.Ensure(ctx, uuid.New(), "shared-id")
	require.NoError(t, err)

	// (external_id, owner) is the unique pair, not external_id alone.
	assert.NotEqual(t, a.Id, b.Id)
	assert.NotEqual(t, a.SequenceNumber, b.SequenceNumber)
}

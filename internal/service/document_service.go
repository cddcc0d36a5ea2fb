package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
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
	"docchat-be/pkg/extraction"
	"docchat-be/pkg/llm"
	"docchat-be/pkg/store"
	"docchat-be/pkg/utils"

	"github.com/google/uuid"
)

type IDocumentService interface {
	Upload(ctx context.Context, userId uuid.UUID, file *multipart.FileHeader, chatId string) (*dto.UploadDocumentResponse, error)
	Summarize(ctx context.Context, userId uuid.UUID, req *dto.SummarizeDocumentRequest) (*dto.SummarizeDocumentResponse, error)
	Ask(ctx context.Context, userId uuid.UUID, req *dto.AskDocumentRequest) (*dto.AskDocumentResponse, error)
	ClearChat(ctx context.Context, req *dto.ClearChatRequest) (*dto.ClearChatResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, documentId string) error
	List(ctx context.Context, userId uuid.UUID) ([]dto.DocumentListItem, error)
}

type documentService struct {
	uowFactory    unitofwork.RepositoryFactory
	documentCache *memory.DocumentCache
	provider      llm.LLMProvider
	reconciler    *conversation.Reconciler
	llmLog        logger.ILogger
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	documentCache *memory.DocumentCache,
	provider llm.LLMProvider,
	reconciler *conversation.Reconciler,
	llmLog logger.ILogger,
) IDocumentService {
	return &documentService{
		uowFactory:    uowFactory,
		documentCache: documentCache,
		provider:      provider,
		reconciler:    reconciler,
		llmLog:        llmLog,
	}
}

func (s *documentService) Upload(ctx context.Context, userId uuid.UUID, file *multipart.FileHeader, chatId string) (*dto.UploadDocumentResponse, error) {
	if file.Size > constant.MaxUploadSizeBytes {
		return nil, apperrors.NewValidation("File too large. Maximum size is 10MB")
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}

	fileType := extraction.DetectFileType(file.Filename, data)

	// Extraction failures never surface as errors: downstream flows
	// treat empty text as a validation precondition instead.
	text := extraction.ExtractText(data, file.Filename, fileType)

	doc := &entity.Document{
		Id:         uuid.New(),
		UserId:     userId,
		Filename:   file.Filename,
		FileType:   fileType,
		FileSize:   file.Size,
		UploadedAt: time.Now(),
	}
	if strings.TrimSpace(text) != "" {
		doc.ExtractedText = &text
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.DocumentRepository().Create(ctx, doc); err != nil {
		return nil, err
	}

	retained := s.documentCache.Upsert(chatId, doc.Id.String(), doc.Filename, text)

	return &dto.UploadDocumentResponse{
		Message:             "Document uploaded successfully",
		DocumentId:          doc.Id,
		Filename:            doc.Filename,
		FileType:            doc.FileType,
		FileSize:            doc.FileSize,
		ExtractedTextLength: retained,
	}, nil
}

func (s *documentService) Summarize(ctx context.Context, userId uuid.UUID, req *dto.SummarizeDocumentRequest) (*dto.SummarizeDocumentResponse, error) {
	docs := s.documentCache.Get(req.ChatId)

	switch {
	case strings.TrimSpace(req.Position) != "":
		index, filename, text, err := resolveByPosition(docs, req.Position)
		if err != nil {
			return nil, err
		}
		// Position-selected summaries carry the slot label so the
		// model can distinguish which of the two documents it got.
		subject := fmt.Sprintf("the following document (Document %d)", index+1)
		return s.summarizeSingle(ctx, userId, req.ChatId, filename, text, subject)

	case strings.TrimSpace(req.DocumentId) != "":
		filename, text, err := s.resolveById(ctx, userId, docs, req.DocumentId)
		if err != nil {
			return nil, err
		}
		return s.summarizeSingle(ctx, userId, req.ChatId, filename, text, "the following document")

	default:
		return s.summarizeAll(ctx, docs)
	}
}

// resolveByPosition maps the accepted position vocabulary onto the
// ordered active-document list.
func resolveByPosition(docs []store.ActiveDocument, position string) (int, string, string, error) {
	var index int
	switch strings.ToLower(strings.TrimSpace(position)) {
	case "first", "1":
		index = 0
	case "second", "2":
		index = 1
	default:
		return 0, "", "", apperrors.NewValidation(fmt.Sprintf(
			"Invalid position '%s'. Use 'first', 'second', '1', or '2'", position))
	}

	if index >= len(docs) {
		return 0, "", "", apperrors.NewValidation(fmt.Sprintf(
			"No document found at position '%s'", position))
	}
	return index, docs[index].Filename, docs[index].Text, nil
}

// resolveById prefers the active cache; a durable lookup is the
// fallback, and there the document must belong to the caller.
func (s *documentService) resolveById(ctx context.Context, userId uuid.UUID, docs []store.ActiveDocument, documentId string) (string, string, error) {
	for _, doc := range docs {
		if doc.ID == documentId {
			return doc.Filename, doc.Text, nil
		}
	}

	docId, err := uuid.Parse(documentId)
	if err != nil {
		return "", "", apperrors.NewValidation("Invalid document id")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	doc, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: docId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return "", "", err
	}
	if doc == nil {
		return "", "", apperrors.NewNotFound("Document not found")
	}

	text := ""
	if doc.ExtractedText != nil {
		text = *doc.ExtractedText
	}
	return doc.Filename, text, nil
}

func (s *documentService) summarizeSingle(ctx context.Context, userId uuid.UUID, chatId, filename, text, subject string) (*dto.SummarizeDocumentResponse, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.NewValidation(fmt.Sprintf("No text extracted from document '%s'", filename))
	}

	s.llmLog.Info("summarize", "gateway call", map[string]interface{}{
		"filename": filename,
		"chars":    len(text),
	})

	summary, err := s.provider.Chat(ctx,
		[]llm.Message{
			{Role: constant.ChatMessageRoleSystem, Content: chatcontext.SummarizerSystemPrompt},
			{Role: constant.ChatMessageRoleUser, Content: chatcontext.SummaryPrompt(subject, text)},
		},
		llm.WithTemperature(0.7),
		llm.WithMaxTokens(1500),
	)
	if err != nil {
		return nil, apperrors.NewExternal("failed to summarize document", err)
	}

	resp := &dto.SummarizeDocumentResponse{
		Filename: filename,
		Summary:  summary,
	}

	// Only recorded into a conversation when the caller supplied one.
	if chatId != "" {
		recordedChatId, _, err := s.reconciler.Record(ctx, userId, chatId, conversation.Exchange{
			UserContent:      fmt.Sprintf("Summarize: %s", filename),
			AssistantContent: summary,
			Title:            utils.HardCut(fmt.Sprintf("Summary: %s", filename), constant.ChatTitleMaxLen),
		})
		if err != nil {
			return nil, err
		}
		resp.ChatId = recordedChatId
	}

	return resp, nil
}

// summarizeAll issues one gateway call per active document and joins
// the results under labeled headers. Presentation-only: nothing is
// recorded into any conversation.
func (s *documentService) summarizeAll(ctx context.Context, docs []store.ActiveDocument) (*dto.SummarizeDocumentResponse, error) {
	if len(docs) == 0 {
		return nil, apperrors.NewValidation("No documents found in current chat. Please upload documents first")
	}

	sections := make([]string, 0, len(docs))
	for i, doc := range docs {
		if strings.TrimSpace(doc.Text) == "" {
			return nil, apperrors.NewValidation(fmt.Sprintf("No text extracted from document '%s'", doc.Filename))
		}

		subject := fmt.Sprintf("Document %d ('%s')", i+1, doc.Filename)
		text := utils.TruncateWithMarker(doc.Text, constant.MaxQADocumentChars, constant.CacheTruncationMarker)

		s.llmLog.Info("summarize", "gateway call", map[string]interface{}{
			"filename": doc.Filename,
			"chars":    len(text),
		})

		summary, err := s.provider.Chat(ctx,
			[]llm.Message{
				{Role: constant.ChatMessageRoleSystem, Content: chatcontext.SummarizerSystemPrompt},
				{Role: constant.ChatMessageRoleUser, Content: chatcontext.SummaryPrompt(subject, text)},
			},
			llm.WithTemperature(0.7),
			llm.WithMaxTokens(1000),
		)
		if err != nil {
			return nil, apperrors.NewExternal("failed to summarize document", err)
		}

		sections = append(sections, fmt.Sprintf("**Document %d: %s**\n\n%s", i+1, doc.Filename, summary))
	}

	filenames := make([]string, 0, len(docs))
	for _, doc := range docs {
		filenames = append(filenames, doc.Filename)
	}

	return &dto.SummarizeDocumentResponse{
		Filename: strings.Join(filenames, ", "),
		Summary:  strings.Join(sections, constant.DocumentBlockSeparator),
	}, nil
}

func (s *documentService) Ask(ctx context.Context, userId uuid.UUID, req *dto.AskDocumentRequest) (*dto.AskDocumentResponse, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, apperrors.NewValidation("Question cannot be empty")
	}

	docId, err := uuid.Parse(req.DocumentId)
	if err != nil {
		return nil, apperrors.NewValidation("Invalid document id")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	doc, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: docId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperrors.NewNotFound("Document not found")
	}

	if doc.ExtractedText == nil || strings.TrimSpace(*doc.ExtractedText) == "" {
		return nil, apperrors.NewValidation(fmt.Sprintf("No text extracted from document '%s'", doc.Filename))
	}

	s.llmLog.Info("ask", "gateway call", map[string]interface{}{
		"document_id": doc.Id.String(),
		"filename":    doc.Filename,
	})

	answer, err := s.provider.Chat(ctx,
		[]llm.Message{
			{Role: constant.ChatMessageRoleSystem, Content: chatcontext.QASystemPrompt},
			{Role: constant.ChatMessageRoleUser, Content: chatcontext.QAPrompt(*doc.ExtractedText, question)},
		},
		llm.WithTemperature(0.7),
		llm.WithMaxTokens(1000),
	)
	if err != nil {
		return nil, apperrors.NewExternal("failed to answer question", err)
	}

	title := utils.HardCut(question, constant.ChatTitleMaxLen)
	if title == "" {
		title = fmt.Sprintf("Document Q&A: %s", doc.Filename)
	}

	chatId, _, err := s.reconciler.Record(ctx, userId, req.ChatId, conversation.Exchange{
		UserContent:      question,
		AssistantContent: answer,
		Title:            title,
	})
	if err != nil {
		return nil, err
	}

	return &dto.AskDocumentResponse{
		Answer:     answer,
		DocumentId: doc.Id,
		Filename:   doc.Filename,
		Question:   question,
		ChatId:     chatId,
	}, nil
}

func (s *documentService) ClearChat(ctx context.Context, req *dto.ClearChatRequest) (*dto.ClearChatResponse, error) {
	s.documentCache.Clear(req.ChatId)
	return &dto.ClearChatResponse{Message: "Chat documents cleared"}, nil
}

func (s *documentService) Delete(ctx context.Context, userId uuid.UUID, documentId string) error {
	docId, err := uuid.Parse(documentId)
	if err != nil {
		return apperrors.NewValidation("Invalid document id")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	doc, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: docId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if doc == nil {
		return apperrors.NewNotFound("Document not found")
	}

	if err := uow.DocumentRepository().Delete(ctx, doc.Id); err != nil {
		return err
	}

	// A deleted document must not linger in any conversation's context.
	s.documentCache.PurgeDocument(doc.Id.String())
	return nil
}

func (s *documentService) List(ctx context.Context, userId uuid.UUID) ([]dto.DocumentListItem, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	docs, err := uow.DocumentRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	items := make([]dto.DocumentListItem, 0, len(docs))
	for _, doc := range docs {
		items = append(items, dto.DocumentListItem{
			Id:         doc.Id,
			Filename:   doc.Filename,
			FileType:   doc.FileType,
			FileSize:   doc.FileSize,
			HasText:    doc.ExtractedText != nil && strings.TrimSpace(*doc.ExtractedText) != "",
			UploadedAt: doc.UploadedAt,
		})
	}
	return items, nil
}

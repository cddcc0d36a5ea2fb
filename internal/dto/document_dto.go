package dto

import (
	"time"

	"github.com/google/uuid"
)

type UploadDocumentResponse struct {
	Message             string    `json:"message"`
	DocumentId          uuid.UUID `json:"document_id"`
	Filename            string    `json:"filename"`
	FileType            string    `json:"file_type"`
	FileSize            int64     `json:"file_size"`
	ExtractedTextLength int       `json:"extracted_text_length"`
}

// SummarizeDocumentRequest accepts three mutually exclusive shapes:
// a position token, a document id, or neither (summarize everything
// active in the conversation).
type SummarizeDocumentRequest struct {
	DocumentId string `json:"document_id"`
	Position   string `json:"position"`
	ChatId     string `json:"chat_id"`
}

type SummarizeDocumentResponse struct {
	Filename string `json:"filename"`
	Summary  string `json:"summary"`
	ChatId   string `json:"chat_id,omitempty"`
}

type AskDocumentRequest struct {
	DocumentId string `json:"document_id" validate:"required"`
	Question   string `json:"question" validate:"required"`
	ChatId     string `json:"chat_id"`
}

type AskDocumentResponse struct {
	Answer     string    `json:"answer"`
	DocumentId uuid.UUID `json:"document_id"`
	Filename   string    `json:"filename"`
	Question   string    `json:"question"`
	ChatId     string    `json:"chat_id"`
}

type ClearChatRequest struct {
	ChatId string `json:"chat_id" validate:"required"`
}

type ClearChatResponse struct {
	Message string `json:"message"`
}

type DocumentListItem struct {
	Id         uuid.UUID `json:"id"`
	Filename   string    `json:"filename"`
	FileType   string    `json:"file_type"`
	FileSize   int64     `json:"file_size"`
	HasText    bool      `json:"has_text"`
	UploadedAt time.Time `json:"uploaded_at"`
}

package dto

import "time"

// ChatTurnDTO mirrors one replayed history entry. Entries with a
// "system" role are accepted on the wire but dropped before the model
// call.
type ChatTurnDTO struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type SendChatRequest struct {
	Message string        `json:"message" validate:"required"`
	History []ChatTurnDTO `json:"history"`
	ChatId  string        `json:"chat_id"`
}

type SendChatResponse struct {
	Response string `json:"response"`
	ChatId   string `json:"chat_id"`
}

type ChatSessionResponse struct {
	ChatId    string     `json:"chat_id"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type ChatMessageResponse struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type GetChatResponse struct {
	ChatId   string                `json:"chat_id"`
	Title    string                `json:"title"`
	Messages []ChatMessageResponse `json:"messages"`
}

// SaveChatRequest replaces a conversation's recorded turns wholesale.
// The upsert is idempotent per (chat_id, owner).
type SaveChatRequest struct {
	Title   string        `json:"title"`
	History []ChatTurnDTO `json:"history" validate:"required"`
}

type SaveChatResponse struct {
	ChatId       string `json:"chat_id"`
	Title        string `json:"title"`
	MessageCount int    `json:"message_count"`
}

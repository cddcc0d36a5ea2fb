package chatcontext

import (
	"fmt"
	"strings"

	"docchat-be/internal/constant"
	"docchat-be/internal/pkg/apperrors"
	"docchat-be/pkg/llm"
	"docchat-be/pkg/store"
	"docchat-be/pkg/utils"
)

// Assembler builds the exact ordered message sequence for one chat turn:
// system instruction, optional document-context injection, prior history
// replay, then the new user utterance.
type Assembler struct{}

func NewAssembler() *Assembler {
	return &Assembler{}
}

// BuildChatMessages assembles the sequence handed to the LLM gateway.
// The active documents always go in whole (each block truncated to the
// per-call limit); history entries with a system role are dropped so the
// selected instruction is the only one the model sees.
func (a *Assembler) BuildChatMessages(docs []store.ActiveDocument, history []llm.Message, userMessage string) ([]llm.Message, error) {
	userMessage = strings.TrimSpace(userMessage)
	if userMessage == "" {
		return nil, apperrors.NewValidation("Message cannot be empty")
	}

	messages := make([]llm.Message, 0, len(history)+3)

	messages = append(messages, llm.Message{
		Role:    constant.ChatMessageRoleSystem,
		Content: SystemPrompt(len(docs)),
	})

	// Document context rides along as a fabricated user turn, placed
	// before history replay. Intentional: it matches how the model was
	// tuned to receive it, do not move it into the system message.
	if len(docs) > 0 {
		messages = append(messages, llm.Message{
			Role:    constant.ChatMessageRoleUser,
			Content: documentContext(docs),
		})
	}

	for _, msg := range history {
		if msg.Role == constant.ChatMessageRoleSystem {
			continue
		}
		role := msg.Role
		if role == "" {
			role = constant.ChatMessageRoleUser
		}
		messages = append(messages, llm.Message{
			Role:    role,
			Content: msg.Content,
		})
	}

	messages = append(messages, llm.Message{
		Role:    constant.ChatMessageRoleUser,
		Content: userMessage,
	})

	return messages, nil
}

// documentContext concatenates all labeled document blocks into the
// injection envelope. Each block is truncated to the per-call limit;
// the cached text itself is never modified here.
func documentContext(docs []store.ActiveDocument) string {
	blocks := make([]string, 0, len(docs))
	for i, doc := range docs {
		text := utils.TruncateWithMarker(doc.Text, constant.MaxInjectedDocumentChars, constant.InjectionTruncationMarker)
		blocks = append(blocks, fmt.Sprintf("Document %d ('%s'):\n%s", i+1, doc.Filename, text))
	}

	return fmt.Sprintf(
		"[Document context from uploaded files:\n%s\n]\n\n"+
			"Now answer the user's question based on the above document content:",
		strings.Join(blocks, constant.DocumentBlockSeparator),
	)
}

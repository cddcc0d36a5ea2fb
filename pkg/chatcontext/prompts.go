package chatcontext

import (
	"fmt"
	"unicode/utf8"

	"docchat-be/internal/constant"
	"docchat-be/pkg/utils"
)

// The three system instructions, selected by active-document count.
// The dual-document variant defines the "Document 1" / "Document 2"
// numbering vocabulary the model uses to resolve "first/second/
// document N" follow-ups; its wording is load-bearing.

const systemPromptNoDocuments = "You are a helpful AI assistant. " +
	"Provide brief, concise answers that cover all important information comprehensively. " +
	"Be succinct but ensure you include all key points. " +
	"Keep responses focused and to the point while maintaining completeness. " +
	"Use clear, direct language and avoid unnecessary elaboration."

const systemPromptSingleDocument = "You are a helpful AI assistant with access to a document that the user has uploaded.\n" +
	"You can see the full content of the document and should answer questions based on it.\n" +
	"When the user asks to \"summarize\" or \"summarize the attached pdf\" or similar, automatically provide a summary of the document.\n" +
	"Provide brief, concise answers that cover all important information comprehensively.\n" +
	"Be succinct but ensure you include all key points.\n" +
	"When answering, use information from the document when relevant.\n" +
	"Never say you can't access attachments or ask the user to paste text - you already have the document content."

func systemPromptMultiDocument(count int) string {
	return fmt.Sprintf("You are a helpful AI assistant with access to %d documents that the user has uploaded.\n", count) +
		"You can see the full content of all documents and should answer questions based on them.\n" +
		"The documents are numbered: Document 1 (first document), Document 2 (second document), etc.\n" +
		"When the user asks to \"summarize the first document\" or \"summarize document 1\", summarize Document 1.\n" +
		"When the user asks to \"summarize the second document\" or \"summarize document 2\", summarize Document 2.\n" +
		"When the user asks to \"summarize\" without specifying, summarize all documents.\n" +
		"Provide brief, concise answers that cover all important information comprehensively.\n" +
		"Be succinct but ensure you include all key points.\n" +
		"When answering, use information from the relevant document(s) when relevant.\n" +
		"Never say you can't access attachments or ask the user to paste text - you already have the document content."
}

// SystemPrompt picks the instruction variant for a document count.
func SystemPrompt(docCount int) string {
	switch {
	case docCount == 0:
		return systemPromptNoDocuments
	case docCount == 1:
		return systemPromptSingleDocument
	default:
		return systemPromptMultiDocument(docCount)
	}
}

// Summarization and Q&A prompt templates.

const SummarizerSystemPrompt = "You are a helpful assistant that provides clear, " +
	"comprehensive summaries of documents."

const QASystemPrompt = "You are a helpful assistant that answers questions " +
	"based on provided documents. Be accurate and cite specific information " +
	"from the document when possible."

// SummaryPrompt asks for the four fixed sections over the full text.
// 'subject' names what is being summarized, e.g. "the following document"
// or "Document 2 ('report.pdf')".
func SummaryPrompt(subject, text string) string {
	return fmt.Sprintf(
		"Please provide a comprehensive summary of %s.\n"+
			"The document is %d characters long. Here is the content:\n\n"+
			"%s\n\n"+
			"Please provide:\n"+
			"1. A brief overview (2-3 sentences)\n"+
			"2. Key points and main topics\n"+
			"3. Important details or findings\n"+
			"4. Any conclusions or recommendations if present\n\n"+
			"Format your response in a clear, structured manner.",
		subject, utf8.RuneCountInString(text), text,
	)
}

// QAPrompt embeds the document (hard-truncated for token limits) and the
// literal question, and tells the model to be explicit when the document
// lacks the answer.
func QAPrompt(docText, question string) string {
	docText = utils.TruncateWithMarker(docText, constant.MaxQADocumentChars, constant.CacheTruncationMarker)
	return fmt.Sprintf(
		"Based on the following document, please answer the user's question.\n"+
			"If the answer is not in the document, please say so clearly.\n\n"+
			"Document content:\n%s\n\n"+
			"User's question: %s\n\n"+
			"Please provide a clear, accurate answer based on the document content.",
		docText, question,
	)
}

package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"

	// DefaultChatTitle is the placeholder title assigned when a conversation
	// is created without any usable text. It is upgraded once, after the
	// first real exchange.
	DefaultChatTitle = "New Chat"
	ChatTitleMaxLen  = 50
)

const (
	// MaxActiveDocuments caps the per-conversation document cache.
	// Oldest entries are evicted first.
	MaxActiveDocuments = 2

	// MaxCachedDocumentChars bounds the text stored in the session cache.
	MaxCachedDocumentChars = 50000

	// MaxInjectedDocumentChars bounds each document block injected into a
	// single chat call. Stricter than the cache limit; the cached value
	// stays untouched.
	MaxInjectedDocumentChars = 15000

	// MaxQADocumentChars bounds the document text embedded in a Q&A prompt.
	MaxQADocumentChars = 8000

	MaxUploadSizeBytes = 10 * 1024 * 1024 // 10MB
)

// Truncation markers are fixed literals appended after the cut, never
// computed from the content.
const (
	CacheTruncationMarker     = "\n\n[Document truncated for length...]"
	InjectionTruncationMarker = "\n\n[Document content continues but was truncated...]"

	DocumentBlockSeparator = "\n\n---\n\n"
)

package memory

import (
	"strings"
	"sync"
	"time"

	"docchat-be/internal/constant"
	"docchat-be/pkg/store"
	"docchat-be/pkg/utils"

	"github.com/patrickmn/go-cache"
)

// defaultKey holds entries uploaded before any conversation id exists.
const defaultKey = "default"

// DocumentCache keeps the per-conversation active-document lists.
// Each key maps a conversation id to an ordered list of at most
// MaxActiveDocuments entries; the oldest entry is evicted first.
// All operations are read-modify-write under one mutex.
type DocumentCache struct {
	mu    sync.Mutex
	cache *cache.Cache
}

func NewDocumentCache() *DocumentCache {
	// Entries idle for an hour are dropped with the session; expired
	// items are purged every 10 minutes.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &DocumentCache{
		cache: c,
	}
}

func (r *DocumentCache) key(chatID string) string {
	if chatID == "" {
		return defaultKey
	}
	return chatID
}

// Upsert stores a document under the conversation's key, deduplicating
// by document id and keeping only the most recent MaxActiveDocuments
// entries. Text is truncated to the cache limit before storage. Returns
// the number of characters retained; whitespace-only text is not cached
// and yields 0.
func (r *DocumentCache) Upsert(chatID, documentID, filename, text string) int {
	if strings.TrimSpace(text) == "" {
		return 0
	}

	text = utils.TruncateWithMarker(text, constant.MaxCachedDocumentChars, constant.CacheTruncationMarker)

	r.mu.Lock()
	defer r.mu.Unlock()

	key := r.key(chatID)
	docs := r.list(key)

	// Drop any previous entry for the same document.
	kept := make([]store.ActiveDocument, 0, len(docs)+1)
	for _, d := range docs {
		if d.ID != documentID {
			kept = append(kept, d)
		}
	}

	kept = append(kept, store.ActiveDocument{
		ID:       documentID,
		Filename: filename,
		Text:     text,
	})

	if len(kept) > constant.MaxActiveDocuments {
		kept = kept[len(kept)-constant.MaxActiveDocuments:]
	}

	r.cache.Set(key, kept, cache.DefaultExpiration)
	return len([]rune(text))
}

// Get returns the ordered active-document list for a conversation.
// An empty conversation id yields nothing: the fallback key is
// write-only state, never read back on a turn without a conversation.
func (r *DocumentCache) Get(chatID string) []store.ActiveDocument {
	if chatID == "" {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.list(chatID)
}

// Clear removes the whole entry for a conversation.
func (r *DocumentCache) Clear(chatID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache.Delete(r.key(chatID))
}

// PurgeDocument removes the document from every conversation's list.
// Keys whose list becomes empty are removed entirely.
func (r *DocumentCache) PurgeDocument(documentID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, item := range r.cache.Items() {
		docs, ok := item.Object.([]store.ActiveDocument)
		if !ok {
			continue
		}
		kept := make([]store.ActiveDocument, 0, len(docs))
		for _, d := range docs {
			if d.ID != documentID {
				kept = append(kept, d)
			}
		}
		if len(kept) == len(docs) {
			continue
		}
		if len(kept) == 0 {
			r.cache.Delete(key)
		} else {
			r.cache.Set(key, kept, cache.DefaultExpiration)
		}
	}
}

func (r *DocumentCache) list(key string) []store.ActiveDocument {
	if x, found := r.cache.Get(key); found {
		return x.([]store.ActiveDocument)
	}
	return nil
}

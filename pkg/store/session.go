package store

// ActiveDocument is the transient, per-conversation working copy of an
// uploaded document: the id and filename of the durable record plus the
// extracted text already truncated to the cache limit. It lives only in
// the session document cache, never in the database.
type ActiveDocument struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Text     string `json:"text"`
}

package extraction

import (
	"mime"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
)

// DetectFileType resolves the declared type of an upload: the filename
// extension wins, content sniffing is the fallback. Always returns a
// usable MIME string (mimetype defaults to application/octet-stream).
func DetectFileType(filename string, data []byte) string {
	if ext := filepath.Ext(filename); ext != "" {
		if t := mime.TypeByExtension(ext); t != "" {
			return t
		}
	}
	return mimetype.Detect(data).String()
}

package extraction

import (
	"bytes"
	"log"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractFromPDF reads the plain text of every page. The pdf package
// panics on some malformed files, so the whole routine is guarded.
func extractFromPDF(data []byte) (text string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("pdf extraction panicked: %v", r)
			text = ""
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ""
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return ""
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return ""
	}

	return strings.TrimSpace(buf.String())
}

package extraction

import (
	"bytes"
	"fmt"
	"log"
	"strings"

	"github.com/fumiama/go-docx"
)

// extractFromDocx joins the document body paragraph by paragraph.
// Tables are rendered through their text representation.
func extractFromDocx(data []byte) (text string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("docx extraction panicked: %v", r)
			text = ""
		}
	}()

	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ""
	}

	var lines []string
	for _, item := range doc.Document.Body.Items {
		switch item.(type) {
		case *docx.Paragraph, *docx.Table:
			lines = append(lines, fmt.Sprint(item))
		}
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

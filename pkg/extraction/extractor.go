package extraction

import (
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ExtractText pulls best-effort plain text out of an uploaded file.
// It dispatches on the file extension first, then the declared type.
// It never returns an error: any parsing failure degrades to an empty
// string and the caller treats empty text as "nothing extracted".
func ExtractText(data []byte, filename, fileType string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	loweredType := strings.ToLower(fileType)

	var text string

	switch {
	case ext == ".pdf" || strings.Contains(loweredType, "pdf"):
		text = extractFromPDF(data)

	case ext == ".docx" || ext == ".doc" ||
		strings.Contains(loweredType, "word") ||
		strings.Contains(loweredType, "document"):
		text = extractFromDocx(data)

	case ext == ".xlsx" || ext == ".xls" ||
		strings.Contains(loweredType, "excel") ||
		strings.Contains(loweredType, "spreadsheet"):
		text = extractFromExcel(data)

	case ext == ".txt" || ext == ".md" || ext == ".csv" ||
		strings.Contains(loweredType, "text"):
		text = decodeText(data)

	case isImageExt(ext) || strings.Contains(loweredType, "image"):
		text = imageNotice(filename)

	default:
		// Fallback: try to read as text
		text = decodeText(data)
	}

	return strings.TrimSpace(text)
}

func isImageExt(ext string) bool {
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp":
		return true
	}
	return false
}

func imageNotice(filename string) string {
	return "Image file detected: " + filepath.Base(filename) +
		". OCR functionality is not supported. Please provide text-based documents."
}

// decodeText decodes bytes as UTF-8, falling back to Latin-1 so legacy
// exports still yield something readable.
func decodeText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes)
}

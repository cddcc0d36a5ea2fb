package utils

import "unicode/utf8"

// TruncateWithMarker hard-cuts 'text' to at most 'max' characters and
// appends the literal 'marker' when a cut happened. Counting is
// rune-based so a multibyte character is never split. The marker itself
// is never truncated.
func TruncateWithMarker(text string, max int, marker string) string {
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	return string(runes[:max]) + marker
}

// HardCut returns the first 'max' characters of 'text' with no marker.
// Used for title derivation.
func HardCut(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}

package utils

import (
	"strings"
	"testing"
)

func TestTruncateWithMarker(t *testing.T) {
	marker := "\n\n[cut]"

	tests := []struct {
		name string
		text string
		max  int
		want string
	}{
		{
			name: "under limit untouched",
			text: "short text",
			max:  100,
			want: "short text",
		},
		{
			name: "exactly at limit untouched",
			text: "12345",
			max:  5,
			want: "12345",
		},
		{
			name: "over limit cut with marker",
			text: "1234567890",
			max:  4,
			want: "1234" + marker,
		},
		{
			name: "empty text",
			text: "",
			max:  10,
			want: "",
		},
		{
			name: "multibyte runes counted as characters",
			text: "héllo wörld",
			max:  5,
			want: "héllo" + marker,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateWithMarker(tt.text, tt.max, marker)
			if got != tt.want {
				t.Errorf("TruncateWithMarker() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHardCut(t *testing.T) {
	tests := []struct {
		name string
		text string
		max  int
		want string
	}{
		{name: "short stays", text: "hello", max: 50, want: "hello"},
		{name: "long cut without ellipsis", text: strings.Repeat("a", 60), max: 50, want: strings.Repeat("a", 50)},
		{name: "empty", text: "", max: 50, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HardCut(tt.text, tt.max)
			if got != tt.want {
				t.Errorf("HardCut() = %q, want %q", got, tt.want)
			}
		})
	}
}

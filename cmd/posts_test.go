package cmd

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateCaption(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"short stays whole", "hello", 60, "hello"},
		{"exact length stays whole", strings.Repeat("a", 10), 10, strings.Repeat("a", 10)},
		{"long gets ellipsis", strings.Repeat("a", 20), 10, "aaaaaaa..."},
		{"counts runes not bytes", strings.Repeat("é", 10), 10, strings.Repeat("é", 10)},
		{"emoji caption", strings.Repeat("🔥", 12), 8, "🔥🔥🔥🔥🔥..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateCaption(tt.in, tt.n)
			if got != tt.want {
				t.Errorf("truncateCaption(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("truncateCaption produced invalid UTF-8: %q", got)
			}
		})
	}
}

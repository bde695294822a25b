package cli

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		limit int
		want  int
	}{
		{"short", "abc", 10, 3},
		{"exact", strings.Repeat("a", 10), 10, 10},
		{"ascii", strings.Repeat("a", 50), 10, 10},
		{"multibyte", strings.Repeat("é", 200), 160, 160},
		{"mixed", "a" + strings.Repeat("日本", 100), 160, 160},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.in, tt.limit)
			if !utf8.ValidString(got) {
				t.Fatalf("truncate produced invalid UTF-8: %q", got)
			}
			if n := utf8.RuneCountInString(got); n != tt.want {
				t.Errorf("rune count = %d, want %d", n, tt.want)
			}
			if cut := utf8.RuneCountInString(tt.in) > tt.limit; cut != strings.HasSuffix(got, "…") {
				t.Errorf("ellipsis present = %v, want %v", !cut, cut)
			}
		})
	}
}

func TestPayloadLine(t *testing.T) {
	if got := payloadLine(nil); got != "" {
		t.Errorf("payloadLine(nil) = %q", got)
	}
	got := payloadLine(map[string]string{"label": strings.Repeat("ü", 300)})
	if !utf8.ValidString(got) || utf8.RuneCountInString(got) != 160 {
		t.Errorf("payloadLine = %d runes, valid %v", utf8.RuneCountInString(got), utf8.ValidString(got))
	}
}

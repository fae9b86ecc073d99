package library

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSanitize(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Song Title", "Song Title"},
		{"colon becomes dash", "Artist: The Return", "Artist - The Return"},
		{"forbidden chars stripped", `What<>:"/\|?*Now`, "What - Now"},
		{"control chars stripped", "Bad\x01Name\x1F", "BadName"},
		{"whitespace collapsed", "Too   many    spaces", "Too many spaces"},
		{"trimmed", "  padded  ", "padded"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Sanitize(tc.input)
			if got != tc.want {
				t.Fatalf("Sanitize(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestSanitizeCapsLength(t *testing.T) {
	long := strings.Repeat("a", 400)
	got := Sanitize(long)
	if len(got) != 180 {
		t.Fatalf("expected 180 chars, got %d", len(got))
	}
}

func TestSanitizeCapsLengthOnRuneBoundary(t *testing.T) {
	long := "ab" + strings.Repeat("…", 200)
	got := Sanitize(long)
	if !utf8.ValidString(got) {
		t.Fatalf("expected valid UTF-8, got %q", got)
	}
	if count := utf8.RuneCountInString(got); count != 180 {
		t.Fatalf("expected 180 runes, got %d", count)
	}
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("expected truncation to keep whole characters, got %q", got)
	}
}

func TestCleanTitle(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"strips official video", "Song Name (Official Video)", "Song Name"},
		{"strips brackets", "Song Name [HD Remaster]", "Song Name"},
		{"drops artist prefix", "Some Artist - Song Name", "Song Name"},
		{"keeps lone dash title", "Untitled - ", "Untitled -"},
		{"both", "Some Artist - Song Name (Lyric Video)", "Song Name"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CleanTitle(tc.input)
			if got != tc.want {
				t.Fatalf("CleanTitle(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

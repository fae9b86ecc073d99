// Package library maps track metadata to filesystem locations inside the
// music directory.
package library

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const maxNameLength = 180

var (
	forbiddenChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1F]`)
	multiSpace     = regexp.MustCompile(`\s+`)
	parenQualifier = regexp.MustCompile(`\s*[\(\[][^\)\]]*[\)\]]\s*`)
)

// Sanitize makes a metadata string safe to use as a file or directory name.
// Colons become " - " so "Artist: Title" stays readable.
func Sanitize(name string) string {
	name = strings.ReplaceAll(strings.TrimSpace(name), ":", " - ")
	name = forbiddenChars.ReplaceAllString(name, "")
	name = multiSpace.ReplaceAllString(name, " ")
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) > maxNameLength {
		// Cap by runes, not bytes; a byte slice could split a multi-byte
		// character and leave an invalid filename.
		name = strings.TrimSpace(string([]rune(name)[:maxNameLength]))
	}
	return name
}

// CleanTitle strips parenthesized qualifiers ("(Official Video)", "[HD]")
// and a leading "Artist - " prefix from an uploaded video title.
func CleanTitle(title string) string {
	if title == "" {
		return ""
	}
	title = parenQualifier.ReplaceAllString(title, " ")
	parts := strings.SplitN(title, " - ", 2)
	if len(parts) == 2 && strings.TrimSpace(parts[1]) != "" {
		title = parts[1]
	}
	return strings.TrimSpace(multiSpace.ReplaceAllString(title, " "))
}

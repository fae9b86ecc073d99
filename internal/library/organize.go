package library

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TrackPath returns the library destination for an audio track:
// <root>/<Artist>/<Album>/<NN - >Title<ext>. Unknown metadata falls back to
// "Unknown Artist"/"Unknown Album". The path is deduplicated with a " (2)"
// style suffix so an existing file is never overwritten.
func TrackPath(root, artist, album, title string, trackNumber int, ext string) (string, error) {
	if strings.TrimSpace(root) == "" {
		return "", fmt.Errorf("library root is empty")
	}
	if strings.TrimSpace(title) == "" {
		return "", fmt.Errorf("track title is empty")
	}

	if strings.TrimSpace(artist) == "" {
		artist = "Unknown Artist"
	}
	if strings.TrimSpace(album) == "" {
		album = "Unknown Album"
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	folder := filepath.Join(root, Sanitize(artist), Sanitize(album))
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return "", fmt.Errorf("create library folder %s: %w", folder, err)
	}

	prefix := ""
	if trackNumber > 0 {
		prefix = fmt.Sprintf("%02d - ", trackNumber)
	}
	base := prefix + Sanitize(title)
	return uniquePath(folder, base, ext), nil
}

// FlatPath returns <root>/Title<ext> for unorganized libraries, deduplicated
// the same way as TrackPath.
func FlatPath(root, title, ext string) (string, error) {
	if strings.TrimSpace(root) == "" {
		return "", fmt.Errorf("library root is empty")
	}
	if strings.TrimSpace(title) == "" {
		return "", fmt.Errorf("track title is empty")
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return "", fmt.Errorf("create library root %s: %w", root, err)
	}
	return uniquePath(root, Sanitize(title), ext), nil
}

func uniquePath(folder, base, ext string) string {
	candidate := filepath.Join(folder, base+ext)
	if _, err := os.Stat(candidate); err != nil {
		return candidate
	}
	for i := 2; ; i++ {
		alt := filepath.Join(folder, fmt.Sprintf("%s (%d)%s", base, i, ext))
		if _, err := os.Stat(alt); err != nil {
			return alt
		}
	}
}

package media

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	ytget "github.com/ytget/ytdlp/v2"
)

// PlaylistEntry is one item from a playlist preflight listing.
type PlaylistEntry struct {
	VideoID string
	Title   string
}

// PlaylistID extracts the playlist identifier from a YouTube URL, if any.
// Both watch URLs with playlist context and dedicated playlist URLs carry
// the id in the "list" query parameter.
func PlaylistID(rawURL string) (string, bool) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", false
	}
	id := parsed.Query().Get("list")
	if id == "" {
		return "", false
	}
	return id, true
}

// ListPlaylist enumerates playlist entries without downloading anything,
// so the caller can show what a --playlist run would fetch.
func ListPlaylist(ctx context.Context, rawURL string) ([]PlaylistEntry, error) {
	id, ok := PlaylistID(rawURL)
	if !ok {
		return nil, fmt.Errorf("url does not reference a playlist: %s", rawURL)
	}

	d := ytget.New()
	items, err := d.GetPlaylistItemsAll(ctx, id, 0)
	if err != nil {
		return nil, fmt.Errorf("listing playlist %s: %w", id, err)
	}

	entries := make([]PlaylistEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, PlaylistEntry{VideoID: item.VideoID, Title: item.Title})
	}
	return entries, nil
}

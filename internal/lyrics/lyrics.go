// Package lyrics fetches plain-text lyrics from the lyrics.ovh API.
package lyrics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const baseURL = "https://api.lyrics.ovh/v1"

// ErrNotFound is returned when no lyrics exist for the given track.
var ErrNotFound = errors.New("lyrics not found")

type Client struct {
	httpClient *http.Client
	userAgent  string
}

func NewClient(userAgent string) *Client {
	if strings.TrimSpace(userAgent) == "" {
		userAgent = "yoink/dev"
	}
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		userAgent:  userAgent,
	}
}

type lyricsResponse struct {
	Lyrics string `json:"lyrics"`
	Error  string `json:"error"`
}

// Get fetches lyrics for an artist/title pair. Returns ErrNotFound when the
// service has no entry for the track.
func (c *Client) Get(ctx context.Context, artist, title string) (string, error) {
	artist = strings.TrimSpace(artist)
	title = strings.TrimSpace(title)
	if artist == "" || title == "" {
		return "", fmt.Errorf("artist and title are required")
	}

	requestURL := fmt.Sprintf("%s/%s/%s", baseURL, url.PathEscape(artist), url.PathEscape(title))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("lyrics service returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}

	var parsed lyricsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("parsing lyrics response: %w", err)
	}
	if parsed.Error != "" || strings.TrimSpace(parsed.Lyrics) == "" {
		return "", ErrNotFound
	}

	return strings.TrimSpace(parsed.Lyrics), nil
}

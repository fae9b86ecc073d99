package musicbrainz

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const coverArtBaseURL = "https://coverartarchive.org"

// GetCoverArt fetches front cover art for a release from the Cover Art
// Archive. The full-size image is tried first, then the 500px and 250px
// thumbnails. A release with no cover art returns (nil, nil).
func (c *Client) GetCoverArt(ctx context.Context, releaseID string) ([]byte, error) {
	if strings.TrimSpace(releaseID) == "" {
		return nil, fmt.Errorf("release id is empty")
	}

	paths := []string{"front", "front-500", "front-250"}
	var lastErr error
	for _, p := range paths {
		requestURL := fmt.Sprintf("%s/release/%s/%s", coverArtBaseURL, url.PathEscape(releaseID), p)
		data, found, err := c.fetchCoverArt(ctx, requestURL)
		if err != nil {
			lastErr = err
			continue
		}
		if found {
			return data, nil
		}
	}
	if lastErr != nil {
		return nil, fmt.Errorf("fetching cover art for release %s: %w", releaseID, lastErr)
	}
	return nil, nil
}

func (c *Client) fetchCoverArt(ctx context.Context, requestURL string) ([]byte, bool, error) {
	c.waitForRateLimit()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, false, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, false, fmt.Errorf("reading image data: %w", err)
		}
		return data, true, nil
	case http.StatusNotFound:
		return nil, false, nil
	default:
		return nil, false, fmt.Errorf("cover art archive returned status %d", resp.StatusCode)
	}
}

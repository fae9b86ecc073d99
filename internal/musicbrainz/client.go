package musicbrainz

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	baseURL = "https://musicbrainz.org/ws/2"

	// MusicBrainz asks anonymous clients to stay under one request per second.
	defaultRateLimit = time.Second
)

type Client struct {
	httpClient *http.Client
	userAgent  string

	mu          sync.Mutex
	lastRequest time.Time

	rateLimit    time.Duration
	maxRetries   int
	initialDelay time.Duration
	maxDelay     time.Duration
}

func NewClient(userAgent string) *Client {
	if strings.TrimSpace(userAgent) == "" {
		userAgent = "yoink/dev"
	}
	return &Client{
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		userAgent:    userAgent,
		rateLimit:    defaultRateLimit,
		maxRetries:   3,
		initialDelay: 2 * time.Second,
		maxDelay:     30 * time.Second,
	}
}

func (c *Client) waitForRateLimit() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elapsed := time.Since(c.lastRequest); elapsed < c.rateLimit {
		time.Sleep(c.rateLimit - elapsed)
	}
	c.lastRequest = time.Now()
}

// doRequestWithRetry retries on server errors and network failures with
// exponential backoff. Client errors (4xx) are returned immediately.
func (c *Client) doRequestWithRetry(ctx context.Context, requestURL string) ([]byte, error) {
	var lastErr error
	delay := c.initialDelay

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
			if delay > c.maxDelay {
				delay = c.maxDelay
			}
		}

		c.waitForRateLimit()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = fmt.Errorf("executing request: %w", err)
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("reading response body: %w", err)
			continue
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			return body, nil
		case resp.StatusCode >= 500:
			lastErr = fmt.Errorf("musicbrainz returned status %d", resp.StatusCode)
			continue
		default:
			return nil, fmt.Errorf("musicbrainz returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		}
	}

	return nil, fmt.Errorf("request failed after %d retries: %w", c.maxRetries, lastErr)
}

// SearchRecordings queries the recording search endpoint with a structured
// Lucene query. Results keep the server's score ordering.
func (c *Client) SearchRecordings(ctx context.Context, query SearchQuery, limit int) ([]Recording, error) {
	lucene := buildLuceneQuery(query)
	if lucene == "" {
		return nil, fmt.Errorf("search query is empty")
	}
	if limit <= 0 {
		limit = 25
	}

	requestURL := fmt.Sprintf("%s/recording?query=%s&limit=%d&fmt=json",
		baseURL, url.QueryEscape(lucene), limit)

	body, err := c.doRequestWithRetry(ctx, requestURL)
	if err != nil {
		return nil, fmt.Errorf("searching recordings: %w", err)
	}

	var parsed recordingSearchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parsing recording search response: %w", err)
	}

	results := make([]Recording, 0, len(parsed.Recordings))
	for _, raw := range parsed.Recordings {
		results = append(results, convertRecording(raw))
	}
	return results, nil
}

// SearchReleases queries the release search endpoint, used for album mode.
func (c *Client) SearchReleases(ctx context.Context, query SearchQuery, limit int) ([]Release, error) {
	lucene := buildReleaseQuery(query)
	if lucene == "" {
		return nil, fmt.Errorf("search query is empty")
	}
	if limit <= 0 {
		limit = 25
	}

	requestURL := fmt.Sprintf("%s/release?query=%s&limit=%d&fmt=json",
		baseURL, url.QueryEscape(lucene), limit)

	body, err := c.doRequestWithRetry(ctx, requestURL)
	if err != nil {
		return nil, fmt.Errorf("searching releases: %w", err)
	}

	var parsed releaseSearchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parsing release search response: %w", err)
	}

	results := make([]Release, 0, len(parsed.Releases))
	for _, raw := range parsed.Releases {
		results = append(results, convertRelease(raw))
	}
	return results, nil
}

// GetReleaseTracks looks up a release by MBID with its full track list.
func (c *Client) GetReleaseTracks(ctx context.Context, releaseID string) (*ReleaseDetails, error) {
	if strings.TrimSpace(releaseID) == "" {
		return nil, fmt.Errorf("release id is empty")
	}

	requestURL := fmt.Sprintf("%s/release/%s?inc=recordings+artist-credits&fmt=json",
		baseURL, url.PathEscape(releaseID))

	body, err := c.doRequestWithRetry(ctx, requestURL)
	if err != nil {
		return nil, fmt.Errorf("looking up release %s: %w", releaseID, err)
	}

	var parsed releaseDetailsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parsing release response: %w", err)
	}

	return convertReleaseDetails(parsed), nil
}

// buildLuceneQuery assembles a fielded recording query. Quotes inside field
// values are stripped rather than escaped; MusicBrainz tolerates both but
// stripping keeps the query readable in logs.
func buildLuceneQuery(query SearchQuery) string {
	var parts []string
	if v := cleanQueryValue(query.Title); v != "" {
		parts = append(parts, fmt.Sprintf("recording:%q", v))
	}
	if v := cleanQueryValue(query.Artist); v != "" {
		parts = append(parts, fmt.Sprintf("artist:%q", v))
	}
	if v := cleanQueryValue(query.Album); v != "" {
		parts = append(parts, fmt.Sprintf("release:%q", v))
	}
	return strings.Join(parts, " AND ")
}

func buildReleaseQuery(query SearchQuery) string {
	var parts []string
	if v := cleanQueryValue(query.Album); v != "" {
		parts = append(parts, fmt.Sprintf("release:%q", v))
	}
	if v := cleanQueryValue(query.Artist); v != "" {
		parts = append(parts, fmt.Sprintf("artist:%q", v))
	}
	return strings.Join(parts, " AND ")
}

func cleanQueryValue(value string) string {
	return strings.TrimSpace(strings.ReplaceAll(value, `"`, ""))
}

func convertRecording(raw recordingResult) Recording {
	rec := Recording{
		ID:             raw.ID,
		Title:          raw.Title,
		Artist:         extractArtist(raw.ArtistCredit),
		Score:          raw.Score,
		LengthMS:       raw.Length,
		Disambiguation: raw.Disambiguation,
	}
	if len(raw.Releases) > 0 {
		release := raw.Releases[0]
		rec.Album = release.Title
		rec.ReleaseID = release.ID
		rec.Date = release.Date
		if len(release.Media) > 0 {
			rec.TrackNumber = release.Media[0].TrackOffset + 1
			rec.TotalTracks = release.Media[0].TrackCount
		}
	}
	return rec
}

func convertRelease(raw releaseResult) Release {
	rel := Release{
		ID:      raw.ID,
		Title:   raw.Title,
		Artist:  extractArtist(raw.ArtistCredit),
		Date:    raw.Date,
		Country: raw.Country,
		Score:   raw.Score,
	}
	for _, m := range raw.Media {
		rel.TrackCount += m.TrackCount
	}
	return rel
}

func convertReleaseDetails(raw releaseDetailsResponse) *ReleaseDetails {
	details := &ReleaseDetails{
		Release: Release{
			ID:      raw.ID,
			Title:   raw.Title,
			Artist:  extractArtist(raw.ArtistCredit),
			Date:    raw.Date,
			Country: raw.Country,
		},
	}

	position := 0
	for _, m := range raw.Media {
		for _, t := range m.Tracks {
			position++
			rt := ReleaseTrack{
				Position: position,
				Title:    t.Title,
				Artist:   extractArtist(t.ArtistCredit),
				LengthMS: t.Length,
			}
			if rt.Artist == "" {
				rt.Artist = details.Artist
			}
			if t.Recording != nil {
				rt.RecordingID = t.Recording.ID
				if rt.Title == "" {
					rt.Title = t.Recording.Title
				}
			}
			details.Tracks = append(details.Tracks, rt)
		}
	}
	details.TrackCount = position
	return details
}

// extractArtist joins a multi-artist credit into a single display string,
// honoring join phrases like " feat. " and " & ".
func extractArtist(credits []artistCredit) string {
	var sb strings.Builder
	for _, credit := range credits {
		name := credit.Name
		if name == "" {
			name = credit.Artist.Name
		}
		sb.WriteString(name)
		sb.WriteString(credit.JoinPhrase)
	}
	return sb.String()
}

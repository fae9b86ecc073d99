package lyrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newTestClient(fn roundTripFunc) *Client {
	c := NewClient("yoink/test")
	c.httpClient = &http.Client{Transport: fn}
	return c
}

func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestGetLyrics(t *testing.T) {
	var gotPath string
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		gotPath = req.URL.Path
		return response(http.StatusOK, `{"lyrics": "Hello darkness\nmy old friend\n"}`), nil
	})

	text, err := client.Get(context.Background(), "Simon & Garfunkel", "The Sound of Silence")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if text != "Hello darkness\nmy old friend" {
		t.Fatalf("unexpected lyrics %q", text)
	}
	if !strings.Contains(gotPath, "Simon") || !strings.Contains(gotPath, "Silence") {
		t.Fatalf("unexpected request path %q", gotPath)
	}
}

func TestGetLyricsNotFound(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		return response(http.StatusNotFound, `{"error": "No lyrics found"}`), nil
	})

	_, err := client.Get(context.Background(), "Nobody", "Nothing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetLyricsEmptyBodyIsNotFound(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		return response(http.StatusOK, `{"lyrics": "  "}`), nil
	})

	_, err := client.Get(context.Background(), "Artist", "Title")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty lyrics, got %v", err)
	}
}

func TestGetLyricsRequiresArtistAndTitle(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		t.Fatal("request should not be sent")
		return nil, nil
	})

	if _, err := client.Get(context.Background(), "", "Title"); err == nil {
		t.Fatal("expected error for missing artist")
	}
	if _, err := client.Get(context.Background(), "Artist", ""); err == nil {
		t.Fatal("expected error for missing title")
	}
}

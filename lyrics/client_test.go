package lyrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"songbridge/config"
)

func newTestClient(baseURL string) *Client {
	return New(config.LyricsConfig{
		BaseURL:        baseURL,
		RequestTimeout: 2 * time.Second,
	})
}

func TestFetchExtractsLyrics(t *testing.T) {
	page := `<html><body>
		<div data-lyrics-container="true">[Verse 1]<br>Hello from the other side<br>I must have called a thousand times</div>
		<div data-lyrics-container="true">[Chorus]<br>Hello<br>Hello</div>
	</body></html>`

	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(page))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	text, err := client.Fetch(context.Background(), "adele", "hello from home")
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}

	if gotPath != "/Adele-hello-from-home-lyrics" {
		t.Errorf("requested path = %q; want /Adele-hello-from-home-lyrics", gotPath)
	}

	want := "Hello from the other side\nI must have called a thousand times\nHello\nHello"
	if text != want {
		t.Errorf("lyrics = %q; want %q", text, want)
	}
}

func TestFetchNotFoundOn404(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if _, err := client.Fetch(context.Background(), "nobody", "no song"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v; want ErrNotFound", err)
	}
}

func TestFetchNotFoundOnMissingContainer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>layout changed</p></body></html>"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if _, err := client.Fetch(context.Background(), "artist", "song"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v; want ErrNotFound", err)
	}
}

func TestFetchNotFoundOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if _, err := client.Fetch(context.Background(), "artist", "song"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v; want ErrNotFound", err)
	}
}

func TestFetchEmptyFields(t *testing.T) {
	client := newTestClient("http://127.0.0.1:1")
	if _, err := client.Fetch(context.Background(), "", "song"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v; want ErrNotFound", err)
	}
}

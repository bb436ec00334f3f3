package youtube

import (
	"errors"
	"testing"

	"songbridge/models"
)

func TestResolveVideoHosts(t *testing.T) {
	// Every recognized video-URL shape must yield the same ID.
	urls := []string{
		"https://youtube.com/watch?v=dQw4w9WgXcQ",
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://m.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://music.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ",
	}
	for _, u := range urls {
		t.Run(u, func(t *testing.T) {
			ref, err := Resolve(u)
			if err != nil {
				t.Fatalf("Resolve(%q) error: %v", u, err)
			}
			if ref.Video == nil {
				t.Fatalf("Resolve(%q) did not yield a video ref", u)
			}
			if ref.Video.VideoID != "dQw4w9WgXcQ" {
				t.Errorf("VideoID = %q; want dQw4w9WgXcQ", ref.Video.VideoID)
			}
			if ref.Video.Platform != models.PlatformYouTube {
				t.Errorf("Platform = %q; want youtube", ref.Video.Platform)
			}
		})
	}
}

func TestResolvePlaylist(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		wantID string
	}{
		{"playlist page", "https://www.youtube.com/playlist?list=PL123456", "PL123456"},
		{"music subdomain", "https://music.youtube.com/playlist?list=PL123456", "PL123456"},
		{"watch url with list key", "https://www.youtube.com/watch?v=abc123&list=PLdef456", "PLdef456"},
		{"short link with list key", "https://youtu.be/abc123?list=PLdef456", "PLdef456"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := Resolve(tt.url)
			if err != nil {
				t.Fatalf("Resolve(%q) error: %v", tt.url, err)
			}
			if ref.Playlist == nil {
				t.Fatalf("Resolve(%q) did not yield a playlist ref", tt.url)
			}
			if ref.Playlist.PlaylistID != tt.wantID {
				t.Errorf("PlaylistID = %q; want %q", ref.Playlist.PlaylistID, tt.wantID)
			}
		})
	}
}

func TestResolveSpotify(t *testing.T) {
	ref, err := Resolve("https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if ref.Video == nil || ref.Video.Platform != models.PlatformSpotify {
		t.Fatalf("expected a spotify video ref, got %+v", ref)
	}
	if ref.Video.VideoID != "4uLU6hMCjMI75M1A2tKUQC" {
		t.Errorf("VideoID = %q", ref.Video.VideoID)
	}
}

func TestResolveInvalid(t *testing.T) {
	urls := []string{
		"",
		"not a url",
		"https://example.com/watch?v=abc",
		"https://www.youtube.com/",
		"https://www.youtube.com/watch",
		"https://youtu.be/",
		"https://youtu.be/a/b",
		"https://open.spotify.com/album/xyz",
	}
	for _, u := range urls {
		t.Run(u, func(t *testing.T) {
			if _, err := Resolve(u); !errors.Is(err, models.ErrInvalidURL) {
				t.Errorf("Resolve(%q) err = %v; want ErrInvalidURL", u, err)
			}
		})
	}
}

package youtube

import (
	"net/url"
	"strings"

	"songbridge/models"
)

// Ref is the result of resolving a raw URL: exactly one of Video or Playlist
// is set.
type Ref struct {
	Video    *models.VideoRef
	Playlist *models.PlaylistRef
}

var youtubeHosts = map[string]bool{
	"youtube.com":       true,
	"www.youtube.com":   true,
	"m.youtube.com":     true,
	"music.youtube.com": true,
}

// Resolve parses a raw URL into a canonical video or playlist reference.
// The playlist query key wins over a video ID when both are present, so a
// watch URL opened from a playlist resolves to the playlist. Malformed input
// never panics; anything unrecognized is models.ErrInvalidURL.
func Resolve(raw string) (Ref, error) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Ref{}, models.ErrInvalidURL
	}

	host := strings.ToLower(parsed.Host)

	if youtubeHosts[host] {
		query := parsed.Query()
		if listID := query.Get("list"); listID != "" {
			return Ref{Playlist: &models.PlaylistRef{
				Platform:   models.PlatformYouTube,
				PlaylistID: listID,
				SourceURL:  raw,
			}}, nil
		}
		if videoID := query.Get("v"); videoID != "" {
			return Ref{Video: &models.VideoRef{
				Platform: models.PlatformYouTube,
				VideoID:  videoID,
			}}, nil
		}
		return Ref{}, models.ErrInvalidURL
	}

	if host == "youtu.be" {
		if listID := parsed.Query().Get("list"); listID != "" {
			return Ref{Playlist: &models.PlaylistRef{
				Platform:   models.PlatformYouTube,
				PlaylistID: listID,
				SourceURL:  raw,
			}}, nil
		}
		videoID := strings.Trim(parsed.Path, "/")
		if videoID == "" || strings.Contains(videoID, "/") {
			return Ref{}, models.ErrInvalidURL
		}
		return Ref{Video: &models.VideoRef{
			Platform: models.PlatformYouTube,
			VideoID:  videoID,
		}}, nil
	}

	if host == "open.spotify.com" {
		parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
		if len(parts) == 2 && parts[0] == "track" && parts[1] != "" {
			return Ref{Video: &models.VideoRef{
				Platform: models.PlatformSpotify,
				VideoID:  parts[1],
			}}, nil
		}
		if len(parts) == 2 && parts[0] == "playlist" && parts[1] != "" {
			return Ref{Playlist: &models.PlaylistRef{
				Platform:   models.PlatformSpotify,
				PlaylistID: parts[1],
				SourceURL:  raw,
			}}, nil
		}
		return Ref{}, models.ErrInvalidURL
	}

	return Ref{}, models.ErrInvalidURL
}

// WatchURL rebuilds the canonical watch URL for a video ID.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

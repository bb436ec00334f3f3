// Package spotify resolves Spotify track links into a (title, artist) pair
// so the YouTube search can land them on a playable video.
package spotify

import (
	"context"
	"fmt"
	"strings"

	"songbridge/config"
	"songbridge/models"

	sentry "github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
	spotifyclient "github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"
)

type TrackInfo struct {
	Title   string
	Artists []string
}

type Client struct {
	api    *spotifyclient.Client
	logger *log.Entry
}

// NewClient authenticates with the client-credentials flow. Call only when
// the Spotify bridge is enabled in config.
func NewClient(ctx context.Context, cfg config.SpotifyConfig) (*Client, error) {
	ccfg := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}
	token, err := ccfg.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("spotify auth: %w", err)
	}

	httpClient := spotifyauth.New().Client(ctx, token)
	return &Client{
		api:    spotifyclient.New(httpClient),
		logger: log.WithFields(log.Fields{"module": "spotify"}),
	}, nil
}

// GetTrack fetches title and artists for a track ID.
func (c *Client) GetTrack(ctx context.Context, trackID string) (*TrackInfo, error) {
	c.logger.Tracef("fetching track from Spotify API: %s", trackID)

	span := sentry.StartSpan(ctx, "spotify.get_track")
	span.SetTag("track_id", trackID)
	defer span.Finish()

	track, err := c.api.GetTrack(ctx, spotifyclient.ID(trackID))
	if err != nil {
		c.logger.Errorf("failed to fetch Spotify track %s: %v", trackID, err)
		sentry.CaptureException(err)
		span.Status = sentry.SpanStatusInternalError
		return nil, fmt.Errorf("%w: %v", models.ErrUpstream, err)
	}

	artists := []string{}
	for _, artist := range track.Artists {
		artists = append(artists, artist.Name)
	}

	c.logger.Debugf("fetched Spotify track: '%s' by %v", track.Name, artists)
	span.Status = sentry.SpanStatusOK
	return &TrackInfo{
		Title:   track.Name,
		Artists: artists,
	}, nil
}

// SearchQuery builds the free-text query used against YouTube.
func (t *TrackInfo) SearchQuery() string {
	return strings.TrimSpace(strings.Join(t.Artists, " ") + " " + t.Title)
}

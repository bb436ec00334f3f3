// Package handlers wires the resolution chain into the HTTP surface.
// Interfaces are declared here, consumer-side, so every handler can be
// exercised against test doubles.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"songbridge/database"
	"songbridge/extractor"
	"songbridge/lyrics"
	"songbridge/models"
	"songbridge/playlist"
	appsentry "songbridge/sentry"
	"songbridge/spotify"
	"songbridge/youtube"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type VideoFetcher interface {
	FetchVideo(ctx context.Context, ref models.VideoRef) (*models.TrackMetadata, error)
	Search(ctx context.Context, query string) (models.VideoRef, error)
}

type Prober interface {
	Probe(ctx context.Context, url string) (*extractor.Info, error)
}

type LyricsFetcher interface {
	Fetch(ctx context.Context, artist, title string) (string, error)
}

type Aggregator interface {
	Aggregate(ctx context.Context, urls []string) models.PlaylistResult
}

type TrackLookup interface {
	GetTrack(ctx context.Context, trackID string) (*spotify.TrackInfo, error)
}

type Transcoder interface {
	ToMP3(ctx context.Context, streamURL string) (string, func(), error)
}

type History interface {
	RecordResolve(videoID, title, uploader, url string, durationSeconds int) error
	Recent(limit int) ([]database.ResolveRecord, error)
}

// Manager holds every collaborator a request can need. Spotify and History
// are nil when the corresponding feature is disabled.
type Manager struct {
	Videos     VideoFetcher
	Prober     Prober
	Lyrics     LyricsFetcher
	Aggregator Aggregator
	Spotify    TrackLookup
	Transcoder Transcoder
	History    History
	LinksPath  string

	logger *log.Entry
}

func NewManager(m Manager) *Manager {
	m.logger = log.WithFields(log.Fields{"module": "handlers"})
	return &m
}

// CORS mirrors the permissive policy of the original service.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidURL), errors.Is(err, models.ErrNoAudio):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrRestricted):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		appsentry.ReportError(err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// GetAudioInfo resolves a single URL into metadata plus the best audio
// stream URL, optionally enriched with lyrics.
func (m *Manager) GetAudioInfo(c *gin.Context) {
	rawURL := c.Query("url")
	if rawURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing url parameter"})
		return
	}

	ctx := c.Request.Context()
	track, err := m.resolveTrack(ctx, rawURL)
	if err != nil {
		fail(c, err)
		return
	}

	info := models.AudioInfo{
		Title:       track.Title,
		Uploader:    track.RawUploader,
		Duration:    track.DurationSeconds,
		Thumbnail:   track.ThumbnailURL,
		Description: track.Description,
	}

	// Best-effort enrichments below: neither a missing audio-only stream
	// nor a lyrics miss fails the response.
	if audioURL, err := m.bestAudioURL(ctx, track.SourceURL); err == nil {
		info.AudioURL = audioURL
	} else if !errors.Is(err, models.ErrNoAudio) {
		fail(c, err)
		return
	}

	if c.Query("lyrics") == "true" {
		info.Lyrics = m.lookupLyrics(ctx, track)
	}

	m.record(track)
	c.JSON(http.StatusOK, info)
}

// GetAudio resolves a URL and streams the transcoded MP3 back.
func (m *Manager) GetAudio(c *gin.Context) {
	rawURL := c.Query("url")
	if rawURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing url parameter"})
		return
	}

	ctx := c.Request.Context()
	track, err := m.resolveTrack(ctx, rawURL)
	if err != nil {
		fail(c, err)
		return
	}

	audioURL, err := m.bestAudioURL(ctx, track.SourceURL)
	if err != nil {
		fail(c, err)
		return
	}

	path, cleanup, err := m.Transcoder.ToMP3(ctx, audioURL)
	if err != nil {
		fail(c, err)
		return
	}
	defer cleanup()

	m.record(track)
	c.Header("Content-Type", "audio/mpeg")
	c.File(path)
}

// Playlist flattens the configured playlist URLs into one response.
func (m *Manager) Playlist(c *gin.Context) {
	urls, err := playlist.LoadLinks(m.LinksPath)
	if err != nil {
		m.logger.Errorf("failed to read %s: %v", m.LinksPath, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read playlist links: " + err.Error()})
		return
	}
	if len(urls) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no playlist URLs configured"})
		return
	}

	result := m.Aggregator.Aggregate(c.Request.Context(), urls)
	c.JSON(http.StatusOK, result)
}

// HistoryRecent lists recently resolved tracks when the store is enabled.
func (m *Manager) HistoryRecent(c *gin.Context) {
	if m.History == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "history store disabled"})
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	records, err := m.History.Recent(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(records), "records": records})
}

// resolveTrack runs the mandatory part of the chain: URL → ref → metadata.
// Spotify refs take a detour through the bridge to land on a video ID.
func (m *Manager) resolveTrack(ctx context.Context, rawURL string) (*models.TrackMetadata, error) {
	ref, err := youtube.Resolve(rawURL)
	if err != nil {
		return nil, err
	}
	if ref.Video == nil {
		return nil, models.ErrInvalidURL
	}

	videoRef := *ref.Video
	if videoRef.Platform == models.PlatformSpotify {
		if m.Spotify == nil {
			return nil, models.ErrInvalidURL
		}
		track, err := m.Spotify.GetTrack(ctx, videoRef.VideoID)
		if err != nil {
			return nil, err
		}
		videoRef, err = m.Videos.Search(ctx, track.SearchQuery())
		if err != nil {
			return nil, err
		}
	}

	return m.Videos.FetchVideo(ctx, videoRef)
}

func (m *Manager) bestAudioURL(ctx context.Context, sourceURL string) (string, error) {
	info, err := m.Prober.Probe(ctx, sourceURL)
	if err != nil {
		return "", err
	}
	best, err := extractor.SelectBestAudio(info.Formats)
	if err != nil {
		return "", err
	}
	return best.URL, nil
}

// lookupLyrics is strictly best-effort: any failure logs and returns "".
func (m *Manager) lookupLyrics(ctx context.Context, track *models.TrackMetadata) string {
	artist := track.CleanArtist
	if artist == "" {
		artist = track.RawUploader
	}
	title := track.CleanTitle
	if title == "" {
		title = track.Title
	}

	text, err := m.Lyrics.Fetch(ctx, artist, title)
	if err != nil {
		if errors.Is(err, lyrics.ErrNotFound) {
			m.logger.Debugf("lyrics not found for %q / %q: %v", artist, title, err)
		} else {
			m.logger.Errorf("lyrics fetch failed for %q / %q: %v", artist, title, err)
		}
		return ""
	}
	return text
}

func (m *Manager) record(track *models.TrackMetadata) {
	if m.History == nil {
		return
	}
	ref, err := youtube.Resolve(track.SourceURL)
	if err != nil || ref.Video == nil {
		return
	}
	if err := m.History.RecordResolve(ref.Video.VideoID, track.Title, track.RawUploader, track.SourceURL, track.DurationSeconds); err != nil {
		m.logger.Errorf("failed to record resolve: %v", err)
	}
}

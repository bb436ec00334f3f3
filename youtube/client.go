package youtube

import (
	"context"
	"errors"
	"fmt"
	"html"
	"regexp"
	"strconv"
	"time"

	"songbridge/config"
	"songbridge/models"
	"songbridge/normalize"

	sentry "github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"
)

// Client wraps the YouTube Data API for single-video and playlist metadata.
// Construct one per process with the config it should run under; there is no
// package-level client.
type Client struct {
	service *ytapi.Service
	config  config.YoutubeConfig
	logger  *log.Entry
}

func NewClient(ctx context.Context, cfg config.YoutubeConfig) (*Client, error) {
	service, err := ytapi.NewService(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("creating YouTube client: %w", err)
	}
	return &Client{
		service: service,
		config:  cfg,
		logger:  log.WithFields(log.Fields{"module": "youtube"}),
	}, nil
}

// FetchVideo retrieves and normalizes metadata for a single video.
func (c *Client) FetchVideo(ctx context.Context, ref models.VideoRef) (*models.TrackMetadata, error) {
	span := sentry.StartSpan(ctx, "youtube.videos.list")
	span.SetTag("video_id", ref.VideoID)
	defer span.Finish()

	ctx, cancel := context.WithTimeout(ctx, c.config.RequestTimeout)
	defer cancel()

	call := c.service.Videos.List([]string{"snippet", "contentDetails", "status"}).
		Id(ref.VideoID).
		Context(ctx)

	response, err := call.Do()
	if err != nil {
		c.logger.Errorf("error querying YouTube for %s: %v", ref.VideoID, err)
		sentry.CaptureException(err)
		span.Status = sentry.SpanStatusInternalError
		return nil, fmt.Errorf("%w: %v", models.ErrUpstream, err)
	}

	if len(response.Items) == 0 {
		return nil, models.ErrNotFound
	}

	item := response.Items[0]
	if c.rejectsVideo(item) {
		c.logger.Debugf("video %s rejected by restricted-content policy", ref.VideoID)
		return nil, models.ErrRestricted
	}

	span.Status = sentry.SpanStatusOK
	return c.trackFromVideo(item), nil
}

// FetchPlaylist walks every page of a playlist and returns the accumulated
// records in upstream order. Page size is capped upstream at 50, so the
// token loop is mandatory for anything longer.
func (c *Client) FetchPlaylist(ctx context.Context, playlistID string) ([]models.TrackMetadata, error) {
	span := sentry.StartSpan(ctx, "youtube.playlistitems.list")
	span.SetTag("playlist_id", playlistID)
	defer span.Finish()

	tracks, err := accumulatePages(func(pageToken string) (*ytapi.PlaylistItemListResponse, error) {
		// Per-page timeout: a long playlist should not share one budget
		// across all of its pages.
		pageCtx, cancel := context.WithTimeout(ctx, c.config.RequestTimeout)
		defer cancel()

		call := c.service.PlaylistItems.List([]string{"snippet"}).
			PlaylistId(playlistID).
			MaxResults(c.config.PageSize).
			Context(pageCtx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		return call.Do()
	})
	if err != nil {
		sentry.CaptureException(err)
		span.Status = sentry.SpanStatusInternalError
		if isNotFound(err) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", models.ErrUpstream, err)
	}

	c.logger.Tracef("playlist %s resolved to %d tracks", playlistID, len(tracks))
	span.Status = sentry.SpanStatusOK
	return tracks, nil
}

// accumulatePages drives the pagination token loop: each page's token is fed
// back into the next fetch until the upstream stops returning one.
func accumulatePages(fetch func(pageToken string) (*ytapi.PlaylistItemListResponse, error)) ([]models.TrackMetadata, error) {
	var tracks []models.TrackMetadata
	pageToken := ""
	for {
		response, err := fetch(pageToken)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, collectPlaylistPage(response)...)
		pageToken = response.NextPageToken
		if pageToken == "" {
			return tracks, nil
		}
	}
}

// Search finds the best-matching video ID for a free-text query. Used by the
// Spotify bridge to land a (title, artist) pair on a playable video.
func (c *Client) Search(ctx context.Context, query string) (models.VideoRef, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.RequestTimeout)
	defer cancel()

	call := c.service.Search.List([]string{"snippet"}).
		Q(query).
		MaxResults(1).
		Type("video").
		VideoCategoryId("10").
		Context(ctx)

	response, err := call.Do()
	if err != nil {
		sentry.CaptureException(err)
		return models.VideoRef{}, fmt.Errorf("%w: %v", models.ErrUpstream, err)
	}

	for _, item := range response.Items {
		if item.Id.Kind == "youtube#video" {
			return models.VideoRef{Platform: models.PlatformYouTube, VideoID: item.Id.VideoId}, nil
		}
	}
	return models.VideoRef{}, models.ErrNotFound
}

func (c *Client) trackFromVideo(item *ytapi.Video) *models.TrackMetadata {
	title := html.UnescapeString(item.Snippet.Title)
	uploader := item.Snippet.ChannelTitle
	cleanTitle, cleanArtist := normalize.Clean(title, uploader)

	duration := ""
	if item.ContentDetails != nil {
		duration = item.ContentDetails.Duration
	}

	return &models.TrackMetadata{
		Title:           title,
		RawUploader:     uploader,
		CleanTitle:      cleanTitle,
		CleanArtist:     cleanArtist,
		Description:     item.Snippet.Description,
		DurationSeconds: int(parseISODuration(duration).Seconds()),
		ThumbnailURL:    bestThumbnail(item.Snippet.Thumbnails),
		SourceURL:       WatchURL(item.Id),
	}
}

// collectPlaylistPage maps one API page to track records. Named fallbacks
// replace the duck-typed field probing the upstream shapes invite: the owner
// channel is preferred over the uploading channel, and thumbnail resolution
// degrades from high to default.
func collectPlaylistPage(response *ytapi.PlaylistItemListResponse) []models.TrackMetadata {
	tracks := make([]models.TrackMetadata, 0, len(response.Items))
	for _, item := range response.Items {
		snippet := item.Snippet
		if snippet == nil || snippet.ResourceId == nil || snippet.ResourceId.VideoId == "" {
			continue
		}

		uploader := snippet.VideoOwnerChannelTitle
		if uploader == "" {
			uploader = snippet.ChannelTitle
		}

		title := html.UnescapeString(snippet.Title)
		cleanTitle, cleanArtist := normalize.Clean(title, uploader)

		tracks = append(tracks, models.TrackMetadata{
			Title:        title,
			RawUploader:  uploader,
			CleanTitle:   cleanTitle,
			CleanArtist:  cleanArtist,
			ThumbnailURL: bestThumbnail(snippet.Thumbnails),
			SourceURL:    WatchURL(snippet.ResourceId.VideoId),
		})
	}
	return tracks
}

func bestThumbnail(details *ytapi.ThumbnailDetails) string {
	if details == nil {
		return ""
	}
	for _, t := range []*ytapi.Thumbnail{details.High, details.Medium, details.Default} {
		if t != nil && t.Url != "" {
			return t.Url
		}
	}
	return ""
}

// rejectsVideo applies the restricted-content policy: restricted videos
// fail only when RejectRestricted is on; otherwise they pass through like
// any other video.
func (c *Client) rejectsVideo(item *ytapi.Video) bool {
	return c.config.RejectRestricted && isRestricted(item)
}

func isRestricted(item *ytapi.Video) bool {
	if item.Status != nil && !item.Status.Embeddable {
		return true
	}
	if item.ContentDetails != nil && item.ContentDetails.ContentRating != nil &&
		item.ContentDetails.ContentRating.YtRating == "ytAgeRestricted" {
		return true
	}
	return false
}

func isNotFound(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == 404
	}
	return false
}

var isoDuration = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// parseISODuration handles the PT#H#M#S subset the API emits. Anything
// unparsable comes back as zero.
func parseISODuration(iso string) time.Duration {
	m := isoDuration.FindStringSubmatch(iso)
	if m == nil {
		return 0
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	seconds, _ := strconv.Atoi(m[3])
	return time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second
}

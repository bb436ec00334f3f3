package models

// Platform identifies the service a URL was resolved against.
type Platform string

const (
	PlatformYouTube Platform = "youtube"
	PlatformSpotify Platform = "spotify"
)

// VideoRef is a canonical reference to a single video. VideoID is the
// platform-specific token, never a full URL.
type VideoRef struct {
	Platform Platform
	VideoID  string
}

// PlaylistRef references a playlist either by ID or, for extraction paths
// that take playlists opaquely, by source URL.
type PlaylistRef struct {
	Platform   Platform
	PlaylistID string
	SourceURL  string
}

// TrackMetadata is the normalized per-video record produced at the metadata
// fetcher boundary. CleanTitle and CleanArtist are filled in by the
// normalization pipeline; callers fall back to the raw fields when the
// pipeline yields an empty string.
type TrackMetadata struct {
	Title           string
	RawUploader     string
	CleanTitle      string
	CleanArtist     string
	Description     string
	DurationSeconds int
	ThumbnailURL    string
	SourceURL       string
}

// SongRecord is the API-facing playlist entry shape.
type SongRecord struct {
	Title       string `json:"title"`
	Writer      string `json:"writer"`
	URL         string `json:"url"`
	ImageURL    string `json:"image_url"`
	Lyrics      string `json:"lyrics,omitempty"`
	PlaylistURL string `json:"playlist_url,omitempty"`
}

// PlaylistResult aggregates songs across one or more playlists. SongCount
// always equals len(SongInfo).
type PlaylistResult struct {
	SongCount int          `json:"songCount"`
	SongInfo  []SongRecord `json:"songInfo"`
}

// AudioInfo is the response body for a single-video resolution.
type AudioInfo struct {
	Title       string `json:"title"`
	Uploader    string `json:"uploader"`
	Duration    int    `json:"duration"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	Description string `json:"description,omitempty"`
	AudioURL    string `json:"audioUrl,omitempty"`
	Lyrics      string `json:"lyrics,omitempty"`
}

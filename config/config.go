package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Youtube  YoutubeConfig
	Lyrics   LyricsConfig
	Spotify  SpotifyConfig
	Database DatabaseConfig
	Sentry   SentryConfig
	Options  Options
}

type YoutubeConfig struct {
	APIKey           string
	PageSize         int64 // playlist items per page, API caps at 50
	RequestTimeout   time.Duration
	RejectRestricted bool
}

type LyricsConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
}

type SpotifyConfig struct {
	ClientID     string
	ClientSecret string
	Enabled      bool
}

type DatabaseConfig struct {
	Path string
}

type SentryConfig struct {
	DSN string
}

type Options struct {
	Port           string
	LinksPath      string
	ExtractTimeout time.Duration
	ConvertTimeout time.Duration
}

func (s *SentryConfig) IsEnabled() bool {
	return s.DSN != ""
}

func (d *DatabaseConfig) IsEnabled() bool {
	return d.Path != ""
}

// New reads configuration from the environment. The result is passed into
// each client at construction; nothing here is a package-level singleton.
func New() *Config {
	return &Config{
		Youtube: YoutubeConfig{
			APIKey:           os.Getenv("YOUTUBE_API_KEY"),
			PageSize:         getPageSize(),
			RequestTimeout:   getTimeout("YOUTUBE_TIMEOUT_SECONDS", 15),
			RejectRestricted: os.Getenv("REJECT_RESTRICTED") == "true",
		},
		Lyrics: LyricsConfig{
			BaseURL:        getLyricsBaseURL(),
			RequestTimeout: getTimeout("LYRICS_TIMEOUT_SECONDS", 10),
		},
		Spotify: SpotifyConfig{
			ClientID:     os.Getenv("SPOTIFY_CLIENT_ID"),
			ClientSecret: os.Getenv("SPOTIFY_CLIENT_SECRET"),
			Enabled:      os.Getenv("SPOTIFY_ENABLED") == "true",
		},
		Database: DatabaseConfig{
			Path: os.Getenv("DB_PATH"),
		},
		Sentry: SentryConfig{
			DSN: os.Getenv("SENTRY_DSN"),
		},
		Options: Options{
			Port:           os.Getenv("PORT"),
			LinksPath:      getLinksPath(),
			ExtractTimeout: getTimeout("EXTRACT_TIMEOUT_SECONDS", 30),
			ConvertTimeout: getTimeout("CONVERT_TIMEOUT_SECONDS", 120),
		},
	}
}

func getPageSize() int64 {
	sizeStr := os.Getenv("PLAYLIST_PAGE_SIZE")
	if sizeStr == "" {
		return 50
	}
	size, err := strconv.ParseInt(sizeStr, 10, 64)
	if err != nil || size <= 0 {
		return 50
	}
	if size > 50 {
		return 50 // YouTube API max per page
	}
	return size
}

func getTimeout(envKey string, defaultSeconds int) time.Duration {
	timeoutStr := os.Getenv(envKey)
	if timeoutStr == "" {
		return time.Duration(defaultSeconds) * time.Second
	}
	timeout, err := strconv.Atoi(timeoutStr)
	if err != nil || timeout <= 0 {
		return time.Duration(defaultSeconds) * time.Second
	}
	return time.Duration(timeout) * time.Second
}

func getLyricsBaseURL() string {
	base := os.Getenv("LYRICS_BASE_URL")
	if base == "" {
		return "https://genius.com"
	}
	return base
}

func getLinksPath() string {
	path := os.Getenv("LINKS_PATH")
	if path == "" {
		return "links.txt"
	}
	return path
}

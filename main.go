package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	nested "github.com/antonfisher/nested-logrus-formatter"

	"songbridge/audio"
	"songbridge/config"
	"songbridge/database"
	"songbridge/extractor"
	"songbridge/handlers"
	"songbridge/lyrics"
	"songbridge/pages"
	"songbridge/playlist"
	appsentry "songbridge/sentry"
	"songbridge/spotify"
	"songbridge/youtube"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	log.SetFormatter(&nested.Formatter{
		HideKeys:    true,
		FieldsOrder: []string{"module"},
	})

	cfg := config.New()
	if err := run(context.Background(), cfg); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	if cfg.Sentry.IsEnabled() {
		appsentry.Init(cfg.Sentry)
	}

	ytClient, err := youtube.NewClient(ctx, cfg.Youtube)
	if err != nil {
		return err
	}

	manager := handlers.NewManager(handlers.Manager{
		Videos:     ytClient,
		Prober:     extractor.NewClient(cfg.Options.ExtractTimeout),
		Lyrics:     lyrics.New(cfg.Lyrics),
		Aggregator: playlist.NewAggregator(ytClient),
		Transcoder: audio.NewTranscoder(cfg.Options.ConvertTimeout),
		LinksPath:  cfg.Options.LinksPath,
	})

	if cfg.Spotify.Enabled {
		spClient, err := spotify.NewClient(ctx, cfg.Spotify)
		if err != nil {
			// The bridge is an enrichment; the core service still runs.
			log.Errorf("spotify bridge disabled: %v", err)
		} else {
			manager.Spotify = spClient
		}
	}

	if cfg.Database.IsEnabled() {
		db, err := database.New(cfg.Database.Path)
		if err != nil {
			return err
		}
		defer db.Close()
		manager.History = db
	}

	router := gin.Default()
	router.Use(handlers.CORS())
	if cfg.Sentry.IsEnabled() {
		router.Use(appsentry.GetSentryGin())
	}

	router.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(pages.Index))
	})
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/get-audio-info", manager.GetAudioInfo)
	router.GET("/get-audio", manager.GetAudio)
	router.GET("/playlist", manager.Playlist)
	router.GET("/get_playlist_info", manager.Playlist)
	router.GET("/history", manager.HistoryRecent)

	port := cfg.Options.Port
	if port == "" {
		port = "8080"
	}
	log.Printf("Starting server on :%s", port)
	return http.ListenAndServe(":"+port, router)
}

// Package playlist flattens a configured list of playlist URLs into one
// ordered result, tolerating individual playlist failures.
package playlist

import (
	"context"
	"sync"

	"songbridge/models"
	"songbridge/youtube"

	log "github.com/sirupsen/logrus"
)

// Fetcher is the slice of the metadata client the aggregator needs.
type Fetcher interface {
	FetchPlaylist(ctx context.Context, playlistID string) ([]models.TrackMetadata, error)
}

type Aggregator struct {
	fetcher Fetcher
	logger  *log.Entry
}

func NewAggregator(fetcher Fetcher) *Aggregator {
	return &Aggregator{
		fetcher: fetcher,
		logger:  log.WithFields(log.Fields{"module": "playlist"}),
	}
}

// Aggregate resolves every URL in order. Playlists are fetched in parallel
// (pages within one playlist stay sequential), but the output preserves the
// URL list's order and, inside each playlist, the upstream order. A URL that
// fails to resolve or fetch is logged and skipped; it never aborts the rest.
func (a *Aggregator) Aggregate(ctx context.Context, urls []string) models.PlaylistResult {
	perPlaylist := make([][]models.SongRecord, len(urls))

	var wg sync.WaitGroup
	for i, rawURL := range urls {
		wg.Add(1)
		go func(i int, rawURL string) {
			defer wg.Done()
			perPlaylist[i] = a.resolveOne(ctx, rawURL)
		}(i, rawURL)
	}
	wg.Wait()

	songs := []models.SongRecord{}
	for _, records := range perPlaylist {
		songs = append(songs, records...)
	}

	return models.PlaylistResult{
		SongCount: len(songs),
		SongInfo:  songs,
	}
}

func (a *Aggregator) resolveOne(ctx context.Context, rawURL string) []models.SongRecord {
	ref, err := youtube.Resolve(rawURL)
	if err != nil || ref.Playlist == nil {
		a.logger.Errorf("invalid playlist URL %q, skipping", rawURL)
		return nil
	}

	tracks, err := a.fetcher.FetchPlaylist(ctx, ref.Playlist.PlaylistID)
	if err != nil {
		a.logger.Errorf("error fetching playlist %s: %v, skipping", ref.Playlist.PlaylistID, err)
		return nil
	}

	records := make([]models.SongRecord, 0, len(tracks))
	for _, track := range tracks {
		records = append(records, models.SongRecord{
			Title:       track.Title,
			Writer:      track.RawUploader,
			URL:         track.SourceURL,
			ImageURL:    track.ThumbnailURL,
			PlaylistURL: rawURL,
		})
	}
	return records
}

// Package extractor shells out to yt-dlp for stream-level metadata: the
// candidate formats a video exposes and the direct URLs behind them.
package extractor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"songbridge/models"

	sentry "github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
)

// Format is one candidate encoding reported by yt-dlp.
type Format struct {
	FormatID string  `json:"format_id"`
	URL      string  `json:"url"`
	Ext      string  `json:"ext"`
	ACodec   string  `json:"acodec"`
	VCodec   string  `json:"vcodec"`
	ABR      float64 `json:"abr"`
}

// Info is the probe result for a single video URL.
type Info struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Uploader  string   `json:"uploader"`
	Duration  float64  `json:"duration"`
	Thumbnail string   `json:"thumbnail"`
	Formats   []Format `json:"formats"`
}

type Client struct {
	binary  string
	timeout time.Duration
	logger  *log.Entry
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		binary:  "yt-dlp",
		timeout: timeout,
		logger:  log.WithFields(log.Fields{"module": "extractor"}),
	}
}

// Probe runs yt-dlp against the URL and decodes its JSON dump. Failures of
// any shape (missing binary, extraction error, bad JSON) surface as
// models.ErrUpstream; the caller cannot distinguish them and should not.
func (c *Client) Probe(ctx context.Context, url string) (*Info, error) {
	span := sentry.StartSpan(ctx, "extractor.probe")
	span.SetTag("url", url)
	defer span.Finish()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.binary,
		"-J",
		"--no-playlist",
		"--no-warnings",
		"--socket-timeout", "10",
		url)

	output, err := cmd.Output()
	if err != nil {
		c.logger.Errorf("yt-dlp failed for %s: %v: %s", url, err, commandStderr(err))
		sentry.CaptureException(err)
		span.Status = sentry.SpanStatusInternalError
		return nil, fmt.Errorf("%w: yt-dlp: %v", models.ErrUpstream, err)
	}

	var info Info
	if err := json.Unmarshal(output, &info); err != nil {
		span.Status = sentry.SpanStatusInternalError
		return nil, fmt.Errorf("%w: decoding yt-dlp output: %v", models.ErrUpstream, err)
	}

	c.logger.Tracef("probed %s: %d formats", url, len(info.Formats))
	span.Status = sentry.SpanStatusOK
	return &info, nil
}

// commandStderr recovers the stderr yt-dlp wrote before exiting; that text
// names the actual extraction failure, where the exec error only carries the
// exit code.
func commandStderr(err error) string {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return strings.TrimSpace(string(exitErr.Stderr))
	}
	return ""
}

// SelectBestAudio picks the audio-only candidate with the highest average
// bitrate. A missing bitrate counts as zero and ties keep the earliest
// candidate, so the choice is stable across runs. An empty survivor set is
// models.ErrNoAudio — an expected outcome, not a fault.
func SelectBestAudio(formats []Format) (*Format, error) {
	var best *Format
	for i := range formats {
		f := &formats[i]
		if !isAudioOnly(f) {
			continue
		}
		if best == nil || f.ABR > best.ABR {
			best = f
		}
	}
	if best == nil {
		return nil, models.ErrNoAudio
	}
	return best, nil
}

func isAudioOnly(f *Format) bool {
	hasAudio := f.ACodec != "" && f.ACodec != "none"
	hasVideo := f.VCodec != "" && f.VCodec != "none"
	return hasAudio && !hasVideo
}

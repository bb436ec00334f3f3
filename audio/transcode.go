// Package audio converts an upstream audio stream into a servable MP3 file
// by shelling out to ffmpeg.
package audio

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"songbridge/models"

	sentry "github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
)

type Transcoder struct {
	binary  string
	timeout time.Duration
	logger  *log.Entry
}

func NewTranscoder(timeout time.Duration) *Transcoder {
	return &Transcoder{
		binary:  "ffmpeg",
		timeout: timeout,
		logger:  log.WithFields(log.Fields{"module": "audio"}),
	}
}

// ToMP3 downloads and converts the stream behind streamURL into a temporary
// MP3 file. The returned cleanup func removes the file and must be called on
// every path once the caller is done serving it; ToMP3 itself removes the
// file on any of its own failure paths.
func (t *Transcoder) ToMP3(ctx context.Context, streamURL string) (string, func(), error) {
	span := sentry.StartSpan(ctx, "audio.transcode")
	defer span.Finish()

	tmp, err := os.CreateTemp("", "songbridge-*.mp3")
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}
	path := tmp.Name()
	tmp.Close()

	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			t.logger.Errorf("removing %s: %v", path, err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, t.binary,
		"-i", streamURL,
		"-vn",
		"-codec:a", "libmp3lame",
		"-q:a", "2",
		"-loglevel", "error",
		"-y",
		path)

	start := time.Now()
	output, err := cmd.CombinedOutput()
	if err != nil {
		cleanup()
		t.logger.WithFields(log.Fields{
			"error":  err,
			"output": string(output),
		}).Error("ffmpeg conversion failed")
		sentry.CaptureException(fmt.Errorf("ffmpeg: %v, output: %s", err, output))
		span.Status = sentry.SpanStatusInternalError
		return "", nil, fmt.Errorf("%w: ffmpeg: %v", models.ErrUpstream, err)
	}

	t.logger.Debugf("transcoded stream to mp3 in %s", time.Since(start))
	span.Status = sentry.SpanStatusOK
	return path, cleanup, nil
}

// Package normalize turns noisy upstream video titles and channel names into
// a clean (song, artist) pair usable for a lyrics page guess.
package normalize

import (
	"regexp"
	"strings"
)

var (
	parenthesized = regexp.MustCompile(`\s*\([^)]*\)`)
	nonAlnum      = regexp.MustCompile(`[^a-zA-Z0-9 ]`)
)

// Clean runs the title through the normalization pipeline and strips channel
// noise from the uploader. Steps are order-significant and each is pure;
// running Clean on its own output returns the same output. An empty result is
// returned as-is — callers decide whether to fall back to the raw value.
func Clean(rawTitle, rawUploader string) (title, artist string) {
	artist = cleanArtist(rawUploader)
	title = cleanTitle(rawTitle, artist)
	return title, artist
}

func cleanTitle(title, artist string) string {
	// 1. Drop parenthesized segments and surrounding whitespace.
	title = parenthesized.ReplaceAllString(title, "")

	// 2. "Artist - Song" style titles: the artist prefix up to the first dash
	// is noise. Only triggered when the prefix actually names the artist, so
	// a "Song - Artist" shape keeps its song part for step 3 to clean up.
	if idx := strings.Index(title, "-"); idx >= 0 {
		if artist != "" && strings.Contains(title[:idx], artist) {
			title = strings.TrimLeft(title[idx+1:], " \t")
		}
	}

	// 3+4. Remove the artist's exact name wherever it occurs, then keep
	// letters, digits and spaces only. Iterated to a fixpoint: stripping
	// punctuation can fuse characters into a fresh occurrence of the
	// artist's name ("A.B" with artist "AB") that a single pass would miss.
	var artistPattern *regexp.Regexp
	if artist != "" {
		artistPattern = regexp.MustCompile(`\b` + regexp.QuoteMeta(artist) + `\b`)
	}
	for {
		prev := title
		if artistPattern != nil {
			title = artistPattern.ReplaceAllString(title, "")
		}
		title = nonAlnum.ReplaceAllString(title, "")
		if title == prev {
			break
		}
	}

	// 5. Trim surrounding whitespace.
	return strings.TrimSpace(title)
}

func cleanArtist(uploader string) string {
	uploader = parenthesized.ReplaceAllString(uploader, "")
	uploader = strings.TrimSpace(uploader)

	// Auto-generated channels carry a " - Topic" suffix; official artist
	// channels often end in VEVO.
	uploader = strings.TrimSuffix(uploader, " - Topic")
	for {
		trimmed := strings.TrimSuffix(uploader, "VEVO")
		if trimmed == uploader {
			break
		}
		uploader = trimmed
	}

	uploader = nonAlnum.ReplaceAllString(uploader, "")
	return strings.TrimSpace(uploader)
}

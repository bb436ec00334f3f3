// Package lyrics guesses a lyrics page address from an (artist, song) pair
// and scrapes the text out of it. The page markup is the fragile part of the
// whole system: any failure to find the expected container degrades to
// ErrNotFound so callers can simply omit the lyrics field.
package lyrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"unicode"

	"songbridge/config"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"
)

// ErrNotFound is returned whenever lyrics cannot be produced, whether the
// page is missing or its shape changed. Always non-fatal to callers.
var ErrNotFound = errors.New("lyrics not found")

// lyricsContainer is the selector for the hosting site's lyrics block.
// Version-pinned to the current page structure; when the site ships new
// markup this is the one line to update.
const lyricsContainer = `div[data-lyrics-container="true"]`

var sectionMarker = regexp.MustCompile(`\[[^\]]*\]`)

type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *log.Entry
}

func New(cfg config.LyricsConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		logger:     log.WithFields(log.Fields{"module": "lyrics"}),
	}
}

// Fetch requests the guessed page for (artist, title) and extracts the
// lyrics text. HTTP 404 and unexpected page shapes both come back as
// ErrNotFound with a diagnostic reason; only transport-level failures
// surface as other errors.
func (c *Client) Fetch(ctx context.Context, artist, title string) (string, error) {
	if artist == "" || title == "" {
		return "", fmt.Errorf("%w: empty artist or title", ErrNotFound)
	}

	pageURL := c.pageURL(artist, title)
	c.logger.Tracef("fetching lyrics page: %s", pageURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("lyrics request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("%w: no page at %s", ErrNotFound, pageURL)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: page returned HTTP %d", ErrNotFound, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: unparsable page: %v", ErrNotFound, err)
	}

	text := extract(doc)
	if text == "" {
		return "", fmt.Errorf("%w: page has no lyrics container", ErrNotFound)
	}
	return text, nil
}

// pageURL builds the guessed address: spaces become hyphens in both fields
// and the artist's first letter is capitalized.
func (c *Client) pageURL(artist, title string) string {
	slug := hyphenate(artist) + "-" + hyphenate(title)
	runes := []rune(slug)
	runes[0] = unicode.ToUpper(runes[0])
	return fmt.Sprintf("%s/%s-lyrics", c.baseURL, string(runes))
}

func hyphenate(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), " ", "-")
}

// extract pulls text out of every lyrics container on the page, collapsing
// <br> line breaks to newlines and dropping [Verse]/[Chorus] style markers.
func extract(doc *goquery.Document) string {
	var parts []string
	doc.Find(lyricsContainer).Each(func(i int, s *goquery.Selection) {
		s.Find("br").Each(func(_ int, br *goquery.Selection) {
			br.ReplaceWithHtml("\n")
		})
		parts = append(parts, s.Text())
	})

	text := strings.Join(parts, "\n")
	text = sectionMarker.ReplaceAllString(text, "")

	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}

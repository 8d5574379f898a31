// Package tafsir fetches per-verse commentary from the tafsir CDN.
package tafsir

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/llehouerou/tilawa/internal/errmsg"
	"github.com/llehouerou/tilawa/internal/logging"
	"github.com/llehouerou/tilawa/internal/network"
	"github.com/llehouerou/tilawa/internal/quran"
)

// ErrUnavailable is returned when the CDN has no commentary for a verse.
var ErrUnavailable = errors.New("tafsir unavailable")

// Placeholder texts shown in place of missing commentary.
const (
	UnavailableText = "التفسير غير متوفر حالياً لهذه الآية"
	FailedText      = "حدث خطأ في تحميل التفسير لهذه الآية"
)

// DefaultDelay is the pause between consecutive verse requests.
const DefaultDelay = 150 * time.Millisecond

// Entry is the commentary for one verse.
type Entry struct {
	Verse     int
	Text      string
	Available bool
}

// Client is a tafsir CDN client.
type Client struct {
	baseURL    string
	edition    string
	httpClient *http.Client
	delay      time.Duration
}

// New creates a client for the given CDN base URL and edition.
func New(baseURL, edition string) *Client {
	return &Client{
		baseURL:    baseURL,
		edition:    edition,
		httpClient: network.NewClient(10 * time.Second),
		delay:      DefaultDelay,
	}
}

// WithDelay sets the pause between verse requests.
func (c *Client) WithDelay(d time.Duration) *Client {
	c.delay = d
	return c
}

// Verse fetches the commentary of one verse.
func (c *Client) Verse(ctx context.Context, surah, verse int) (string, error) {
	url := fmt.Sprintf("%s/%s/%d/%d.json", c.baseURL, c.edition, surah, verse)

	var resp struct {
		Text string `json:"text"`
	}
	if err := network.GetJSON(ctx, c.httpClient, url, &resp); err != nil {
		if _, ok := errmsg.AsStatus(err); ok {
			return "", fmt.Errorf("verse %d:%d: %w", surah, verse, ErrUnavailable)
		}
		return "", fmt.Errorf("verse %d:%d: %w", surah, verse, err)
	}
	if resp.Text == "" {
		return "", fmt.Errorf("verse %d:%d: %w", surah, verse, ErrUnavailable)
	}
	return resp.Text, nil
}

// Range fetches the commentary of every verse in r, one request at a time.
// Verses that fail get a placeholder entry; only context cancellation
// aborts the walk.
func (c *Client) Range(ctx context.Context, r quran.Range) ([]Entry, error) {
	log := logging.For("tafsir")
	entries := make([]Entry, 0, max(r.To-r.From+1, 0))

	for v := r.From; v <= r.To; v++ {
		text, err := c.Verse(ctx, r.Surah, v)
		switch {
		case err == nil:
			entries = append(entries, Entry{Verse: v, Text: text, Available: true})
		case ctx.Err() != nil:
			return entries, ctx.Err()
		case errors.Is(err, ErrUnavailable):
			log.WithField("verse", fmt.Sprintf("%d:%d", r.Surah, v)).Debug("tafsir unavailable")
			entries = append(entries, Entry{Verse: v, Text: UnavailableText})
		default:
			log.WithField("verse", fmt.Sprintf("%d:%d", r.Surah, v)).WithError(err).Warn("tafsir fetch failed")
			entries = append(entries, Entry{Verse: v, Text: FailedText})
		}

		if v < r.To && c.delay > 0 {
			timer := time.NewTimer(c.delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return entries, ctx.Err()
			case <-timer.C:
			}
		}
	}
	return entries, nil
}

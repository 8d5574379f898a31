// Package quran provides a client for the alquran.cloud verse-text API.
package quran

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/llehouerou/tilawa/internal/network"
)

// ErrNotFound is returned when the requested surah or edition does not exist.
var ErrNotFound = errors.New("surah not found")

// Client is an alquran.cloud API client.
type Client struct {
	baseURL    string
	edition    string
	httpClient *http.Client
}

// New creates a client for baseURL using edition by default.
func New(baseURL, edition string) *Client {
	return &Client{
		baseURL:    baseURL,
		edition:    edition,
		httpClient: network.NewClient(10 * time.Second),
	}
}

// Edition returns the default edition.
func (c *Client) Edition() string { return c.edition }

type envelope[T any] struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
	Data   T      `json:"data"`
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	err := network.GetJSON(ctx, c.httpClient, c.baseURL+path, out)
	if network.IsStatus(err, http.StatusNotFound) {
		return ErrNotFound
	}
	return err
}

// Surah fetches a full surah in the given edition. An empty edition uses
// the client default.
func (c *Client) Surah(ctx context.Context, number int, edition string) (*Surah, error) {
	if edition == "" {
		edition = c.edition
	}
	var resp envelope[Surah]
	if err := c.get(ctx, fmt.Sprintf("/surah/%d/%s", number, edition), &resp); err != nil {
		return nil, fmt.Errorf("fetch surah %d: %w", number, err)
	}
	return &resp.Data, nil
}

// Verses fetches the verses of r in the default edition.
func (c *Client) Verses(ctx context.Context, r Range) ([]Verse, error) {
	s, err := c.Surah(ctx, r.Surah, "")
	if err != nil {
		return nil, err
	}
	return s.Filter(r), nil
}

// SurahInfo fetches a surah's metadata.
func (c *Client) SurahInfo(ctx context.Context, number int) (*SurahInfo, error) {
	var resp envelope[SurahInfo]
	if err := c.get(ctx, fmt.Sprintf("/surah/%d", number), &resp); err != nil {
		return nil, fmt.Errorf("fetch surah info %d: %w", number, err)
	}
	return &resp.Data, nil
}

// SurahList fetches the metadata of all surahs.
func (c *Client) SurahList(ctx context.Context) ([]SurahInfo, error) {
	var resp envelope[[]SurahInfo]
	if err := c.get(ctx, "/surah", &resp); err != nil {
		return nil, fmt.Errorf("fetch surah list: %w", err)
	}
	return resp.Data, nil
}

// Package catalog provides a read-only client for the recordings API.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/llehouerou/tilawa/internal/network"
)

// ErrNotFound is returned when a recording or sheikh does not exist.
var ErrNotFound = errors.New("not found")

// Client is a recordings API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the API rooted at baseURL (".../api/v1").
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: network.NewClient(15 * time.Second),
	}
}

type envelope[T any] struct {
	Data T `json:"data"`
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	err := network.GetJSON(ctx, c.httpClient, c.baseURL+path, out)
	if network.IsStatus(err, http.StatusNotFound) {
		return ErrNotFound
	}
	return err
}

// Recordings returns every recording, newest first.
func (c *Client) Recordings(ctx context.Context) ([]Recording, error) {
	var resp envelope[[]Recording]
	if err := c.get(ctx, "/recordings", &resp); err != nil {
		return nil, fmt.Errorf("fetch recordings: %w", err)
	}
	SortNewestFirst(resp.Data)
	return resp.Data, nil
}

// Recording returns one recording.
func (c *Client) Recording(ctx context.Context, id string) (*Recording, error) {
	var resp envelope[Recording]
	if err := c.get(ctx, "/recordings/"+url.PathEscape(id), &resp); err != nil {
		return nil, fmt.Errorf("fetch recording %s: %w", id, err)
	}
	return &resp.Data, nil
}

// RecordingsBySheikh returns the recordings of one reciter, newest first.
func (c *Client) RecordingsBySheikh(ctx context.Context, sheikhID string) ([]Recording, error) {
	var resp envelope[struct {
		Recordings []Recording `json:"recordings"`
	}]
	if err := c.get(ctx, "/recordings/sheikh/"+url.PathEscape(sheikhID), &resp); err != nil {
		return nil, fmt.Errorf("fetch recordings of sheikh %s: %w", sheikhID, err)
	}
	recs := resp.Data.Recordings
	SortNewestFirst(recs)
	return recs, nil
}

// Sheikhs returns every reciter.
func (c *Client) Sheikhs(ctx context.Context) ([]Sheikh, error) {
	var resp envelope[[]Sheikh]
	if err := c.get(ctx, "/sheikhs", &resp); err != nil {
		return nil, fmt.Errorf("fetch sheikhs: %w", err)
	}
	return resp.Data, nil
}

// Sheikh returns one reciter.
func (c *Client) Sheikh(ctx context.Context, id string) (*Sheikh, error) {
	var resp envelope[Sheikh]
	if err := c.get(ctx, "/sheikhs/"+url.PathEscape(id), &resp); err != nil {
		return nil, fmt.Errorf("fetch sheikh %s: %w", id, err)
	}
	return &resp.Data, nil
}

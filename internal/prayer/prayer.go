// Package prayer fetches daily prayer timings from the Aladhan API.
package prayer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/llehouerou/tilawa/internal/network"
)

// ErrBadResponse is returned when the API answers with a non-200 code.
var ErrBadResponse = errors.New("prayer times unavailable")

// ActiveWindow is how close to a prayer time counts as "now".
const ActiveWindow = 30 * time.Minute

// Prayer names in display order.
var Order = []string{"Fajr", "Dhuhr", "Asr", "Maghrib", "Isha"}

// ArabicNames maps API prayer names to their Arabic names.
var ArabicNames = map[string]string{
	"Fajr":    "الفجر",
	"Dhuhr":   "الظهر",
	"Asr":     "العصر",
	"Maghrib": "المغرب",
	"Isha":    "العشاء",
}

// Timings holds the day's prayer times in 24-hour "HH:MM" form.
type Timings struct {
	Times    map[string]string
	Timezone string
}

// Client is an Aladhan API client.
type Client struct {
	baseURL    string
	method     int
	httpClient *http.Client
}

// New creates a client using the given calculation method.
func New(baseURL string, method int) *Client {
	return &Client{
		baseURL:    baseURL,
		method:     method,
		httpClient: network.NewClient(10 * time.Second),
	}
}

// Timings fetches today's timings for a location.
func (c *Client) Timings(ctx context.Context, latitude, longitude float64) (*Timings, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
	params.Set("method", strconv.Itoa(c.method))

	var resp struct {
		Code int `json:"code"`
		Data struct {
			Timings map[string]string `json:"timings"`
			Meta    struct {
				Timezone string `json:"timezone"`
			} `json:"meta"`
		} `json:"data"`
	}
	if err := network.GetJSON(ctx, c.httpClient, c.baseURL+"/timings?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("fetch timings: %w", err)
	}
	if resp.Code != http.StatusOK {
		return nil, fmt.Errorf("fetch timings: code %d: %w", resp.Code, ErrBadResponse)
	}

	t := &Timings{Times: make(map[string]string, len(Order)), Timezone: resp.Data.Meta.Timezone}
	for _, name := range Order {
		// Some methods append a zone suffix, e.g. "05:12 (EET)".
		t.Times[name], _, _ = strings.Cut(resp.Data.Timings[name], " ")
	}
	return t, nil
}

// Format12Hour converts "HH:MM" to "H:MM AM/PM". Empty or malformed input
// yields "--:--".
func Format12Hour(time24 string) string {
	h, m, ok := parseClock(time24)
	if !ok {
		return "--:--"
	}
	ampm := "AM"
	if h >= 12 {
		ampm = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", h12, m, ampm)
}

// Format24Hour converts "H:MM AM/PM" to "HH:MM". Empty or malformed input
// yields "--:--".
func Format24Hour(time12 string) string {
	clock, ampm, ok := strings.Cut(strings.TrimSpace(time12), " ")
	if !ok {
		return "--:--"
	}
	h, m, ok := parseClock(clock)
	if !ok || h < 1 || h > 12 {
		return "--:--"
	}
	switch strings.ToUpper(ampm) {
	case "PM":
		if h != 12 {
			h += 12
		}
	case "AM":
		if h == 12 {
			h = 0
		}
	default:
		return "--:--"
	}
	return fmt.Sprintf("%02d:%02d", h, m)
}

// IsActive reports whether now is within ActiveWindow of the prayer time
// "HH:MM" on the same day.
func IsActive(now time.Time, time24 string) bool {
	h, m, ok := parseClock(time24)
	if !ok {
		return false
	}
	at := time.Date(now.Year(), now.Month(), now.Day(), h, m, 0, 0, now.Location())
	diff := now.Sub(at)
	if diff < 0 {
		diff = -diff
	}
	return diff <= ActiveWindow
}

// Next returns the first prayer at or after now, or "" when all have passed.
func (t *Timings) Next(now time.Time) string {
	for _, name := range Order {
		h, m, ok := parseClock(t.Times[name])
		if !ok {
			continue
		}
		at := time.Date(now.Year(), now.Month(), now.Day(), h, m, 0, 0, now.Location())
		if !at.Before(now) {
			return name
		}
	}
	return ""
}

func parseClock(s string) (hour, minute int, ok bool) {
	hs, ms, found := strings.Cut(s, ":")
	if !found {
		return 0, 0, false
	}
	h, err := strconv.Atoi(hs)
	if err != nil || h < 0 || h > 23 {
		return 0, 0, false
	}
	m, err := strconv.Atoi(ms)
	if err != nil || m < 0 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}

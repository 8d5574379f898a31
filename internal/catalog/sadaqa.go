package catalog

import (
	"context"
	"fmt"

	"github.com/samber/lo"
)

// SadaqaFallback is the dua shown when the API has no banner to offer.
const SadaqaFallback = "ادعوا لوالدي بالرحمة والمغفرة - ادعوا لجميع المسلمين بالهداية والتوفيق"

// SadaqaTitle heads the banner.
const SadaqaTitle = "💝 صدقة جارية"

// SadaqaBanner is one Sadaqa Jariya text managed on the backend.
type SadaqaBanner struct {
	ID       string `json:"_id"`
	Text     string `json:"text"`
	IsActive bool   `json:"isActive"`
}

// Sadaqa returns the text of the first active banner. An empty list or a
// failed request yields SadaqaFallback; the error is still returned so the
// caller can log it. A list without an active banner yields "".
func (c *Client) Sadaqa(ctx context.Context) (string, error) {
	var resp envelope[[]SadaqaBanner]
	if err := c.get(ctx, "/sadaqa", &resp); err != nil {
		return SadaqaFallback, fmt.Errorf("fetch sadaqa: %w", err)
	}
	if len(resp.Data) == 0 {
		return SadaqaFallback, nil
	}
	banner, ok := lo.Find(resp.Data, func(b SadaqaBanner) bool { return b.IsActive })
	if !ok {
		return "", nil
	}
	return banner.Text, nil
}

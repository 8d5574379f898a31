package catalog

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/llehouerou/tilawa/internal/quran"
)

// Category groups recordings on the catalog.
type Category string

const (
	CategoryGeneral  Category = "general"
	CategoryRamadan  Category = "ramadan"
	CategoryFeatured Category = "featured"
)

// Label returns the Arabic label of the category.
func (c Category) Label() string {
	switch c {
	case CategoryGeneral:
		return "📖 عام"
	case CategoryRamadan:
		return "🌙 رمضان"
	case CategoryFeatured:
		return "⭐ مميز"
	default:
		return string(c)
	}
}

// Sheikh is a reciter.
type Sheikh struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Bio   string `json:"bio"`
	Photo string `json:"photo"`
}

// SheikhRef is a recording's reciter, either populated or a bare ID.
type SheikhRef struct {
	Sheikh
}

func (r *SheikhRef) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte(`"`)) {
		return json.Unmarshal(data, &r.ID)
	}
	return json.Unmarshal(data, &r.Sheikh)
}

// Recording is one recitation.
type Recording struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Sheikh      SheikhRef `json:"sheikh"`
	Category    Category  `json:"category"`
	Year        flexInt   `json:"year"`
	AudioURL    string    `json:"audio_file"`
	SurahName   string    `json:"surah"`
	SurahNumber flexInt   `json:"surahNumber"`
	FromVerse   flexInt   `json:"fromAyah"`
	ToVerse     flexInt   `json:"toAyah"`
	Date        Timestamp `json:"date"`
}

// Range returns the recited verse range and whether the recording has one.
func (r *Recording) Range() (quran.Range, bool) {
	rg := quran.Range{Surah: int(r.SurahNumber), From: int(r.FromVerse), To: int(r.ToVerse)}
	return rg, rg.Valid()
}

// Matches reports whether query appears in the title, reciter or surah name.
func (r *Recording) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(r.Title), q) ||
		strings.Contains(strings.ToLower(r.Sheikh.Name), q) ||
		strings.Contains(strings.ToLower(r.SurahName), q)
}

// flexInt accepts a JSON number, a numeric string, an empty string or null.
type flexInt int

func (n *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return err
		}
		v = int(f)
	}
	*n = flexInt(v)
	return nil
}

// Timestamp is a creation date; empty or unparsable values decode as zero.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		parsed, err = time.Parse(time.DateOnly, s)
	}
	if err != nil {
		t.Time = time.Time{}
		return nil //nolint:nilerr // dates are informational only
	}
	t.Time = parsed
	return nil
}

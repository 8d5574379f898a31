package quran

import "fmt"

// Verse is one ayah of a surah.
type Verse struct {
	Number        int    `json:"number"` // global verse number
	NumberInSurah int    `json:"numberInSurah"`
	Text          string `json:"text"`
	Juz           int    `json:"juz"`
	Page          int    `json:"page"`
}

// SurahInfo describes a surah without its verses.
type SurahInfo struct {
	Number         int    `json:"number"`
	Name           string `json:"name"`
	EnglishName    string `json:"englishName"`
	Translation    string `json:"englishNameTranslation"`
	NumberOfVerses int    `json:"numberOfAyahs"`
	RevelationType string `json:"revelationType"`
}

// Surah is a surah with its verses in one edition.
type Surah struct {
	SurahInfo
	Verses []Verse `json:"ayahs"`
}

// Range selects verses From..To (inclusive, numbered within the surah).
type Range struct {
	Surah int
	From  int
	To    int
}

// Valid reports whether r can select any verse.
func (r Range) Valid() bool {
	return r.Surah >= 1 && r.Surah <= SurahCount && r.From >= 1 && r.To >= r.From
}

func (r Range) String() string {
	return fmt.Sprintf("%d:%d-%d", r.Surah, r.From, r.To)
}

// Contains reports whether a verse number within the surah is in range.
func (r Range) Contains(numberInSurah int) bool {
	return numberInSurah >= r.From && numberInSurah <= r.To
}

const (
	// SurahCount is the number of surahs in the Quran.
	SurahCount = 114
	// MaxVerse is the verse count of the longest surah.
	MaxVerse = 286
)

// Filter returns the verses of s inside r.
func (s *Surah) Filter(r Range) []Verse {
	out := make([]Verse, 0, max(r.To-r.From+1, 0))
	for _, v := range s.Verses {
		if r.Contains(v.NumberInSurah) {
			out = append(out, v)
		}
	}
	return out
}

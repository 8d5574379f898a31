package quran

import (
	"context"
	"sync"

	"github.com/llehouerou/tilawa/internal/logging"
)

// Cache persists whole surahs per edition.
type Cache interface {
	LoadSurah(number int, edition string) (*Surah, bool, error)
	SaveSurah(s *Surah, edition string) error
}

// Fetcher fetches a surah from the network.
type Fetcher interface {
	Surah(ctx context.Context, number int, edition string) (*Surah, error)
}

// Source provides verse ranges from memory, the persistent cache, or the API.
type Source struct {
	fetcher Fetcher
	cache   Cache
	edition string

	mu     sync.Mutex
	memory map[int]*Surah
}

// NewSource creates a source. cache may be nil.
func NewSource(fetcher Fetcher, cache Cache, edition string) *Source {
	return &Source{
		fetcher: fetcher,
		cache:   cache,
		edition: edition,
		memory:  make(map[int]*Surah),
	}
}

// Verses returns the verses of r, using the priority order:
// 1. In-memory surah
// 2. Cached surah
// 3. API (and cache the result)
func (s *Source) Verses(ctx context.Context, r Range) ([]Verse, error) {
	surah, err := s.surah(ctx, r.Surah)
	if err != nil {
		return nil, err
	}
	return surah.Filter(r), nil
}

func (s *Source) surah(ctx context.Context, number int) (*Surah, error) {
	s.mu.Lock()
	if cached, ok := s.memory[number]; ok {
		s.mu.Unlock()
		return cached, nil
	}
	s.mu.Unlock()

	log := logging.For("quran").WithField("surah", number)

	if s.cache != nil {
		cached, ok, err := s.cache.LoadSurah(number, s.edition)
		if err != nil {
			log.WithError(err).Warn("verse cache read failed")
		} else if ok {
			s.remember(number, cached)
			return cached, nil
		}
	}

	fetched, err := s.fetcher.Surah(ctx, number, s.edition)
	if err != nil {
		return nil, err
	}
	s.remember(number, fetched)

	if s.cache != nil {
		if err := s.cache.SaveSurah(fetched, s.edition); err != nil {
			log.WithError(err).Warn("verse cache write failed")
		}
	}
	return fetched, nil
}

func (s *Source) remember(number int, surah *Surah) {
	s.mu.Lock()
	s.memory[number] = surah
	s.mu.Unlock()
}

// internal/state/mock.go
package state

import (
	"sync"

	"github.com/llehouerou/tilawa/internal/quran"
)

// Mock is a test double for Manager.
type Mock struct {
	mu     sync.Mutex
	volume *float64
	theme  string
	surahs map[int]*quran.Surah
	closed bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{surahs: make(map[int]*quran.Surah)}
}

func (m *Mock) GetVolume() (float64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.volume == nil {
		return 0.7, false, nil
	}
	return *m.volume, true, nil
}

func (m *Mock) SaveVolume(volume float64) {
	m.mu.Lock()
	m.volume = &volume
	m.mu.Unlock()
}

func (m *Mock) GetTheme() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.theme, nil
}

func (m *Mock) SaveTheme(theme string) error {
	m.mu.Lock()
	m.theme = theme
	m.mu.Unlock()
	return nil
}

func (m *Mock) LoadSurah(number int, _ string) (*quran.Surah, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.surahs[number]
	return s, ok, nil
}

func (m *Mock) SaveSurah(s *quran.Surah, _ string) error {
	m.mu.Lock()
	m.surahs[s.Number] = s
	m.mu.Unlock()
	return nil
}

func (m *Mock) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *Mock) Closed() bool {
	return m.closed
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)

package quran

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	calls int
	err   error
}

func (f *fakeFetcher) Surah(_ context.Context, number int, _ string) (*Surah, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	s := &Surah{SurahInfo: SurahInfo{Number: number}}
	for i := 1; i <= 20; i++ {
		s.Verses = append(s.Verses, Verse{NumberInSurah: i})
	}
	return s, nil
}

type memCache struct {
	data  map[int]*Surah
	saves int
}

func (m *memCache) LoadSurah(number int, _ string) (*Surah, bool, error) {
	s, ok := m.data[number]
	return s, ok, nil
}

func (m *memCache) SaveSurah(s *Surah, _ string) error {
	m.saves++
	m.data[s.Number] = s
	return nil
}

func TestSource_FetchesOnceThenMemory(t *testing.T) {
	f := &fakeFetcher{}
	src := NewSource(f, nil, "ar.alafasy")

	v1, err := src.Verses(context.Background(), Range{Surah: 2, From: 1, To: 5})
	require.NoError(t, err)
	v2, err := src.Verses(context.Background(), Range{Surah: 2, From: 6, To: 8})
	require.NoError(t, err)

	assert.Len(t, v1, 5)
	assert.Len(t, v2, 3)
	assert.Equal(t, 6, v2[0].NumberInSurah)
	assert.Equal(t, 1, f.calls)
}

func TestSource_UsesPersistentCache(t *testing.T) {
	f := &fakeFetcher{}
	cache := &memCache{data: map[int]*Surah{
		3: {SurahInfo: SurahInfo{Number: 3}, Verses: []Verse{{NumberInSurah: 1}, {NumberInSurah: 2}}},
	}}
	src := NewSource(f, cache, "ar.alafasy")

	verses, err := src.Verses(context.Background(), Range{Surah: 3, From: 1, To: 2})

	require.NoError(t, err)
	assert.Len(t, verses, 2)
	assert.Equal(t, 0, f.calls)
}

func TestSource_SavesFetched(t *testing.T) {
	f := &fakeFetcher{}
	cache := &memCache{data: map[int]*Surah{}}
	src := NewSource(f, cache, "ar.alafasy")

	_, err := src.Verses(context.Background(), Range{Surah: 4, From: 1, To: 3})

	require.NoError(t, err)
	assert.Equal(t, 1, cache.saves)
	assert.Contains(t, cache.data, 4)
}

func TestSource_FetchError(t *testing.T) {
	f := &fakeFetcher{err: errors.New("offline")}
	src := NewSource(f, nil, "ar.alafasy")

	_, err := src.Verses(context.Background(), Range{Surah: 1, From: 1, To: 7})
	require.Error(t, err)

	// Failures are not remembered.
	f.err = nil
	verses, err := src.Verses(context.Background(), Range{Surah: 1, From: 1, To: 7})
	require.NoError(t, err)
	assert.Len(t, verses, 7)
}

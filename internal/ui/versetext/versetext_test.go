package versetext

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/tilawa/internal/playback"
	"github.com/llehouerou/tilawa/internal/quran"
	"github.com/llehouerou/tilawa/internal/ui/testutil"
)

type fakeSource struct {
	calls int
	err   error
}

func (f *fakeSource) Verses(_ context.Context, r quran.Range) ([]quran.Verse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]quran.Verse, 0, r.To-r.From+1)
	for n := r.From; n <= r.To; n++ {
		out = append(out, quran.Verse{NumberInSurah: n, Text: "آية"})
	}
	return out, nil
}

const rec = playback.ItemID("rec-1")

var kahf = quran.Range{Surah: 18, From: 1, To: 10}

func playing(pos, dur time.Duration) playback.Session {
	return playback.Session{ActiveItem: rec, State: playback.StatePlaying, Position: pos, Duration: dur}
}

func loaded(t *testing.T, src *fakeSource) *Model {
	t.Helper()
	m := New(src)
	m.SetSize(60, 6)
	msg, ok := testutil.Find[FetchedMsg](m.SetRange(rec, kahf))
	require.True(t, ok, "SetRange should fetch")
	m.Update(msg)
	require.Equal(t, StateLoaded, m.State())
	require.Len(t, m.Verses(), 10)
	return m
}

func TestSetRange_FetchesOncePerChange(t *testing.T) {
	src := &fakeSource{}
	m := loaded(t, src)

	assert.Nil(t, m.SetRange(rec, kahf), "same range should not refetch")
	assert.Equal(t, 1, src.calls)

	cmd := m.SetRange(rec, quran.Range{Surah: 36, From: 1, To: 12})
	require.NotNil(t, cmd)
	assert.Equal(t, StateLoading, m.State())
}

func TestFetched_StaleResponseDropped(t *testing.T) {
	m := New(&fakeSource{})
	first := m.SetRange(rec, kahf)
	_ = m.SetRange(rec, quran.Range{Surah: 1, From: 1, To: 7})

	old, ok := testutil.Find[FetchedMsg](first)
	require.True(t, ok)
	m.Update(old)

	assert.Equal(t, StateLoading, m.State(), "response of the previous range must be ignored")
	assert.Empty(t, m.Verses())
}

func TestFetched_ErrorShowsArabicMessage(t *testing.T) {
	m := New(&fakeSource{err: errors.New("boom")})
	m.SetSize(60, 6)
	msg, ok := testutil.Find[FetchedMsg](m.SetRange(rec, kahf))
	require.True(t, ok)
	m.Update(msg)

	assert.Equal(t, StateError, m.State())
	m.Sync(playing(0, time.Minute))
	assert.True(t, testutil.ContainsLine(m.View(), ErrorText))

	assert.Nil(t, m.SetRange(rec, kahf), "failures are not retried")
}

func TestView_HiddenUnlessPlaying(t *testing.T) {
	m := loaded(t, &fakeSource{})

	tests := []struct {
		name    string
		session playback.Session
		visible bool
	}{
		{"idle", playback.Session{}, false},
		{"other item", playback.Session{ActiveItem: "other", State: playback.StatePlaying}, false},
		{"paused", playback.Session{ActiveItem: rec, State: playback.StatePaused}, false},
		{"playing", playing(0, time.Minute), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.Sync(tt.session)
			assert.Equal(t, tt.visible, m.Visible())
			if tt.visible {
				assert.True(t, testutil.ContainsLine(m.View(), HeaderText))
			} else {
				assert.Empty(t, m.View())
			}
		})
	}
}

func TestSync_IndexChangeSchedulesScroll(t *testing.T) {
	m := loaded(t, &fakeSource{})

	cmd := m.Sync(playing(50*time.Second, 100*time.Second))
	require.NotNil(t, cmd)
	assert.Equal(t, 5, m.Index())
	assert.Equal(t, 0, m.ScrollOffset(), "scroll waits for the tick")

	assert.Nil(t, m.Sync(playing(51*time.Second, 100*time.Second)), "same index, no new tick")

	start := time.Now()
	msg := testutil.ExecuteCmd(cmd)
	assert.GreaterOrEqual(t, time.Since(start), ScrollDelay-10*time.Millisecond)
	scroll, ok := msg.(ScrollMsg)
	require.True(t, ok)
	assert.Equal(t, 5, scroll.Index)

	m.Update(scroll)
	// visible height 3: centering verse 5 starts at 4
	assert.Equal(t, 4, m.ScrollOffset())
	assert.True(t, testutil.ContainsLine(m.View(), "6/10"))
}

func TestScrollMsg_OutdatedIndexIgnored(t *testing.T) {
	m := loaded(t, &fakeSource{})
	m.Sync(playing(50*time.Second, 100*time.Second))
	m.Sync(playing(10*time.Second, 100*time.Second))
	require.Equal(t, 1, m.Index())

	m.Update(ScrollMsg{Gen: 1, Index: 5})
	assert.Equal(t, 0, m.ScrollOffset())
}

func TestSync_HidingResetsCursor(t *testing.T) {
	m := loaded(t, &fakeSource{})
	m.Sync(playing(90*time.Second, 100*time.Second))
	require.NotZero(t, m.Index())

	m.Sync(playback.Session{ActiveItem: rec, State: playback.StatePaused, Position: 90 * time.Second})
	assert.Zero(t, m.Index())
	assert.Zero(t, m.ScrollOffset())
}

func TestSpinner_OnlyTicksWhileLoading(t *testing.T) {
	m := loaded(t, &fakeSource{})
	assert.Nil(t, m.Update(m.spinner.Tick()))
}

var _ tea.Msg = ScrollMsg{}

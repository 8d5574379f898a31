package mpris

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/tilawa/internal/media"
	"github.com/llehouerou/tilawa/internal/playback"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	_, ok := r.Lookup("rec-1")
	assert.False(t, ok)

	r.Register("rec-1", Track{Title: "سورة الملك", Artist: "الشيخ"})
	got, ok := r.Lookup("rec-1")
	require.True(t, ok)
	assert.Equal(t, "سورة الملك", got.Title)
}

func setup(t *testing.T) (controls, *media.Mock) {
	t.Helper()
	svc := playback.New(0.7)
	t.Cleanup(func() { _ = svc.Close() })
	el := media.NewMock("http://x/mulk.mp3")
	svc.BindAndPlay(el, "rec-1")
	el.LoadMetadata(10 * time.Minute)
	return controls{service: svc, tracks: NewRegistry()}, el
}

func TestControls_PlayPause(t *testing.T) {
	c, el := setup(t)

	c.playPause()
	assert.Equal(t, playback.StatePaused, c.service.Session().State)
	assert.Equal(t, media.Paused, el.State())

	c.playPause()
	assert.Equal(t, playback.StatePlaying, c.service.Session().State)
	assert.Equal(t, media.Playing, el.State())
}

func TestControls_PlayWhenIdleDoesNothing(t *testing.T) {
	c, _ := setup(t)
	c.service.Stop()

	c.play()
	assert.Equal(t, playback.StateIdle, c.service.Session().State)
}

func TestControls_Seek(t *testing.T) {
	c, el := setup(t)

	c.seek(30 * time.Second)
	assert.Equal(t, 30*time.Second, el.Position())

	c.seek(-time.Hour)
	assert.Equal(t, time.Duration(0), el.Position())

	c.setPosition(time.Hour)
	assert.Equal(t, time.Duration(0), el.Position(), "positions past the end are ignored")

	c.setPosition(2 * time.Minute)
	assert.Equal(t, 2*time.Minute, el.Position())
}

func TestControls_Volume(t *testing.T) {
	c, el := setup(t)
	c.setVolume(1.5)
	assert.Equal(t, 1.0, c.service.Session().Volume)
	assert.Equal(t, 1.0, el.Volume())
}

func TestControls_Current(t *testing.T) {
	c, _ := setup(t)

	track, s, ok := c.current()
	require.True(t, ok)
	assert.Equal(t, "rec-1", track.Title, "unregistered items fall back to their id")
	assert.Equal(t, 10*time.Minute, s.Duration)

	c.tracks.Register("rec-1", Track{Title: "سورة الملك"})
	track, _, _ = c.current()
	assert.Equal(t, "سورة الملك", track.Title)

	c.service.Stop()
	_, _, ok = c.current()
	assert.False(t, ok)
}

// Package mpris exposes the playback session to desktop media keys and
// applets over D-Bus (Linux only; a no-op elsewhere).
package mpris

import (
	"sync"
	"time"

	"github.com/llehouerou/tilawa/internal/playback"
)

// Track describes a playable item to MPRIS clients.
type Track struct {
	Title  string
	Artist string
	Album  string
	ArtURL string
}

// Registry maps item ids to their descriptions. It is safe for concurrent
// use: the UI registers items while the D-Bus server reads them.
type Registry struct {
	mu     sync.RWMutex
	tracks map[playback.ItemID]Track
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tracks: make(map[playback.ItemID]Track)}
}

// Register stores or replaces the description of id.
func (r *Registry) Register(id playback.ItemID, t Track) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tracks[id] = t
}

// Lookup returns the description of id.
func (r *Registry) Lookup(id playback.ItemID) (Track, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tracks[id]
	return t, ok
}

// controls translates media-key commands into coordinator calls. Only the
// coordinator is touched because the D-Bus server runs on its own
// goroutine.
type controls struct {
	service playback.Service
	tracks  *Registry
}

func (c controls) play() {
	s := c.service.Session()
	if s.State != playback.StatePaused {
		return
	}
	if el := c.service.Bound(); el != nil {
		c.service.BindAndPlay(el, s.ActiveItem)
	}
}

func (c controls) playPause() {
	if c.service.Session().State == playback.StatePlaying {
		c.service.Pause()
		return
	}
	c.play()
}

func (c controls) seek(offset time.Duration) {
	s := c.service.Session()
	if s.State == playback.StateIdle || s.Duration <= 0 {
		return
	}
	c.service.SeekTo(min(max(s.Position+offset, 0), s.Duration))
}

func (c controls) setPosition(pos time.Duration) {
	s := c.service.Session()
	if s.State == playback.StateIdle || s.Duration <= 0 || pos < 0 || pos > s.Duration {
		return
	}
	c.service.SeekTo(pos)
}

func (c controls) setVolume(v float64) {
	c.service.SetVolume(min(max(v, 0), 1))
}

func (c controls) current() (Track, playback.Session, bool) {
	s := c.service.Session()
	if s.ActiveItem == "" {
		return Track{}, s, false
	}
	t, ok := c.tracks.Lookup(s.ActiveItem)
	if !ok {
		t = Track{Title: string(s.ActiveItem)}
	}
	return t, s, true
}

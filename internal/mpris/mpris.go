//go:build linux

package mpris

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/tilawa/internal/playback"
)

// Adapter connects the playback coordinator to MPRIS over D-Bus.
type Adapter struct {
	server *server.Server
}

// New creates and starts an MPRIS adapter.
func New(service playback.Service, tracks *Registry) (*Adapter, error) {
	c := controls{service: service, tracks: tracks}
	a := &Adapter{
		server: server.NewServer("tilawa", &rootAdapter{}, &playerAdapter{c: c}),
	}

	go func() {
		_ = a.server.Listen()
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error { return nil }

func (r *rootAdapter) Quit() error { return nil }

func (r *rootAdapter) CanQuit() (bool, error) { return false, nil }

func (r *rootAdapter) CanRaise() (bool, error) { return false, nil }

func (r *rootAdapter) HasTrackList() (bool, error) { return false, nil }

func (r *rootAdapter) Identity() (string, error) { return "Tilawa", nil }

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"http", "https"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/mp3"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter.
type playerAdapter struct {
	c controls
}

func (p *playerAdapter) Next() error     { return nil }
func (p *playerAdapter) Previous() error { return nil }

func (p *playerAdapter) Pause() error {
	p.c.service.Pause()
	return nil
}

func (p *playerAdapter) PlayPause() error {
	p.c.playPause()
	return nil
}

func (p *playerAdapter) Stop() error {
	p.c.service.Stop()
	return nil
}

func (p *playerAdapter) Play() error {
	p.c.play()
	return nil
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	p.c.seek(time.Duration(offset) * time.Microsecond)
	return nil
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	p.c.setPosition(time.Duration(position) * time.Microsecond)
	return nil
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error { return nil }

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	switch p.c.service.Session().State {
	case playback.StatePlaying:
		return types.PlaybackStatusPlaying, nil
	case playback.StatePaused:
		return types.PlaybackStatusPaused, nil
	case playback.StateIdle:
		return types.PlaybackStatusStopped, nil
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Rate() (float64, error)  { return 1.0, nil }
func (p *playerAdapter) SetRate(_ float64) error { return nil }

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	track, s, ok := p.c.current()
	if !ok {
		return types.Metadata{}, nil
	}
	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(s.ActiveItem)),
		Length:  types.Microseconds(s.Duration.Microseconds()),
		Title:   track.Title,
		Album:   track.Album,
		ArtUrl:  track.ArtURL,
	}
	if track.Artist != "" {
		meta.Artist = []string{track.Artist}
	}
	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return p.c.service.Session().Volume, nil
}

func (p *playerAdapter) SetVolume(v float64) error {
	p.c.setVolume(v)
	return nil
}

func (p *playerAdapter) Position() (int64, error) {
	return p.c.service.Session().Position.Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) { return 1.0, nil }
func (p *playerAdapter) MaximumRate() (float64, error) { return 1.0, nil }

func (p *playerAdapter) CanGoNext() (bool, error)     { return false, nil }
func (p *playerAdapter) CanGoPrevious() (bool, error) { return false, nil }

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.c.service.Bound() != nil, nil
}

func (p *playerAdapter) CanPause() (bool, error) { return true, nil }

func (p *playerAdapter) CanSeek() (bool, error) {
	return p.c.service.Session().Duration > 0, nil
}

func (p *playerAdapter) CanControl() (bool, error) { return true, nil }

// formatTrackID derives a D-Bus object path from an item id, which may
// contain characters not allowed in paths.
func formatTrackID(id playback.ItemID) string {
	h := fnv.New64a()
	h.Write([]byte(id))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}

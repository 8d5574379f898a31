package playback

import "time"

// ItemID identifies a playable item (a recording or a live stream).
// The empty ItemID means "nothing".
type ItemID string

// DefaultVolume is the session volume used when none is configured.
const DefaultVolume = 0.7

// Session is a snapshot of the coordinator state.
type Session struct {
	ActiveItem ItemID
	State      State
	Position   time.Duration
	Duration   time.Duration
	Volume     float64
}

// IsActive reports whether id is the bound item.
func (s Session) IsActive(id ItemID) bool {
	return id != "" && s.ActiveItem == id
}

// IsPlaying reports whether id is the bound item and audibly playing.
func (s Session) IsPlaying(id ItemID) bool {
	return s.IsActive(id) && s.State == StatePlaying
}

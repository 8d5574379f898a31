package playback

import "time"

// StateChange is emitted when the state or the active item changes.
type StateChange struct {
	Previous     State
	Current      State
	PreviousItem ItemID
	Item         ItemID
}

// PositionChange is emitted on time and duration updates of the bound item.
type PositionChange struct {
	Item     ItemID
	Position time.Duration
	Duration time.Duration
}

// VolumeChange is emitted when the session volume changes.
type VolumeChange struct {
	Volume float64
}

// ErrorEvent is emitted when the bound element fails or rejects playback.
// The session is already back to idle when subscribers receive it.
type ErrorEvent struct {
	Operation string // "play" or "media"
	Item      ItemID
	Source    string
	Err       error
}

// internal/playback/state.go
package playback

// State represents the coordinator's session state.
type State int

const (
	StateIdle State = iota
	StatePlaying
	StatePaused
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsBound returns true if an element is bound (playing or paused).
func (s State) IsBound() bool {
	return s == StatePlaying || s == StatePaused
}

package media

// State represents the element's transport state.
//
//	┌──────────┐      play       ┌──────────┐
//	│  Stopped │ ───────────────▶│  Playing │
//	└──────────┘                 └──────────┘
//	     ▲                          │    ▲
//	     │ ended / error      pause │    │ play
//	     │                          ▼    │
//	     │                       ┌──────────┐
//	     └───────────────────────│  Paused  │
//	                             └──────────┘
//
// Pausing a stopped element and playing a playing one are no-ops.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if the element holds a loaded source.
func (s State) IsActive() bool {
	return s == Playing || s == Paused
}

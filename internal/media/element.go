// Package media abstracts a single playable audio element.
//
// An Element behaves like a browser media element: commands are issued
// directly and their outcome is reported asynchronously through events.
// The playback coordinator and the player views only depend on this
// interface, so tests drive them with Mock instead of a sound card.
package media

import "time"

// Element is one playable audio source.
type Element interface {
	// Source returns the URL the element plays.
	Source() string

	// Play requests playback. A returned error means the request was
	// rejected outright; later failures arrive as EventError.
	Play() error
	Pause()
	State() State

	Position() time.Duration
	SetPosition(pos time.Duration)
	// Duration returns 0 while unknown and for live streams.
	Duration() time.Duration

	SetVolume(level float64)
	Volume() float64

	// Observe registers fn for every event and returns a function that
	// removes it again.
	Observe(fn Listener) (cancel func())

	// Close releases network and audio resources. A closed element emits
	// no further events.
	Close() error
}

// Factory creates an element for a source URL. Live elements never report
// a duration and cannot seek.
type Factory func(src string, live bool) Element

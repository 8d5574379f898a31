package media

import (
	"slices"
	"sync"
	"time"
)

// EventType identifies a media lifecycle event.
type EventType int

const (
	EventLoadStart EventType = iota
	EventLoadedMetadata
	EventDurationChange
	EventCanPlay
	EventWaiting
	EventPlay
	EventPlaying
	EventPause
	EventTimeUpdate
	EventEnded
	EventError
)

var eventNames = map[EventType]string{
	EventLoadStart:      "loadstart",
	EventLoadedMetadata: "loadedmetadata",
	EventDurationChange: "durationchange",
	EventCanPlay:        "canplay",
	EventWaiting:        "waiting",
	EventPlay:           "play",
	EventPlaying:        "playing",
	EventPause:          "pause",
	EventTimeUpdate:     "timeupdate",
	EventEnded:          "ended",
	EventError:          "error",
}

// String returns the event name.
func (t EventType) String() string {
	if name, ok := eventNames[t]; ok {
		return name
	}
	return "unknown"
}

// Event is delivered to listeners. Position and Duration are the element's
// values at the time the event was emitted.
type Event struct {
	Type     EventType
	Source   string
	Position time.Duration
	Duration time.Duration
	Err      error
}

// Listener receives element events. Listeners may run on any goroutine.
type Listener func(Event)

// Observers is a listener registry shared by Element implementations.
// The zero value is ready to use.
type Observers struct {
	mu   sync.Mutex
	next int
	fns  map[int]Listener
}

// Add registers fn and returns its removal function. Removing twice is safe.
func (o *Observers) Add(fn Listener) func() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.fns == nil {
		o.fns = make(map[int]Listener)
	}
	id := o.next
	o.next++
	o.fns[id] = fn
	return func() {
		o.mu.Lock()
		delete(o.fns, id)
		o.mu.Unlock()
	}
}

// Len returns the number of registered listeners.
func (o *Observers) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.fns)
}

// Emit calls every registered listener in registration order. Listeners run
// outside the registry lock so they may add or remove listeners.
func (o *Observers) Emit(e Event) {
	o.mu.Lock()
	ids := make([]int, 0, len(o.fns))
	for id := range o.fns {
		ids = append(ids, id)
	}
	fns := make([]Listener, 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		fns = append(fns, o.fns[id])
	}
	o.mu.Unlock()

	for _, fn := range fns {
		fn(e)
	}
}

package media

import (
	"fmt"
	"sync"
	"time"
)

// CallLog records commands issued to one or more Mock elements, in order.
// Share one log between mocks to assert cross-element ordering.
type CallLog struct {
	mu      sync.Mutex
	entries []string
}

// Record appends an entry.
func (l *CallLog) Record(entry string) {
	l.mu.Lock()
	l.entries = append(l.entries, entry)
	l.mu.Unlock()
}

// Entries returns a copy of the recorded entries.
func (l *CallLog) Entries() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}

// Mock is an in-memory Element for tests. Commands change state
// synchronously and emit the same events a browser media element would.
type Mock struct {
	mu       sync.Mutex
	src      string
	state    State
	position time.Duration
	duration time.Duration
	volume   float64
	playErr  error
	closed   bool
	log      *CallLog
	obs      Observers
}

// NewMock creates a stopped mock element for src.
func NewMock(src string) *Mock {
	return &Mock{src: src, volume: 1}
}

// WithLog makes the mock record its commands into log.
func (m *Mock) WithLog(log *CallLog) *Mock {
	m.log = log
	return m
}

func (m *Mock) record(format string, args ...any) {
	if m.log != nil {
		m.log.Record(m.src + ":" + fmt.Sprintf(format, args...))
	}
}

func (m *Mock) event(t EventType) Event {
	return Event{Type: t, Source: m.src, Position: m.position, Duration: m.duration}
}

func (m *Mock) Source() string { return m.src }

func (m *Mock) Play() error {
	m.mu.Lock()
	m.record("play")
	if m.playErr != nil {
		err := m.playErr
		m.mu.Unlock()
		return err
	}
	if m.state == Playing {
		m.mu.Unlock()
		return nil
	}
	m.state = Playing
	e := m.event(EventPlay)
	m.mu.Unlock()

	m.obs.Emit(e)
	return nil
}

func (m *Mock) Pause() {
	m.mu.Lock()
	m.record("pause")
	if m.state != Playing {
		m.mu.Unlock()
		return
	}
	m.state = Paused
	e := m.event(EventPause)
	m.mu.Unlock()

	m.obs.Emit(e)
}

func (m *Mock) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Mock) Position() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *Mock) SetPosition(pos time.Duration) {
	m.mu.Lock()
	m.record("seek %s", pos)
	m.position = pos
	e := m.event(EventTimeUpdate)
	m.mu.Unlock()

	m.obs.Emit(e)
}

func (m *Mock) Duration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.duration
}

func (m *Mock) SetVolume(level float64) {
	m.mu.Lock()
	m.volume = level
	m.mu.Unlock()
}

func (m *Mock) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

func (m *Mock) Observe(fn Listener) func() {
	return m.obs.Add(fn)
}

func (m *Mock) Close() error {
	m.mu.Lock()
	m.closed = true
	m.state = Stopped
	m.mu.Unlock()
	return nil
}

// Test helpers

// SetPlayError makes subsequent Play calls fail with err.
func (m *Mock) SetPlayError(err error) {
	m.mu.Lock()
	m.playErr = err
	m.mu.Unlock()
}

// Closed reports whether Close was called.
func (m *Mock) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Listeners returns the number of registered listeners.
func (m *Mock) Listeners() int {
	return m.obs.Len()
}

// LoadMetadata sets the duration and emits loadedmetadata.
func (m *Mock) LoadMetadata(d time.Duration) {
	m.mu.Lock()
	m.duration = d
	e := m.event(EventLoadedMetadata)
	m.mu.Unlock()
	m.obs.Emit(e)
}

// Advance moves the position to pos and emits timeupdate.
func (m *Mock) Advance(pos time.Duration) {
	m.mu.Lock()
	m.position = pos
	e := m.event(EventTimeUpdate)
	m.mu.Unlock()
	m.obs.Emit(e)
}

// Finish simulates the media reaching its natural end.
func (m *Mock) Finish() {
	m.mu.Lock()
	m.state = Stopped
	m.position = m.duration
	e := m.event(EventEnded)
	m.mu.Unlock()
	m.obs.Emit(e)
}

// Fail simulates a decode or network failure.
func (m *Mock) Fail(err error) {
	m.mu.Lock()
	m.state = Stopped
	e := m.event(EventError)
	e.Err = err
	m.mu.Unlock()
	m.obs.Emit(e)
}

// ExternalPause simulates a pause not issued through the Element API,
// e.g. a hardware media key.
func (m *Mock) ExternalPause() {
	m.mu.Lock()
	if m.state == Playing {
		m.state = Paused
	}
	e := m.event(EventPause)
	m.mu.Unlock()
	m.obs.Emit(e)
}

// ExternalPlay simulates playback resumed outside the Element API.
func (m *Mock) ExternalPlay() {
	m.mu.Lock()
	m.state = Playing
	e := m.event(EventPlay)
	m.mu.Unlock()
	m.obs.Emit(e)
}

// Emit delivers an arbitrary event of type t.
func (m *Mock) Emit(t EventType) {
	m.mu.Lock()
	e := m.event(t)
	m.mu.Unlock()
	m.obs.Emit(e)
}

// Verify Mock implements Element at compile time.
var _ Element = (*Mock)(nil)

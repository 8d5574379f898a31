// internal/playback/service_impl.go
package playback

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/tilawa/internal/logging"
	"github.com/llehouerou/tilawa/internal/media"
)

// Verify serviceImpl implements Service at compile time.
var _ Service = (*serviceImpl)(nil)

type serviceImpl struct {
	// opMu serializes public operations. Element calls are made while
	// holding opMu but not mu, because elements may emit events
	// synchronously and the event handler takes mu.
	opMu sync.Mutex

	mu       sync.RWMutex
	el       media.Element
	unbind   func()
	bindings uint64
	session  Session

	subs   []*Subscription
	subsMu sync.RWMutex

	log    *logrus.Entry
	closed bool
}

// New creates a coordinator with the given initial session volume.
func New(volume float64) Service {
	return &serviceImpl{
		session: Session{Volume: volume},
		log:     logging.For("playback"),
	}
}

// Session returns a snapshot of the current session.
func (s *serviceImpl) Session() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Bound returns the bound element, or nil when idle.
func (s *serviceImpl) Bound() media.Element {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.el
}

func (s *serviceImpl) BindAndPlay(el media.Element, id ItemID) {
	if el == nil {
		return
	}
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	prev, prevUnbind := s.el, s.unbind
	s.mu.Unlock()

	// Silence the previous element before the new one is asked to play.
	if prev != nil && prev != el {
		prevUnbind()
		prev.Pause()
		prev.SetPosition(0)
	}

	s.mu.Lock()
	before := s.session
	if prev != el {
		s.bindings++
		s.el = el
		s.unbind = el.Observe(s.observer(el, id, s.bindings))
		s.session.Position = el.Position()
		s.session.Duration = el.Duration()
		s.session.State = StatePaused
	}
	s.session.ActiveItem = id
	volume := s.session.Volume
	after := s.session
	s.mu.Unlock()
	s.publishState(before, after)

	el.SetVolume(volume)

	if err := el.Play(); err != nil {
		s.log.WithFields(logrus.Fields{"item": id, "url": el.Source()}).
			WithError(err).Warn("play request rejected")
		s.resetIfBound(el, ErrorEvent{Operation: "play", Item: id, Source: el.Source(), Err: err})
		return
	}

	s.mu.Lock()
	before = s.session
	if s.el == el {
		s.session.State = StatePlaying
	}
	after = s.session
	s.mu.Unlock()
	s.publishState(before, after)
}

func (s *serviceImpl) Pause() {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	el := s.Bound()
	if el == nil {
		return
	}
	el.Pause()

	s.mu.Lock()
	before := s.session
	if s.el == el {
		s.session.State = StatePaused
	}
	after := s.session
	s.mu.Unlock()
	s.publishState(before, after)
}

func (s *serviceImpl) Stop() {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	el := s.el
	if el == nil {
		s.mu.Unlock()
		return
	}
	before := s.session
	s.unbindLocked()
	after := s.session
	s.mu.Unlock()

	el.Pause()
	el.SetPosition(0)
	s.publishState(before, after)
}

func (s *serviceImpl) SeekTo(position time.Duration) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	el := s.Bound()
	if el == nil {
		return
	}
	el.SetPosition(position)

	s.mu.Lock()
	if s.el != el {
		s.mu.Unlock()
		return
	}
	s.session.Position = position
	e := PositionChange{Item: s.session.ActiveItem, Position: position, Duration: s.session.Duration}
	s.mu.Unlock()
	s.broadcast(func(sub *Subscription) { sub.sendPosition(e) })
}

func (s *serviceImpl) SetVolume(level float64) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	s.session.Volume = level
	el := s.el
	s.mu.Unlock()

	if el != nil {
		el.SetVolume(level)
	}
	s.broadcast(func(sub *Subscription) { sub.sendVolume(VolumeChange{Volume: level}) })
}

// observer returns the event handler for one binding. Events from an
// element that is no longer bound, or from an earlier binding of the same
// element, are ignored.
func (s *serviceImpl) observer(el media.Element, id ItemID, binding uint64) media.Listener {
	return func(e media.Event) {
		s.mu.Lock()
		if s.el != el || s.bindings != binding {
			s.mu.Unlock()
			return
		}
		before := s.session

		switch e.Type {
		case media.EventEnded:
			s.unbindLocked()
		case media.EventError:
			s.unbindLocked()
		case media.EventPause:
			s.session.State = StatePaused
		case media.EventPlay, media.EventPlaying:
			s.session.State = StatePlaying
		case media.EventTimeUpdate:
			s.session.Position = e.Position
		case media.EventLoadedMetadata, media.EventDurationChange:
			s.session.Duration = e.Duration
		}

		after := s.session
		s.mu.Unlock()

		switch e.Type {
		case media.EventError:
			s.log.WithFields(logrus.Fields{"item": id, "url": e.Source}).
				WithError(e.Err).Warn("media error, session reset")
			s.broadcast(func(sub *Subscription) {
				sub.sendError(ErrorEvent{Operation: "media", Item: id, Source: e.Source, Err: e.Err})
			})
		case media.EventEnded:
			s.log.WithField("item", id).Debug("playback ended")
		case media.EventTimeUpdate, media.EventLoadedMetadata, media.EventDurationChange:
			pc := PositionChange{Item: id, Position: after.Position, Duration: after.Duration}
			s.broadcast(func(sub *Subscription) { sub.sendPosition(pc) })
		}
		s.publishState(before, after)
	}
}

// resetIfBound returns to idle after a rejected play request.
func (s *serviceImpl) resetIfBound(el media.Element, e ErrorEvent) {
	s.mu.Lock()
	if s.el != el {
		s.mu.Unlock()
		return
	}
	before := s.session
	s.unbindLocked()
	after := s.session
	s.mu.Unlock()

	s.broadcast(func(sub *Subscription) { sub.sendError(e) })
	s.publishState(before, after)
}

// unbindLocked drops the bound element and resets the session to idle.
// The volume survives.
func (s *serviceImpl) unbindLocked() {
	if s.unbind != nil {
		s.unbind()
	}
	s.el = nil
	s.unbind = nil
	s.session = Session{Volume: s.session.Volume}
}

func (s *serviceImpl) publishState(before, after Session) {
	if before.State == after.State && before.ActiveItem == after.ActiveItem {
		return
	}
	e := StateChange{
		Previous:     before.State,
		Current:      after.State,
		PreviousItem: before.ActiveItem,
		Item:         after.ActiveItem,
	}
	s.broadcast(func(sub *Subscription) { sub.sendState(e) })
}

func (s *serviceImpl) broadcast(send func(*Subscription)) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		send(sub)
	}
}

// Subscribe creates a new event subscription.
func (s *serviceImpl) Subscribe() *Subscription {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	sub := newSubscription()
	s.subs = append(s.subs, sub)
	return sub
}

// Close stops playback and closes all subscriptions.
func (s *serviceImpl) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	s.Stop()

	s.subsMu.Lock()
	for _, sub := range s.subs {
		sub.close()
	}
	s.subs = nil
	s.subsMu.Unlock()

	return nil
}

package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	beepmp3 "github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
)

const (
	speakerRate  = beep.SampleRate(44100)
	tickInterval = 250 * time.Millisecond
	userAgent    = "tilawa/1.0 (https://github.com/llehouerou/tilawa)"
)

var (
	// ErrClosed is returned by Play on a closed element.
	ErrClosed = errors.New("media element closed")

	// ErrStreamEnded is reported when a live stream stops delivering audio.
	ErrStreamEnded = errors.New("live stream ended")
)

var (
	speakerMu          sync.Mutex
	speakerInitialized bool
)

func initSpeaker() error {
	speakerMu.Lock()
	defer speakerMu.Unlock()
	if speakerInitialized {
		return nil
	}
	if err := speaker.Init(speakerRate, speakerRate.N(time.Second/10)); err != nil {
		return err
	}
	speakerInitialized = true
	return nil
}

// Stream plays an MP3 source over HTTP through the shared speaker.
// Recordings are downloaded fully so they can seek; live streams are decoded
// as they arrive and report no duration.
type Stream struct {
	src    string
	live   bool
	client *http.Client

	mu          sync.Mutex
	state       State
	level       float64
	loading     bool
	closed      bool
	pendingSeek time.Duration
	streamer    beep.StreamSeekCloser
	format      beep.Format
	ctrl        *beep.Ctrl
	volume      *effects.Volume
	ended       bool
	cancel      context.CancelFunc
	tick        chan struct{}

	obs Observers
}

// NewStream creates a stopped element for src. Nothing is fetched until Play.
func NewStream(src string, live bool, client *http.Client) *Stream {
	if client == nil {
		client = http.DefaultClient
	}
	return &Stream{src: src, live: live, client: client, level: 1}
}

// NewFactory returns a Factory producing speaker-backed streams.
func NewFactory(client *http.Client) Factory {
	return func(src string, live bool) Element {
		return NewStream(src, live, client)
	}
}

func (s *Stream) Source() string { return s.src }

func (s *Stream) eventLocked(t EventType) Event {
	return Event{
		Type:     t,
		Source:   s.src,
		Position: s.positionLocked(),
		Duration: s.durationLocked(),
	}
}

// Play starts loading the source, or resumes a paused stream.
func (s *Stream) Play() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}

	switch {
	case s.state == Playing:
		s.mu.Unlock()
		return nil
	case s.ended:
		// The mixer dropped the finished streamer; rewind and queue it again.
		speaker.Lock()
		err := s.streamer.Seek(s.format.SampleRate.N(s.pendingSeek))
		speaker.Unlock()
		if err != nil {
			s.mu.Unlock()
			return fmt.Errorf("rewind: %w", err)
		}
		s.ended = false
		s.pendingSeek = 0
		s.state = Playing
		mix := s.mixLocked()
		s.startTickerLocked()
		play, playing := s.eventLocked(EventPlay), s.eventLocked(EventPlaying)
		s.mu.Unlock()
		speaker.Play(mix)
		s.obs.Emit(play)
		s.obs.Emit(playing)
		return nil
	case s.ctrl != nil:
		speaker.Lock()
		s.ctrl.Paused = false
		speaker.Unlock()
		s.state = Playing
		s.startTickerLocked()
		play, playing := s.eventLocked(EventPlay), s.eventLocked(EventPlaying)
		s.mu.Unlock()
		s.obs.Emit(play)
		s.obs.Emit(playing)
		return nil
	case s.loading:
		s.state = Playing
		play := s.eventLocked(EventPlay)
		s.mu.Unlock()
		s.obs.Emit(play)
		return nil
	}

	if err := initSpeaker(); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("init speaker: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.loading = true
	s.state = Playing
	play, start := s.eventLocked(EventPlay), s.eventLocked(EventLoadStart)
	s.mu.Unlock()

	s.obs.Emit(play)
	s.obs.Emit(start)
	go s.load(ctx)
	return nil
}

func (s *Stream) load(ctx context.Context) {
	streamer, format, err := s.open(ctx)

	s.mu.Lock()
	if s.closed || ctx.Err() != nil {
		s.mu.Unlock()
		if streamer != nil {
			streamer.Close()
		}
		return
	}
	s.loading = false
	if err != nil {
		s.state = Stopped
		e := s.eventLocked(EventError)
		e.Err = err
		s.mu.Unlock()
		s.obs.Emit(e)
		return
	}

	s.streamer = streamer
	s.format = format
	if s.pendingSeek > 0 && !s.live {
		_ = streamer.Seek(format.SampleRate.N(s.pendingSeek))
	}

	mix := s.mixLocked()

	playing := s.state == Playing
	events := []Event{
		s.eventLocked(EventLoadedMetadata),
		s.eventLocked(EventDurationChange),
		s.eventLocked(EventCanPlay),
	}
	if playing {
		s.startTickerLocked()
		events = append(events, s.eventLocked(EventPlaying))
	}
	s.mu.Unlock()

	speaker.Play(mix)

	for _, e := range events {
		s.obs.Emit(e)
	}
}

// mixLocked wraps the decoded streamer in a fresh pause control and volume
// stage and returns what the speaker should play.
func (s *Stream) mixLocked() beep.Streamer {
	var out beep.Streamer = s.streamer
	if s.format.SampleRate != speakerRate {
		out = beep.Resample(4, s.format.SampleRate, speakerRate, s.streamer)
	}
	ctrl := &beep.Ctrl{Streamer: out, Paused: s.state != Playing}
	vol := &effects.Volume{Streamer: ctrl, Base: 2, Volume: levelToVolume(s.level), Silent: s.level <= 0}
	s.ctrl = ctrl
	s.volume = vol
	return beep.Seq(vol, beep.Callback(func() {
		// Runs on the speaker goroutine with the speaker lock held.
		go s.finished(ctrl)
	}))
}

func (s *Stream) open(ctx context.Context) (beep.StreamSeekCloser, beep.Format, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.src, http.NoBody)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("http request: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, beep.Format{}, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	if s.live {
		return beepmp3.Decode(resp.Body)
	}

	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("read body: %w", err)
	}
	rec, format, err := decodeRecording(data)
	if err != nil {
		return nil, beep.Format{}, err
	}
	return rec, format, nil
}

func (s *Stream) finished(ctrl *beep.Ctrl) {
	s.mu.Lock()
	if s.closed || s.ctrl != ctrl {
		s.mu.Unlock()
		return
	}
	s.stopTickerLocked()
	s.state = Stopped

	var e Event
	switch {
	case s.streamer != nil && s.streamer.Err() != nil:
		e = s.eventLocked(EventError)
		e.Err = s.streamer.Err()
	case s.live:
		e = s.eventLocked(EventError)
		e.Err = ErrStreamEnded
	default:
		s.ended = true
		s.pendingSeek = 0
		e = s.eventLocked(EventEnded)
	}
	s.mu.Unlock()

	s.obs.Emit(e)
}

func (s *Stream) Pause() {
	s.mu.Lock()
	if s.state != Playing {
		s.mu.Unlock()
		return
	}
	if s.ctrl != nil {
		speaker.Lock()
		s.ctrl.Paused = true
		speaker.Unlock()
	}
	s.state = Paused
	s.stopTickerLocked()
	e := s.eventLocked(EventPause)
	s.mu.Unlock()

	s.obs.Emit(e)
}

func (s *Stream) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Stream) Position() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.positionLocked()
}

func (s *Stream) positionLocked() time.Duration {
	if s.streamer == nil {
		return s.pendingSeek
	}
	if s.ended && s.pendingSeek > 0 {
		return s.pendingSeek
	}
	speaker.Lock()
	pos := s.format.SampleRate.D(s.streamer.Position())
	speaker.Unlock()
	return pos
}

// SetPosition seeks a recording. Live streams ignore it.
func (s *Stream) SetPosition(pos time.Duration) {
	s.mu.Lock()
	if s.live {
		s.mu.Unlock()
		return
	}
	pos = max(pos, 0)
	if s.streamer == nil || s.ended {
		s.pendingSeek = pos
	} else {
		speaker.Lock()
		_ = s.streamer.Seek(s.format.SampleRate.N(pos))
		speaker.Unlock()
	}
	e := s.eventLocked(EventTimeUpdate)
	s.mu.Unlock()

	s.obs.Emit(e)
}

func (s *Stream) Duration() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.durationLocked()
}

func (s *Stream) durationLocked() time.Duration {
	if s.live || s.streamer == nil {
		return 0
	}
	return s.format.SampleRate.D(s.streamer.Len())
}

// SetVolume sets the level (0.0 to 1.0). Out-of-range values are clamped.
func (s *Stream) SetVolume(level float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.level = clampLevel(level)
	if s.volume != nil {
		speaker.Lock()
		s.volume.Volume = levelToVolume(s.level)
		s.volume.Silent = s.level <= 0
		speaker.Unlock()
	}
}

func (s *Stream) Volume() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level
}

func (s *Stream) Observe(fn Listener) func() {
	return s.obs.Add(fn)
}

// Close stops audio output and aborts any download in flight.
func (s *Stream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.state = Stopped
	s.stopTickerLocked()
	if s.cancel != nil {
		s.cancel()
	}
	if s.ctrl != nil {
		// A nil streamer makes the Ctrl report exhaustion, which removes it
		// from the mixer without clearing other elements.
		speaker.Lock()
		s.ctrl.Streamer = nil
		speaker.Unlock()
	}
	if s.streamer != nil {
		return s.streamer.Close()
	}
	return nil
}

func (s *Stream) startTickerLocked() {
	if s.tick != nil {
		return
	}
	stop := make(chan struct{})
	s.tick = stop
	go s.tickLoop(stop)
}

func (s *Stream) stopTickerLocked() {
	if s.tick != nil {
		close(s.tick)
		s.tick = nil
	}
}

func (s *Stream) tickLoop(stop <-chan struct{}) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			if s.closed || s.streamer == nil {
				s.mu.Unlock()
				continue
			}
			e := s.eventLocked(EventTimeUpdate)
			s.mu.Unlock()
			s.obs.Emit(e)
		}
	}
}

// Verify Stream implements Element at compile time.
var _ Element = (*Stream)(nil)

// Package surface provides the player control for one playable item: a
// recorded recitation or the live radio stream.
//
// A surface owns the media element of its item but never commands it
// directly; every play, pause, seek and volume change goes through the
// playback service so that only one item is audible at a time.
package surface

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tilawa/internal/download"
	"github.com/llehouerou/tilawa/internal/errmsg"
	"github.com/llehouerou/tilawa/internal/logging"
	"github.com/llehouerou/tilawa/internal/media"
	"github.com/llehouerou/tilawa/internal/playback"
	"github.com/llehouerou/tilawa/internal/stream"
	"github.com/llehouerou/tilawa/internal/ui"
	"github.com/llehouerou/tilawa/internal/ui/render"
	"github.com/llehouerou/tilawa/internal/ui/styles"
)

// Mode selects the surface behavior.
type Mode int

const (
	ModeRecording Mode = iota
	ModeLive
)

// LiveItemID is the item id of the live radio surface.
const LiveItemID playback.ItemID = "live-radio-stream"

// Live indicator labels.
const (
	LiveOnLabel  = "🔴 بث مباشر"
	LiveOffLabel = "📻 إذاعة القرآن الكريم"
)

const (
	// SeekStep is the offset of one seek key press.
	SeekStep = 10 * time.Second
	// VolumeStep is the change of one volume key press.
	VolumeStep = 0.05

	eventBuffer     = 64
	downloadTimeout = 30 * time.Minute
)

// Saver stores a recording locally.
type Saver interface {
	Save(ctx context.Context, url, title string) (download.Result, error)
}

// Item describes what a surface plays.
type Item struct {
	ID       playback.ItemID
	Title    string
	Subtitle string
	URLs     []string // one URL for recordings, fallbacks in order for live
}

// Model is a player surface.
type Model struct {
	ui.Base
	svc     playback.Service
	factory media.Factory
	saver   Saver
	keys    KeyMap

	mode   Mode
	item   Item
	cursor *stream.Cursor

	el        media.Element
	elGen     uint64
	unobserve func()
	events    chan ElementMsg
	done      chan struct{}

	session     playback.Session
	loading     bool
	failed      bool
	errText     string
	status      string
	downloading bool
	spinner     spinner.Model
}

// NewRecording creates a surface for a recording with a single URL.
// saver may be nil to disable downloads.
func NewRecording(svc playback.Service, factory media.Factory, saver Saver, item Item) *Model {
	return newModel(svc, factory, saver, ModeRecording, item)
}

// NewLive creates the live radio surface over the ordered fallback URLs.
func NewLive(svc playback.Service, factory media.Factory, urls []string) *Model {
	return newModel(svc, factory, nil, ModeLive, Item{ID: LiveItemID, Title: LiveOffLabel, URLs: urls})
}

func newModel(svc playback.Service, factory media.Factory, saver Saver, mode Mode, item Item) *Model {
	m := &Model{
		svc:     svc,
		factory: factory,
		saver:   saver,
		keys:    DefaultKeyMap(),
		mode:    mode,
		item:    item,
		cursor:  stream.NewCursor(item.URLs),
		events:  make(chan ElementMsg, eventBuffer),
		done:    make(chan struct{}),
		spinner: spinner.New(spinner.WithSpinner(spinner.MiniDot)),
	}
	m.session = svc.Session()
	return m
}

// Item returns the surface item.
func (m *Model) Item() Item { return m.item }

// ID returns the surface item id.
func (m *Model) ID() playback.ItemID { return m.item.ID }

// Mode returns the surface mode.
func (m *Model) Mode() Mode { return m.mode }

// Loading reports whether the element is buffering.
func (m *Model) Loading() bool { return m.loading }

// Failed reports whether every live URL has failed.
func (m *Model) Failed() bool { return m.failed }

// ErrorText returns the Arabic error shown, if any.
func (m *Model) ErrorText() string { return m.errText }

// Status returns the last informational message.
func (m *Model) Status() string { return m.status }

// KeyMap returns the surface bindings.
func (m *Model) KeyMap() KeyMap { return m.keys }

// Init starts listening for element events.
func (m *Model) Init() tea.Cmd {
	return m.listen()
}

func (m *Model) listen() tea.Cmd {
	events, done := m.events, m.done
	return func() tea.Msg {
		select {
		case msg := <-events:
			return msg
		case <-done:
			return nil
		}
	}
}

// element returns the current element, creating it for the current URL.
func (m *Model) element() media.Element {
	if m.el != nil {
		return m.el
	}
	src, ok := m.cursor.Current()
	if !ok {
		return nil
	}
	m.elGen++
	gen, id, events := m.elGen, m.item.ID, m.events
	el := m.factory(src, m.mode == ModeLive)
	m.unobserve = el.Observe(func(e media.Event) {
		select {
		case events <- ElementMsg{Item: id, Gen: gen, Event: e}:
		default:
		}
	})
	m.el = el
	return el
}

func (m *Model) releaseElement() {
	if m.el == nil {
		return
	}
	if m.unobserve != nil {
		m.unobserve()
		m.unobserve = nil
	}
	if err := m.el.Close(); err != nil {
		logging.For("surface").WithError(err).WithField("item", m.item.ID).Debug("close element")
	}
	m.el = nil
}

// Close releases the element. The surface must not be used afterwards.
func (m *Model) Close() {
	if m.svc.Bound() != nil && m.svc.Bound() == m.el {
		m.svc.Stop()
	}
	m.releaseElement()
	select {
	case <-m.done:
	default:
		close(m.done)
	}
}

// Sync stores the latest session snapshot for rendering.
func (m *Model) Sync(s playback.Session) {
	m.session = s
}

// Toggle plays or pauses (recordings) or plays or stops (live). It is
// ignored while the element is loading.
func (m *Model) Toggle() tea.Cmd {
	if m.loading {
		return nil
	}
	s := m.svc.Session()
	if s.IsPlaying(m.item.ID) {
		if m.mode == ModeLive {
			m.svc.Stop()
			m.releaseElement()
		} else {
			m.svc.Pause()
		}
		return nil
	}
	return m.play()
}

func (m *Model) play() tea.Cmd {
	if m.mode == ModeLive && m.failed {
		m.cursor.Reset()
		m.failed = false
	}
	el := m.element()
	if el == nil {
		if m.mode == ModeLive {
			m.failed = true
			m.errText = errmsg.ArabicMessage(errmsg.KindLiveExhausted)
		} else {
			m.errText = errmsg.ArabicMessage(errmsg.KindAudio)
		}
		return nil
	}
	m.errText = ""
	m.svc.BindAndPlay(el, m.item.ID)
	m.session = m.svc.Session()
	return nil
}

// Stop stops the item if it is the active one.
func (m *Model) Stop() {
	if !m.svc.Session().IsActive(m.item.ID) {
		return
	}
	m.svc.Stop()
	if m.mode == ModeLive {
		m.releaseElement()
	}
	m.session = m.svc.Session()
}

// SeekBy moves the position by delta. Only active recordings seek.
func (m *Model) SeekBy(delta time.Duration) {
	s := m.svc.Session()
	if m.mode != ModeRecording || !s.IsActive(m.item.ID) {
		return
	}
	target := max(s.Position+delta, 0)
	if s.Duration > 0 {
		target = min(target, s.Duration)
	}
	m.svc.SeekTo(target)
}

// SeekAt seeks to the position under column x of the progress bar.
func (m *Model) SeekAt(x, width int) {
	s := m.svc.Session()
	if m.mode != ModeRecording || !s.IsActive(m.item.ID) || s.Duration <= 0 {
		return
	}
	m.svc.SeekTo(SeekTarget(x, width, s.Duration))
}

// ChangeVolume adjusts the session volume by delta, kept within [0, 1].
func (m *Model) ChangeVolume(delta float64) {
	v := m.svc.Session().Volume + delta
	m.svc.SetVolume(min(max(v, 0), 1))
}

// Download saves the recording to the download directory.
func (m *Model) Download() tea.Cmd {
	if m.mode != ModeRecording || m.saver == nil || m.downloading || len(m.item.URLs) == 0 {
		return nil
	}
	m.downloading = true
	m.status = "جاري التحميل..."
	saver, item := m.saver, m.item
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), downloadTimeout)
		defer cancel()
		res, err := saver.Save(ctx, item.URLs[0], item.Title)
		return DownloadedMsg{Item: item.ID, Result: res, Err: err}
	}
}

// Update handles keys, element events, download results and the spinner.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case ElementMsg:
		if msg.Item != m.item.ID {
			return nil
		}
		return tea.Batch(m.handleElement(msg), m.listen())
	case playback.ErrorEvent:
		m.handleServiceError(msg)
	case DownloadedMsg:
		if msg.Item == m.item.ID {
			m.handleDownloaded(msg)
		}
	case spinner.TickMsg:
		if !m.loading {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Toggle):
		return m.Toggle()
	case key.Matches(msg, m.keys.Stop):
		m.Stop()
	case key.Matches(msg, m.keys.SeekBack):
		m.SeekBy(-SeekStep)
	case key.Matches(msg, m.keys.SeekFwd):
		m.SeekBy(SeekStep)
	case key.Matches(msg, m.keys.VolumeUp):
		m.ChangeVolume(VolumeStep)
	case key.Matches(msg, m.keys.VolumeDown):
		m.ChangeVolume(-VolumeStep)
	case key.Matches(msg, m.keys.Download):
		return m.Download()
	}
	return nil
}

func (m *Model) handleElement(msg ElementMsg) tea.Cmd {
	if msg.Gen != m.elGen || m.el == nil {
		return nil
	}
	switch msg.Event.Type {
	case media.EventLoadStart, media.EventWaiting:
		if !m.loading {
			m.loading = true
			return m.spinner.Tick
		}
	case media.EventCanPlay, media.EventPlaying:
		m.loading = false
		m.errText = ""
	case media.EventEnded:
		m.loading = false
		// The next play starts over on a fresh element.
		m.releaseElement()
	case media.EventPause:
		// A live stream silenced by another item is dropped, not kept paused.
		if m.mode == ModeLive && !m.svc.Session().IsActive(m.item.ID) {
			m.loading = false
			m.releaseElement()
		}
	case media.EventError:
		m.loading = false
		return m.handleFailure(msg.Event)
	}
	return nil
}

func (m *Model) handleFailure(e media.Event) tea.Cmd {
	log := logging.For("surface").WithError(e.Err).
		WithField("item", m.item.ID).
		WithField("url", e.Source)

	m.releaseElement()
	if m.mode == ModeRecording {
		log.Warn(errmsg.Format(errmsg.OpPlaybackStart, e.Err))
		m.errText = errmsg.Arabic(e.Err, errmsg.KindAudio)
		return nil
	}

	if !m.cursor.Advance() {
		log.Error(errmsg.Format(errmsg.OpLiveStream, e.Err))
		m.failed = true
		m.errText = errmsg.ArabicMessage(errmsg.KindLiveExhausted)
		return nil
	}
	next, _ := m.cursor.Current()
	log.WithField("next", next).Warn("live stream failed, trying next source")
	return m.play()
}

func (m *Model) handleServiceError(e playback.ErrorEvent) {
	// Media errors arrive through the element itself.
	if e.Item != m.item.ID || e.Operation != "play" {
		return
	}
	m.errText = errmsg.Arabic(e.Err, errmsg.KindAudio)
}

func (m *Model) handleDownloaded(msg DownloadedMsg) {
	m.downloading = false
	if msg.Err != nil {
		logging.For("surface").WithError(msg.Err).WithField("item", m.item.ID).
			Warn(errmsg.FormatWith(errmsg.OpDownloadGet, m.item.Title, msg.Err))
		m.status = errmsg.Arabic(msg.Err, errmsg.KindNetwork)
		return
	}
	logging.For("surface").WithField("path", msg.Result.Path).Info("recording saved")
	m.status = "تم الحفظ: " + msg.Result.Path + " (" + msg.Result.Size() + ")"
}

// position reads the displayed position: the session while active,
// otherwise the element itself.
func (m *Model) position() (time.Duration, time.Duration) {
	if m.session.IsActive(m.item.ID) {
		return m.session.Position, m.session.Duration
	}
	if m.el != nil {
		return m.el.Position(), m.el.Duration()
	}
	return 0, 0
}

// Rows is the number of rows View renders.
const Rows = 3

// View renders the surface.
func (m *Model) View() string {
	width := m.Width()
	if width <= 0 {
		return ""
	}
	if m.mode == ModeLive {
		return m.viewLive(width)
	}
	return m.viewRecording(width)
}

func (m *Model) stateIcon() string {
	t := styles.T()
	switch {
	case m.loading:
		return m.spinner.View()
	case m.session.IsPlaying(m.item.ID):
		return t.S().Playing.Render("▶")
	case m.session.IsActive(m.item.ID):
		return t.S().Warning.Render("⏸")
	default:
		return t.S().Subtle.Render("■")
	}
}

func (m *Model) viewRecording(width int) string {
	t := styles.T()
	pos, dur := m.position()

	title := t.S().Title.Render(render.Sanitize(m.item.Title))
	line1 := render.Row(m.stateIcon()+" "+title, t.S().Muted.Render(RenderVolume(m.session.Volume)), width)

	info := t.S().Muted.Render(render.Sanitize(m.item.Subtitle))
	if msg := m.message(); msg != "" {
		info = msg
	}
	line2 := render.Row(info, t.S().Muted.Render(RenderTimes(pos, dur)), width)

	return strings.Join([]string{line1, line2, RenderProgressBar(pos, dur, width)}, "\n")
}

func (m *Model) viewLive(width int) string {
	t := styles.T()
	label := t.S().Muted.Render(LiveOffLabel)
	if m.session.IsPlaying(m.item.ID) {
		label = t.S().Live.Render(LiveOnLabel)
	}
	line1 := render.Row(m.stateIcon()+" "+label, t.S().Muted.Render(RenderVolume(m.session.Volume)), width)

	source := ""
	if m.cursor.Len() > 1 && !m.failed {
		source = t.S().Subtle.Render(render.Truncate(m.currentSource(), width))
	}
	return strings.Join([]string{line1, source, m.message()}, "\n")
}

func (m *Model) currentSource() string {
	src, _ := m.cursor.Current()
	return src
}

func (m *Model) message() string {
	t := styles.T()
	switch {
	case m.errText != "":
		return t.S().Error.Render(m.errText)
	case m.status != "":
		return t.S().Muted.Render(m.status)
	}
	return ""
}

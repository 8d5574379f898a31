package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tilawa/internal/catalog"
	"github.com/llehouerou/tilawa/internal/media"
	"github.com/llehouerou/tilawa/internal/mpris"
	"github.com/llehouerou/tilawa/internal/playback"
	"github.com/llehouerou/tilawa/internal/prayer"
	"github.com/llehouerou/tilawa/internal/state"
	"github.com/llehouerou/tilawa/internal/ui/catalogview"
	"github.com/llehouerou/tilawa/internal/ui/surface"
	"github.com/llehouerou/tilawa/internal/ui/tafsirview"
	"github.com/llehouerou/tilawa/internal/ui/versetext"
)

// Focus selects which surface receives the player keys.
type Focus int

const (
	FocusCatalog Focus = iota // keys drive the selected recording
	FocusLive                 // keys drive the live radio
)

// PrayerSource fetches today's prayer times.
type PrayerSource interface {
	Timings(ctx context.Context, latitude, longitude float64) (*prayer.Timings, error)
}

// BannerSource fetches the Sadaqa Jariya banner text.
type BannerSource interface {
	Sadaqa(ctx context.Context) (string, error)
}

// Location is the position used for prayer times.
type Location struct {
	Latitude  float64
	Longitude float64
}

// Options holds the dependencies of the root model.
type Options struct {
	Service playback.Service
	Factory media.Factory
	Catalog catalogview.Fetcher
	Verses  versetext.Source
	Tafsir  tafsirview.Source // nil disables the tafsir popup
	Saver   surface.Saver     // nil disables downloads
	State   state.Interface
	Tracks  *mpris.Registry
	Streams []string

	Prayer   PrayerSource // nil hides prayer times
	Location Location
	Banner   BannerSource // nil hides the sadaqa banner

	StartLive   bool // start the live radio on launch
	WatchStderr bool
}

// Model is the root application model.
type Model struct {
	svc     playback.Service
	sub     *playback.Subscription
	factory media.Factory
	saver   surface.Saver
	state   state.Interface
	tracks  *mpris.Registry

	prayer   PrayerSource
	location Location
	timings  *prayer.Timings
	banners  BannerSource
	banner   string

	catalog    *catalogview.Model
	live       *surface.Model
	surfaces   map[playback.ItemID]*surface.Model
	current    *surface.Model
	verses     *versetext.Model
	hasVerses  bool
	tafsir     *tafsirview.Model
	showTafsir bool

	focus       Focus
	session     playback.Session
	status      string
	startLive   bool
	watchStderr bool

	width, height int
}

// New creates the root model.
func New(opts Options) Model {
	m := Model{
		svc:         opts.Service,
		sub:         opts.Service.Subscribe(),
		factory:     opts.Factory,
		saver:       opts.Saver,
		state:       opts.State,
		tracks:      opts.Tracks,
		prayer:      opts.Prayer,
		location:    opts.Location,
		banners:     opts.Banner,
		catalog:     catalogview.New(opts.Catalog),
		live:        surface.NewLive(opts.Service, opts.Factory, opts.Streams),
		surfaces:    make(map[playback.ItemID]*surface.Model),
		verses:      versetext.New(opts.Verses),
		session:     opts.Service.Session(),
		startLive:   opts.StartLive,
		watchStderr: opts.WatchStderr,
	}
	if opts.Tafsir != nil {
		m.tafsir = tafsirview.New(opts.Tafsir)
	}
	if opts.StartLive {
		m.focus = FocusLive
	}
	if m.tracks != nil {
		m.tracks.Register(surface.LiveItemID, mpris.Track{Title: surface.LiveOffLabel})
	}
	return m
}

// Banner returns the sadaqa text shown in the header.
func (m Model) Banner() string { return m.banner }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.catalog.Load(),
		m.live.Init(),
		m.WatchServiceEvents(),
		m.loadPrayerCmd(),
		m.loadBannerCmd(),
	}
	if m.watchStderr {
		cmds = append(cmds, WatchStderr())
	}
	if m.startLive {
		cmds = append(cmds, m.live.Toggle())
	}
	return tea.Batch(cmds...)
}

// Session returns the last session snapshot seen by the UI.
func (m Model) Session() playback.Session { return m.session }

// Focus returns the focused surface.
func (m Model) Focus() Focus { return m.focus }

// Current returns the surface of the selected recording, or nil.
func (m Model) Current() *surface.Model { return m.current }

// Live returns the live radio surface.
func (m Model) Live() *surface.Model { return m.live }

// Status returns the status line text.
func (m Model) Status() string { return m.status }

// TafsirVisible reports whether the tafsir popup is open.
func (m Model) TafsirVisible() bool { return m.showTafsir }

func (m Model) surfaceFor(id playback.ItemID) *surface.Model {
	if id == surface.LiveItemID {
		return m.live
	}
	return m.surfaces[id]
}

func (m Model) focusedSurface() *surface.Model {
	if m.focus == FocusLive {
		return m.live
	}
	return m.current
}

// selectRecording mounts the surface and verse view of rec and starts it.
func (m *Model) selectRecording(rec catalog.Recording) tea.Cmd {
	id := playback.ItemID(rec.ID)
	var cmds []tea.Cmd

	s, ok := m.surfaces[id]
	if !ok {
		s = surface.NewRecording(m.svc, m.factory, m.saver, surface.Item{
			ID:       id,
			Title:    rec.Title,
			Subtitle: rec.Sheikh.Name,
			URLs:     []string{rec.AudioURL},
		})
		m.surfaces[id] = s
		s.SetSize(m.width, surface.Rows)
		cmds = append(cmds, s.Init())
		if m.tracks != nil {
			m.tracks.Register(id, mpris.Track{
				Title:  rec.Title,
				Artist: rec.Sheikh.Name,
				Album:  rec.SurahName,
				ArtURL: rec.Sheikh.Photo,
			})
		}
	}
	m.current = s
	m.focus = FocusCatalog

	r, hasRange := rec.Range()
	m.hasVerses = hasRange
	if hasRange {
		cmds = append(cmds, m.verses.SetRange(id, r))
	}

	if !m.svc.Session().IsPlaying(id) {
		cmds = append(cmds, s.Toggle())
	}
	cmds = append(cmds, m.syncSession())
	return tea.Batch(cmds...)
}

// syncSession pushes the current session to every view.
func (m *Model) syncSession() tea.Cmd {
	m.session = m.svc.Session()
	m.live.Sync(m.session)
	for _, s := range m.surfaces {
		s.Sync(m.session)
	}
	var cmd tea.Cmd
	if m.hasVerses {
		cmd = m.verses.Sync(m.session)
	}
	// The verse panel appears and disappears with playback.
	m.resize()
	return cmd
}

func (m *Model) closeSurfaces() {
	for _, s := range m.surfaces {
		s.Close()
	}
	m.live.Close()
}

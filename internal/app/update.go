package app

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tilawa/internal/errmsg"
	"github.com/llehouerou/tilawa/internal/logging"
	"github.com/llehouerou/tilawa/internal/ui/action"
	"github.com/llehouerou/tilawa/internal/ui/catalogview"
	"github.com/llehouerou/tilawa/internal/ui/popup"
	"github.com/llehouerou/tilawa/internal/ui/styles"
	"github.com/llehouerou/tilawa/internal/ui/surface"
	"github.com/llehouerou/tilawa/internal/ui/tafsirview"
	"github.com/llehouerou/tilawa/internal/ui/versetext"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)

	case ServiceStateChangedMsg, ServicePositionChangedMsg:
		return m, tea.Batch(m.syncSession(), m.WatchServiceEvents())
	case ServiceVolumeChangedMsg:
		if m.state != nil {
			m.state.SaveVolume(msg.Volume)
		}
		return m, tea.Batch(m.syncSession(), m.WatchServiceEvents())
	case ServiceErrorMsg:
		return m, tea.Batch(m.handleServiceError(msg), m.WatchServiceEvents())
	case ServiceClosedMsg:
		return m, nil

	case StderrMsg:
		m.status = msg.Line
		return m, WatchStderr()
	case PrayerLoadedMsg:
		if msg.Err != nil {
			logging.For("app").WithError(msg.Err).Warn(errmsg.Format(errmsg.OpPrayerLoad, msg.Err))
			return m, nil
		}
		m.timings = msg.Timings
		return m, nil
	case BannerLoadedMsg:
		if msg.Err != nil {
			logging.For("app").WithError(msg.Err).Warn(errmsg.Format(errmsg.OpSadaqaLoad, msg.Err))
		}
		m.banner = msg.Text
		return m, nil

	case surface.ElementMsg:
		if s := m.surfaceFor(msg.Item); s != nil {
			return m, s.Update(msg)
		}
		return m, nil
	case surface.DownloadedMsg:
		if s := m.surfaceFor(msg.Item); s != nil {
			cmd := s.Update(msg)
			m.status = s.Status()
			return m, cmd
		}
		return m, nil
	case spinner.TickMsg:
		return m, m.forwardTick(msg)

	case versetext.FetchedMsg, versetext.ScrollMsg:
		return m, m.verses.Update(msg)
	case tafsirview.FetchedMsg:
		if m.tafsir == nil {
			return m, nil
		}
		_, cmd := m.tafsir.Update(msg)
		return m, cmd

	case action.Msg:
		return m.handleAction(msg)
	}

	// Catalog load results and list internals.
	return m, m.catalog.Update(msg)
}

func (m *Model) handleServiceError(msg ServiceErrorMsg) tea.Cmd {
	cmd := m.syncSession()
	if s := m.surfaceFor(msg.Event.Item); s != nil {
		s.Update(msg.Event)
	}
	return cmd
}

// forwardTick hands a spinner tick to every component that may own it.
func (m *Model) forwardTick(msg spinner.TickMsg) tea.Cmd {
	cmds := []tea.Cmd{m.live.Update(msg), m.verses.Update(msg)}
	for _, s := range m.surfaces {
		cmds = append(cmds, s.Update(msg))
	}
	return tea.Batch(cmds...)
}

func (m Model) handleAction(msg action.Msg) (tea.Model, tea.Cmd) {
	switch a := msg.Action.(type) {
	case catalogview.Select:
		cmd := m.selectRecording(a.Recording)
		return m, cmd
	case catalogview.ShowTafsir:
		if m.tafsir == nil {
			return m, nil
		}
		r, ok := a.Recording.Range()
		if !ok {
			return m, nil
		}
		m.showTafsir = true
		m.tafsir.SetSize(popup.InnerSize(m.width, m.height, popup.SizeLarge))
		return m, m.tafsir.SetRange(a.Recording.Title, r)
	case tafsirview.Close:
		m.showTafsir = false
		return m, nil
	case tafsirview.Passthrough:
		return m.handleGlobalKey(a.Key)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}
	if m.showTafsir && m.tafsir != nil {
		_, cmd := m.tafsir.Update(msg)
		return m, cmd
	}
	if m.focus == FocusCatalog && m.catalog.Filtering() {
		return m, m.catalog.Update(msg)
	}
	return m.handleGlobalKey(msg)
}

func (m Model) handleGlobalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m.quit()
	case "tab":
		if m.focus == FocusLive {
			m.focus = FocusCatalog
		} else {
			m.focus = FocusLive
		}
		return m, nil
	case "r":
		return m, m.live.Toggle()
	case "T":
		m.toggleTheme()
		return m, nil
	}

	if s := m.focusedSurface(); s != nil && isSurfaceKey(msg, s.KeyMap()) {
		cmd := s.Update(msg)
		if msg.String() == "d" {
			m.status = s.Status()
		}
		return m, cmd
	}
	if m.focus == FocusCatalog {
		return m, m.catalog.Update(msg)
	}
	return m, nil
}

func isSurfaceKey(msg tea.KeyMsg, km surface.KeyMap) bool {
	return key.Matches(msg,
		km.Toggle, km.Stop, km.SeekBack, km.SeekFwd,
		km.VolumeUp, km.VolumeDown, km.Download,
	)
}

func (m *Model) toggleTheme() {
	light := !styles.IsLight()
	styles.SetLight(light)
	if m.state == nil {
		return
	}
	theme := "dark"
	if light {
		theme = "light"
	}
	if err := m.state.SaveTheme(theme); err != nil {
		logging.For("app").WithError(err).Warn("save theme")
	}
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showTafsir || m.current == nil {
		return m, nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if msg.Y == m.recordingBarRow() {
		m.current.SeekAt(msg.X, m.width)
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.closeSurfaces()
	return m, tea.Quit
}

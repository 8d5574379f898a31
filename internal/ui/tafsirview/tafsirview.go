// Package tafsirview provides the tafsir popup of a recording.
package tafsirview

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tilawa/internal/errmsg"
	"github.com/llehouerou/tilawa/internal/logging"
	"github.com/llehouerou/tilawa/internal/quran"
	"github.com/llehouerou/tilawa/internal/tafsir"
	"github.com/llehouerou/tilawa/internal/ui"
	"github.com/llehouerou/tilawa/internal/ui/popup"
	"github.com/llehouerou/tilawa/internal/ui/render"
	"github.com/llehouerou/tilawa/internal/ui/styles"
)

var _ popup.Popup = (*Model)(nil)

// Texts shown by the popup.
const (
	TitleText   = "التفسير"
	LoadingText = "جاري تحميل التفسير..."
)

// Source provides the commentary of a verse range.
type Source interface {
	Range(ctx context.Context, r quran.Range) ([]tafsir.Entry, error)
}

// State represents the current state of the popup.
type State int

const (
	StateLoading State = iota
	StateLoaded
	StateError
)

// fetchTimeout covers a whole range fetched verse by verse.
const fetchTimeout = 2 * time.Minute

// Model holds the state of the tafsir popup.
type Model struct {
	ui.Base
	source Source

	title   string
	rng     quran.Range
	gen     uint64
	state   State
	errText string
	entries []tafsir.Entry

	lines        []string
	linesWidth   int
	scrollOffset int
}

// New creates a tafsir popup.
func New(source Source) *Model {
	return &Model{source: source}
}

// SetRange shows the commentary of r for the recording titled title and
// triggers the fetch. Results of earlier calls are dropped.
func (m *Model) SetRange(title string, r quran.Range) tea.Cmd {
	m.title = title
	m.rng = r
	m.gen++
	m.state = StateLoading
	m.entries = nil
	m.lines = nil
	m.scrollOffset = 0
	return m.fetchCmd()
}

func (m *Model) fetchCmd() tea.Cmd {
	source, r, gen := m.source, m.rng, m.gen
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		entries, err := source.Range(ctx, r)
		return FetchedMsg{Gen: gen, Entries: entries, Err: err}
	}
}

// State returns the fetch state.
func (m *Model) State() State { return m.state }

// Entries returns the loaded commentary.
func (m *Model) Entries() []tafsir.Entry { return m.entries }

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case FetchedMsg:
		m.handleFetched(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "q":
		return func() tea.Msg { return ActionMsg(Close{}) }
	case "j", "down":
		m.scrollOffset = min(m.scrollOffset+1, m.maxScroll())
	case "k", "up":
		m.scrollOffset = max(m.scrollOffset-1, 0)
	case "pgdown", "ctrl+d":
		m.scrollOffset = min(m.scrollOffset+m.visibleHeight()/2, m.maxScroll())
	case "pgup", "ctrl+u":
		m.scrollOffset = max(m.scrollOffset-m.visibleHeight()/2, 0)
	case "g":
		m.scrollOffset = 0
	case "G":
		m.scrollOffset = m.maxScroll()
	default:
		return func() tea.Msg { return ActionMsg(Passthrough{Key: msg}) }
	}
	return nil
}

func (m *Model) handleFetched(msg FetchedMsg) {
	if msg.Gen != m.gen {
		return
	}
	if msg.Err != nil {
		logging.For("tafsir").WithError(msg.Err).
			Warn(errmsg.FormatWith(errmsg.OpTafsirLoad, m.rng.String(), msg.Err))
		m.state = StateError
		m.errText = errmsg.Arabic(msg.Err, errmsg.KindTafsir)
		return
	}
	m.entries = msg.Entries
	m.state = StateLoaded
	m.lines = nil
}

// SetSize implements popup.Popup.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.scrollOffset = min(m.scrollOffset, m.maxScroll())
}

func (m *Model) visibleHeight() int {
	// title, blank, blank, footer
	return max(m.Height()-4, 1)
}

func (m *Model) maxScroll() int {
	return max(len(m.bodyLines())-m.visibleHeight(), 0)
}

// bodyLines wraps the entries to the popup width, cached per width.
func (m *Model) bodyLines() []string {
	if m.state != StateLoaded {
		return nil
	}
	width := m.Width()
	if m.lines != nil && m.linesWidth == width {
		return m.lines
	}
	t := styles.T()
	wrap := lipgloss.NewStyle().Width(max(width, 10)).Align(lipgloss.Right)

	var lines []string
	for i, e := range m.entries {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, render.AlignRight(t.S().Verse.Render(fmt.Sprintf("الآية %d", e.Verse)), width))
		text := render.Sanitize(e.Text)
		style := t.S().Base
		if !e.Available {
			style = t.S().Subtle
		}
		lines = append(lines, strings.Split(style.Render(wrap.Render(text)), "\n")...)
	}
	m.lines = lines
	m.linesWidth = width
	return lines
}

// View implements popup.Popup.
func (m *Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	t := styles.T()

	var sb strings.Builder
	title := TitleText
	if m.title != "" {
		title += " - " + render.Sanitize(m.title)
	}
	sb.WriteString(render.AlignRight(styles.Title(title), m.Width()))
	sb.WriteString("\n\n")

	switch m.state {
	case StateLoading:
		sb.WriteString(render.AlignRight(t.S().Muted.Render(LoadingText), m.Width()))
	case StateError:
		sb.WriteString(render.AlignRight(t.S().Error.Render(m.errText), m.Width()))
	case StateLoaded:
		lines := m.bodyLines()
		end := min(m.scrollOffset+m.visibleHeight(), len(lines))
		sb.WriteString(strings.Join(lines[min(m.scrollOffset, end):end], "\n"))
	}

	sb.WriteString("\n\n")
	sb.WriteString(t.S().Subtle.Render(m.footer()))
	return sb.String()
}

func (m *Model) footer() string {
	footer := m.rng.String()
	if total := len(m.bodyLines()); total > m.visibleHeight() {
		footer += fmt.Sprintf("  %d/%d", m.scrollOffset+1, m.maxScroll()+1)
	}
	return footer + "  j/k scroll  esc close"
}

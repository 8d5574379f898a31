// Package versetext shows the verses of the recording being played and
// highlights the one estimated to be recited.
package versetext

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tilawa/internal/errmsg"
	"github.com/llehouerou/tilawa/internal/logging"
	"github.com/llehouerou/tilawa/internal/playback"
	"github.com/llehouerou/tilawa/internal/quran"
	"github.com/llehouerou/tilawa/internal/ui"
	"github.com/llehouerou/tilawa/internal/ui/render"
	"github.com/llehouerou/tilawa/internal/ui/styles"
	"github.com/llehouerou/tilawa/internal/versesync"
)

// Texts shown by the view.
const (
	HeaderText  = "النص القرآني الكريم"
	LoadingText = "جاري تحميل النص الكريم..."
	ErrorText   = "فشل في تحميل النص القرآني"
)

// ScrollDelay is how long after an index change the view re-centers.
const ScrollDelay = 100 * time.Millisecond

const fetchTimeout = 20 * time.Second

// Source provides the verses of a range.
type Source interface {
	Verses(ctx context.Context, r quran.Range) ([]quran.Verse, error)
}

// State represents the fetch state of the view.
type State int

const (
	StateEmpty State = iota
	StateLoading
	StateLoaded
	StateError
)

// Model is the verse view of one recording.
type Model struct {
	ui.Base
	source Source

	item   playback.ItemID
	rng    quran.Range
	state  State
	verses []quran.Verse
	gen    uint64

	visible      bool
	cursor       versesync.Cursor
	scrollOffset int
	spinner      spinner.Model
}

// New creates an empty verse view.
func New(source Source) *Model {
	return &Model{
		source:  source,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

// Item returns the recording the view belongs to.
func (m *Model) Item() playback.ItemID { return m.item }

// Range returns the verse range shown.
func (m *Model) Range() quran.Range { return m.rng }

// State returns the fetch state.
func (m *Model) State() State { return m.state }

// Verses returns the loaded verses.
func (m *Model) Verses() []quran.Verse { return m.verses }

// Index returns the highlighted verse index.
func (m *Model) Index() int { return m.cursor.Index() }

// Visible reports whether the last synced session shows the view.
func (m *Model) Visible() bool { return m.visible }

// ScrollOffset returns the first rendered verse.
func (m *Model) ScrollOffset() int { return m.scrollOffset }

// SetRange mounts the view on a recording and range. The verses are fetched
// once per change; setting the same item and range again does nothing.
func (m *Model) SetRange(item playback.ItemID, r quran.Range) tea.Cmd {
	if item == m.item && r == m.rng && m.state != StateEmpty {
		return nil
	}
	m.item = item
	m.rng = r
	m.gen++
	m.verses = nil
	m.cursor.Reset()
	m.scrollOffset = 0

	if !r.Valid() {
		m.state = StateError
		return nil
	}
	m.state = StateLoading
	return tea.Batch(m.fetchCmd(m.gen, r), m.spinner.Tick)
}

func (m *Model) fetchCmd(gen uint64, r quran.Range) tea.Cmd {
	source := m.source
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		verses, err := source.Verses(ctx, r)
		return FetchedMsg{Gen: gen, Verses: verses, Err: err}
	}
}

// Sync applies a session snapshot. The view shows only while its recording
// is the active item and playing; hiding it resets the cursor. A changed
// verse index schedules a re-center after ScrollDelay.
func (m *Model) Sync(s playback.Session) tea.Cmd {
	m.visible = s.IsPlaying(m.item)
	if !m.visible {
		m.cursor.Reset()
		m.scrollOffset = 0
		return nil
	}
	if m.state != StateLoaded || !m.cursor.Update(s.Position, s.Duration, len(m.verses)) {
		return nil
	}
	gen, idx := m.gen, m.cursor.Index()
	return tea.Tick(ScrollDelay, func(time.Time) tea.Msg {
		return ScrollMsg{Gen: gen, Index: idx}
	})
}

// Update handles fetch results, scroll ticks and the spinner.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case FetchedMsg:
		m.handleFetched(msg)
	case ScrollMsg:
		// A newer index already has its own tick pending.
		if msg.Gen == m.gen && msg.Index == m.cursor.Index() && m.visible {
			m.centerOn(msg.Index)
		}
	case spinner.TickMsg:
		if m.state != StateLoading {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) handleFetched(msg FetchedMsg) {
	if msg.Gen != m.gen {
		return
	}
	if msg.Err != nil {
		m.state = StateError
		logging.For("versetext").WithError(msg.Err).
			WithField("item", m.item).
			Warn(errmsg.FormatWith(errmsg.OpVersesLoad, m.rng.String(), msg.Err))
		return
	}
	m.verses = msg.Verses
	m.state = StateLoaded
	m.cursor.Reset()
	m.scrollOffset = 0
}

func (m *Model) visibleHeight() int {
	return max(m.ListHeight(ui.ListOverhead), 1)
}

func (m *Model) maxScroll() int {
	return max(len(m.verses)-m.visibleHeight(), 0)
}

func (m *Model) centerOn(index int) {
	m.scrollOffset = max(0, min(index-m.visibleHeight()/2, m.maxScroll()))
}

// View renders the verses, or nothing while hidden.
func (m *Model) View() string {
	if !m.visible || m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	t := styles.T()
	width := m.Width()

	var sb strings.Builder
	sb.WriteString(render.Row(styles.Title(HeaderText), t.S().Muted.Render(m.counter()), width))
	sb.WriteString("\n")
	sb.WriteString(t.S().Subtle.Render(render.Separator(width)))
	sb.WriteString("\n")

	switch m.state {
	case StateLoading:
		sb.WriteString(render.AlignRight(m.spinner.View()+" "+t.S().Muted.Render(LoadingText), width))
	case StateError:
		sb.WriteString(render.AlignRight(t.S().Error.Render(ErrorText), width))
	case StateLoaded:
		sb.WriteString(m.renderVerses(width))
	}
	return sb.String()
}

func (m *Model) counter() string {
	if m.state != StateLoaded || len(m.verses) == 0 {
		return m.rng.String()
	}
	return fmt.Sprintf("%d/%d", m.cursor.Index()+1, len(m.verses))
}

func (m *Model) renderVerses(width int) string {
	t := styles.T()
	end := min(m.scrollOffset+m.visibleHeight(), len(m.verses))
	lines := make([]string, 0, end-m.scrollOffset)
	for i := m.scrollOffset; i < end; i++ {
		v := m.verses[i]
		text := render.Truncate(render.Sanitize(fmt.Sprintf("%s ﴿%d﴾", v.Text, v.NumberInSurah)), width)
		style := t.S().Muted
		if i == m.cursor.Index() {
			style = t.S().Verse
		}
		lines = append(lines, render.AlignRight(style.Render(text), width))
	}
	return strings.Join(lines, "\n")
}

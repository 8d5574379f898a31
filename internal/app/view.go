package app

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/tilawa/internal/catalog"
	"github.com/llehouerou/tilawa/internal/prayer"
	"github.com/llehouerou/tilawa/internal/ui/popup"
	"github.com/llehouerou/tilawa/internal/ui/render"
	"github.com/llehouerou/tilawa/internal/ui/styles"
	"github.com/llehouerou/tilawa/internal/ui/surface"
)

// Texts of the root view.
const (
	AppTitle      = "تلاوة"
	NoSelection   = "اختر تلاوة للاستماع"
	HelpText      = "enter تشغيل  space إيقاف/استئناف  tab تبديل  r الإذاعة  T السمة  q خروج"
	liveFocusMark = "◆ "
)

// chrome is the header and status lines around the panels.
const chrome = 2

// now is replaced in tests.
var now = time.Now

func (m Model) bodyHeight() int {
	return max(m.height-chrome-2*surface.Rows, 0)
}

// recordingBarRow is the screen row of the recording progress bar.
func (m Model) recordingBarRow() int {
	return 1 + m.bodyHeight() + surface.Rows - 1
}

func (m Model) catalogWidth() int {
	if !m.versesShown() {
		return m.width
	}
	return m.width * 2 / 5
}

func (m Model) versesShown() bool {
	return m.hasVerses && m.verses.Visible()
}

func (m *Model) resize() {
	bodyH := m.bodyHeight()
	cw := m.catalogWidth()
	m.catalog.SetSize(cw, bodyH)
	m.verses.SetSize(max(m.width-cw-1, 0), bodyH)
	m.live.SetSize(m.width, surface.Rows)
	for _, s := range m.surfaces {
		s.SetSize(m.width, surface.Rows)
	}
	if m.tafsir != nil {
		m.tafsir.SetSize(popup.InnerSize(m.width, m.height, popup.SizeLarge))
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	parts := []string{m.headerView()}
	if m.bodyHeight() > 0 {
		parts = append(parts, m.bodyView())
	}
	parts = append(parts, m.recordingView(), m.liveView(), m.statusView())
	view := strings.Join(parts, "\n")

	if m.showTafsir && m.tafsir != nil {
		box := popup.RenderBordered(m.tafsir.View(), m.width, m.height, popup.SizeLarge)
		view = popup.Compose(view, popup.Center(box, m.width, m.height), m.width)
	}
	return view
}

func (m Model) headerView() string {
	title, times := styles.Title(AppTitle), m.prayerView()
	right := times
	if banner := m.bannerView(m.width - lipgloss.Width(title) - lipgloss.Width(times) - 4); banner != "" {
		right = banner
		if times != "" {
			right += "  " + times
		}
	}
	return render.Row(title, right, m.width)
}

// bannerView renders the sadaqa text within width columns, or nothing when
// it does not fit.
func (m Model) bannerView(width int) string {
	if m.banner == "" {
		return ""
	}
	if width < lipgloss.Width(catalog.SadaqaTitle)+4 {
		return ""
	}
	t := styles.T()
	text := catalog.SadaqaTitle + ": " + render.Sanitize(m.banner)
	return t.S().Warning.Render(render.Truncate(text, width))
}

func (m Model) prayerView() string {
	if m.timings == nil {
		return ""
	}
	t := styles.T()
	at := now()
	name := m.timings.Next(at)
	if name == "" {
		name = prayer.Order[0]
	}
	clock := m.timings.Times[name]
	text := prayer.ArabicNames[name] + " " + prayer.Format12Hour(clock)
	if prayer.IsActive(at, clock) {
		return t.S().Success.Render(text)
	}
	return t.S().Muted.Render(text)
}

func (m Model) bodyView() string {
	bodyH := m.bodyHeight()
	cw := m.catalogWidth()
	left := lipgloss.NewStyle().Width(cw).Height(bodyH).MaxHeight(bodyH).Render(m.catalog.View())
	if !m.versesShown() {
		return left
	}
	t := styles.T()
	sep := t.S().Subtle.Render(strings.TrimSuffix(strings.Repeat("│\n", bodyH), "\n"))
	vw := max(m.width-cw-1, 0)
	right := lipgloss.NewStyle().Width(vw).Height(bodyH).MaxHeight(bodyH).Render(m.verses.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, sep, right)
}

func (m Model) recordingView() string {
	if m.current == nil {
		t := styles.T()
		lines := make([]string, surface.Rows)
		lines[1] = render.Center(t.S().Subtle.Render(NoSelection), m.width)
		return strings.Join(lines, "\n")
	}
	return m.current.View()
}

func (m Model) liveView() string {
	view := m.live.View()
	if m.focus != FocusLive {
		return view
	}
	t := styles.T()
	lines := strings.Split(view, "\n")
	lines[0] = t.S().Playing.Render(liveFocusMark) + ansi.Truncate(lines[0], max(m.width-2, 0), "")
	return strings.Join(lines, "\n")
}

func (m Model) statusView() string {
	t := styles.T()
	if m.status != "" {
		return t.S().Muted.Render(render.Truncate(m.status, m.width))
	}
	return t.S().Subtle.Render(render.Truncate(HelpText, m.width))
}

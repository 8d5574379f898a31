// Package catalogview lists the recordings of the catalog grouped by reciter.
package catalogview

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tilawa/internal/catalog"
	"github.com/llehouerou/tilawa/internal/errmsg"
	"github.com/llehouerou/tilawa/internal/logging"
	"github.com/llehouerou/tilawa/internal/ui"
	"github.com/llehouerou/tilawa/internal/ui/render"
	"github.com/llehouerou/tilawa/internal/ui/styles"
)

// Texts shown by the view.
const (
	TitleText   = "التلاوات"
	LoadingText = "جاري تحميل التلاوات..."
	AllLabel    = "الكل"
)

const loadTimeout = 30 * time.Second

// Fetcher loads the catalog.
type Fetcher interface {
	Recordings(ctx context.Context) ([]catalog.Recording, error)
}

// State represents the load state of the view.
type State int

const (
	StateLoading State = iota
	StateLoaded
	StateError
)

// Model is the recordings list.
type Model struct {
	ui.Base
	fetcher Fetcher

	state      State
	errText    string
	recordings []catalog.Recording
	categories []catalog.Category
	category   catalog.Category
	list       list.Model
}

// New creates the catalog view.
func New(fetcher Fetcher) *Model {
	t := styles.T()
	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = d.Styles.SelectedTitle.Foreground(t.Primary).BorderForeground(t.Primary)
	d.Styles.SelectedDesc = d.Styles.SelectedDesc.Foreground(t.FgMuted).BorderForeground(t.Primary)
	d.Styles.NormalTitle = d.Styles.NormalTitle.Foreground(t.FgBase)
	d.Styles.NormalDesc = d.Styles.NormalDesc.Foreground(t.FgSubtle)

	l := list.New(nil, d, 0, 0)
	l.Title = TitleText
	l.Styles.Title = t.S().Title.Foreground(t.Primary)
	l.SetShowHelp(false)
	l.SetStatusBarItemName("تلاوة", "تلاوات")
	l.DisableQuitKeybindings()

	return &Model{fetcher: fetcher, list: l}
}

// Load fetches the catalog.
func (m *Model) Load() tea.Cmd {
	m.state = StateLoading
	fetcher := m.fetcher
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		recs, err := fetcher.Recordings(ctx)
		return LoadedMsg{Recordings: recs, Err: err}
	}
}

// State returns the load state.
func (m *Model) State() State { return m.state }

// Category returns the active category filter; empty means all.
func (m *Model) Category() catalog.Category { return m.category }

// Recordings returns the loaded recordings.
func (m *Model) Recordings() []catalog.Recording { return m.recordings }

// Visible returns the listed recordings, in display order.
func (m *Model) Visible() []catalog.Recording {
	var out []catalog.Recording
	for _, it := range m.list.VisibleItems() {
		out = append(out, it.(item).rec)
	}
	return out
}

// Selected returns the recording under the cursor.
func (m *Model) Selected() (catalog.Recording, bool) {
	it, ok := m.list.SelectedItem().(item)
	if !ok {
		return catalog.Recording{}, false
	}
	return it.rec, true
}

// Filtering reports whether the filter input has the keyboard.
func (m *Model) Filtering() bool { return m.list.SettingFilter() }

// SetSize sets the component dimensions.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.list.SetSize(width, max(m.ListHeight(ui.LineHeight), 0))
}

// Update handles load results and keys.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case LoadedMsg:
		return m.handleLoaded(msg)
	case tea.KeyMsg:
		if m.state != StateLoaded {
			return nil
		}
		if m.list.SettingFilter() {
			break
		}
		switch msg.String() {
		case "enter":
			if rec, ok := m.Selected(); ok {
				return func() tea.Msg { return ActionMsg(Select{Recording: rec}) }
			}
			return nil
		case "t":
			if rec, ok := m.Selected(); ok {
				if _, has := rec.Range(); has {
					return func() tea.Msg { return ActionMsg(ShowTafsir{Recording: rec}) }
				}
			}
			return nil
		case "c":
			return m.CycleCategory()
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return cmd
}

func (m *Model) handleLoaded(msg LoadedMsg) tea.Cmd {
	if msg.Err != nil {
		logging.For("catalog").WithError(msg.Err).Warn(errmsg.Format(errmsg.OpCatalogLoad, msg.Err))
		m.state = StateError
		m.errText = errmsg.Arabic(msg.Err, errmsg.KindAPI)
		return nil
	}
	m.state = StateLoaded
	m.recordings = msg.Recordings
	m.categories = catalog.Categories(msg.Recordings)
	m.category = ""
	return m.refresh()
}

// CycleCategory switches the category filter: all, then each category
// present in the catalog.
func (m *Model) CycleCategory() tea.Cmd {
	next := catalog.Category("")
	if m.category == "" {
		if len(m.categories) > 0 {
			next = m.categories[0]
		}
	} else {
		for i, c := range m.categories {
			if c == m.category && i+1 < len(m.categories) {
				next = m.categories[i+1]
			}
		}
	}
	m.category = next
	return m.refresh()
}

func (m *Model) refresh() tea.Cmd {
	recs := catalog.Filter(m.recordings, m.category, "")
	m.list.ResetSelected()
	return m.list.SetItems(items(recs))
}

func (m *Model) categoryLabel() string {
	if m.category == "" {
		return AllLabel
	}
	return m.category.Label()
}

// View renders the list.
func (m *Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	t := styles.T()
	switch m.state {
	case StateLoading:
		return render.AlignRight(t.S().Muted.Render(LoadingText), m.Width())
	case StateError:
		return render.AlignRight(t.S().Error.Render(m.errText), m.Width())
	}
	header := render.Row(t.S().Subtle.Render("c: "+m.categoryLabel()), t.S().Subtle.Render("/ بحث  t تفسير"), m.Width())
	return header + "\n" + m.list.View()
}

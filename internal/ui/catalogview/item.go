package catalogview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"

	"github.com/llehouerou/tilawa/internal/catalog"
	"github.com/llehouerou/tilawa/internal/ui/render"
)

// item is one recording row of the list.
type item struct {
	rec catalog.Recording
}

var _ list.DefaultItem = item{}

func (i item) Title() string {
	return render.Sanitize(i.rec.Title)
}

func (i item) Description() string {
	parts := []string{render.Sanitize(i.rec.Sheikh.Name)}
	if r, ok := i.rec.Range(); ok {
		name := i.rec.SurahName
		if name == "" {
			name = fmt.Sprintf("سورة %d", r.Surah)
		}
		parts = append(parts, fmt.Sprintf("%s %d-%d", render.Sanitize(name), r.From, r.To))
	}
	if i.rec.Year > 0 {
		parts = append(parts, fmt.Sprint(int(i.rec.Year)))
	}
	if i.rec.Category != "" {
		parts = append(parts, i.rec.Category.Label())
	}
	return strings.Join(parts, " · ")
}

func (i item) FilterValue() string {
	return strings.Join([]string{i.rec.Title, i.rec.Sheikh.Name, i.rec.SurahName}, " ")
}

// items orders recordings by reciter for display.
func items(recs []catalog.Recording) []list.Item {
	var out []list.Item
	for _, g := range catalog.GroupBySheikh(recs) {
		for _, r := range g.Recordings {
			out = append(out, item{rec: r})
		}
	}
	return out
}

package catalog

import (
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Group is the recordings of one reciter.
type Group struct {
	Sheikh     Sheikh
	Recordings []Recording
}

// SortNewestFirst orders recordings by date, newest first. Ties keep
// their API order.
func SortNewestFirst(recs []Recording) {
	slices.SortStableFunc(recs, func(a, b Recording) int {
		return b.Date.Compare(a.Date.Time)
	})
}

// Filter keeps recordings of the given category (empty = all) whose
// title, reciter or surah name contains query.
func Filter(recs []Recording, category Category, query string) []Recording {
	query = strings.TrimSpace(query)
	return lo.Filter(recs, func(r Recording, _ int) bool {
		return (category == "" || r.Category == category) && r.Matches(query)
	})
}

// Categories returns the distinct categories present, in first-seen order.
func Categories(recs []Recording) []Category {
	return lo.Compact(lo.Uniq(lo.Map(recs, func(r Recording, _ int) Category {
		return r.Category
	})))
}

// GroupBySheikh groups recordings by reciter, ordered by reciter name.
// Recordings keep their relative order within a group.
func GroupBySheikh(recs []Recording) []Group {
	byID := lo.GroupBy(recs, func(r Recording) string { return r.Sheikh.ID })
	groups := lo.MapToSlice(byID, func(_ string, rs []Recording) Group {
		return Group{Sheikh: rs[0].Sheikh.Sheikh, Recordings: rs}
	})
	slices.SortFunc(groups, func(a, b Group) int {
		if c := strings.Compare(a.Sheikh.Name, b.Sheikh.Name); c != 0 {
			return c
		}
		return strings.Compare(a.Sheikh.ID, b.Sheikh.ID)
	})
	return groups
}

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleRecordings() []Recording {
	mk := func(id, title, sheikhID, sheikhName, surah string, cat Category) Recording {
		return Recording{
			ID:        id,
			Title:     title,
			Sheikh:    SheikhRef{Sheikh{ID: sheikhID, Name: sheikhName}},
			SurahName: surah,
			Category:  cat,
		}
	}
	return []Recording{
		mk("1", "Al-Kahf Friday", "s2", "Mishary", "الكهف", CategoryFeatured),
		mk("2", "Taraweeh night 1", "s1", "Abdulbasit", "البقرة", CategoryRamadan),
		mk("3", "Yaseen", "s2", "Mishary", "يس", CategoryGeneral),
		mk("4", "Taraweeh night 2", "s1", "Abdulbasit", "", CategoryRamadan),
	}
}

func TestFilter(t *testing.T) {
	recs := sampleRecordings()
	ids := func(rs []Recording) []string {
		out := make([]string, len(rs))
		for i, r := range rs {
			out[i] = r.ID
		}
		return out
	}

	tests := []struct {
		name     string
		category Category
		query    string
		want     []string
	}{
		{"all", "", "", []string{"1", "2", "3", "4"}},
		{"category", CategoryRamadan, "", []string{"2", "4"}},
		{"title query case-insensitive", "", "taraweeh", []string{"2", "4"}},
		{"sheikh query", "", "mishary", []string{"1", "3"}},
		{"surah query", "", "يس", []string{"3"}},
		{"category and query", CategoryRamadan, "night 2", []string{"4"}},
		{"no match", CategoryGeneral, "kahf", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(recs, tt.category, tt.query)))
		})
	}
}

func TestGroupBySheikh(t *testing.T) {
	groups := GroupBySheikh(sampleRecordings())

	assert.Len(t, groups, 2)
	assert.Equal(t, "Abdulbasit", groups[0].Sheikh.Name)
	assert.Equal(t, "2", groups[0].Recordings[0].ID)
	assert.Equal(t, "4", groups[0].Recordings[1].ID)
	assert.Equal(t, "Mishary", groups[1].Sheikh.Name)
	assert.Len(t, groups[1].Recordings, 2)
}

func TestCategories(t *testing.T) {
	recs := append(sampleRecordings(), Recording{ID: "5"})
	assert.Equal(t, []Category{CategoryFeatured, CategoryRamadan, CategoryGeneral}, Categories(recs))
}

func TestCategory_Label(t *testing.T) {
	assert.Equal(t, "🌙 رمضان", CategoryRamadan.Label())
	assert.Equal(t, "custom", Category("custom").Label())
}

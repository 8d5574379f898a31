package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/tilawa/internal/quran"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    quran.Range
		wantErr bool
	}{
		{"whole surah", []string{"18"}, quran.Range{Surah: 18, From: 1, To: quran.MaxVerse}, false},
		{"range", []string{"36", "1", "12"}, quran.Range{Surah: 36, From: 1, To: 12}, false},
		{"missing to", []string{"36", "1"}, quran.Range{}, true},
		{"not a number", []string{"kahf"}, quran.Range{}, true},
		{"reversed", []string{"2", "10", "5"}, quran.Range{}, true},
		{"surah out of range", []string{"115"}, quran.Range{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseRange(tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const recordingsJSON = `{"data":[
	{"_id":"r1","title":"سورة الكهف","description":"","sheikh":{"_id":"s1","name":"Mishary"},
	 "category":"featured","year":2019,"audio_file":"https://cdn.example/kahf.mp3",
	 "surah":"الكهف","surahNumber":18,"fromAyah":1,"toAyah":10,"date":"2024-01-05T10:00:00.000Z"},
	{"_id":"r2","title":"تراويح","sheikh":{"_id":"s2","name":"Abdulbasit"},
	 "category":"ramadan","year":"2021","audio_file":"https://cdn.example/t.mp3",
	 "surahNumber":"","fromAyah":null,"date":"2024-03-01T00:00:00Z"},
	{"_id":"r3","title":"Yaseen","sheikh":"s1","category":"general","audio_file":"https://cdn.example/y.mp3",
	 "surah":"يس","surahNumber":"36","fromAyah":"1","toAyah":"83","date":""}
]}`

func newTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return New(srv.URL + "/api/v1")
}

func TestClient_Recordings(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/recordings", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(recordingsJSON))
	})
	c := newTestClient(t, mux)

	recs, err := c.Recordings(context.Background())

	require.NoError(t, err)
	require.Len(t, recs, 3)
	// Newest first; the undated recording sorts last.
	assert.Equal(t, []string{"r2", "r1", "r3"}, []string{recs[0].ID, recs[1].ID, recs[2].ID})

	kahf := recs[1]
	assert.Equal(t, "Mishary", kahf.Sheikh.Name)
	assert.Equal(t, CategoryFeatured, kahf.Category)
	assert.Equal(t, 2019, int(kahf.Year))
	rg, ok := kahf.Range()
	assert.True(t, ok)
	assert.Equal(t, 18, rg.Surah)
	assert.Equal(t, 10, rg.To)

	assert.Equal(t, 2021, int(recs[0].Year))
	_, ok = recs[0].Range()
	assert.False(t, ok)

	yaseen := recs[2]
	assert.Equal(t, "s1", yaseen.Sheikh.ID)
	rg, ok = yaseen.Range()
	assert.True(t, ok)
	assert.Equal(t, 83, rg.To)
}

func TestClient_RecordingsBySheikh(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/recordings/sheikh/s1", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"sheikh":{"_id":"s1"},"recordings":[
			{"_id":"a","date":"2023-01-01T00:00:00Z"},{"_id":"b","date":"2024-01-01T00:00:00Z"}]}}`))
	})
	c := newTestClient(t, mux)

	recs, err := c.RecordingsBySheikh(context.Background(), "s1")

	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "b", recs[0].ID)
}

func TestClient_Sheikhs(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/sheikhs", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"_id":"s1","name":"Mishary","bio":"Kuwaiti reciter","photo":"p.jpg"}]}`))
	})
	mux.HandleFunc("GET /api/v1/sheikhs/s1", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"_id":"s1","name":"Mishary"}}`))
	})
	c := newTestClient(t, mux)

	list, err := c.Sheikhs(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Kuwaiti reciter", list[0].Bio)

	one, err := c.Sheikh(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "Mishary", one.Name)
}

func TestClient_Recording_NotFound(t *testing.T) {
	c := newTestClient(t, http.NewServeMux())

	_, err := c.Recording(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestClient_Recording(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/recordings/r1", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"_id":"r1","title":"Al-Mulk","audio_file":"https://cdn.example/m.mp3"}}`))
	})
	c := newTestClient(t, mux)

	rec, err := c.Recording(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/m.mp3", rec.AudioURL)
}

func TestClient_Sadaqa(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    string
		wantErr bool
	}{
		{
			name:   "first active banner",
			status: http.StatusOK,
			body:   `{"data":[{"_id":"a","text":"قديم","isActive":false},{"_id":"b","text":"اللهم اغفر لهم","isActive":true},{"_id":"c","text":"آخر","isActive":true}]}`,
			want:   "اللهم اغفر لهم",
		},
		{
			name:   "empty list falls back",
			status: http.StatusOK,
			body:   `{"data":[]}`,
			want:   SadaqaFallback,
		},
		{
			name:   "none active shows nothing",
			status: http.StatusOK,
			body:   `{"data":[{"_id":"a","text":"قديم","isActive":false}]}`,
			want:   "",
		},
		{
			name:    "server error falls back",
			status:  http.StatusInternalServerError,
			body:    `{}`,
			want:    SadaqaFallback,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("GET /api/v1/sadaqa", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			c := newTestClient(t, mux)

			got, err := c.Sadaqa(context.Background())

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

package download

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileName(t *testing.T) {
	tests := []struct {
		name  string
		title string
		url   string
		want  string
	}{
		{"keeps extension", "سورة الكهف", "https://cdn.example/a/kahf.mp3", "سورة الكهف.mp3"},
		{"query string ignored", "Yaseen", "https://cdn.example/y.m4a?token=abc", "Yaseen.m4a"},
		{"default extension", "Al-Mulk", "https://cdn.example/stream", "Al-Mulk.mp3"},
		{"invalid characters", `a/b:c*d?`, "https://x/f.mp3", "a_b_c_d_.mp3"},
		{"trims dots and spaces", " .name. ", "https://x/f.mp3", "name.mp3"},
		{"empty title", "", "https://x/f.mp3", "recording.mp3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FileName(tt.title, tt.url))
		})
	}
}

func TestFileName_LongTitleTruncatedOnRunes(t *testing.T) {
	title := strings.Repeat("ق", 150)
	got := FileName(title, "https://x/f.mp3")
	assert.Equal(t, 100, len([]rune(strings.TrimSuffix(got, ".mp3"))))
}

func TestSaver_Save(t *testing.T) {
	body := strings.Repeat("x", 2048)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	dir := filepath.Join(t.TempDir(), "downloads")
	res, err := New(dir).Save(context.Background(), srv.URL+"/kahf.mp3", "Al-Kahf")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Al-Kahf.mp3"), res.Path)
	assert.Equal(t, int64(2048), res.Bytes)
	assert.Equal(t, "2.0 kB", res.Size())

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, body, string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should be cleaned up")
}

func TestSaver_Save_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	dir := t.TempDir()
	_, err := New(dir).Save(context.Background(), srv.URL+"/x.mp3", "x")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
}

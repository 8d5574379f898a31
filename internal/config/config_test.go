//nolint:goconst // test cases intentionally repeat strings for readability
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tilde expands to home",
			input:    "~/quran",
			expected: filepath.Join(home, "quran"),
		},
		{
			name:     "tilde with nested path",
			input:    "~/quran/recitations/ramadan",
			expected: filepath.Join(home, "quran", "recitations", "ramadan"),
		},
		{
			name:     "absolute path unchanged",
			input:    "/srv/quran",
			expected: "/srv/quran",
		},
		{
			name:     "relative path unchanged",
			input:    "quran/recitations",
			expected: "quran/recitations",
		},
		{
			name:     "empty string unchanged",
			input:    "",
			expected: "",
		},
		{
			name:     "tilde only",
			input:    "~",
			expected: home,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandPath(tt.input)
			if result != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := getConfigPaths()

	if len(paths) != 2 {
		t.Fatalf("getConfigPaths() returned %d paths, want 2", len(paths))
	}

	expectedFirst := filepath.Join(xdg.ConfigHome, "tilawa", "config.toml")
	if paths[0] != expectedFirst {
		t.Errorf("first config path = %q, want %q", paths[0], expectedFirst)
	}
	if paths[1] != "config.toml" {
		t.Errorf("last config path = %q, want %q", paths[1], "config.toml")
	}
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFrom(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "config.toml", `
api_url = "http://localhost:3000/api/v1/"
download_dir = "/tmp/tilawa"
theme = "light"

[quran]
edition = "ar.husary"

[radio]
streams = ["http://a.example/live", "http://b.example/live"]

[player]
volume = 0.4

[prayer]
latitude = 30.04
longitude = 31.23

[log]
level = "debug"
json = true
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.CatalogURL() != "http://localhost:3000/api/v1" {
		t.Errorf("CatalogURL() = %q", cfg.CatalogURL())
	}
	if cfg.GetDownloadDir() != "/tmp/tilawa" {
		t.Errorf("GetDownloadDir() = %q", cfg.GetDownloadDir())
	}
	if !cfg.IsLightTheme() {
		t.Error("IsLightTheme() = false, want true")
	}
	q := cfg.GetQuranConfig()
	if q.Edition != "ar.husary" || q.APIURL != DefaultQuranAPIURL {
		t.Errorf("GetQuranConfig() = %+v", q)
	}
	if got := cfg.GetRadioConfig().Streams; len(got) != 2 || got[0] != "http://a.example/live" {
		t.Errorf("Streams = %v", got)
	}
	if cfg.GetVolume() != 0.4 {
		t.Errorf("GetVolume() = %v, want 0.4", cfg.GetVolume())
	}
	if !cfg.HasPrayerLocation() {
		t.Error("HasPrayerLocation() = false, want true")
	}
	if cfg.GetPrayerConfig().Method != DefaultPrayerMethod {
		t.Errorf("Method = %d, want %d", cfg.GetPrayerConfig().Method, DefaultPrayerMethod)
	}
	lc := cfg.GetLogConfig()
	if lc.Level != "debug" || !lc.JSON {
		t.Errorf("GetLogConfig() = %+v", lc)
	}
}

func TestLoadFrom_LaterFileWins(t *testing.T) {
	dir := t.TempDir()
	first := writeConfig(t, dir, "first.toml", "theme = \"light\"\n[quran]\nedition = \"ar.husary\"\n")
	second := writeConfig(t, dir, "second.toml", "theme = \"dark\"\n")

	cfg, err := LoadFrom(first, second)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.IsLightTheme() {
		t.Error("second file should override theme")
	}
	if cfg.GetQuranConfig().Edition != "ar.husary" {
		t.Error("keys only in the first file should survive")
	}
}

func TestLoadFrom_MissingFilesSkipped(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.CatalogURL() != DefaultAPIURL {
		t.Errorf("CatalogURL() = %q, want default", cfg.CatalogURL())
	}
}

func TestLoadFrom_InvalidTOML(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "bad.toml", "theme = [unterminated")
	if _, err := LoadFrom(path); err == nil {
		t.Error("LoadFrom() expected error for invalid toml")
	}
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}

	if got := cfg.GetVolume(); got != DefaultVolume {
		t.Errorf("GetVolume() = %v, want %v", got, DefaultVolume)
	}
	if got := cfg.GetRadioConfig().Streams; len(got) != 3 || got[1] != "https://qurango.net/radio/tarateel" {
		t.Errorf("default streams = %v", got)
	}
	tc := cfg.GetTafsirConfig()
	if tc.Edition != DefaultTafsirEdition || tc.APIURL != DefaultTafsirAPIURL {
		t.Errorf("GetTafsirConfig() = %+v", tc)
	}
	if cfg.HasPrayerLocation() {
		t.Error("HasPrayerLocation() = true for empty config")
	}
	if cfg.GetLogConfig().Level != "info" {
		t.Errorf("default log level = %q", cfg.GetLogConfig().Level)
	}
	if cfg.IsLightTheme() {
		t.Error("default theme should be dark")
	}
}

func TestGetVolume_Clamped(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-0.5, 0},
		{0.25, 0.25},
		{3, 1},
	}
	for _, tt := range tests {
		v := tt.in
		cfg := &Config{Player: PlayerConfig{Volume: &v}}
		if got := cfg.GetVolume(); got != tt.want {
			t.Errorf("GetVolume(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestGetRadioConfig_DoesNotAliasDefaults(t *testing.T) {
	cfg := &Config{}
	streams := cfg.GetRadioConfig().Streams
	streams[0] = "changed"
	if DefaultStreams[0] == "changed" {
		t.Error("GetRadioConfig() returned the package default slice")
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Defaults for the remote services used by the player.
const (
	DefaultAPIURL        = "https://quran-app-bms.vercel.app/api/v1"
	DefaultQuranAPIURL   = "https://api.alquran.cloud/v1"
	DefaultQuranEdition  = "ar.alafasy"
	DefaultTafsirAPIURL  = "https://cdn.jsdelivr.net/gh/spa5k/tafsir_api@main/tafsir"
	DefaultTafsirEdition = "ar-tafsir-ibn-kathir"
	DefaultPrayerAPIURL  = "https://api.aladhan.com/v1"
	DefaultPrayerMethod  = 5
	DefaultVolume        = 0.7
)

// DefaultStreams are the live radio URLs, tried in order.
var DefaultStreams = []string{
	"https://stream.radiojar.com/8s5u5tpdtwzuv",
	"https://qurango.net/radio/tarateel",
	"http://stream.radiojar.com/8s5u5tpdtwzuv",
}

type Config struct {
	APIURL      string `koanf:"api_url"`      // recordings catalog API
	DownloadDir string `koanf:"download_dir"` // where downloaded recordings are saved
	Theme       string `koanf:"theme"`        // "dark" or "light"

	Quran  QuranConfig  `koanf:"quran"`
	Tafsir TafsirConfig `koanf:"tafsir"`
	Radio  RadioConfig  `koanf:"radio"`
	Player PlayerConfig `koanf:"player"`
	Prayer PrayerConfig `koanf:"prayer"`
	Log    LogConfig    `koanf:"log"`
}

// QuranConfig holds the verse-text service settings.
type QuranConfig struct {
	APIURL  string `koanf:"api_url"`
	Edition string `koanf:"edition"`
}

// TafsirConfig holds the tafsir CDN settings.
type TafsirConfig struct {
	APIURL  string `koanf:"api_url"`
	Edition string `koanf:"edition"`
}

// RadioConfig holds the live stream fallback list.
type RadioConfig struct {
	Streams []string `koanf:"streams"`
}

// PlayerConfig holds playback settings.
type PlayerConfig struct {
	Volume *float64 `koanf:"volume"` // initial session volume (0.0-1.0, default: 0.7)
}

// PrayerConfig holds the location used for prayer times.
type PrayerConfig struct {
	APIURL    string   `koanf:"api_url"`
	Latitude  *float64 `koanf:"latitude"`
	Longitude *float64 `koanf:"longitude"`
	Method    int      `koanf:"method"` // aladhan calculation method (default: 5)
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `koanf:"level"` // logrus level name (default: "info")
	JSON  bool   `koanf:"json"`
	File  string `koanf:"file"` // empty means a daily file in the XDG state dir
}

// Load reads the config files in priority order (last wins).
func Load() (*Config, error) {
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom reads the given config files, skipping missing ones.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.APIURL = strings.TrimSuffix(cfg.APIURL, "/")
	cfg.Quran.APIURL = strings.TrimSuffix(cfg.Quran.APIURL, "/")
	cfg.Tafsir.APIURL = strings.TrimSuffix(cfg.Tafsir.APIURL, "/")
	cfg.Prayer.APIURL = strings.TrimSuffix(cfg.Prayer.APIURL, "/")

	if cfg.DownloadDir != "" {
		cfg.DownloadDir = expandPath(cfg.DownloadDir)
	}
	if cfg.Log.File != "" {
		cfg.Log.File = expandPath(cfg.Log.File)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/tilawa/config.toml
		filepath.Join(xdg.ConfigHome, "tilawa", "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// CatalogURL returns the recordings API base URL.
func (c *Config) CatalogURL() string {
	if c.APIURL == "" {
		return DefaultAPIURL
	}
	return c.APIURL
}

// GetQuranConfig returns the verse-text configuration with defaults applied.
func (c *Config) GetQuranConfig() QuranConfig {
	cfg := c.Quran
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultQuranAPIURL
	}
	if cfg.Edition == "" {
		cfg.Edition = DefaultQuranEdition
	}
	return cfg
}

// GetTafsirConfig returns the tafsir configuration with defaults applied.
func (c *Config) GetTafsirConfig() TafsirConfig {
	cfg := c.Tafsir
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultTafsirAPIURL
	}
	if cfg.Edition == "" {
		cfg.Edition = DefaultTafsirEdition
	}
	return cfg
}

// GetRadioConfig returns the radio configuration with defaults applied.
func (c *Config) GetRadioConfig() RadioConfig {
	cfg := c.Radio
	if len(cfg.Streams) == 0 {
		cfg.Streams = append([]string(nil), DefaultStreams...)
	}
	return cfg
}

// GetVolume returns the initial session volume, clamped to [0, 1].
func (c *Config) GetVolume() float64 {
	if c.Player.Volume == nil {
		return DefaultVolume
	}
	return min(max(*c.Player.Volume, 0), 1)
}

// HasPrayerLocation returns true if a location for prayer times is configured.
func (c *Config) HasPrayerLocation() bool {
	return c.Prayer.Latitude != nil && c.Prayer.Longitude != nil
}

// GetPrayerConfig returns the prayer configuration with defaults applied.
func (c *Config) GetPrayerConfig() PrayerConfig {
	cfg := c.Prayer
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultPrayerAPIURL
	}
	if cfg.Method <= 0 {
		cfg.Method = DefaultPrayerMethod
	}
	return cfg
}

// GetDownloadDir returns the download directory, defaulting to the XDG
// download directory.
func (c *Config) GetDownloadDir() string {
	if c.DownloadDir != "" {
		return c.DownloadDir
	}
	return filepath.Join(xdg.UserDirs.Download, "tilawa")
}

// GetLogConfig returns the logging configuration with defaults applied.
func (c *Config) GetLogConfig() LogConfig {
	cfg := c.Log
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	return cfg
}

// IsLightTheme returns true if the light theme is selected.
func (c *Config) IsLightTheme() bool {
	return strings.EqualFold(c.Theme, "light")
}

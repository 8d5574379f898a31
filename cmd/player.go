package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/llehouerou/tilawa/internal/app"
	"github.com/llehouerou/tilawa/internal/catalog"
	"github.com/llehouerou/tilawa/internal/download"
	"github.com/llehouerou/tilawa/internal/errmsg"
	"github.com/llehouerou/tilawa/internal/logging"
	"github.com/llehouerou/tilawa/internal/media"
	"github.com/llehouerou/tilawa/internal/mpris"
	"github.com/llehouerou/tilawa/internal/network"
	"github.com/llehouerou/tilawa/internal/playback"
	"github.com/llehouerou/tilawa/internal/prayer"
	"github.com/llehouerou/tilawa/internal/quran"
	"github.com/llehouerou/tilawa/internal/state"
	"github.com/llehouerou/tilawa/internal/stderr"
	"github.com/llehouerou/tilawa/internal/tafsir"
	"github.com/llehouerou/tilawa/internal/ui/styles"
)

// Audio bodies are read for as long as playback lasts.
const streamTimeout = 0

func init() {
	rootCmd.AddCommand(radioCmd)
}

var radioCmd = &cobra.Command{
	Use:   "radio",
	Short: "Start the player with the live Quran radio playing",
	RunE: func(_ *cobra.Command, _ []string) error {
		return runPlayer(true)
	},
}

// volume picks the saved session volume, then the configured one.
func volume(st state.Interface) float64 {
	if v, ok, err := st.GetVolume(); err == nil && ok {
		return min(max(v, 0), 1)
	}
	return cfg.GetVolume()
}

func applyTheme(st state.Interface) {
	theme, err := st.GetTheme()
	if err != nil || theme == "" {
		styles.SetLight(cfg.IsLightTheme())
		return
	}
	styles.SetLight(theme == "light")
}

func runPlayer(startLive bool) error {
	log := logging.For("app")

	// Capture the audio backend's stderr before the speaker starts.
	captured := stderr.Start() == nil
	if captured {
		defer stderr.Stop()
	}

	st, err := state.Open()
	if err != nil {
		return fmt.Errorf("%s: %w", errmsg.OpInitialize, err)
	}
	defer st.Close()
	applyTheme(st)

	qcfg := cfg.GetQuranConfig()
	verses := quran.NewSource(quran.New(qcfg.APIURL, qcfg.Edition), st, qcfg.Edition)
	tcfg := cfg.GetTafsirConfig()

	svc := playback.New(volume(st))
	defer svc.Close()

	tracks := mpris.NewRegistry()
	if adapter, err := mpris.New(svc, tracks); err != nil {
		log.WithError(err).Warn("mpris unavailable")
	} else {
		defer adapter.Close()
	}

	api := catalog.New(cfg.CatalogURL())
	opts := app.Options{
		Service:     svc,
		Factory:     media.NewFactory(network.NewClient(streamTimeout)),
		Catalog:     api,
		Banner:      api,
		Verses:      verses,
		Tafsir:      tafsir.New(tcfg.APIURL, tcfg.Edition),
		Saver:       download.New(cfg.GetDownloadDir()),
		State:       st,
		Tracks:      tracks,
		Streams:     cfg.GetRadioConfig().Streams,
		StartLive:   startLive,
		WatchStderr: captured,
	}
	if cfg.HasPrayerLocation() {
		pcfg := cfg.GetPrayerConfig()
		opts.Prayer = prayer.New(pcfg.APIURL, pcfg.Method)
		opts.Location = app.Location{Latitude: *pcfg.Latitude, Longitude: *pcfg.Longitude}
	}

	log.WithField("live", startLive).Info("starting player")
	p := tea.NewProgram(app.New(opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}

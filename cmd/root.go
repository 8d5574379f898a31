// Package cmd implements the command-line interface of tilawa.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/llehouerou/tilawa/internal/config"
	"github.com/llehouerou/tilawa/internal/logging"
)

// cfg is loaded once before any command runs.
var cfg *config.Config

func init() {
	rootCmd.PersistentFlags().StringP("config", "C", "", "Read configuration from this file instead of the default locations")
	rootCmd.PersistentFlags().String("log-level", "", "Override the log level (debug, info, warn, error)")
	rootCmd.Flags().BoolP("radio", "r", false, "Start the live radio on launch")
}

var rootCmd = &cobra.Command{
	Use:   "tilawa",
	Short: "A terminal player for Quran recitations and the live Quran radio",
	Long: "tilawa browses a catalog of recorded recitations, plays them with the\n" +
		"recited verses highlighted in sync, and tunes in to the live Quran radio.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		var err error
		if path := lo.Must(cmd.Flags().GetString("config")); path != "" {
			cfg, err = config.LoadFrom(path)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		logCfg := cfg.GetLogConfig()
		if level := lo.Must(cmd.Flags().GetString("log-level")); level != "" {
			logCfg.Level = level
		}
		return logging.Setup(logCfg)
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		_ = logging.Close()
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runPlayer(lo.Must(cmd.Flags().GetBool("radio")))
	},
}

// Execute runs the command line.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		handleErr(err)
	}
}

func handleErr(err error) {
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "tilawa: %s\n", strings.TrimSpace(err.Error()))
		os.Exit(1)
	}
}

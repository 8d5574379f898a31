package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/llehouerou/tilawa/internal/errmsg"
	"github.com/llehouerou/tilawa/internal/prayer"
)

func init() {
	rootCmd.AddCommand(prayerCmd)
	prayerCmd.Flags().Float64("lat", 0, "Latitude (overrides the configured location)")
	prayerCmd.Flags().Float64("lon", 0, "Longitude (overrides the configured location)")
}

var prayerCmd = &cobra.Command{
	Use:   "prayer",
	Short: "Print today's prayer times",
	RunE: func(cmd *cobra.Command, _ []string) error {
		pcfg := cfg.GetPrayerConfig()
		flags := cmd.Flags()
		if flags.Changed("lat") && flags.Changed("lon") {
			lat, _ := flags.GetFloat64("lat")
			lon, _ := flags.GetFloat64("lon")
			pcfg.Latitude, pcfg.Longitude = &lat, &lon
		}
		if pcfg.Latitude == nil || pcfg.Longitude == nil {
			return errors.New("no location: set [prayer] latitude and longitude or pass --lat and --lon")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), fetchTimeout)
		defer cancel()

		timings, err := prayer.New(pcfg.APIURL, pcfg.Method).Timings(ctx, *pcfg.Latitude, *pcfg.Longitude)
		if err != nil {
			return errors.New(errmsg.Format(errmsg.OpPrayerLoad, err))
		}

		now := time.Now()
		next := timings.Next(now)
		out := cmd.OutOrStdout()
		for _, name := range prayer.Order {
			marker := " "
			if name == next {
				marker = "›"
			}
			fmt.Fprintf(out, "%s %-8s %-7s %s\n", marker, name, prayer.ArabicNames[name], prayer.Format12Hour(timings.Times[name]))
		}
		if timings.Timezone != "" {
			fmt.Fprintf(out, "  (%s)\n", timings.Timezone)
		}
		return nil
	},
}

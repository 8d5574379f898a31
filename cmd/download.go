package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/llehouerou/tilawa/internal/catalog"
	"github.com/llehouerou/tilawa/internal/download"
	"github.com/llehouerou/tilawa/internal/errmsg"
)

func init() {
	rootCmd.AddCommand(downloadCmd)
}

var downloadCmd = &cobra.Command{
	Use:   "download ID",
	Short: "Save a recording to the download directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Minute)
		defer cancel()

		rec, err := catalog.New(cfg.CatalogURL()).Recording(ctx, args[0])
		if err != nil {
			return errors.New(errmsg.Format(errmsg.OpCatalogLoad, err))
		}

		res, err := download.New(cfg.GetDownloadDir()).Save(ctx, rec.AudioURL, rec.Title)
		if err != nil {
			return errors.New(errmsg.Format(errmsg.OpDownloadGet, err))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", res.Path, res.Size())
		return nil
	},
}

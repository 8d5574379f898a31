package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/llehouerou/tilawa/internal/catalog"
	"github.com/llehouerou/tilawa/internal/errmsg"
)

func init() {
	rootCmd.AddCommand(recordingsCmd)
	recordingsCmd.Flags().StringP("category", "c", "", "Only list recordings of this category (general, ramadan, featured)")
	recordingsCmd.Flags().StringP("query", "q", "", "Only list recordings whose title, reciter or surah matches")
	lo.Must0(recordingsCmd.RegisterFlagCompletionFunc("category", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{
			string(catalog.CategoryGeneral),
			string(catalog.CategoryRamadan),
			string(catalog.CategoryFeatured),
		}, cobra.ShellCompDirectiveNoFileComp
	}))
}

var recordingsCmd = &cobra.Command{
	Use:     "recordings",
	Aliases: []string{"ls"},
	Short:   "List the recordings of the catalog, grouped by reciter",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), fetchTimeout)
		defer cancel()

		recs, err := catalog.New(cfg.CatalogURL()).Recordings(ctx)
		if err != nil {
			return errors.New(errmsg.Format(errmsg.OpCatalogLoad, err))
		}
		catalog.SortNewestFirst(recs)
		recs = catalog.Filter(recs,
			catalog.Category(lo.Must(cmd.Flags().GetString("category"))),
			lo.Must(cmd.Flags().GetString("query")),
		)

		out := cmd.OutOrStdout()
		for _, g := range catalog.GroupBySheikh(recs) {
			fmt.Fprintf(out, "%s\n", g.Sheikh.Name)
			for _, r := range g.Recordings {
				line := fmt.Sprintf("  %s  %s", r.ID, r.Title)
				if rg, ok := r.Range(); ok {
					line += "  " + rg.String()
				}
				fmt.Fprintln(out, line)
			}
		}
		return nil
	},
}

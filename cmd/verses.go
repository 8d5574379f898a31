package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/llehouerou/tilawa/internal/errmsg"
	"github.com/llehouerou/tilawa/internal/quran"
	"github.com/llehouerou/tilawa/internal/state"
	"github.com/llehouerou/tilawa/internal/tafsir"
)

const fetchTimeout = 30 * time.Second

func init() {
	rootCmd.AddCommand(versesCmd)
	versesCmd.Flags().BoolP("tafsir", "t", false, "Print the commentary of each verse")
	versesCmd.Flags().Bool("refresh", false, "Drop the cached verse text and fetch it again")
}

var versesCmd = &cobra.Command{
	Use:   "verses SURAH [FROM TO]",
	Short: "Print the text of a surah or a verse range",
	Args:  cobra.RangeArgs(1, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := parseRange(args)
		if err != nil {
			return err
		}

		st, err := state.Open()
		if err != nil {
			return fmt.Errorf("%s: %w", errmsg.OpInitialize, err)
		}
		defer st.Close()
		if lo.Must(cmd.Flags().GetBool("refresh")) {
			if err := st.ClearVerseCache(); err != nil {
				return errors.New(errmsg.Format(errmsg.OpVerseCache, err))
			}
		}

		qcfg := cfg.GetQuranConfig()
		source := quran.NewSource(quran.New(qcfg.APIURL, qcfg.Edition), st, qcfg.Edition)

		ctx, cancel := context.WithTimeout(cmd.Context(), fetchTimeout)
		defer cancel()

		verses, err := source.Verses(ctx, r)
		if err != nil {
			return errors.New(errmsg.Format(errmsg.OpVersesLoad, err))
		}
		if len(verses) == 0 {
			return fmt.Errorf("no verses in %s", r)
		}

		var commentary map[int]string
		if lo.Must(cmd.Flags().GetBool("tafsir")) {
			tcfg := cfg.GetTafsirConfig()
			entries, err := tafsir.New(tcfg.APIURL, tcfg.Edition).Range(ctx, quran.Range{
				Surah: r.Surah,
				From:  verses[0].NumberInSurah,
				To:    verses[len(verses)-1].NumberInSurah,
			})
			if err != nil {
				return errors.New(errmsg.Format(errmsg.OpTafsirLoad, err))
			}
			commentary = lo.SliceToMap(entries, func(e tafsir.Entry) (int, string) {
				return e.Verse, e.Text
			})
		}

		out := cmd.OutOrStdout()
		for _, v := range verses {
			fmt.Fprintf(out, "%s ﴿%d﴾\n", v.Text, v.NumberInSurah)
			if text, ok := commentary[v.NumberInSurah]; ok {
				fmt.Fprintf(out, "    %s\n", text)
			}
		}
		return nil
	},
}

// parseRange reads "SURAH" or "SURAH FROM TO". A bare surah selects
// every verse of it.
func parseRange(args []string) (quran.Range, error) {
	nums := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return quran.Range{}, fmt.Errorf("invalid number %q", a)
		}
		nums[i] = n
	}

	r := quran.Range{Surah: nums[0], From: 1, To: quran.MaxVerse}
	switch len(nums) {
	case 2:
		return quran.Range{}, errors.New("a verse range needs both FROM and TO")
	case 3:
		r.From, r.To = nums[1], nums[2]
	}
	if !r.Valid() {
		return quran.Range{}, fmt.Errorf("invalid verse range %s", r)
	}
	return r, nil
}

package cmd

import (
	"fmt"
	"io"
	"time"

	"art-progression/config"
	"art-progression/database"
	"art-progression/internal/domain/artworks"
	"art-progression/internal/domain/progress"
	"art-progression/internal/infra/store"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print progress stats for the current collection",
	RunE: func(cmd *cobra.Command, args []string) error {
		database.InitDB()
		s := store.NewGormStore(database.DB, config.FALLBACK_DOCUMENT)

		snap, err := s.FetchAll(cmd.Context())
		if err != nil {
			return err
		}
		stored := snap.Artworks
		if s.Writable() && snap.ReadOnly() {
			stored = nil
		}
		printStats(cmd.OutOrStdout(), snap, stored, progress.NumberingFor(config.DAY_MODE), time.Now())
		return nil
	},
}

// printStats reports snap as served; the next day is computed over stored,
// which excludes fallback samples once a database is attached.
func printStats(w io.Writer, snap store.Snapshot, stored []artworks.Artwork, numbering progress.Numbering, today time.Time) {
	st := progress.ComputeStats(snap.Artworks, today)
	fmt.Fprintf(w, "source:          %s\n", snap.Source)
	fmt.Fprintf(w, "numbering:       %s\n", numbering.Mode())
	fmt.Fprintf(w, "days completed:  %d\n", st.DaysCompleted)
	fmt.Fprintf(w, "days remaining:  %d\n", st.DaysRemaining)
	fmt.Fprintf(w, "current streak:  %d\n", st.CurrentStreak)
	fmt.Fprintf(w, "total images:    %d\n", st.TotalImages)
	fmt.Fprintf(w, "next day:        %d\n", numbering.Suggest(progress.FormatDate(progress.CalendarDay(today)), stored))
}

package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"ticketlens/internal/store"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded analysis snapshots",
	RunE: func(cmd *cobra.Command, args []string) error {
		history, err := store.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening snapshot history: %w", err)
		}
		defer history.Close()

		rows, err := history.RecentSnapshots(historyLimit)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			fmt.Println("No snapshots recorded yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTAKEN\tTOTAL\tRESOLVED\tEFFICIENCY\tSOURCE")
		for _, r := range rows {
			fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d/100\t%s\n",
				r.ID, r.TakenAt.Format("2006-01-02 15:04"), r.Total, r.Resolved, r.Efficiency, r.Source)
		}
		return w.Flush()
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum snapshots to list")
	rootCmd.AddCommand(historyCmd)
}

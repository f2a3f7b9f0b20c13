package commands

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"ticketlens/internal/ingest"
	"ticketlens/internal/report"
	"ticketlens/internal/stats"
)

var (
	reportDirFlag  bool
	reportOpenFlag bool
)

var reportCmd = &cobra.Command{
	Use:   "report [files...]",
	Short: "Generate an HTML report from export files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		paths := args
		if reportDirFlag {
			var err error
			paths, err = ingest.DiscoverExports(args[0])
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return fmt.Errorf("no *.json export files in %s", args[0])
			}
		}

		result := ingest.LoadFiles(cmd.Context(), paths)
		metrics := stats.Aggregate(result.Tickets)
		issues := stats.DetectIssues(result.Tickets)
		insights := stats.GenerateInsights(metrics, result.Tickets)

		path, err := report.Write(cfg.ReportDir, strings.Join(paths, ", "), metrics, issues, insights)
		if err != nil {
			return err
		}
		fmt.Println(path)

		if reportOpenFlag {
			if err := report.Open(path); err != nil {
				log.Warn().Err(err).Msg("Could not open report in browser")
			}
		}
		return nil
	},
}

func init() {
	reportCmd.Flags().BoolVar(&reportDirFlag, "dir", false, "treat the argument as a directory of *.json exports")
	reportCmd.Flags().BoolVar(&reportOpenFlag, "open", false, "open the report in the default browser")
	rootCmd.AddCommand(reportCmd)
}

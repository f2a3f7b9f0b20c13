package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ticketlens/internal/ingest"
	"ticketlens/internal/notify"
	"ticketlens/internal/stats"
)

var notifyDirFlag bool

var notifyCmd = &cobra.Command{
	Use:   "notify [files...]",
	Short: "Analyze export files and post the digest to Slack",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.SlackBotToken == "" || cfg.SlackChannel == "" {
			return fmt.Errorf("slack not configured (set SLACK_BOT_TOKEN and SLACK_CHANNEL)")
		}

		paths := args
		if notifyDirFlag {
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
		insights := stats.GenerateInsights(metrics, result.Tickets)

		notifier := notify.NewNotifier(cfg.SlackBotToken, cfg.SlackChannel)
		return notifier.PostDigest(strings.Join(paths, ", "), metrics, insights)
	},
}

func init() {
	notifyCmd.Flags().BoolVar(&notifyDirFlag, "dir", false, "treat the argument as a directory of *.json exports")
	rootCmd.AddCommand(notifyCmd)
}

package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"ticketlens/internal/ingest"
	"ticketlens/internal/notify"
	"ticketlens/internal/stats"
	"ticketlens/internal/store"
	"ticketlens/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Re-analyze an export directory on a cron schedule",
	Long: `Watch re-runs the analysis over a directory of export files on the
configured cron schedule (TICKETLENS_WATCH_SCHEDULE, default hourly),
records each snapshot in the history database, and posts the digest to
Slack when configured.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		history, err := store.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening snapshot history: %w", err)
		}
		defer history.Close()

		var notifier *notify.Notifier
		if cfg.SlackBotToken != "" && cfg.SlackChannel != "" {
			notifier = notify.NewNotifier(cfg.SlackBotToken, cfg.SlackChannel)
		}

		run := func(ctx context.Context, dir string) error {
			paths, err := ingest.DiscoverExports(dir)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				log.Info().Str("dir", dir).Msg("No export files found, skipping run")
				return nil
			}

			result := ingest.LoadFiles(ctx, paths)
			metrics := stats.Aggregate(result.Tickets)
			insights := stats.GenerateInsights(metrics, result.Tickets)

			if _, err := history.SaveSnapshot(dir, metrics); err != nil {
				log.Warn().Err(err).Msg("Failed to record snapshot")
			}
			if notifier != nil {
				if err := notifier.PostDigest(dir, metrics, insights); err != nil {
					log.Warn().Err(err).Msg("Failed to post digest")
				}
			}
			return nil
		}

		w, err := watch.New(cfg.WatchSchedule, args[0], run)
		if err != nil {
			return err
		}
		log.Info().Str("schedule", cfg.WatchSchedule).Str("dir", args[0]).Msg("Watching")
		return w.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

package commands

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"ticketlens/internal/config"
	"ticketlens/internal/llm"
	"ticketlens/internal/logging"
	"ticketlens/internal/mcp"
	"ticketlens/internal/store"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "ticketlens",
	Short: "Ticketlens analyzes support-ticket and conversation exports",
	Long: `Ticketlens ingests loosely-structured ticket/conversation export files,
normalizes them despite wide schema variance, and produces metrics,
technical-issue breakdowns and rule-based insights. Run without a
subcommand to serve the analysis over MCP (stdio).`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("ticketlens starting")
	},
	Run: func(cmd *cobra.Command, args []string) {
		var summarizer *llm.Summarizer
		if cfg.AnthropicAPIKey != "" {
			summarizer = llm.NewSummarizer(cfg.AnthropicAPIKey, cfg.AnthropicModel)
		}

		history, err := store.Open(cfg.DBPath)
		if err != nil {
			log.Warn().Err(err).Str("path", cfg.DBPath).Msg("Snapshot history unavailable")
			history = nil
		} else {
			defer history.Close()
		}

		log.Info().Msg("MCP server starting stdio loop")
		server := mcp.NewServer(cfg, summarizer, history)
		if err := server.Serve(); err != nil {
			log.Fatal().Err(err).Msg("MCP server failed")
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

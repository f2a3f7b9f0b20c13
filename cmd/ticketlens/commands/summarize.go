package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"ticketlens/internal/ingest"
	"ticketlens/internal/llm"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [files...]",
	Short: "Summarize conversations from export files via the completion service",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.AnthropicAPIKey == "" {
			return fmt.Errorf("completion service not configured (set ANTHROPIC_API_KEY)")
		}

		result := ingest.LoadFiles(cmd.Context(), args)
		if len(result.Conversations) == 0 {
			return fmt.Errorf("no conversations found in the given exports")
		}

		summarizer := llm.NewSummarizer(cfg.AnthropicAPIKey, cfg.AnthropicModel)
		summary, err := summarizer.SummarizeConversations(cmd.Context(), result.Conversations)
		if err != nil {
			return err
		}
		// Opaque text from the completion service: display as-is.
		fmt.Println(summary)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summarizeCmd)
}

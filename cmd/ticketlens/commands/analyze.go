package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"ticketlens/internal/ingest"
	"ticketlens/internal/stats"
	"ticketlens/internal/store"
)

var (
	analyzeDir  bool
	analyzeSave bool
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208"))
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [files...]",
	Short: "Analyze export files and print the results",
	Long: `Analyze one or more ticket/conversation export files and print the
metrics snapshot, technical-issue breakdown and insights. With --dir the
single argument is a directory scanned for *.json exports.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		paths := args
		if analyzeDir {
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

		printAnalysis(result, metrics, issues, insights)

		if analyzeSave {
			if err := saveSnapshot(cmd.Context(), strings.Join(paths, ","), metrics); err != nil {
				return err
			}
		}
		return nil
	},
}

func printAnalysis(result ingest.Result, m stats.Metrics, issues []stats.IssueStat, insights []string) {
	fmt.Println(titleStyle.Render("Ticket analysis"))
	fmt.Println()

	for _, f := range result.Files {
		if f.Error != "" {
			fmt.Printf("  %s %s\n", warnStyle.Render("skipped"), mutedStyle.Render(f.Path+": "+f.Error))
			continue
		}
		fmt.Printf("  %s %s\n", valueStyle.Render(fmt.Sprintf("%3d", f.Tickets)),
			mutedStyle.Render(fmt.Sprintf("tickets, %d conversations from %s", f.Conversations, f.Path)))
	}
	fmt.Println()

	fmt.Println(headerStyle.Render("Summary"))
	fmt.Printf("  total %s  open %s  resolved %s  avg resolution %s  efficiency %s\n",
		valueStyle.Render(fmt.Sprintf("%d", m.Total)),
		valueStyle.Render(fmt.Sprintf("%d", m.Open)),
		valueStyle.Render(fmt.Sprintf("%d", m.Resolved)),
		valueStyle.Render(m.AvgResolutionTime),
		valueStyle.Render(fmt.Sprintf("%d/100", m.EfficiencyScore)))
	fmt.Println()

	if len(issues) > 0 {
		fmt.Println(headerStyle.Render("Technical issues"))
		for _, s := range issues {
			line := fmt.Sprintf("  %-20s %s", s.Label, valueStyle.Render(fmt.Sprintf("%d", s.Count)))
			if s.AvgHours > 0 {
				line += mutedStyle.Render(fmt.Sprintf("  avg %.1fh", s.AvgHours))
			}
			fmt.Println(line)
		}
		fmt.Println()
	}

	if len(insights) > 0 {
		fmt.Println(headerStyle.Render("Insights"))
		for _, insight := range insights {
			fmt.Printf("  - %s\n", insight)
		}
		fmt.Println()
	}

	if len(m.MonthlyTrend) > 0 {
		fmt.Println(headerStyle.Render("Monthly trend"))
		var parts []string
		for _, p := range m.MonthlyTrend {
			parts = append(parts, fmt.Sprintf("%s:%d", p.Label, p.Count))
		}
		fmt.Printf("  %s\n", mutedStyle.Render(strings.Join(parts, "  ")))
	}
}

func saveSnapshot(_ context.Context, source string, m stats.Metrics) error {
	history, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening snapshot history: %w", err)
	}
	defer history.Close()

	id, err := history.SaveSnapshot(source, m)
	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	log.Info().Int64("id", id).Str("db", cfg.DBPath).Msg("Snapshot saved")
	return nil
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeDir, "dir", false, "treat the argument as a directory of *.json exports")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "record the snapshot in the history database")
	rootCmd.AddCommand(analyzeCmd)
}

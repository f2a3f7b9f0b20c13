// Package notify posts analysis digests to Slack.
package notify

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/slack-go/slack"

	"ticketlens/internal/stats"
)

// Notifier posts insight digests to a single channel.
type Notifier struct {
	api     *slack.Client
	channel string
}

// NewNotifier builds a notifier for the given bot token and channel.
func NewNotifier(botToken, channel string) *Notifier {
	return &Notifier{api: slack.New(botToken), channel: channel}
}

// PostDigest posts the metrics summary and insight list as one message.
func (n *Notifier) PostDigest(source string, m stats.Metrics, insights []string) error {
	blocks := []slack.Block{
		slack.NewHeaderBlock(
			slack.NewTextBlockObject(slack.PlainTextType, "Ticket analysis digest", false, false)),
		slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, digestSummary(source, m), false, false),
			nil, nil),
	}
	if len(insights) > 0 {
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, digestInsights(insights), false, false),
			nil, nil))
	}

	_, ts, err := n.api.PostMessage(n.channel, slack.MsgOptionBlocks(blocks...))
	if err != nil {
		return fmt.Errorf("posting digest to %s: %w", n.channel, err)
	}
	log.Info().Str("channel", n.channel).Str("ts", ts).Msg("Posted analysis digest")
	return nil
}

func digestSummary(source string, m stats.Metrics) string {
	var b strings.Builder
	if source != "" {
		fmt.Fprintf(&b, "*Source:* %s\n", source)
	}
	fmt.Fprintf(&b, "*Tickets:* %d total, %d open, %d resolved\n", m.Total, m.Open, m.Resolved)
	fmt.Fprintf(&b, "*Avg resolution time:* %s\n", m.AvgResolutionTime)
	fmt.Fprintf(&b, "*Efficiency score:* %d/100", m.EfficiencyScore)
	return b.String()
}

func digestInsights(insights []string) string {
	var b strings.Builder
	b.WriteString("*Insights*\n")
	for _, insight := range insights {
		fmt.Fprintf(&b, "• %s\n", insight)
	}
	return strings.TrimRight(b.String(), "\n")
}

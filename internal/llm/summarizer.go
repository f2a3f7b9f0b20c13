// Package llm hands conversation transcripts to a text-completion service
// and returns the completion verbatim. The response is an opaque text
// source: it is displayed, never parsed or validated.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rs/zerolog/log"

	"ticketlens/internal/ticket"
)

const defaultModel = "claude-sonnet-4-5-20250929"

const systemPrompt = "You are a support-desk analyst. Summarize the " +
	"following support conversations: the recurring themes, how issues were " +
	"resolved, and anything a support lead should follow up on. Be concise."

// Summarizer calls the Anthropic messages API.
type Summarizer struct {
	client anthropic.Client
	model  string
}

// NewSummarizer builds a summarizer; model falls back to the default when
// empty.
func NewSummarizer(apiKey, model string) *Summarizer {
	if model == "" {
		model = defaultModel
	}
	return &Summarizer{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

// SummarizeConversations renders the conversations into a transcript
// prompt and returns the completion text.
func (s *Summarizer) SummarizeConversations(ctx context.Context, conversations []ticket.Conversation) (string, error) {
	if len(conversations) == 0 {
		return "", fmt.Errorf("no conversations to summarize")
	}

	message, err := s.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(s.model),
		MaxTokens: 2048,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(BuildTranscript(conversations))),
		},
	})
	if err != nil {
		return "", fmt.Errorf("completion service: %w", err)
	}

	log.Debug().
		Int64("tokens_in", message.Usage.InputTokens).
		Int64("tokens_out", message.Usage.OutputTokens).
		Msg("Completion service responded")

	for _, block := range message.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("no text content in completion response")
}

// BuildTranscript renders conversations as a plain-text transcript block.
func BuildTranscript(conversations []ticket.Conversation) string {
	var b strings.Builder
	for i, conv := range conversations {
		fmt.Fprintf(&b, "## Conversation %d", i+1)
		if conv.Topic != "" {
			fmt.Fprintf(&b, ": %s", conv.Topic)
		}
		b.WriteString("\n")
		for _, msg := range conv.Messages {
			sender := msg.Sender
			if sender == "" {
				sender = "unknown"
			}
			if !msg.Timestamp.IsZero() {
				fmt.Fprintf(&b, "[%s] ", msg.Timestamp.Format("2006-01-02 15:04"))
			}
			fmt.Fprintf(&b, "%s: %s\n", sender, msg.Text)
		}
		b.WriteString("\n")
	}
	return b.String()
}

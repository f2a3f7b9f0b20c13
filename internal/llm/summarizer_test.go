package llm

import (
	"context"
	"strings"
	"testing"
	"time"

	"ticketlens/internal/ticket"
)

func TestBuildTranscript(t *testing.T) {
	when := time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)
	conversations := []ticket.Conversation{
		{
			Topic: "VPN keeps dropping",
			Messages: []ticket.Message{
				{Sender: "customer", Timestamp: when, Text: "VPN disconnects every hour"},
				{Sender: "agent", Text: "Which client version are you on?"},
			},
		},
		{
			Messages: []ticket.Message{
				{Text: "anyone there?"},
			},
		},
	}

	got := BuildTranscript(conversations)

	for _, want := range []string{
		"## Conversation 1: VPN keeps dropping",
		"[2024-03-10 09:30] customer: VPN disconnects every hour",
		"agent: Which client version are you on?",
		"## Conversation 2\n",
		"unknown: anyone there?",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("transcript missing %q:\n%s", want, got)
		}
	}
	// Dateless messages carry no timestamp prefix.
	if strings.Contains(got, "[0001-") {
		t.Errorf("zero timestamp leaked into transcript:\n%s", got)
	}
}

func TestSummarizeConversationsEmpty(t *testing.T) {
	s := NewSummarizer("test-key", "")
	if _, err := s.SummarizeConversations(context.Background(), nil); err == nil {
		t.Error("expected error for empty conversation list")
	}
}

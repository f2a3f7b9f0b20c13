package ticket

import "strings"

// closedVocabulary is the fixed set of terminal status words. Matching is
// substring-based on the lowercased field value, so "Resolved - Permanently"
// and "auto-closed" both classify as closed.
var closedVocabulary = []string{
	"closed", "resolved", "complete", "completed", "fixed", "done",
	"cancelled", "canceled", "rejected", "solved", "finished",
}

// IsClosed reports whether a ticket is in a terminal state. It is a total
// function over status, state and close_code; absent fields read as empty.
//
// NOTE: any non-empty close code marks the ticket closed even when its text
// matches nothing in the vocabulary, so close_code "still open" still
// classifies as closed.
func IsClosed(t Ticket) bool {
	if t.CloseCode() != "" {
		return true
	}
	for _, field := range []string{t.Status(), t.State()} {
		if containsAny(strings.ToLower(field), closedVocabulary) {
			return true
		}
	}
	return false
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

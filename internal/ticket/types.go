package ticket

import "time"

// Ticket is a normalized support-ticket record. Export files disagree wildly
// on field names, so the record keeps its raw key/value form and all reads go
// through the alias tables in fields.go. A Ticket is never mutated after
// extraction; every derived value lives in its own output structure.
type Ticket map[string]any

// Message is a single entry in a support conversation.
type Message struct {
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
	Text      string    `json:"text"`
}

// Conversation is a normalized support conversation. Messages keep their
// insertion order and are treated as chronological without re-sorting.
type Conversation struct {
	ID        string    `json:"id"`
	Topic     string    `json:"topic,omitempty"`
	StartedAt time.Time `json:"started_at,omitzero"`
	EndedAt   time.Time `json:"ended_at,omitzero"`
	Messages  []Message `json:"messages"`
}

package ticket

import (
	"testing"
	"time"
)

func TestTicketIDAliasPriority(t *testing.T) {
	tests := []struct {
		name   string
		ticket Ticket
		want   string
	}{
		{"NumberWins", Ticket{"number": "INC001", "sys_id": "abc"}, "INC001"},
		{"SysIDFallback", Ticket{"sys_id": "abc"}, "abc"},
		{"EmptyNumberSkipped", Ticket{"number": "", "sys_id": "abc"}, "abc"},
		{"Neither", Ticket{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ticket.ID(); got != tt.want {
				t.Errorf("ID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCreatedAtAliasOrder(t *testing.T) {
	tk := Ticket{
		"created":    "2024-02-01T00:00:00Z",
		"created_at": "2024-01-01T00:00:00Z",
	}
	got, ok := tk.CreatedAt()
	if !ok {
		t.Fatal("CreatedAt() found nothing")
	}
	if got.Month() != time.January {
		t.Errorf("CreatedAt() picked %v, want the created_at alias (January)", got)
	}
}

func TestParseWhen(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{"RFC3339", "2024-01-15T10:30:00Z", true},
		{"SpaceSeparated", "2024-01-15 10:30:00", true},
		{"DateOnly", "2024-01-15", true},
		{"USSlash", "01/15/2024", true},
		{"Garbage", "not a date", false},
		{"Empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := ParseWhen(tt.input); ok != tt.ok {
				t.Errorf("ParseWhen(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
		})
	}
}

func TestResolutionHours(t *testing.T) {
	tests := []struct {
		name   string
		ticket Ticket
		want   float64
		ok     bool
	}{
		{
			"OneDay",
			Ticket{"created_at": "2024-01-01T00:00:00Z", "closed_at": "2024-01-02T00:00:00Z"},
			24, true,
		},
		{
			"ResolvedAtAlias",
			Ticket{"opened_at": "2024-01-01T00:00:00Z", "resolved_at": "2024-01-01T06:00:00Z"},
			6, true,
		},
		{
			"NegativeDeltaRejected",
			Ticket{"created_at": "2024-01-02T00:00:00Z", "closed_at": "2024-01-01T00:00:00Z"},
			0, false,
		},
		{
			"ZeroDeltaRejected",
			Ticket{"created_at": "2024-01-01T00:00:00Z", "closed_at": "2024-01-01T00:00:00Z"},
			0, false,
		},
		{
			"UnparsableCreated",
			Ticket{"created_at": "yesterday", "closed_at": "2024-01-02T00:00:00Z"},
			0, false,
		},
		{"MissingClosure", Ticket{"created_at": "2024-01-01T00:00:00Z"}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.ticket.ResolutionHours()
			if ok != tt.ok || (ok && got != tt.want) {
				t.Errorf("ResolutionHours() = (%v, %v), want (%v, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestNestedNumberLookup(t *testing.T) {
	tk := Ticket{
		"satisfaction": map[string]any{"rating": 4.0},
		"time_metrics": map[string]any{"response_time_minutes": "30"},
	}

	if rating, ok := tk.SatisfactionRating(); !ok || rating != 4.0 {
		t.Errorf("SatisfactionRating() = (%v, %v), want (4, true)", rating, ok)
	}
	if minutes, ok := tk.ResponseMinutes(); !ok || minutes != 30 {
		t.Errorf("ResponseMinutes() = (%v, %v), want (30, true)", minutes, ok)
	}
}

func TestNumericStatusRendersAsString(t *testing.T) {
	tk := Ticket{"priority": 1.0}
	if got := tk.Priority(); got != "1" {
		t.Errorf("Priority() = %q, want \"1\"", got)
	}
}

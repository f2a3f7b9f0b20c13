package stats

import (
	"testing"

	"ticketlens/internal/ticket"
)

func TestEfficiencyScore(t *testing.T) {
	tests := []struct {
		name    string
		tickets []ticket.Ticket
		want    int
	}{
		{"Empty", nil, 0},
		{"NoClosedTickets", []ticket.Ticket{{"status": "Open"}, {"status": "Pending"}}, 0},
		{
			// 30 (all resolved) + 20 (satisfaction default) + 15 (response default)
			"AllClosedNoQualityData",
			[]ticket.Ticket{{"status": "Resolved"}, {"status": "Closed"}},
			65,
		},
		{
			// 30 + 40 (perfect ratings) + 15
			"PerfectSatisfaction",
			[]ticket.Ticket{
				{"status": "Resolved", "satisfaction": map[string]any{"rating": 5.0}},
			},
			85,
		},
		{
			// 30 + 20 + 30 (instant responses)
			"FastResponses",
			[]ticket.Ticket{
				{"status": "Resolved", "time_metrics": map[string]any{"response_time_minutes": 10.0}},
			},
			80,
		},
		{
			// Everything perfect caps at 100.
			"PerfectEverything",
			[]ticket.Ticket{
				{
					"status":       "Resolved",
					"satisfaction": map[string]any{"rating": 5.0},
					"time_metrics": map[string]any{"response_time_minutes": 5.0},
				},
			},
			100,
		},
		{
			// Half resolved: 15 + 20 + 15
			"HalfResolved",
			[]ticket.Ticket{{"status": "Resolved"}, {"status": "Open"}},
			50,
		},
		{
			// Slow responses floor at 0.2 quality: 30 + 20 + 6
			"SlowResponses",
			[]ticket.Ticket{
				{"status": "Resolved", "time_metrics": map[string]any{"response_time_minutes": 600.0}},
			},
			56,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EfficiencyScore(tt.tickets)
			if got != tt.want {
				t.Errorf("EfficiencyScore() = %d, want %d", got, tt.want)
			}
			if got < 0 || got > 100 {
				t.Errorf("EfficiencyScore() = %d, outside [0,100]", got)
			}
		})
	}
}

func TestResponseQualityInterpolation(t *testing.T) {
	tests := []struct {
		name    string
		minutes float64
		want    float64
	}{
		{"AtFastThreshold", 15, 1.0},
		{"BelowFastThreshold", 5, 1.0},
		{"BeyondSlowThreshold", 121, 0.2},
		{"WayBeyond", 1000, 0.2},
		{"AtSlowThreshold", 120, 0.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := responseQuality(tt.minutes); got != tt.want {
				t.Errorf("responseQuality(%v) = %v, want %v", tt.minutes, got, tt.want)
			}
		})
	}
}

func TestResponseQualityMidpointIsLinear(t *testing.T) {
	// Halfway between 15 and 120 minutes should land halfway between the
	// quality bounds 1.0 and 0.2.
	mid := responseQuality(67.5)
	if diff := mid - 0.6; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("responseQuality(67.5) = %v, want 0.6", mid)
	}
}

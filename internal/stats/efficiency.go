package stats

import (
	"math"

	"ticketlens/internal/ticket"
)

// Efficiency score weights. Resolution rate earns up to 30 points,
// satisfaction up to 40 (flat 20 without any satisfaction data), response
// time quality up to 30 (flat 15 without any response-time data).
const (
	resolutionWeight          = 30
	satisfactionWeight        = 40
	satisfactionDefaultPoints = 20
	responseWeight            = 30
	responseDefaultPoints     = 15

	maxSatisfactionRating = 5

	fastResponseMinutes = 15
	slowResponseMinutes = 120
	slowResponseQuality = 0.2
)

// EfficiencyScore blends resolution rate, satisfaction and response-time
// quality over closed tickets into a single 0-100 integer. Zero closed
// tickets score zero outright.
func EfficiencyScore(tickets []ticket.Ticket) int {
	total := len(tickets)
	if total == 0 {
		return 0
	}

	var closed []ticket.Ticket
	for _, t := range tickets {
		if ticket.IsClosed(t) {
			closed = append(closed, t)
		}
	}
	if len(closed) == 0 {
		return 0
	}

	score := float64(len(closed)) / float64(total) * resolutionWeight

	var ratingSum float64
	var ratingCount int
	var qualitySum float64
	var qualityCount int
	for _, t := range closed {
		if rating, ok := t.SatisfactionRating(); ok {
			ratingSum += rating
			ratingCount++
		}
		if minutes, ok := t.ResponseMinutes(); ok {
			qualitySum += responseQuality(minutes)
			qualityCount++
		}
	}

	if ratingCount > 0 {
		score += ratingSum / float64(ratingCount) / maxSatisfactionRating * satisfactionWeight
	} else {
		score += satisfactionDefaultPoints
	}

	if qualityCount > 0 {
		score += qualitySum / float64(qualityCount) * responseWeight
	} else {
		score += responseDefaultPoints
	}

	return int(math.Min(100, math.Max(0, math.Round(score))))
}

// responseQuality maps first-response minutes onto [0.2, 1.0]: full marks
// at 15 minutes or less, 0.2 beyond two hours, linear in between.
func responseQuality(minutes float64) float64 {
	switch {
	case minutes <= fastResponseMinutes:
		return 1.0
	case minutes >= slowResponseMinutes:
		return slowResponseQuality
	default:
		span := float64(slowResponseMinutes - fastResponseMinutes)
		return 1.0 - (minutes-fastResponseMinutes)*(1.0-slowResponseQuality)/span
	}
}

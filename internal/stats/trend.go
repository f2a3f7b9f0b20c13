package stats

import (
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"ticketlens/internal/ticket"
)

const trendLabelLayout = "Jan 06"

// MonthlyTrend buckets tickets by creation month and returns the series in
// strict chronological order (year, then calendar month, never lexical).
// Tickets without a parsable creation date are excluded from the series but
// still count in every simple distribution. When no ticket carries a valid
// date at all, six consecutive zero buckets ending at the current month are
// synthesized so charts keep non-empty axis labels.
func MonthlyTrend(tickets []ticket.Ticket) []TrendPoint {
	type monthKey struct {
		year  int
		month time.Month
	}
	counts := make(map[monthKey]int)
	for _, t := range tickets {
		created, ok := t.CreatedAt()
		if !ok {
			log.Debug().Str("ticket", t.ID()).Msg("Skipping ticket without a parsable creation date in trend")
			continue
		}
		counts[monthKey{created.Year(), created.Month()}]++
	}

	if len(counts) == 0 {
		return emptyTrend(time.Now())
	}

	points := make([]TrendPoint, 0, len(counts))
	for key, count := range counts {
		points = append(points, TrendPoint{
			Label: time.Date(key.year, key.month, 1, 0, 0, 0, 0, time.UTC).Format(trendLabelLayout),
			Count: count,
			Year:  key.year,
			Month: int(key.month),
		})
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Year != points[j].Year {
			return points[i].Year < points[j].Year
		}
		return points[i].Month < points[j].Month
	})
	return points
}

// emptyTrend synthesizes six zero-count buckets ending at now's month.
func emptyTrend(now time.Time) []TrendPoint {
	points := make([]TrendPoint, 0, 6)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -5, 0)
	for i := 0; i < 6; i++ {
		month := first.AddDate(0, i, 0)
		points = append(points, TrendPoint{
			Label: month.Format(trendLabelLayout),
			Year:  month.Year(),
			Month: int(month.Month()),
		})
	}
	return points
}

package stats

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"ticketlens/internal/ticket"
)

const (
	maxInsights           = 6
	minPrimaryInsights    = 4
	dominantPriorityShare = 0.30
	workloadShare         = 0.25
	trendChangeShare      = 0.20
)

// insightRule produces zero or more findings from the current snapshot.
// Rules run in fixed order; each is independently optional.
type insightRule func(m Metrics, tickets []ticket.Ticket) []string

var insightRules = []insightRule{
	slowestCategoryInsight,
	dominantPriorityInsight,
	trendInsight,
	workloadInsight,
	openCriticalInsight,
}

// GenerateInsights renders the snapshot into an ordered list of short
// findings, at most six. An empty collection yields no insights at all.
func GenerateInsights(m Metrics, tickets []ticket.Ticket) []string {
	if m.Total == 0 {
		return nil
	}

	var insights []string
	for _, rule := range insightRules {
		insights = append(insights, rule(m, tickets)...)
	}

	// Generic fallbacks keep the list useful when few rules fired.
	if len(insights) < minPrimaryInsights {
		insights = append(insights,
			fmt.Sprintf("Overall resolution efficiency score is %d/100", m.EfficiencyScore),
			fmt.Sprintf("%d%% of all tickets have been resolved (%d of %d)",
				percent(m.Resolved, m.Total), m.Resolved, m.Total))
	}

	if len(insights) > maxInsights {
		insights = insights[:maxInsights]
	}
	return insights
}

// slowestCategoryInsight reports the category with the highest average
// resolution time, requiring at least two valid samples in the category.
func slowestCategoryInsight(_ Metrics, tickets []ticket.Ticket) []string {
	type acc struct {
		hours   float64
		samples int
	}
	byCategory := make(map[string]*acc)
	for _, t := range tickets {
		if !ticket.IsClosed(t) {
			continue
		}
		hours, ok := t.ResolutionHours()
		if !ok {
			continue
		}
		category := t.Category()
		if category == "" {
			category = UnspecifiedLabel
		}
		a := byCategory[category]
		if a == nil {
			a = &acc{}
			byCategory[category] = a
		}
		a.hours += hours
		a.samples++
	}

	slowest := ""
	var slowestAvg float64
	categories := make([]string, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	for _, c := range categories {
		a := byCategory[c]
		if a.samples < 2 {
			continue
		}
		avg := a.hours / float64(a.samples)
		if avg > slowestAvg {
			slowestAvg = avg
			slowest = c
		}
	}
	if slowest == "" {
		return nil
	}
	return []string{fmt.Sprintf("'%s' tickets take the longest to resolve, averaging %s",
		slowest, formatHours(slowestAvg))}
}

// dominantPriorityInsight fires when one priority level holds more than 30%
// of the collection.
func dominantPriorityInsight(m Metrics, _ []ticket.Ticket) []string {
	label, count := dominantLabel(m.ByPriority)
	if label == "" || float64(count)/float64(m.Total) <= dominantPriorityShare {
		return nil
	}
	return []string{fmt.Sprintf("Most tickets are '%s' priority (%d%% of all tickets)",
		label, percent(count, m.Total))}
}

// trendInsight reports the peak month and, when the first-to-last change
// exceeds 20% of the first month, the overall direction.
func trendInsight(m Metrics, _ []ticket.Ticket) []string {
	if len(m.MonthlyTrend) < 2 {
		return nil
	}

	peak := m.MonthlyTrend[0]
	for _, p := range m.MonthlyTrend[1:] {
		if p.Count > peak.Count {
			peak = p
		}
	}
	// An all-zero series is the synthesized chart placeholder, not data.
	if peak.Count == 0 {
		return nil
	}
	out := []string{fmt.Sprintf("Ticket volume peaked in %s with %d tickets", peak.Label, peak.Count)}

	first := m.MonthlyTrend[0]
	last := m.MonthlyTrend[len(m.MonthlyTrend)-1]
	if first.Count > 0 {
		change := float64(last.Count-first.Count) / float64(first.Count)
		if math.Abs(change) > trendChangeShare {
			direction := "increasing"
			if change < 0 {
				direction = "decreasing"
			}
			out = append(out, fmt.Sprintf("Ticket volume is %s: %d%% change from %s to %s",
				direction, int(math.Round(math.Abs(change)*100)), first.Label, last.Label))
		}
	}
	return out
}

// workloadInsight flags assignment concentration above 25% on one person.
func workloadInsight(m Metrics, _ []ticket.Ticket) []string {
	if len(m.TopAssignees) == 0 {
		return nil
	}
	top := m.TopAssignees[0]
	if top.Name == UnassignedLabel || float64(top.Count)/float64(m.Total) <= workloadShare {
		return nil
	}
	return []string{fmt.Sprintf("%s handles %d%% of all tickets (%d of %d)",
		top.Name, percent(top.Count, m.Total), top.Count, m.Total)}
}

// openCriticalInsight counts open tickets at a critical priority level.
func openCriticalInsight(_ Metrics, tickets []ticket.Ticket) []string {
	count := 0
	for _, t := range tickets {
		if ticket.IsClosed(t) {
			continue
		}
		priority := strings.ToLower(t.Priority())
		if strings.Contains(priority, "1") || strings.Contains(priority, "critical") {
			count++
		}
	}
	if count == 0 {
		return nil
	}
	noun := "tickets"
	if count == 1 {
		noun = "ticket"
	}
	return []string{fmt.Sprintf("%d high-priority %s still open and need attention", count, noun)}
}

// GenerateIssueInsights renders findings over the issue detector's output.
func GenerateIssueInsights(stats []IssueStat) []string {
	if len(stats) == 0 {
		return nil
	}

	var insights []string
	top := stats[0]
	insights = append(insights, fmt.Sprintf("'%s' is the most common technical issue (%d tickets)",
		top.Label, top.Count))

	slowest := IssueStat{}
	for _, s := range stats {
		if s.AvgHours > slowest.AvgHours {
			slowest = s
		}
	}
	if slowest.Label != "" && slowest.AvgHours > 0 {
		insights = append(insights, fmt.Sprintf("'%s' issues take the longest to fix, averaging %s",
			slowest.Label, formatHours(slowest.AvgHours)))
	}
	return insights
}

func dominantLabel(counts map[string]int) (string, int) {
	label := ""
	max := 0
	labels := make([]string, 0, len(counts))
	for l := range counts {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	for _, l := range labels {
		if counts[l] > max {
			max = counts[l]
			label = l
		}
	}
	return label, max
}

func percent(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}

func formatHours(hours float64) string {
	if hours < 24 {
		return fmt.Sprintf("%d hours", int(math.Round(hours)))
	}
	return fmt.Sprintf("%d days", int(math.Round(hours/24)))
}

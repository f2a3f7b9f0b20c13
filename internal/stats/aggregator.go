package stats

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"ticketlens/internal/ticket"
)

const (
	// UnspecifiedLabel buckets records missing a distribution field.
	UnspecifiedLabel = "Unspecified"
	// UnassignedLabel buckets records without an assignee.
	UnassignedLabel = "Unassigned"

	topAssigneeLimit = 5
	commonIssueLimit = 5
)

// Aggregate computes a full Metrics snapshot over one immutable ticket
// collection. Every accumulator is local to the call; concurrent
// recomputations never share state.
func Aggregate(tickets []ticket.Ticket) Metrics {
	m := Metrics{
		Total:         len(tickets),
		ByPriority:    CountBy(tickets, func(t ticket.Ticket) string { return t.Priority() }),
		ByCategory:    CountBy(tickets, func(t ticket.Ticket) string { return t.Category() }),
		BySubcategory: nestedCountBy(tickets, func(t ticket.Ticket) string { return t.Subcategory() }),
		ByDetail:      detailBreakdown(tickets),
		TopAssignees:  topAssignees(tickets),
		MonthlyTrend:  MonthlyTrend(tickets),
		CommonIssues:  commonIssues(tickets),
	}

	for _, t := range tickets {
		if ticket.IsClosed(t) {
			m.Resolved++
		}
	}
	m.Open = m.Total - m.Resolved

	m.AvgResolutionTime = averageResolution(tickets)
	m.EfficiencyScore = EfficiencyScore(tickets)
	return m
}

// CountBy is the generic count-by-field distribution; empty values bucket
// under "Unspecified". The sum of counts always equals len(tickets).
func CountBy(tickets []ticket.Ticket, field func(ticket.Ticket) string) map[string]int {
	counts := make(map[string]int)
	for _, t := range tickets {
		label := field(t)
		if label == "" {
			label = UnspecifiedLabel
		}
		counts[label]++
	}
	return counts
}

// nestedCountBy groups the inner distribution under each category.
func nestedCountBy(tickets []ticket.Ticket, inner func(ticket.Ticket) string) map[string]map[string]int {
	out := make(map[string]map[string]int)
	for _, t := range tickets {
		category := t.Category()
		if category == "" {
			category = UnspecifiedLabel
		}
		label := inner(t)
		if label == "" {
			label = UnspecifiedLabel
		}
		if out[category] == nil {
			out[category] = make(map[string]int)
		}
		out[category][label]++
	}
	return out
}

// detailBreakdown extracts category-specific product facts: software
// categories count by product (and product+version composite), hardware by
// model and type, network by connection type.
func detailBreakdown(tickets []ticket.Ticket) map[string]map[string]int {
	out := make(map[string]map[string]int)
	add := func(category, label string) {
		if label == "" {
			return
		}
		if out[category] == nil {
			out[category] = make(map[string]int)
		}
		out[category][label]++
	}

	for _, t := range tickets {
		category := t.Category()
		lower := strings.ToLower(category)
		switch {
		case strings.Contains(lower, "software") || strings.Contains(lower, "application"):
			product := t.Product()
			add(category, product)
			if version := t.Version(); product != "" && version != "" {
				add(category, product+" "+version)
			}
		case strings.Contains(lower, "hardware"):
			add(category, t.Model())
			add(category, t.HardwareType())
		case strings.Contains(lower, "network"):
			add(category, t.ConnectionType())
		}
	}
	return out
}

func topAssignees(tickets []ticket.Ticket) []AssigneeLoad {
	counts := make(map[string]int)
	for _, t := range tickets {
		name := t.Assignee()
		if name == "" {
			name = UnassignedLabel
		}
		counts[name]++
	}

	loads := make([]AssigneeLoad, 0, len(counts))
	for name, count := range counts {
		loads = append(loads, AssigneeLoad{Name: name, Count: count})
	}
	sort.Slice(loads, func(i, j int) bool {
		if loads[i].Count != loads[j].Count {
			return loads[i].Count > loads[j].Count
		}
		return loads[i].Name < loads[j].Name
	})
	if len(loads) > topAssigneeLimit {
		loads = loads[:topAssigneeLimit]
	}
	return loads
}

// averageResolution averages the creation-to-closure delta over closed
// tickets, rendered as whole hours under a day and whole days from 24h up.
func averageResolution(tickets []ticket.Ticket) string {
	var total float64
	var samples int
	for _, t := range tickets {
		if !ticket.IsClosed(t) {
			continue
		}
		hours, ok := t.ResolutionHours()
		if !ok {
			log.Debug().Str("ticket", t.ID()).Msg("Skipping ticket without a valid resolution delta")
			continue
		}
		total += hours
		samples++
	}
	if samples == 0 {
		return NotAvailable
	}

	avg := total / float64(samples)
	if avg < 24 {
		return fmt.Sprintf("%d hours", int(math.Round(avg)))
	}
	return fmt.Sprintf("%d days", int(math.Round(avg/24)))
}

// negationSynonyms collapse onto "not" during issue-text normalization.
var negationSynonyms = []string{"can't", "cannot", "won't", "wont", "doesn't", "does not", "unable to", "isn't", "is not"}

// failureSynonyms collapse onto "error".
var failureSynonyms = []string{"error", "issue", "problem"}

// normalizeIssueText folds synonym families together so near-identical
// complaints count as one issue.
func normalizeIssueText(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, syn := range negationSynonyms {
		s = strings.ReplaceAll(s, syn, "not")
	}
	for _, syn := range failureSynonyms {
		s = strings.ReplaceAll(s, syn, "error")
	}
	return strings.Join(strings.Fields(s), " ")
}

// commonIssues returns the five most frequent normalized short descriptions
// as "Capitalized text (N tickets)".
func commonIssues(tickets []ticket.Ticket) []string {
	counts := make(map[string]int)
	for _, t := range tickets {
		text := normalizeIssueText(t.ShortDescription())
		if text == "" {
			continue
		}
		counts[text]++
	}

	type entry struct {
		text  string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for text, count := range counts {
		entries = append(entries, entry{text, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].text < entries[j].text
	})
	if len(entries) > commonIssueLimit {
		entries = entries[:commonIssueLimit]
	}

	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, fmt.Sprintf("%s (%d tickets)", capitalize(e.text), e.count))
	}
	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

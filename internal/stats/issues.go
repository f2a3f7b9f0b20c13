package stats

import (
	"sort"
	"strings"

	"ticketlens/internal/ticket"
)

// issuePattern is one row of the detection table: any keyword hit claims
// the ticket for the row's label.
type issuePattern struct {
	label    string
	keywords []string
}

// issuePatterns is evaluated strictly in order and the first matching row
// wins; later rows are not tested. The ordering is a deliberate priority
// ranking (a VPN complaint that also mentions access stays a VPN issue),
// so rows must not be reordered casually.
var issuePatterns = []issuePattern{
	{"VPN connectivity", []string{"vpn", "anyconnect", "remote access"}},
	{"Password reset", []string{"password", "credential", "locked out", "login"}},
	{"Email", []string{"email", "outlook", "mailbox", "smtp"}},
	{"Printing", []string{"printer", "print", "toner"}},
	{"Wireless", []string{"wifi", "wi-fi", "wireless"}},
	{"Video conferencing", []string{"zoom", "teams", "webex", "video call", "conference"}},
	{"Workstation", []string{"laptop", "desktop", "workstation", "computer", "monitor"}},
	{"Software", []string{"software", "install", "application", "update", "license"}},
	{"Network storage", []string{"shared drive", "network drive", "file share", "nas"}},
	{"Access permissions", []string{"access", "permission", "authorization"}},
}

// issueBucket is the per-label accumulator for one detection pass. Buckets
// are local to a DetectIssues call and discarded after conversion.
type issueBucket struct {
	count       int
	totalHours  float64
	hourSamples int
}

// DetectIssues buckets tickets into the fixed technical-issue taxonomy by
// matching description text against the ordered pattern table. Output is
// sorted descending by match count.
func DetectIssues(tickets []ticket.Ticket) []IssueStat {
	buckets := make(map[string]*issueBucket)

	for _, t := range tickets {
		text := strings.ToLower(t.ShortDescription() + " " + t.Description())
		label, matched := matchIssue(text)
		if !matched {
			continue
		}
		b := buckets[label]
		if b == nil {
			b = &issueBucket{}
			buckets[label] = b
		}
		b.count++
		if hours, ok := t.ResolutionHours(); ok {
			b.totalHours += hours
			b.hourSamples++
		}
	}

	out := make([]IssueStat, 0, len(buckets))
	for label, b := range buckets {
		stat := IssueStat{Label: label, Count: b.count}
		if b.hourSamples > 0 {
			stat.AvgHours = b.totalHours / float64(b.hourSamples)
		}
		out = append(out, stat)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// matchIssue tests the pattern table in order and stops at the first hit.
func matchIssue(text string) (string, bool) {
	for _, p := range issuePatterns {
		if containsAnyKeyword(text, p.keywords) {
			return p.label, true
		}
	}
	return "", false
}

func containsAnyKeyword(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

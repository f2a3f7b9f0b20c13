package ticket

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Ordered alias tables for every logical field that exports spell
// differently. Resolution always takes the first alias with a non-empty
// value; components never probe raw keys directly.
var (
	idAliases          = []string{"number", "sys_id"}
	createdAliases     = []string{"created_at", "created", "opened_at", "sys_created_on"}
	closedAliases      = []string{"closed_at", "resolved_at"}
	assigneeAliases    = []string{"assigned_to", "assignee", "owner"}
	priorityAliases    = []string{"priority", "urgency"}
	categoryAliases    = []string{"category"}
	subcategoryAliases = []string{"subcategory", "sub_category"}
	shortDescAliases   = []string{"short_description", "title", "subject", "summary"}
	descAliases        = []string{"description", "details"}
	resolutionAliases  = []string{"resolution", "close_notes", "resolution_notes"}

	productAliases    = []string{"product", "software", "application", "u_software"}
	versionAliases    = []string{"version", "u_version"}
	modelAliases      = []string{"model", "u_model"}
	hwTypeAliases     = []string{"type", "hardware_type"}
	connectionAliases = []string{"connection_type", "network_type"}

	satisfactionAliases = [][]string{
		{"satisfaction", "rating"},
		{"satisfaction", "score"},
		{"rating"},
	}
	responseMinuteAliases = [][]string{
		{"time_metrics", "response_time_minutes"},
		{"response_time_minutes"},
		{"first_response_minutes"},
	}
)

// dateLayouts covers the timestamp spellings seen across export formats.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006",
}

// ParseWhen parses a timestamp in any of the known export layouts.
func ParseWhen(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// stringValue renders a scalar field as a string; non-scalar values
// resolve to empty.
func stringValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		if x == float64(int64(x)) {
			return strconv.FormatInt(int64(x), 10)
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", x)
	}
}

func numberValue(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(x), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

// first returns the first alias whose value is a non-empty string.
func (t Ticket) first(aliases []string) string {
	for _, key := range aliases {
		if v, ok := t[key]; ok {
			if s := strings.TrimSpace(stringValue(v)); s != "" {
				return s
			}
		}
	}
	return ""
}

// firstTime resolves aliases and parses the first non-empty value as a
// timestamp. An alias whose value does not parse is skipped.
func (t Ticket) firstTime(aliases []string) (time.Time, bool) {
	for _, key := range aliases {
		if v, ok := t[key]; ok {
			if parsed, ok := ParseWhen(stringValue(v)); ok {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}

// firstNumber resolves dotted paths (outer table entry per path) and
// returns the first numeric value found, descending into nested mappings.
func (t Ticket) firstNumber(paths [][]string) (float64, bool) {
	for _, path := range paths {
		var node any = map[string]any(t)
		found := true
		for _, key := range path {
			m, ok := node.(map[string]any)
			if !ok {
				found = false
				break
			}
			node, ok = m[key]
			if !ok {
				found = false
				break
			}
		}
		if !found {
			continue
		}
		if f, ok := numberValue(node); ok {
			return f, true
		}
	}
	return 0, false
}

// ID returns the record identity, first non-empty of number then sys_id.
func (t Ticket) ID() string { return t.first(idAliases) }

func (t Ticket) Status() string    { return strings.TrimSpace(stringValue(t["status"])) }
func (t Ticket) State() string     { return strings.TrimSpace(stringValue(t["state"])) }
func (t Ticket) CloseCode() string { return strings.TrimSpace(stringValue(t["close_code"])) }

func (t Ticket) Priority() string    { return t.first(priorityAliases) }
func (t Ticket) Category() string    { return t.first(categoryAliases) }
func (t Ticket) Subcategory() string { return t.first(subcategoryAliases) }
func (t Ticket) Assignee() string    { return t.first(assigneeAliases) }

func (t Ticket) ShortDescription() string { return t.first(shortDescAliases) }
func (t Ticket) Description() string      { return t.first(descAliases) }
func (t Ticket) Resolution() string       { return t.first(resolutionAliases) }

func (t Ticket) Product() string        { return t.first(productAliases) }
func (t Ticket) Version() string        { return t.first(versionAliases) }
func (t Ticket) Model() string          { return t.first(modelAliases) }
func (t Ticket) HardwareType() string   { return t.first(hwTypeAliases) }
func (t Ticket) ConnectionType() string { return t.first(connectionAliases) }

// CreatedAt resolves the creation timestamp through the alias table.
func (t Ticket) CreatedAt() (time.Time, bool) { return t.firstTime(createdAliases) }

// ClosedAt resolves the closure/resolution timestamp through the alias table.
func (t Ticket) ClosedAt() (time.Time, bool) { return t.firstTime(closedAliases) }

// SatisfactionRating returns the satisfaction score (max 5) if present.
func (t Ticket) SatisfactionRating() (float64, bool) { return t.firstNumber(satisfactionAliases) }

// ResponseMinutes returns the first-response time in minutes if present.
func (t Ticket) ResponseMinutes() (float64, bool) { return t.firstNumber(responseMinuteAliases) }

// ResolutionHours returns the creation-to-closure delta in hours. Deltas
// that are zero, negative or built from unparsable dates are rejected.
func (t Ticket) ResolutionHours() (float64, bool) {
	created, ok := t.CreatedAt()
	if !ok {
		return 0, false
	}
	closed, ok := t.ClosedAt()
	if !ok {
		return 0, false
	}
	hours := closed.Sub(created).Hours()
	if hours <= 0 {
		return 0, false
	}
	return hours, true
}

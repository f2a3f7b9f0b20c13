package stats

// Metrics is a fixed-shape snapshot over one ticket collection. A snapshot
// is created fresh on every recomputation and never mutated afterward; a
// newer snapshot supersedes, it does not patch.
type Metrics struct {
	Total             int                       `json:"total"`
	Open              int                       `json:"open"`
	Resolved          int                       `json:"resolved"`
	AvgResolutionTime string                    `json:"avg_resolution_time"`
	ByPriority        map[string]int            `json:"by_priority"`
	ByCategory        map[string]int            `json:"by_category"`
	BySubcategory     map[string]map[string]int `json:"by_subcategory"`
	ByDetail          map[string]map[string]int `json:"by_detail"`
	TopAssignees      []AssigneeLoad            `json:"top_assignees"`
	MonthlyTrend      []TrendPoint              `json:"monthly_trend"`
	CommonIssues      []string                  `json:"common_issues"`
	EfficiencyScore   int                       `json:"efficiency_score"`
}

// AssigneeLoad is one entry in the top-assignee ranking.
type AssigneeLoad struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// TrendPoint is one month bucket in the trend series, labelled like "Jan 24".
type TrendPoint struct {
	Label string `json:"label"`
	Count int    `json:"count"`
	Year  int    `json:"year"`
	Month int    `json:"month"`
}

// IssueStat is the per-label output of the issue pattern detector.
type IssueStat struct {
	Label    string  `json:"label"`
	Count    int     `json:"count"`
	AvgHours float64 `json:"avg_resolution_hours"`
}

// NotAvailable is the sentinel rendered when no valid resolution deltas exist.
const NotAvailable = "N/A"

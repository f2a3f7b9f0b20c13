// Package report renders an analysis snapshot as a standalone HTML file.
package report

import (
	"fmt"
	"html/template"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"

	"ticketlens/internal/stats"
)

// Data is everything the report template needs.
type Data struct {
	GeneratedAt time.Time
	Source      string
	Metrics     stats.Metrics
	Issues      []stats.IssueStat
	Insights    []string
	TrendChart  string
}

// Write renders the report into dir and returns the file path.
func Write(dir, source string, m stats.Metrics, issues []stats.IssueStat, insights []string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating report directory: %w", err)
	}

	data := Data{
		GeneratedAt: time.Now(),
		Source:      source,
		Metrics:     m,
		Issues:      issues,
		Insights:    insights,
		TrendChart:  TrendChart(m.MonthlyTrend),
	}

	path := filepath.Join(dir, fmt.Sprintf("ticketlens-%s.html", data.GeneratedAt.Format("20060102-150405")))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating report file: %w", err)
	}
	defer f.Close()

	if err := reportTemplate.Execute(f, data); err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}
	log.Info().Str("path", path).Msg("Report written")
	return path, nil
}

// Open opens a written report in the default browser.
func Open(path string) error {
	return browser.OpenFile(path)
}

// TrendChart renders the monthly trend as a Mermaid xychart block.
func TrendChart(trend []stats.TrendPoint) string {
	if len(trend) == 0 {
		return ""
	}

	var labels []string
	var values []string
	maxY := 1
	for _, p := range trend {
		labels = append(labels, p.Label)
		values = append(values, fmt.Sprintf("%d", p.Count))
		if p.Count > maxY {
			maxY = p.Count
		}
	}

	var sb strings.Builder
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Monthly Ticket Volume\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Tickets\" 0 --> %d\n", int(math.Ceil(float64(maxY)*1.2))))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	return sb.String()
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>ticketlens report</title>
<script type="module">
import mermaid from "https://cdn.jsdelivr.net/npm/mermaid@11/dist/mermaid.esm.min.mjs";
mermaid.initialize({ startOnLoad: true });
</script>
<style>
body { font-family: sans-serif; margin: 2rem auto; max-width: 60rem; color: #222; }
h1, h2 { border-bottom: 1px solid #ddd; padding-bottom: .3rem; }
table { border-collapse: collapse; margin: 1rem 0; }
td, th { border: 1px solid #ccc; padding: .4rem .8rem; text-align: left; }
.muted { color: #777; }
</style>
</head>
<body>
<h1>Ticket analysis report</h1>
<p class="muted">Generated {{.GeneratedAt.Format "2006-01-02 15:04"}}{{if .Source}} from {{.Source}}{{end}}</p>

<h2>Summary</h2>
<table>
<tr><th>Total</th><th>Open</th><th>Resolved</th><th>Avg resolution</th><th>Efficiency</th></tr>
<tr><td>{{.Metrics.Total}}</td><td>{{.Metrics.Open}}</td><td>{{.Metrics.Resolved}}</td>
<td>{{.Metrics.AvgResolutionTime}}</td><td>{{.Metrics.EfficiencyScore}}/100</td></tr>
</table>

{{if .Insights}}
<h2>Insights</h2>
<ul>{{range .Insights}}<li>{{.}}</li>{{end}}</ul>
{{end}}

{{if .TrendChart}}
<h2>Monthly trend</h2>
<pre class="mermaid">{{.TrendChart}}</pre>
{{end}}

{{if .Issues}}
<h2>Technical issues</h2>
<table>
<tr><th>Issue</th><th>Tickets</th><th>Avg resolution (hours)</th></tr>
{{range .Issues}}<tr><td>{{.Label}}</td><td>{{.Count}}</td><td>{{printf "%.1f" .AvgHours}}</td></tr>
{{end}}</table>
{{end}}

{{if .Metrics.ByPriority}}
<h2>Priority distribution</h2>
<table>
<tr><th>Priority</th><th>Tickets</th></tr>
{{range $label, $count := .Metrics.ByPriority}}<tr><td>{{$label}}</td><td>{{$count}}</td></tr>
{{end}}</table>
{{end}}

{{if .Metrics.CommonIssues}}
<h2>Common issues</h2>
<ul>{{range .Metrics.CommonIssues}}<li>{{.}}</li>{{end}}</ul>
{{end}}
</body>
</html>
`))

package mcp

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ticketlens/internal/config"
	"ticketlens/internal/stats"
)

func testServer() *Server {
	return NewServer(&config.AppConfig{}, nil, nil)
}

func writeExport(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestToolsBeforeLoadReportError(t *testing.T) {
	s := testServer()
	for _, name := range []string{"get_metrics", "get_issue_patterns", "get_insights", "summarize_conversations"} {
		t.Run(name, func(t *testing.T) {
			var err error
			switch name {
			case "get_metrics":
				_, err = s.handleGetMetrics()
			case "get_issue_patterns":
				_, err = s.handleGetIssuePatterns()
			case "get_insights":
				_, err = s.handleGetInsights()
			case "summarize_conversations":
				_, err = s.handleSummarizeConversations()
			}
			if err == nil || !strings.Contains(err.Error(), "load_exports") {
				t.Errorf("err = %v, want pointer to load_exports", err)
			}
		})
	}
}

func TestLoadExportsBuildsSnapshot(t *testing.T) {
	dir := t.TempDir()
	writeExport(t, dir, "batch.json", `{
		"records": [
			{"ticket_id": "T-1", "status": "Open", "priority": "2 - High"},
			{"ticket_id": "T-2", "status": "Resolved", "priority": "2 - High",
			 "created_at": "2024-01-01T00:00:00Z", "closed_at": "2024-01-01T06:00:00Z"}
		]
	}`)

	s := testServer()
	out, err := s.handleLoadExports(map[string]interface{}{"dir": dir})
	if err != nil {
		t.Fatal(err)
	}
	summary := out.(map[string]interface{})
	if summary["tickets"] != 2 {
		t.Errorf("tickets = %v, want 2", summary["tickets"])
	}

	got, err := s.handleGetMetrics()
	if err != nil {
		t.Fatal(err)
	}
	m := got.(stats.Metrics)
	if m.Total != 2 || m.Open != 1 || m.Resolved != 1 {
		t.Errorf("metrics = %+v, want total 2, open 1, resolved 1", m)
	}
}

func TestSetSnapshotLatestWins(t *testing.T) {
	s := testServer()
	first := s.nextGeneration()
	second := s.nextGeneration()

	if ok := s.setSnapshot(&snapshot{generation: second, metrics: stats.Metrics{Total: 9}}); !ok {
		t.Fatal("newer snapshot rejected")
	}
	if ok := s.setSnapshot(&snapshot{generation: first, metrics: stats.Metrics{Total: 1}}); ok {
		t.Fatal("stale snapshot accepted")
	}
	if got := s.currentSnapshot().metrics.Total; got != 9 {
		t.Errorf("current snapshot total = %d, want 9", got)
	}
}

func TestResolvePaths(t *testing.T) {
	paths, err := resolvePaths(map[string]interface{}{
		"paths": []interface{}{"a.json", "", "b.json"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 2 || paths[0] != "a.json" || paths[1] != "b.json" {
		t.Errorf("paths = %v", paths)
	}

	if _, err := resolvePaths(map[string]interface{}{}); err == nil {
		t.Error("expected error when neither paths nor dir given")
	}
	if _, err := resolvePaths(map[string]interface{}{"paths": []interface{}{""}}); err == nil {
		t.Error("expected error for all-empty path list")
	}
}

func TestSummarizeWithoutConversations(t *testing.T) {
	s := testServer()
	s.setSnapshot(&snapshot{generation: s.nextGeneration()})
	if _, err := s.handleSummarizeConversations(); err == nil ||
		!strings.Contains(err.Error(), "no conversations") {
		t.Errorf("err = %v, want missing-conversations error", err)
	}
}

package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestLoadFilesMergesInInputOrder(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "first.json",
		`{"tickets": [{"ticket_id": "T-1", "status": "Open"}, {"ticket_id": "T-2", "status": "Closed"}]}`)
	second := writeFile(t, dir, "second.json",
		`[{"ticket_id": "T-3", "status": "Open"}]`)

	result := LoadFiles(context.Background(), []string{first, second})

	if len(result.Tickets) != 3 {
		t.Fatalf("got %d tickets, want 3", len(result.Tickets))
	}
	wantOrder := []string{"T-1", "T-2", "T-3"}
	for i, want := range wantOrder {
		if got := result.Tickets[i].ID(); got != want {
			t.Errorf("ticket %d = %q, want %q", i, got, want)
		}
	}
	if len(result.Files) != 2 {
		t.Fatalf("got %d file reports, want 2", len(result.Files))
	}
	if result.Files[0].Path != first || result.Files[1].Path != second {
		t.Errorf("file reports out of order: %+v", result.Files)
	}
}

func TestLoadFilesIsolatesBadFiles(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.json",
		`{"records": [{"ticket_id": "T-9", "status": "Open"}]}`)
	malformed := writeFile(t, dir, "broken.json", `{"records": [`)
	missing := filepath.Join(dir, "missing.json")

	result := LoadFiles(context.Background(), []string{good, malformed, missing})

	if len(result.Tickets) != 1 || result.Tickets[0].ID() != "T-9" {
		t.Fatalf("good file not loaded: %+v", result.Tickets)
	}
	if len(result.Files) != 3 {
		t.Fatalf("got %d file reports, want 3", len(result.Files))
	}
	if result.Files[0].Error != "" {
		t.Errorf("good file reported error: %q", result.Files[0].Error)
	}
	if result.Files[1].Error == "" {
		t.Error("malformed file should carry an error report")
	}
	if result.Files[2].Error == "" {
		t.Error("missing file should carry an error report")
	}
}

func TestLoadFilesReportsConversations(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "chat.json", `{
		"conversations": [
			{"conversation_id": "C-1", "messages": [
				{"sender": "agent", "text": "hello"}
			]}
		]
	}`)

	result := LoadFiles(context.Background(), []string{path})
	if len(result.Conversations) != 1 {
		t.Fatalf("got %d conversations, want 1", len(result.Conversations))
	}
	if result.Files[0].Conversations != 1 {
		t.Errorf("file report conversations = %d, want 1", result.Files[0].Conversations)
	}
}

func TestDiscoverExports(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.json", `[]`)
	writeFile(t, dir, "a.JSON", `[]`)
	writeFile(t, dir, "notes.txt", "ignored")
	if err := os.Mkdir(filepath.Join(dir, "sub.json"), 0o755); err != nil {
		t.Fatal(err)
	}

	paths, err := DiscoverExports(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(dir, "a.JSON"), filepath.Join(dir, "b.json")}
	if len(paths) != 2 || paths[0] != want[0] || paths[1] != want[1] {
		t.Errorf("paths = %v, want %v", paths, want)
	}
}

func TestDiscoverExportsMissingDir(t *testing.T) {
	if _, err := DiscoverExports(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing directory")
	}
}

package store

import (
	"path/filepath"
	"testing"

	"ticketlens/internal/stats"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndListSnapshots(t *testing.T) {
	s := openTestStore(t)

	first := stats.Metrics{Total: 10, Resolved: 6, EfficiencyScore: 70,
		ByPriority: map[string]int{"2 - High": 10}}
	second := stats.Metrics{Total: 12, Resolved: 9, EfficiencyScore: 80}

	if _, err := s.SaveSnapshot("batch-a", first); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SaveSnapshot("batch-b", second); err != nil {
		t.Fatal(err)
	}

	rows, err := s.RecentSnapshots(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	// Newest first.
	if rows[0].Source != "batch-b" || rows[1].Source != "batch-a" {
		t.Errorf("row order: %q, %q", rows[0].Source, rows[1].Source)
	}
	if rows[0].Total != 12 || rows[0].Efficiency != 80 {
		t.Errorf("row = %+v", rows[0])
	}
	// The full metrics payload survives the round trip.
	if rows[1].Metrics.ByPriority["2 - High"] != 10 {
		t.Errorf("metrics payload = %+v", rows[1].Metrics)
	}
	if rows[0].TakenAt.IsZero() {
		t.Error("taken_at not populated")
	}
}

func TestRecentSnapshotsLimit(t *testing.T) {
	s := openTestStore(t)
	for i := 0; i < 5; i++ {
		if _, err := s.SaveSnapshot("b", stats.Metrics{Total: i}); err != nil {
			t.Fatal(err)
		}
	}
	rows, err := s.RecentSnapshots(3)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Errorf("got %d rows, want 3", len(rows))
	}
	if rows[0].Total != 4 {
		t.Errorf("newest row total = %d, want 4", rows[0].Total)
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMergeSettingsFileOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ticketlens.yaml")
	err := os.WriteFile(path, []byte(
		"slack_channel: \"#support-digest\"\nreport_dir: /tmp/reports\n"), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	cfg := &AppConfig{Settings: Settings{
		SlackChannel:  "#old",
		WatchSchedule: "0 * * * *",
	}}
	if err := cfg.mergeSettingsFile(path); err != nil {
		t.Fatal(err)
	}

	if cfg.SlackChannel != "#support-digest" {
		t.Errorf("SlackChannel = %q, want overlay value", cfg.SlackChannel)
	}
	if cfg.ReportDir != "/tmp/reports" {
		t.Errorf("ReportDir = %q", cfg.ReportDir)
	}
	// Keys absent from the file keep their prior values.
	if cfg.WatchSchedule != "0 * * * *" {
		t.Errorf("WatchSchedule = %q, want unchanged", cfg.WatchSchedule)
	}
}

func TestMergeSettingsFileMissingIsNormal(t *testing.T) {
	cfg := &AppConfig{}
	if err := cfg.mergeSettingsFile(filepath.Join(t.TempDir(), "none.yaml")); err != nil {
		t.Errorf("missing file should be silent: %v", err)
	}
}

func TestMergeSettingsFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ticketlens.yaml")
	if err := os.WriteFile(path, []byte("slack_channel: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := &AppConfig{}
	if err := cfg.mergeSettingsFile(path); err == nil {
		t.Error("expected error for malformed settings file")
	}
}

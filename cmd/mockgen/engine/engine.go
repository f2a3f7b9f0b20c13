// Package engine generates mock ticket/conversation export files in the
// structural variants real exports show up in, for exercising the
// extractor and the analysis pipeline by hand.
package engine

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"
)

type GeneratorConfig struct {
	// Variant picks the container shape: flat, result, records, nested,
	// single or conversations.
	Variant string
	Count   int
	Now     time.Time
}

var categories = []string{"Software", "Hardware", "Network", "Access"}

var priorities = []string{"1 - Critical", "2 - High", "3 - Moderate", "4 - Low"}

var assignees = []string{"sam.ortiz", "jordan.lee", "alex.kim", "priya.patel", ""}

var descriptions = []string{
	"VPN connection keeps failing when connecting to corporate network",
	"Cannot print to the 3rd floor printer",
	"Outlook won't open after the latest update",
	"Password reset needed, account locked out",
	"Laptop screen flickers on battery",
	"Zoom audio cuts out during meetings",
	"Shared drive not accessible from home",
	"WiFi keeps dropping in the east wing",
	"Need access to the finance dashboard",
	"Software install request: Visio",
}

// Generate builds Count raw ticket records with the field variance the
// extractor is expected to tolerate.
func Generate(cfg GeneratorConfig) []map[string]any {
	if cfg.Now.IsZero() {
		cfg.Now = time.Now()
	}

	records := make([]map[string]any, 0, cfg.Count)
	for i := 0; i < cfg.Count; i++ {
		created := cfg.Now.AddDate(0, 0, -rand.Intn(180))
		record := map[string]any{
			"number":            fmt.Sprintf("INC%06d", i+1),
			"short_description": descriptions[rand.Intn(len(descriptions))],
			"priority":          priorities[rand.Intn(len(priorities))],
			"category":          categories[rand.Intn(len(categories))],
			"assigned_to":       assignees[rand.Intn(len(assignees))],
			"created_at":        created.Format(time.RFC3339),
		}

		// Two thirds resolve; a slice of those carry satisfaction and
		// response-time sub-objects.
		if rand.Float64() < 0.66 {
			record["status"] = "Resolved"
			record["closed_at"] = created.Add(time.Duration(1+rand.Intn(96)) * time.Hour).Format(time.RFC3339)
			if rand.Float64() < 0.5 {
				record["satisfaction"] = map[string]any{"rating": 3 + rand.Intn(3)}
			}
			if rand.Float64() < 0.5 {
				record["time_metrics"] = map[string]any{"response_time_minutes": 5 + rand.Intn(150)}
			}
		} else {
			record["status"] = "Open"
		}

		// Alternate spellings on a slice of records to keep the alias
		// tables honest.
		if i%7 == 0 {
			delete(record, "created_at")
			record["sys_created_on"] = created.Format("2006-01-02 15:04:05")
		}
		if i%11 == 0 {
			record["state"] = record["status"]
			delete(record, "status")
		}

		records = append(records, record)
	}
	return records
}

// GenerateConversations builds mock conversation records.
func GenerateConversations(cfg GeneratorConfig) []map[string]any {
	if cfg.Now.IsZero() {
		cfg.Now = time.Now()
	}

	conversations := make([]map[string]any, 0, cfg.Count)
	for i := 0; i < cfg.Count; i++ {
		start := cfg.Now.Add(-time.Duration(rand.Intn(720)) * time.Hour)
		conversations = append(conversations, map[string]any{
			"id":    fmt.Sprintf("conv-%04d", i+1),
			"topic": descriptions[rand.Intn(len(descriptions))],
			"messages": []any{
				map[string]any{"sender": "requester", "timestamp": start.Format(time.RFC3339), "text": "Hi, I have a problem."},
				map[string]any{"sender": "agent", "timestamp": start.Add(10 * time.Minute).Format(time.RFC3339), "text": "Looking into it now."},
				map[string]any{"sender": "agent", "timestamp": start.Add(45 * time.Minute).Format(time.RFC3339), "text": "Should be fixed, can you confirm?"},
			},
		})
	}
	return conversations
}

// Wrap places the records inside the requested container variant.
func Wrap(variant string, records []map[string]any) (any, error) {
	asAny := make([]any, len(records))
	for i, r := range records {
		asAny[i] = r
	}

	switch variant {
	case "flat":
		return asAny, nil
	case "result":
		return map[string]any{"result": map[string]any{"tickets": asAny}}, nil
	case "records":
		return map[string]any{"records": asAny}, nil
	case "nested":
		return map[string]any{
			"export": map[string]any{
				"meta":  map[string]any{"generated": time.Now().Format(time.RFC3339)},
				"batch": map[string]any{"entries": asAny},
			},
		}, nil
	case "single":
		if len(records) == 0 {
			return map[string]any{}, nil
		}
		return records[0], nil
	case "conversations":
		return map[string]any{"conversations": asAny}, nil
	default:
		return nil, fmt.Errorf("unknown variant %q", variant)
	}
}

// Save writes the wrapped document to outDir as a pretty-printed export.
func Save(outDir, variant string, doc any) (string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(outDir, fmt.Sprintf("mock-%s.json", variant))
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

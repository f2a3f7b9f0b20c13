// Package ingest loads ticket/conversation export files and runs the
// extractor over each. File IO lives here; the extraction core never
// touches the filesystem.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"ticketlens/internal/ticket"
)

// FileReport describes the outcome of loading a single export file. A
// malformed file is reported here instead of failing the batch.
type FileReport struct {
	Path          string `json:"path"`
	Tickets       int    `json:"tickets"`
	Conversations int    `json:"conversations"`
	Error         string `json:"error,omitempty"`
}

// Result is the merged outcome of one load pass.
type Result struct {
	Tickets       []ticket.Ticket       `json:"-"`
	Conversations []ticket.Conversation `json:"-"`
	Files         []FileReport          `json:"files"`
}

const maxConcurrentLoads = 4

type fileOutcome struct {
	report        FileReport
	tickets       []ticket.Ticket
	conversations []ticket.Conversation
}

// LoadFiles reads every path, extracts records from each document and
// concatenates results in input order. Per-file failures are isolated: a
// file that cannot be read or parsed contributes an error report and
// nothing else.
func LoadFiles(ctx context.Context, paths []string) Result {
	outcomes := make([]fileOutcome, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLoads)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			outcomes[i] = loadOne(path)
			return nil
		})
	}
	// The only group error is context cancellation; partial results still
	// merge below.
	_ = g.Wait()

	var result Result
	for _, o := range outcomes {
		if o.report.Path == "" {
			continue
		}
		result.Tickets = append(result.Tickets, o.tickets...)
		result.Conversations = append(result.Conversations, o.conversations...)
		result.Files = append(result.Files, o.report)
	}
	return result
}

func loadOne(path string) fileOutcome {
	var o fileOutcome
	o.report.Path = path

	data, err := os.ReadFile(path)
	if err != nil {
		o.report.Error = fmt.Sprintf("read failed: %v", err)
		log.Warn().Err(err).Str("file", path).Msg("Skipping unreadable export file")
		return o
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		o.report.Error = fmt.Sprintf("not valid JSON: %v", err)
		log.Warn().Err(err).Str("file", path).Msg("Skipping malformed export file")
		return o
	}

	o.tickets = ticket.ExtractTickets(doc)
	o.conversations = ticket.ExtractConversations(doc)
	o.report.Tickets = len(o.tickets)
	o.report.Conversations = len(o.conversations)

	log.Debug().Str("file", path).
		Int("tickets", o.report.Tickets).
		Int("conversations", o.report.Conversations).
		Msg("Loaded export file")
	return o
}

// DiscoverExports lists the JSON export files directly under dir, sorted
// by name for deterministic batch order.
func DiscoverExports(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading export directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".json") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

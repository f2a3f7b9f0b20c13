package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"ticketlens/internal/ingest"
	"ticketlens/internal/stats"
)

func (s *Server) handleLoadExports(args map[string]interface{}) (interface{}, error) {
	paths, err := resolvePaths(args)
	if err != nil {
		return nil, err
	}

	generation := s.nextGeneration()
	result := ingest.LoadFiles(context.Background(), paths)

	snap := &snapshot{
		generation:    generation,
		tickets:       result.Tickets,
		conversations: result.Conversations,
		metrics:       stats.Aggregate(result.Tickets),
		issues:        stats.DetectIssues(result.Tickets),
	}
	snap.insights = stats.GenerateInsights(snap.metrics, snap.tickets)
	if !s.setSnapshot(snap) {
		return nil, fmt.Errorf("superseded by a newer load")
	}

	if s.history != nil {
		source := strings.Join(paths, ",")
		if _, err := s.history.SaveSnapshot(source, snap.metrics); err != nil {
			log.Warn().Err(err).Msg("Failed to persist snapshot history")
		}
	}

	return map[string]interface{}{
		"files":         result.Files,
		"tickets":       len(result.Tickets),
		"conversations": len(result.Conversations),
		"loaded_at":     time.Now().Format(time.RFC3339),
	}, nil
}

func (s *Server) handleGetMetrics() (interface{}, error) {
	snap := s.currentSnapshot()
	if snap == nil {
		return nil, fmt.Errorf("no data loaded; call load_exports first")
	}
	return snap.metrics, nil
}

func (s *Server) handleGetIssuePatterns() (interface{}, error) {
	snap := s.currentSnapshot()
	if snap == nil {
		return nil, fmt.Errorf("no data loaded; call load_exports first")
	}
	return snap.issues, nil
}

func (s *Server) handleGetInsights() (interface{}, error) {
	snap := s.currentSnapshot()
	if snap == nil {
		return nil, fmt.Errorf("no data loaded; call load_exports first")
	}
	return map[string]interface{}{
		"insights":       snap.insights,
		"issue_insights": stats.GenerateIssueInsights(snap.issues),
	}, nil
}

func (s *Server) handleSummarizeConversations() (interface{}, error) {
	snap := s.currentSnapshot()
	if snap == nil {
		return nil, fmt.Errorf("no data loaded; call load_exports first")
	}
	if len(snap.conversations) == 0 {
		return nil, fmt.Errorf("the loaded exports contain no conversations")
	}
	if s.summarizer == nil {
		return nil, fmt.Errorf("completion service not configured (set ANTHROPIC_API_KEY)")
	}
	return s.summarizer.SummarizeConversations(context.Background(), snap.conversations)
}

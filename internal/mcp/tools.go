package mcp

func (s *Server) listTools() interface{} {
	return map[string]interface{}{
		"tools": []interface{}{
			map[string]interface{}{
				"name": "load_exports",
				"description": "Load one or more ticket/conversation export files (JSON, any structural variant) and recompute the full analysis snapshot. " +
					"Call this before any other tool. Returns a per-file load summary; a malformed file is reported and skipped, not fatal.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"paths": map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}, "description": "Explicit export file paths"},
						"dir":   map[string]interface{}{"type": "string", "description": "Directory to scan for *.json export files (alternative to paths)"},
					},
				},
			},
			map[string]interface{}{
				"name":        "get_metrics",
				"description": "Get the current metrics snapshot: counts, distributions, monthly trend, top assignees, common issues and the efficiency score.",
				"inputSchema": map[string]interface{}{
					"type":       "object",
					"properties": map[string]interface{}{},
				},
			},
			map[string]interface{}{
				"name":        "get_issue_patterns",
				"description": "Get the technical-issue breakdown: per-label match count and average resolution time, sorted by frequency.",
				"inputSchema": map[string]interface{}{
					"type":       "object",
					"properties": map[string]interface{}{},
				},
			},
			map[string]interface{}{
				"name":        "get_insights",
				"description": "Get the rule-based natural-language findings for the current snapshot (at most six).",
				"inputSchema": map[string]interface{}{
					"type":       "object",
					"properties": map[string]interface{}{},
				},
			},
			map[string]interface{}{
				"name":        "summarize_conversations",
				"description": "Summarize the loaded support conversations via the completion service. Requires ANTHROPIC_API_KEY. The summary is free text.",
				"inputSchema": map[string]interface{}{
					"type":       "object",
					"properties": map[string]interface{}{},
				},
			},
		},
	}
}

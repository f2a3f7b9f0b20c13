// Package mcp exposes the analysis engine over a stdio JSON-RPC loop
// speaking the MCP tool protocol.
package mcp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog/log"

	"ticketlens/internal/config"
	"ticketlens/internal/ingest"
	"ticketlens/internal/llm"
	"ticketlens/internal/stats"
	"ticketlens/internal/store"
	"ticketlens/internal/ticket"
)

// JSONRPCRequest represents a standard MCP/JSON-RPC request.
type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// JSONRPCResponse represents a standard MCP/JSON-RPC response.
type JSONRPCResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

// snapshot is one immutable analysis result. The server always swaps whole
// snapshots; the newest load wins.
type snapshot struct {
	generation    uint64
	tickets       []ticket.Ticket
	conversations []ticket.Conversation
	metrics       stats.Metrics
	issues        []stats.IssueStat
	insights      []string
}

// Server holds the state for the MCP server.
type Server struct {
	cfg        *config.AppConfig
	summarizer *llm.Summarizer
	history    *store.Store

	mu         sync.Mutex
	generation uint64
	current    *snapshot
}

// NewServer creates a new MCP server. summarizer and history may be nil
// when unconfigured.
func NewServer(cfg *config.AppConfig, summarizer *llm.Summarizer, history *store.Store) *Server {
	return &Server{cfg: cfg, summarizer: summarizer, history: history}
}

// Serve runs the JSON-RPC loop over stdio until EOF.
func (s *Server) Serve() error {
	reader := bufio.NewReader(os.Stdin)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		var req JSONRPCRequest
		if err := json.Unmarshal(line, &req); err != nil {
			log.Error().Err(err).Msg("Failed to unmarshal request")
			continue
		}
		s.handleRequest(req)
	}
}

func (s *Server) handleRequest(req JSONRPCRequest) {
	var result interface{}
	var errRes interface{}

	switch req.Method {
	case "initialize":
		result = map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities":    map[string]interface{}{},
			"serverInfo": map[string]interface{}{
				"name":    "ticketlens",
				"version": "0.1.0",
			},
		}
	case "tools/list":
		result = s.listTools()
	case "tools/call":
		result, errRes = s.callTool(req.Params)
	default:
		errRes = map[string]interface{}{
			"code":    -32601,
			"message": fmt.Sprintf("Method %s not found", req.Method),
		}
	}

	resp := JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  result,
		Error:   errRes,
	}
	out, _ := json.Marshal(resp)
	fmt.Fprintf(os.Stdout, "%s\n", out)
}

func (s *Server) callTool(params json.RawMessage) (interface{}, interface{}) {
	var call struct {
		Name      string                 `json:"name"`
		Arguments map[string]interface{} `json:"arguments"`
	}
	if err := json.Unmarshal(params, &call); err != nil {
		return nil, map[string]interface{}{"code": -32602, "message": "Invalid params"}
	}

	var data interface{}
	var err error

	switch call.Name {
	case "load_exports":
		data, err = s.handleLoadExports(call.Arguments)
	case "get_metrics":
		data, err = s.handleGetMetrics()
	case "get_issue_patterns":
		data, err = s.handleGetIssuePatterns()
	case "get_insights":
		data, err = s.handleGetInsights()
	case "summarize_conversations":
		data, err = s.handleSummarizeConversations()
	default:
		return nil, map[string]interface{}{"code": -32601, "message": "Tool not found"}
	}

	if err != nil {
		return nil, map[string]interface{}{"code": -32000, "message": err.Error()}
	}

	return map[string]interface{}{
		"content": []interface{}{
			map[string]interface{}{
				"type": "text",
				"text": formatResult(data),
			},
		},
	}, nil
}

func formatResult(data interface{}) string {
	if text, ok := data.(string); ok {
		return text
	}
	out, _ := json.MarshalIndent(data, "", "  ")
	return string(out)
}

// setSnapshot installs a snapshot unless a newer load already finished.
func (s *Server) setSnapshot(snap *snapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil && s.current.generation > snap.generation {
		log.Debug().Uint64("generation", snap.generation).Msg("Discarding stale snapshot")
		return false
	}
	s.current = snap
	return true
}

func (s *Server) nextGeneration() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	return s.generation
}

func (s *Server) currentSnapshot() *snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// resolvePaths accepts either an explicit path list or a directory.
func resolvePaths(args map[string]interface{}) ([]string, error) {
	if dir, ok := args["dir"].(string); ok && dir != "" {
		return ingest.DiscoverExports(dir)
	}
	raw, ok := args["paths"].([]interface{})
	if !ok || len(raw) == 0 {
		return nil, fmt.Errorf("provide either 'paths' or 'dir'")
	}
	paths := make([]string, 0, len(raw))
	for _, p := range raw {
		if s, ok := p.(string); ok && s != "" {
			paths = append(paths, s)
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("'paths' contains no usable entries")
	}
	return paths, nil
}

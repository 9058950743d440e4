package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Demwunz/topo/internal/core"
	"github.com/Demwunz/topo/internal/model"
	"github.com/Demwunz/topo/internal/search"
)

// addScoreTool registers topo_score: rank the current file set against a
// free-text task description using the hybrid BM25F/heuristic/PageRank
// scorer, bounded by an optional byte/token budget.
func addScoreTool(s *server.MCPServer, srv *Server) {
	tool := mcp.NewTool(
		"topo_score",
		mcp.WithDescription("Rank the repository's files by relevance to a task description, using BM25F term matching, path/role heuristics, and import-graph PageRank. Returns a token/byte-budgeted, best-first file list."),
		mcp.WithString("task",
			mcp.Required(),
			mcp.Description("Natural-language description of what the caller is trying to do (e.g. 'fix the auth token refresh bug')")),
		mcp.WithNumber("max_bytes", mcp.Description("Byte budget for the returned file set (0 = unbounded)")),
		mcp.WithNumber("max_tokens", mcp.Description("Token budget for the returned file set (0 = unbounded)")),
	)
	s.AddTool(tool, createScoreHandler(srv))
}

func createScoreHandler(srv *Server) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		requestID := uuid.New().String()

		argsMap, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		task, ok := argsMap["task"].(string)
		if !ok || task == "" {
			return mcp.NewToolResultError("task parameter is required"), nil
		}

		var budget *model.TokenBudget
		if v, ok := argsMap["max_bytes"].(float64); ok && v > 0 {
			b := uint64(v)
			if budget == nil {
				budget = &model.TokenBudget{}
			}
			budget.MaxBytes = &b
		}
		if v, ok := argsMap["max_tokens"].(float64); ok && v > 0 {
			t := uint64(v)
			if budget == nil {
				budget = &model.TokenBudget{}
			}
			budget.MaxTokens = &t
		}

		bundle, index, _ := srv.snapshot()
		scored, err := srv.engine.Score(core.Query{Task: task, Files: bundle.Files, Budget: budget}, index)
		if err != nil {
			return nil, fmt.Errorf("topo_score [%s]: %w", requestID, err)
		}

		response := ScoreResponse{RequestID: requestID, Files: toScoredFiles(scored), Total: len(scored)}
		jsonData, err := json.Marshal(response)
		if err != nil {
			return nil, fmt.Errorf("marshal topo_score response: %w", err)
		}
		return mcp.NewToolResultText(string(jsonData)), nil
	}
}

func toScoredFiles(files []model.ScoredFile) []ScoredFile {
	out := make([]ScoredFile, 0, len(files))
	for _, f := range files {
		out = append(out, ScoredFile{
			Path:       f.Path,
			Score:      f.Score,
			Tokens:     f.Tokens,
			Language:   string(f.Language),
			Role:       string(f.Role),
			BM25F:      f.Signals.BM25F,
			Heuristic:  f.Signals.Heuristic,
			PageRank:   f.Signals.PageRank,
			GitRecency: f.Signals.GitRecency,
		})
	}
	return out
}

// addScanTool registers topo_scan: force an immediate rescan of the repo
// root and report the refreshed file count/fingerprint.
func addScanTool(s *server.MCPServer, srv *Server) {
	tool := mcp.NewTool(
		"topo_scan",
		mcp.WithDescription("Rescan the repository root and report its current file count, estimated token total, and fingerprint. The file set and index that topo_score uses are left unchanged."),
	)
	s.AddTool(tool, createScanHandler(srv))
}

func createScanHandler(srv *Server) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		requestID := uuid.New().String()

		bundle, err := srv.engine.Scan()
		if err != nil {
			return nil, fmt.Errorf("topo_scan [%s]: %w", requestID, err)
		}

		response := ScanResponse{
			RequestID:   requestID,
			Fingerprint: bundle.Fingerprint,
			TotalFiles:  len(bundle.Files),
			TotalTokens: bundle.TotalTokens(),
		}
		jsonData, err := json.Marshal(response)
		if err != nil {
			return nil, fmt.Errorf("marshal topo_scan response: %w", err)
		}
		return mcp.NewToolResultText(string(jsonData)), nil
	}
}

// addIndexTool registers topo_index: force a full scan + build_index +
// save_index + exact-index rebuild pass, the same pipeline a file-watcher
// triggered rescan runs.
func addIndexTool(s *server.MCPServer, srv *Server) {
	tool := mcp.NewTool(
		"topo_index",
		mcp.WithDescription("Rebuild topo's term/import/PageRank index from the current file tree, reusing unchanged files' entries by content hash."),
	)
	s.AddTool(tool, createIndexHandler(srv))
}

func createIndexHandler(srv *Server) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		requestID := uuid.New().String()

		bundle, err := srv.engine.Scan()
		if err != nil {
			return nil, fmt.Errorf("topo_index [%s]: scan: %w", requestID, err)
		}
		result, err := srv.engine.BuildIndex(bundle)
		if err != nil {
			return nil, fmt.Errorf("topo_index [%s]: build_index: %w", requestID, err)
		}
		if err := srv.engine.SaveIndex(result.Index); err != nil {
			return nil, fmt.Errorf("topo_index [%s]: save_index: %w", requestID, err)
		}
		if err := srv.rebuild(ctx); err != nil {
			return nil, fmt.Errorf("topo_index [%s]: refresh exact index: %w", requestID, err)
		}

		response := IndexResponse{
			RequestID:  requestID,
			TotalFiles: len(bundle.Files),
			Processed:  result.Processed,
			Reused:     len(bundle.Files) - result.Processed,
		}
		jsonData, err := json.Marshal(response)
		if err != nil {
			return nil, fmt.Errorf("marshal topo_index response: %w", err)
		}
		return mcp.NewToolResultText(string(jsonData)), nil
	}
}

// addExactTool registers topo_exact: the bleve-backed literal/keyword
// search tool complementing topo_score's hybrid ranking.
func addExactTool(s *server.MCPServer, srv *Server) {
	tool := mcp.NewTool(
		"topo_exact",
		mcp.WithDescription("Search file contents for a literal term or bleve query-string expression, optionally filtered by language or path pattern. Complements topo_score's relevance ranking with exact keyword matching."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Literal term or bleve query-string syntax (e.g. 'Authenticate', '+error -deprecated')")),
		mcp.WithString("language", mcp.Description("Restrict to one language, e.g. 'go', 'python', 'rust'")),
		mcp.WithString("path_glob", mcp.Description("Bleve wildcard pattern over the file path, e.g. 'src/auth/*'")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of hits to return (1-100, default 15)")),
	)
	s.AddTool(tool, createExactHandler(srv))
}

func createExactHandler(srv *Server) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		requestID := uuid.New().String()

		argsMap, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}
		query, ok := argsMap["query"].(string)
		if !ok || query == "" {
			return mcp.NewToolResultError("query parameter is required"), nil
		}

		opts := &search.Options{}
		if lang, ok := argsMap["language"].(string); ok {
			opts.Language = model.Language(lang)
		}
		if glob, ok := argsMap["path_glob"].(string); ok {
			opts.PathGlob = glob
		}
		if limit, ok := argsMap["limit"].(float64); ok {
			opts.Limit = int(limit)
		}

		_, _, searcher := srv.snapshot()
		if searcher == nil {
			return mcp.NewToolResultError("exact index not yet built"), nil
		}

		results, err := searcher.Search(ctx, query, opts)
		if err != nil {
			return nil, fmt.Errorf("topo_exact [%s]: %w", requestID, err)
		}

		hits := make([]ExactHitModel, 0, len(results))
		for _, r := range results {
			hits = append(hits, ExactHitModel{Path: r.Path, Score: r.Score, Highlights: r.Highlights})
		}

		response := ExactResponse{RequestID: requestID, Results: hits, Total: len(hits)}
		jsonData, err := json.Marshal(response)
		if err != nil {
			return nil, fmt.Errorf("marshal topo_exact response: %w", err)
		}
		return mcp.NewToolResultText(string(jsonData)), nil
	}
}

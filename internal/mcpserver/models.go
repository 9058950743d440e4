// Package mcpserver exposes topo's scan/build_index/score operations as
// MCP tools over stdio, for agent callers that want relevance ranking as a
// live collaborator rather than a one-shot CLI invocation. Grounded on
// internal/mcp/server.go and internal/mcp/tool.go's registration pattern.
package mcpserver

// ScoreRequest is the JSON argument schema for the topo_score tool.
type ScoreRequest struct {
	Task      string `json:"task" jsonschema:"required,description=Natural-language description of the task the caller needs relevant files for"`
	MaxBytes  uint64 `json:"max_bytes,omitempty" jsonschema:"description=Byte budget for the returned file set (0 = unbounded)"`
	MaxTokens uint64 `json:"max_tokens,omitempty" jsonschema:"description=Token budget for the returned file set (0 = unbounded)"`
}

// ScoreResponse is the JSON result schema for the topo_score tool.
type ScoreResponse struct {
	RequestID string       `json:"request_id"`
	Files     []ScoredFile `json:"files"`
	Total     int          `json:"total"`
}

// ScoredFile is one ranked file in a ScoreResponse.
type ScoredFile struct {
	Path       string   `json:"path"`
	Score      float64  `json:"score"`
	Tokens     uint64   `json:"tokens"`
	Language   string   `json:"language"`
	Role       string   `json:"role"`
	BM25F      float64  `json:"bm25f"`
	Heuristic  float64  `json:"heuristic"`
	PageRank   *float64 `json:"pagerank,omitempty"`
	GitRecency *float64 `json:"git_recency,omitempty"`
}

// ScanResponse is the JSON result schema for the topo_scan tool.
type ScanResponse struct {
	RequestID   string `json:"request_id"`
	Fingerprint string `json:"fingerprint"`
	TotalFiles  int    `json:"total_files"`
	TotalTokens uint64 `json:"total_tokens"`
}

// IndexResponse is the JSON result schema for the topo_index tool.
type IndexResponse struct {
	RequestID  string `json:"request_id"`
	TotalFiles int    `json:"total_files"`
	Processed  int    `json:"processed"`
	Reused     int    `json:"reused"`
}

// ExactRequest is the JSON argument schema for the topo_exact tool.
type ExactRequest struct {
	Query    string `json:"query" jsonschema:"required,description=Literal or keyword-syntax query over file contents"`
	Language string `json:"language,omitempty" jsonschema:"description=Restrict to one language (e.g. go, python, rust)"`
	PathGlob string `json:"path_glob,omitempty" jsonschema:"description=Bleve wildcard pattern over the file path"`
	Limit    int    `json:"limit,omitempty" jsonschema:"minimum=1,maximum=100,default=15"`
}

// ExactResponse is the JSON result schema for the topo_exact tool.
type ExactResponse struct {
	RequestID string          `json:"request_id"`
	Results   []ExactHitModel `json:"results"`
	Total     int             `json:"total"`
}

// ExactHitModel is one keyword-search hit in an ExactResponse.
type ExactHitModel struct {
	Path       string   `json:"path"`
	Score      float64  `json:"score"`
	Highlights []string `json:"highlights,omitempty"`
}

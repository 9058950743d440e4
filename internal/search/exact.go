// Package search provides a supplementary exact-match full-text index over
// repo file contents, for the `grep`-style MCP tool that complements the
// hybrid BM25F/heuristic/PageRank relevance ranking in internal/score.
// Grounded on the teacher's bleve-backed keyword searcher
// (internal/mcp/exact_searcher.go), adapted from chunk documents to
// whole-file documents since topo indexes files, not pre-chunked context
// windows.
package search

import (
	"context"
	"fmt"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/Demwunz/topo/internal/model"
)

// Document is one file's searchable content plus the metadata needed to
// filter and display a hit.
type Document struct {
	Path     string
	Content  string
	Role     model.FileRole
	Language model.Language
}

// Result is a single keyword-search hit.
type Result struct {
	Path       string
	Score      float64
	Highlights []string
}

// Options narrows a Search call beyond the raw query string.
type Options struct {
	Limit    int
	Language model.Language // empty matches any language
	PathGlob string         // bleve wildcard pattern over Path, empty matches any
}

const defaultLimit = 15
const maxLimit = 100

// ExactSearcher is the supplementary keyword-search tool surface backing
// the MCP server's `topo_grep`-style tool.
type ExactSearcher interface {
	Search(ctx context.Context, queryStr string, opts *Options) ([]Result, error)
	Update(ctx context.Context, upserted []Document, deleted []string) error
	Close() error
}

type exactSearcher struct {
	index bleve.Index
	mu    sync.RWMutex
}

// NewExactSearcher builds an in-memory bleve index over docs.
func NewExactSearcher(ctx context.Context, docs []Document) (ExactSearcher, error) {
	index, err := bleve.NewMemOnly(buildMapping())
	if err != nil {
		return nil, fmt.Errorf("create bleve index: %w", err)
	}

	if err := indexDocuments(ctx, index, docs); err != nil {
		index.Close()
		return nil, fmt.Errorf("index documents: %w", err)
	}

	return &exactSearcher{index: index}, nil
}

func buildMapping() *mapping.IndexMappingImpl {
	m := bleve.NewIndexMapping()

	content := bleve.NewTextFieldMapping()
	content.Analyzer = "standard"
	content.Store = true
	content.Index = true
	content.IncludeTermVectors = true

	path := bleve.NewTextFieldMapping()
	path.Analyzer = "standard"
	path.Store = true
	path.Index = true

	keyword := bleve.NewTextFieldMapping()
	keyword.Analyzer = "keyword"
	keyword.Store = true
	keyword.Index = true

	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt("content", content)
	doc.AddFieldMappingsAt("path", path)
	doc.AddFieldMappingsAt("role", keyword)
	doc.AddFieldMappingsAt("language", keyword)

	m.DefaultMapping = doc
	return m
}

const batchSize = 1000

func indexDocuments(ctx context.Context, index bleve.Index, docs []Document) error {
	batch := index.NewBatch()
	for i, d := range docs {
		if i%batchSize == 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}

		if err := batch.Index(d.Path, documentFields(d)); err != nil {
			return fmt.Errorf("index %s: %w", d.Path, err)
		}

		if batch.Size() >= batchSize {
			if err := index.Batch(batch); err != nil {
				return fmt.Errorf("execute batch: %w", err)
			}
			batch = index.NewBatch()
		}
	}

	if batch.Size() > 0 {
		if err := index.Batch(batch); err != nil {
			return fmt.Errorf("execute final batch: %w", err)
		}
	}
	return nil
}

func documentFields(d Document) map[string]any {
	return map[string]any{
		"path":     d.Path,
		"content":  d.Content,
		"role":     string(d.Role),
		"language": string(d.Language),
	}
}

// Search runs a bleve query-string search over file content, optionally
// filtered by language and a path glob, highest-scoring hits first.
func (s *exactSearcher) Search(ctx context.Context, queryStr string, opts *Options) ([]Result, error) {
	if opts == nil {
		opts = &Options{}
	}
	limit := opts.Limit
	if limit <= 0 || limit > maxLimit {
		limit = defaultLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	queries := []query.Query{bleve.NewQueryStringQuery(queryStr)}
	if opts.Language != "" {
		langQuery := bleve.NewMatchQuery(string(opts.Language))
		langQuery.SetField("language")
		queries = append(queries, langQuery)
	}
	if opts.PathGlob != "" {
		pathQuery := bleve.NewWildcardQuery(opts.PathGlob)
		pathQuery.SetField("path")
		queries = append(queries, pathQuery)
	}

	var finalQuery query.Query = queries[0]
	if len(queries) > 1 {
		finalQuery = bleve.NewConjunctionQuery(queries...)
	}

	req := bleve.NewSearchRequestOptions(finalQuery, limit, 0, false)
	style := "html"
	req.Highlight = bleve.NewHighlight()
	req.Highlight.Style = &style
	req.Highlight.Fields = []string{"content"}
	req.Fields = []string{"path"}

	searchResult, err := s.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("bleve search: %w", err)
	}

	results := make([]Result, 0, len(searchResult.Hits))
	for _, hit := range searchResult.Hits {
		path, _ := hit.Fields["path"].(string)
		results = append(results, Result{
			Path:       path,
			Score:      hit.Score,
			Highlights: extractHighlights(hit.Fragments),
		})
	}
	return results, nil
}

func extractHighlights(fragments map[string][]string) []string {
	var out []string
	for _, snippets := range fragments {
		out = append(out, snippets...)
	}
	const maxHighlights = 3
	if len(out) > maxHighlights {
		out = out[:maxHighlights]
	}
	return out
}

// Update applies an incremental batch: upserted documents are (re)indexed,
// deleted paths are removed, mirroring a rescan's added/changed/removed
// file sets.
func (s *exactSearcher) Update(ctx context.Context, upserted []Document, deleted []string) error {
	batch := s.index.NewBatch()

	for _, path := range deleted {
		batch.Delete(path)
	}
	for _, d := range upserted {
		if err := batch.Index(d.Path, documentFields(d)); err != nil {
			return fmt.Errorf("index %s: %w", d.Path, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.index.Batch(batch); err != nil {
		return fmt.Errorf("execute batch: %w", err)
	}
	return nil
}

// Close releases the underlying bleve index.
func (s *exactSearcher) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index == nil {
		return nil
	}
	return s.index.Close()
}

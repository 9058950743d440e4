// Package core wires Scanner, IndexBuilder, Store, and the hybrid scorer
// into the six operations spec.md §6 exposes as topo's external API: scan,
// build_index, load_index, save_index, score, and budget.enforce. Callers
// (the CLI subcommands and the MCP tool server) drive everything through
// this package rather than reaching into the component packages directly.
package core

import (
	"fmt"
	"sort"

	"github.com/Demwunz/topo/internal/config"
	"github.com/Demwunz/topo/internal/gitrecency"
	"github.com/Demwunz/topo/internal/index"
	"github.com/Demwunz/topo/internal/model"
	"github.com/Demwunz/topo/internal/scan"
	"github.com/Demwunz/topo/internal/score"
	"github.com/Demwunz/topo/internal/tokenize"
)

// Engine is a configured view over one repository root: the single
// collaborator the CLI and MCP server hold onto between calls.
type Engine struct {
	root   string
	config *config.Config
	store  *index.Store
}

// New builds an Engine rooted at root with cfg (pass config.Default() for
// the out-of-the-box configuration).
func New(root string, cfg *config.Config) *Engine {
	return &Engine{
		root:   root,
		config: cfg,
		store:  index.NewStore(root, cfg.Index.OutputDir),
	}
}

// Root returns the repository root this Engine operates over.
func (e *Engine) Root() string { return e.root }

// Scan walks the repository and returns its fingerprinted file bundle
// (spec.md §6 `scan`).
func (e *Engine) Scan() (model.Bundle, error) {
	scanner := scan.NewScanner(e.root, scan.WithExcludeGlobs(e.config.Paths.Exclude...))
	bundle, err := scanner.Scan()
	if err != nil {
		return model.Bundle{}, fmt.Errorf("scan %s: %w", e.root, err)
	}
	return bundle, nil
}

// BuildIndex builds a DeepIndex from bundle, reusing entries from the
// on-disk index (by SHA-256) when one is present (spec.md §6 `build_index`).
func (e *Engine) BuildIndex(bundle model.Bundle) (index.Result, error) {
	prior, err := e.store.Load()
	if err != nil {
		return index.Result{}, fmt.Errorf("load prior index: %w", err)
	}
	builder := index.NewBuilder(e.root)
	result, err := builder.Build(bundle.Files, prior)
	if err != nil {
		return index.Result{}, fmt.Errorf("build index: %w", err)
	}
	return result, nil
}

// LoadIndex reads the persisted DeepIndex, or returns (nil, nil) if none
// exists yet (spec.md §6 `load_index`).
func (e *Engine) LoadIndex() (*model.DeepIndex, error) {
	idx, err := e.store.Load()
	if err != nil {
		return nil, fmt.Errorf("load index: %w", err)
	}
	return idx, nil
}

// SaveIndex persists idx to the configured output directory (spec.md §6
// `save_index`).
func (e *Engine) SaveIndex(idx model.DeepIndex) error {
	if err := e.store.Save(idx); err != nil {
		return fmt.Errorf("save index: %w", err)
	}
	return nil
}

// Query bundles the inputs to Score: a free-text task description, the
// scanned file set to rank, and an optional budget overriding the
// configured default.
type Query struct {
	Task   string
	Files  []model.FileInfo
	Budget *model.TokenBudget // nil uses config.Budget
}

// Score ranks q.Files against q.Task using the hybrid BM25F/heuristic
// scorer, optionally fuses in PageRank and git-recency signals via
// Reciprocal Rank Fusion, and applies the token budget (spec.md §6 `score`,
// `budget.enforce`).
func (e *Engine) Score(q Query, idx model.DeepIndex) ([]model.ScoredFile, error) {
	stats := score.StatsFromIndex(idx)
	bm25f := score.NewBm25fScorer(e.config.Scoring)
	heuristic := score.NewHeuristicScorer(q.Task)
	hybrid := score.NewHybridScorer(bm25f, heuristic, stats)
	queryTokens := tokenize.Content(q.Task)

	scored := make([]model.ScoredFile, 0, len(q.Files))
	for _, f := range q.Files {
		entry := idx.Files[f.Path] // zero value if absent from the index; still scorable by path/role alone
		value, signals := hybrid.Score(queryTokens, f.Path, entry, f.Role, f.Size)
		scored = append(scored, model.ScoredFile{
			Path:     f.Path,
			Score:    value,
			Signals:  signals,
			Tokens:   f.EstimatedTokens(),
			Language: f.Language,
			Role:     f.Role,
		})
	}

	sortScoredDesc(scored)

	if e.config.Scoring.EnablePageRank && len(idx.PageRankScores) > 0 {
		scored = score.FuseWithPageRank(scored, idx.PageRankScores, e.config.Scoring.RRFK)
	}

	if e.config.Scoring.EnableGitRecency {
		scored = e.applyGitRecency(scored)
	}

	budget := q.Budget
	if budget == nil {
		budget = defaultBudget(e.config.Budget)
	}
	return budget.Enforce(scored), nil
}

// applyGitRecency folds in the optional git-recency signal (SUPPLEMENTED
// FEATURES §1) as an additional RRF-fusable ranking source: it never
// replaces the BM25F/heuristic/PageRank score directly, only nudges rank
// order via fusion, same as the PageRank pass above.
func (e *Engine) applyGitRecency(files []model.ScoredFile) []model.ScoredFile {
	if len(files) == 0 {
		return files
	}
	signals, err := gitrecency.Collect(e.root)
	if err != nil {
		return files // best-effort signal; scoring never fails because git history is unavailable
	}

	currentRanking := make([]string, len(files))
	for i, f := range files {
		currentRanking[i] = f.Path
	}

	recencyScores := make(map[string]float64, len(files))
	for _, f := range files {
		recencyScores[f.Path] = signals.Score(f.Path)
	}
	recencyRanking := make([]string, len(currentRanking))
	copy(recencyRanking, currentRanking)
	sort.SliceStable(recencyRanking, func(i, j int) bool {
		return recencyScores[recencyRanking[i]] > recencyScores[recencyRanking[j]]
	})

	fused := score.Fuse(e.config.Scoring.RRFK, currentRanking, recencyRanking)

	out := make([]model.ScoredFile, len(files))
	copy(out, files)
	for i := range out {
		out[i].Score = fused[out[i].Path]
		recency := recencyScores[out[i].Path]
		out[i].Signals.GitRecency = &recency
	}
	sortScoredDesc(out)
	return out
}

// sortScoredDesc sorts by score descending, breaking ties by path ascending
// so output ordering is deterministic (spec.md §5).
func sortScoredDesc(files []model.ScoredFile) {
	sort.SliceStable(files, func(i, j int) bool {
		if files[i].Score != files[j].Score {
			return files[i].Score > files[j].Score
		}
		return files[i].Path < files[j].Path
	})
}

func defaultBudget(cfg config.BudgetConfig) *model.TokenBudget {
	b := &model.TokenBudget{}
	if cfg.MaxBytes > 0 {
		maxBytes := cfg.MaxBytes
		b.MaxBytes = &maxBytes
	}
	if cfg.MaxTokens > 0 {
		maxTokens := cfg.MaxTokens
		b.MaxTokens = &maxTokens
	}
	return b
}

package score

import "github.com/Demwunz/topo/internal/model"

// Hybrid combine weights: bm25f dominates whenever any query term matches
// (its scale is unbounded above 0), while the heuristic signal still
// breaks ties and ranks term-less queries (spec.md §4.6).
const (
	hybridBM25FWeight     = 1.0
	hybridHeuristicWeight = 0.3
)

// HybridScorer combines Bm25fScorer and HeuristicScorer into one ranked
// score per file, retaining both signals in SignalBreakdown.
type HybridScorer struct {
	bm25f     *Bm25fScorer
	heuristic *HeuristicScorer
	stats     CorpusStats
}

// NewHybridScorer builds a HybridScorer for one query's bm25f/heuristic
// pair and the corpus stats they score against.
func NewHybridScorer(bm25f *Bm25fScorer, heuristic *HeuristicScorer, stats CorpusStats) *HybridScorer {
	return &HybridScorer{bm25f: bm25f, heuristic: heuristic, stats: stats}
}

// Score returns the combined score and its signal breakdown for one file.
func (h *HybridScorer) Score(queryTokens []string, path string, entry model.FileEntry, role model.FileRole, sizeBytes uint64) (float64, model.SignalBreakdown) {
	bm25 := h.bm25f.Score(queryTokens, entry, h.stats)
	heuristic := h.heuristic.Score(path, role, sizeBytes)

	total := hybridBM25FWeight*bm25 + hybridHeuristicWeight*heuristic
	return total, model.SignalBreakdown{BM25F: bm25, Heuristic: heuristic}
}

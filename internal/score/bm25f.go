// Package score implements the hybrid relevance scorer: field-weighted
// BM25F over {filename, symbols, body}, a path/role heuristic, and
// Reciprocal Rank Fusion against the PageRank signal (spec.md §4.6/§4.7).
package score

import (
	"math"

	"github.com/Demwunz/topo/internal/config"
	"github.com/Demwunz/topo/internal/model"
)

// CorpusStats is the subset of a DeepIndex the BM25F scorer needs: total
// document count, average body length, and per-term document frequency.
type CorpusStats struct {
	TotalDocs      uint32
	AvgDocLength   float64
	DocFrequencies map[string]uint32
}

// StatsFromIndex extracts CorpusStats from a built DeepIndex.
func StatsFromIndex(idx model.DeepIndex) CorpusStats {
	return CorpusStats{
		TotalDocs:      idx.TotalDocs,
		AvgDocLength:   idx.AvgDocLength,
		DocFrequencies: idx.DocFrequencies,
	}
}

// Bm25fScorer computes field-weighted BM25F over a file's filename/symbols/
// body term frequencies.
type Bm25fScorer struct {
	FilenameWeight float64
	SymbolsWeight  float64
	BodyWeight     float64
	K1             float64
	B              float64
}

// NewBm25fScorer builds a Bm25fScorer from the configured field weights and
// BM25 parameters.
func NewBm25fScorer(cfg config.ScoringConfig) *Bm25fScorer {
	return &Bm25fScorer{
		FilenameWeight: cfg.FilenameWeight,
		SymbolsWeight:  cfg.SymbolsWeight,
		BodyWeight:     cfg.BodyWeight,
		K1:             cfg.BM25K1,
		B:              cfg.BM25B,
	}
}

// Score computes bm25f(f) for the given query tokens against one file's
// entry, per spec.md §4.6: only terms present in the corpus (df(t) > 0)
// contribute, and a term absent from the file contributes nothing.
func (s *Bm25fScorer) Score(queryTokens []string, entry model.FileEntry, stats CorpusStats) float64 {
	if stats.TotalDocs == 0 || stats.AvgDocLength == 0 {
		return 0
	}

	seen := make(map[string]bool, len(queryTokens))
	var total float64

	for _, term := range queryTokens {
		if seen[term] {
			continue
		}
		seen[term] = true

		df, inCorpus := stats.DocFrequencies[term]
		if !inCorpus || df == 0 {
			continue
		}

		tf := entry.TermFrequencies[term]
		weighted := s.FilenameWeight*float64(tf.Filename) + s.SymbolsWeight*float64(tf.Symbols) + s.BodyWeight*float64(tf.Body)
		if weighted == 0 {
			continue
		}

		lengthNorm := 1 - s.B + s.B*float64(entry.DocLength)/stats.AvgDocLength
		normalized := weighted * (s.K1 + 1) / (weighted + s.K1*lengthNorm)
		idf := math.Log((float64(stats.TotalDocs)-float64(df)+0.5)/(float64(df)+0.5) + 1)

		total += idf * normalized
	}

	return total
}

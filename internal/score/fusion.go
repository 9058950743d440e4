package score

import (
	"sort"

	"github.com/Demwunz/topo/internal/model"
)

// RRFDefaultK is the RRF constant k=60 (spec.md §4.6), chosen by the
// original implementation and carried over as a tuned constant.
const RRFDefaultK = 60

// Fuse computes Reciprocal Rank Fusion over any number of rank-ordered
// (best-first) path lists: fused(f) = Σ_source 1/(k + rank_source(f)),
// summing only over the sources in which f actually appears.
func Fuse(k int, rankings ...[]string) map[string]float64 {
	fused := make(map[string]float64)
	for _, ranking := range rankings {
		for i, path := range ranking {
			rank := i + 1
			fused[path] += 1.0 / float64(k+rank)
		}
	}
	return fused
}

// FuseWithPageRank re-ranks files, already sorted best-first by hybrid
// score, by fusing that ranking with a PageRank-sorted ranking (spec.md
// §4.6/§4.7). The fused score REPLACES each file's Score; SignalBreakdown
// gains a PageRank value for every file the graph covers. Files absent
// from pageRankScores (no resolvable imports, e.g. non-code files) simply
// contribute nothing from that source rather than being excluded outright.
func FuseWithPageRank(files []model.ScoredFile, pageRankScores map[string]float64, k int) []model.ScoredFile {
	if len(files) == 0 {
		return files
	}

	hybridRanking := make([]string, len(files))
	for i, f := range files {
		hybridRanking[i] = f.Path
	}

	pageRanked := make([]string, 0, len(files))
	for _, f := range files {
		if _, ok := pageRankScores[f.Path]; ok {
			pageRanked = append(pageRanked, f.Path)
		}
	}
	sort.SliceStable(pageRanked, func(i, j int) bool {
		return pageRankScores[pageRanked[i]] > pageRankScores[pageRanked[j]]
	})

	fused := Fuse(k, hybridRanking, pageRanked)

	out := make([]model.ScoredFile, len(files))
	copy(out, files)
	for i := range out {
		out[i].Score = fused[out[i].Path]
		if pr, ok := pageRankScores[out[i].Path]; ok {
			v := pr
			out[i].Signals.PageRank = &v
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Path < out[j].Path
	})
	return out
}

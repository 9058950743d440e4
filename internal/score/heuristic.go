package score

import (
	"math"
	"strings"

	"github.com/Demwunz/topo/internal/model"
	"github.com/Demwunz/topo/internal/tokenize"
)

// roleMultipliers weight a file's role into the heuristic score (spec.md
// §4.6): implementation code is the most likely to be relevant, generated
// code the least.
var roleMultipliers = map[model.FileRole]float64{
	model.RoleImplementation: 1.0,
	model.RoleConfig:         0.7,
	model.RoleDocumentation:  0.7,
	model.RoleTest:           0.5,
	model.RoleBuild:          0.6,
	model.RoleGenerated:      0.2,
	model.RoleOther:          0.4,
}

// wellKnownDirs get a small score bonus: a file living under one of these
// conventional roots is more likely to be the "real" implementation than a
// same-named file buried somewhere unconventional.
var wellKnownDirs = map[string]bool{
	"src": true, "lib": true, "pkg": true, "cmd": true, "internal": true,
}

// Tuned constants (spec.md: "Heuristic weights... are tuned constants; they
// are contracts for reproducibility, not invariants"). Pinned here, not
// derived from config, since no scenario depends on their exact values —
// only on the relative orderings in spec.md §9 (S1-S6).
const (
	matchWeight          = 0.7
	roleWeight           = 0.3
	depthDecay           = 0.15
	wellKnownBonus       = 1.15
	sizePenaltyThreshold = 100_000 // bytes
)

// HeuristicScorer produces a bounded [0,1] path/role/size signal for one
// query, independent of BM25F term overlap.
type HeuristicScorer struct {
	queryTokens []string
}

// NewHeuristicScorer tokenizes query once; Score is then cheap to call
// across every file in the corpus.
func NewHeuristicScorer(query string) *HeuristicScorer {
	return &HeuristicScorer{queryTokens: tokenize.Content(query)}
}

// Score implements spec.md §4.6's heuristic: path-match fraction (biggest
// factor) and role multiplier combine, then depth penalty, size penalty,
// and a well-known-path bonus scale the result, clamped to [0,1].
func (h *HeuristicScorer) Score(path string, role model.FileRole, sizeBytes uint64) float64 {
	base := matchWeight*h.pathMatchFraction(path) + roleWeight*roleMultipliers[role]

	segments := strings.Split(path, "/")
	base *= math.Exp(-depthDecay * float64(len(segments)-1))
	base *= sizePenalty(sizeBytes)

	if hasWellKnownDir(segments) {
		base *= wellKnownBonus
	}

	if base < 0 {
		return 0
	}
	if base > 1 {
		return 1
	}
	return base
}

func (h *HeuristicScorer) pathMatchFraction(path string) float64 {
	if len(h.queryTokens) == 0 {
		return 0
	}

	pathTokens := tokenize.Path(path)
	present := make(map[string]bool, len(pathTokens))
	for _, t := range pathTokens {
		present[t] = true
	}

	matched := 0
	for _, q := range h.queryTokens {
		if present[q] {
			matched++
		}
	}
	return float64(matched) / float64(len(h.queryTokens))
}

// sizePenalty is an inverse-log penalty that only kicks in above 100 KB.
func sizePenalty(sizeBytes uint64) float64 {
	if sizeBytes <= sizePenaltyThreshold {
		return 1.0
	}
	ratio := float64(sizeBytes) / float64(sizePenaltyThreshold)
	return 1.0 / (1.0 + math.Log10(ratio))
}

// hasWellKnownDir checks every path segment except the filename itself.
func hasWellKnownDir(segments []string) bool {
	for i := 0; i < len(segments)-1; i++ {
		if wellKnownDirs[segments[i]] {
			return true
		}
	}
	return false
}

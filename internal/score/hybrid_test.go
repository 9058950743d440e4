package score

import (
	"testing"

	"github.com/Demwunz/topo/internal/config"
	"github.com/Demwunz/topo/internal/model"
)

func TestHybrid_TermMatchDominatesOverPathOnly(t *testing.T) {
	stats := CorpusStats{TotalDocs: 10, AvgDocLength: 20, DocFrequencies: map[string]uint32{"auth": 4}}
	hybrid := NewHybridScorer(NewBm25fScorer(config.Default().Scoring), NewHeuristicScorer("auth"), stats)

	matching := model.FileEntry{DocLength: 20, TermFrequencies: map[string]model.TermFreqs{"auth": {Body: 3}}}
	nonMatching := model.FileEntry{DocLength: 20, TermFrequencies: map[string]model.TermFreqs{}}

	matchScore, matchSignals := hybrid.Score([]string{"auth"}, "src/unrelated.rs", matching, model.RoleImplementation, 500)
	noMatchScore, _ := hybrid.Score([]string{"auth"}, "src/auth/handler.rs", nonMatching, model.RoleImplementation, 500)

	if matchScore <= noMatchScore {
		t.Errorf("matchScore = %v, noMatchScore = %v; a term hit should dominate a path-only match", matchScore, noMatchScore)
	}
	if matchSignals.BM25F <= 0 {
		t.Errorf("expected nonzero BM25F signal, got %v", matchSignals.BM25F)
	}
}

func TestHybrid_NoTermMatchStillRanksByHeuristic(t *testing.T) {
	stats := CorpusStats{TotalDocs: 10, AvgDocLength: 20, DocFrequencies: map[string]uint32{}}
	hybrid := NewHybridScorer(NewBm25fScorer(config.Default().Scoring), NewHeuristicScorer("handler"), stats)

	empty := model.FileEntry{DocLength: 20, TermFrequencies: map[string]model.TermFreqs{}}

	implScore, _ := hybrid.Score(nil, "src/handler.rs", empty, model.RoleImplementation, 500)
	testScore, _ := hybrid.Score(nil, "tests/handler_test.rs", empty, model.RoleTest, 500)

	if implScore <= testScore {
		t.Errorf("implScore = %v, testScore = %v; with no term matches heuristic signal should still rank impl over test", implScore, testScore)
	}
}

package score

import (
	"testing"

	"github.com/Demwunz/topo/internal/config"
	"github.com/Demwunz/topo/internal/model"
)

func testBM25FScorer() *Bm25fScorer {
	return NewBm25fScorer(config.Default().Scoring)
}

func TestBm25f_NoMatchingTermsScoresZero(t *testing.T) {
	stats := CorpusStats{TotalDocs: 3, AvgDocLength: 10, DocFrequencies: map[string]uint32{"auth": 1}}
	entry := model.FileEntry{DocLength: 10, TermFrequencies: map[string]model.TermFreqs{}}

	got := testBM25FScorer().Score([]string{"widget"}, entry, stats)
	if got != 0 {
		t.Errorf("Score = %v, want 0 for a term absent from the corpus", got)
	}
}

func TestBm25f_MoreFieldOccurrencesScoreHigher(t *testing.T) {
	stats := CorpusStats{TotalDocs: 10, AvgDocLength: 20, DocFrequencies: map[string]uint32{"auth": 3}}
	scorer := testBM25FScorer()

	low := model.FileEntry{DocLength: 20, TermFrequencies: map[string]model.TermFreqs{"auth": {Body: 1}}}
	high := model.FileEntry{DocLength: 20, TermFrequencies: map[string]model.TermFreqs{"auth": {Body: 5}}}

	lowScore := scorer.Score([]string{"auth"}, low, stats)
	highScore := scorer.Score([]string{"auth"}, high, stats)
	if highScore <= lowScore {
		t.Errorf("highScore = %v, lowScore = %v; expected more occurrences to score higher", highScore, lowScore)
	}
}

func TestBm25f_FilenameWeightExceedsBodyWeight(t *testing.T) {
	stats := CorpusStats{TotalDocs: 10, AvgDocLength: 20, DocFrequencies: map[string]uint32{"auth": 3}}
	scorer := testBM25FScorer()

	filenameMatch := model.FileEntry{DocLength: 20, TermFrequencies: map[string]model.TermFreqs{"auth": {Filename: 1}}}
	bodyMatch := model.FileEntry{DocLength: 20, TermFrequencies: map[string]model.TermFreqs{"auth": {Body: 1}}}

	filenameScore := scorer.Score([]string{"auth"}, filenameMatch, stats)
	bodyScore := scorer.Score([]string{"auth"}, bodyMatch, stats)
	if filenameScore <= bodyScore {
		t.Errorf("filenameScore = %v, bodyScore = %v; filename field weight should dominate body", filenameScore, bodyScore)
	}
}

func TestBm25f_RarerTermScoresHigherThanCommonTerm(t *testing.T) {
	stats := CorpusStats{
		TotalDocs:      100,
		AvgDocLength:   20,
		DocFrequencies: map[string]uint32{"rare": 1, "common": 90},
	}
	scorer := testBM25FScorer()

	rareEntry := model.FileEntry{DocLength: 20, TermFrequencies: map[string]model.TermFreqs{"rare": {Body: 1}}}
	commonEntry := model.FileEntry{DocLength: 20, TermFrequencies: map[string]model.TermFreqs{"common": {Body: 1}}}

	rareScore := scorer.Score([]string{"rare"}, rareEntry, stats)
	commonScore := scorer.Score([]string{"common"}, commonEntry, stats)
	if rareScore <= commonScore {
		t.Errorf("rareScore = %v, commonScore = %v; rarer term should score higher (idf)", rareScore, commonScore)
	}
}

func TestBm25f_EmptyCorpusScoresZero(t *testing.T) {
	stats := CorpusStats{}
	entry := model.FileEntry{TermFrequencies: map[string]model.TermFreqs{"auth": {Body: 1}}}
	if got := testBM25FScorer().Score([]string{"auth"}, entry, stats); got != 0 {
		t.Errorf("Score on an empty corpus = %v, want 0", got)
	}
}

func TestBm25f_DuplicateQueryTokensCountedOnce(t *testing.T) {
	stats := CorpusStats{TotalDocs: 10, AvgDocLength: 20, DocFrequencies: map[string]uint32{"auth": 3}}
	entry := model.FileEntry{DocLength: 20, TermFrequencies: map[string]model.TermFreqs{"auth": {Body: 2}}}
	scorer := testBM25FScorer()

	once := scorer.Score([]string{"auth"}, entry, stats)
	repeated := scorer.Score([]string{"auth", "auth", "auth"}, entry, stats)
	if once != repeated {
		t.Errorf("once = %v, repeated = %v; repeating a query token should not change the score", once, repeated)
	}
}

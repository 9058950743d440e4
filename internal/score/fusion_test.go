package score

import (
	"testing"

	"github.com/Demwunz/topo/internal/model"
)

func TestFuse_SumsAcrossSources(t *testing.T) {
	fused := Fuse(60, []string{"a", "b", "c"}, []string{"b", "a", "c"})

	wantA := 1.0/61 + 1.0/62
	wantB := 1.0/62 + 1.0/61
	if fused["a"] != wantA {
		t.Errorf("fused[a] = %v, want %v", fused["a"], wantA)
	}
	if fused["b"] != wantB {
		t.Errorf("fused[b] = %v, want %v", fused["b"], wantB)
	}
	if fused["a"] != fused["b"] {
		t.Errorf("a and b swap rank 1/2 across sources; fused scores should be equal, got a=%v b=%v", fused["a"], fused["b"])
	}
}

func TestFuse_MissingFromOneSourceStillContributes(t *testing.T) {
	fused := Fuse(60, []string{"a", "b"}, []string{"a"})
	want := 1.0/61 + 1.0/61
	if fused["a"] != want {
		t.Errorf("fused[a] = %v, want %v", fused["a"], want)
	}
	wantB := 1.0 / 62
	if fused["b"] != wantB {
		t.Errorf("fused[b] = %v, want %v", fused["b"], wantB)
	}
}

func TestFuseWithPageRank_ReplacesScoreAndReorders(t *testing.T) {
	files := []model.ScoredFile{
		{Path: "low-pagerank.go", Score: 10.0},
		{Path: "high-pagerank.go", Score: 1.0},
	}
	pageRank := map[string]float64{
		"low-pagerank.go":  0.1,
		"high-pagerank.go": 1.0,
	}

	out := FuseWithPageRank(files, pageRank, RRFDefaultK)
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2", len(out))
	}
	if out[0].Path != "high-pagerank.go" {
		t.Errorf("top result = %s, want high-pagerank.go (fused scores tie; path order breaks the tie)", out[0].Path)
	}
	for _, f := range out {
		if f.Signals.PageRank == nil {
			t.Errorf("expected PageRank signal set for %s", f.Path)
		}
	}
}

func TestFuseWithPageRank_FileMissingFromGraphStillIncluded(t *testing.T) {
	files := []model.ScoredFile{
		{Path: "readme.md", Score: 5.0},
		{Path: "core.go", Score: 4.0},
	}
	pageRank := map[string]float64{"core.go": 0.9}

	out := FuseWithPageRank(files, pageRank, RRFDefaultK)
	var sawReadme bool
	for _, f := range out {
		if f.Path == "readme.md" {
			sawReadme = true
			if f.Signals.PageRank != nil {
				t.Error("readme.md has no PageRank entry, Signals.PageRank should stay nil")
			}
		}
	}
	if !sawReadme {
		t.Error("expected readme.md to remain in the fused output")
	}
}

func TestFuseWithPageRank_EmptyInput(t *testing.T) {
	out := FuseWithPageRank(nil, map[string]float64{}, RRFDefaultK)
	if len(out) != 0 {
		t.Errorf("len(out) = %d, want 0", len(out))
	}
}

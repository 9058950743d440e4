package pagerank

import (
	"math"
	"testing"

	"github.com/Demwunz/topo/internal/importgraph"
)

func TestCompute_EmptyGraph(t *testing.T) {
	g := importgraph.NewGraph()
	scores := Compute(g)
	if len(scores) != 0 {
		t.Fatalf("expected empty scores, got %v", scores)
	}
}

func TestCompute_SingleNode(t *testing.T) {
	g := importgraph.NewGraph()
	g.AddNode("main.rs")
	scores := Compute(g)
	if len(scores) != 1 || scores["main.rs"] <= 0 {
		t.Fatalf("expected single positive score, got %v", scores)
	}
}

func TestNormalized_Chain(t *testing.T) {
	// a -> b -> c: c should have the highest PageRank (most downstream).
	g := importgraph.NewGraph()
	g.AddEdge("a.rs", "b.rs")
	g.AddEdge("b.rs", "c.rs")

	scores := Normalized(g)
	if !(scores["c.rs"] > scores["b.rs"] && scores["b.rs"] > scores["a.rs"]) {
		t.Fatalf("expected c > b > a, got %v", scores)
	}
}

func TestNormalized_Star(t *testing.T) {
	// a, b, c all import d: d should have the highest (normalized to 1.0).
	g := importgraph.NewGraph()
	g.AddEdge("a.rs", "d.rs")
	g.AddEdge("b.rs", "d.rs")
	g.AddEdge("c.rs", "d.rs")

	scores := Normalized(g)
	if scores["d.rs"] != 1.0 {
		t.Fatalf("expected d.rs normalized to 1.0, got %v", scores["d.rs"])
	}
	for _, n := range []string{"a.rs", "b.rs", "c.rs"} {
		if scores[n] >= scores["d.rs"] {
			t.Errorf("expected %s < d.rs, got %v", n, scores[n])
		}
	}
}

func TestCompute_Cycle(t *testing.T) {
	// a -> b -> c -> a: all should have roughly equal PageRank.
	g := importgraph.NewGraph()
	g.AddEdge("a.rs", "b.rs")
	g.AddEdge("b.rs", "c.rs")
	g.AddEdge("c.rs", "a.rs")

	scores := Compute(g)
	max, min := 0.0, math.MaxFloat64
	for _, v := range scores {
		if v > max {
			max = v
		}
		if v < min {
			min = v
		}
	}
	if (max-min)/max >= 0.01 {
		t.Fatalf("expected near-equal scores in symmetric cycle, got %v", scores)
	}
}

func TestNormalized_FromImports(t *testing.T) {
	g := importgraph.FromImports([]importgraph.ImportEdge{
		{File: "src/main.rs", Imported: []string{"src/lib.rs"}},
		{File: "src/lib.rs", Imported: []string{"src/auth.rs", "src/db.rs"}},
		{File: "src/handler.rs", Imported: []string{"src/auth.rs"}},
	})

	scores := Normalized(g)
	if scores["src/auth.rs"] <= scores["src/main.rs"] {
		t.Fatalf("expected auth.rs (imported by two files) to outrank main.rs, got %v", scores)
	}
}

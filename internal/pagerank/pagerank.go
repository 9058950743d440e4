// Package pagerank computes PageRank scores over the import graph, so files
// that are widely depended on score higher regardless of term overlap
// (spec.md §4.7).
package pagerank

import "github.com/Demwunz/topo/internal/importgraph"

const (
	damping       = 0.85
	epsilon       = 1e-6
	maxIterations = 100
)

// Compute runs power-iteration PageRank over g and returns a path->score map
// of raw scores that sum to 1 across all nodes (unnormalized).
// Dangling nodes (no outgoing edges) have their rank mass redistributed
// evenly across every node each iteration via the teleport term, rather than
// vanishing from the graph (spec.md §4.7).
func Compute(g *importgraph.Graph) map[string]float64 {
	nodes := g.Nodes()
	n := len(nodes)
	if n == 0 {
		return map[string]float64{}
	}

	initial := 1.0 / float64(n)
	scores := make(map[string]float64, n)
	for _, node := range nodes {
		scores[node] = initial
	}

	incoming := make(map[string][]string, n)
	outDegree := make(map[string]int, n)
	var dangling []string
	for _, node := range nodes {
		incoming[node] = g.Incoming(node)
		deg := len(g.Outgoing(node))
		outDegree[node] = deg
		if deg == 0 {
			dangling = append(dangling, node)
		}
	}

	for iter := 0; iter < maxIterations; iter++ {
		newScores := make(map[string]float64, n)
		maxDiff := 0.0

		danglingMass := 0.0
		for _, node := range dangling {
			danglingMass += scores[node]
		}
		teleport := (1.0-damping)/float64(n) + damping*danglingMass/float64(n)

		for _, node := range nodes {
			rank := teleport

			for _, src := range incoming[node] {
				srcOut := outDegree[src]
				if srcOut == 0 {
					continue
				}
				srcScore := scores[src]
				rank += damping * srcScore / float64(srcOut)
			}

			old := scores[node]
			diff := rank - old
			if diff < 0 {
				diff = -diff
			}
			if diff > maxDiff {
				maxDiff = diff
			}
			newScores[node] = rank
		}

		scores = newScores
		if maxDiff < epsilon {
			break
		}
	}

	return scores
}

// Normalized runs Compute and rescales every score by the maximum, so the
// most-depended-on file in the repo always scores exactly 1.0 (spec.md §4.7).
func Normalized(g *importgraph.Graph) map[string]float64 {
	scores := Compute(g)
	if len(scores) == 0 {
		return scores
	}

	max := 0.0
	for _, v := range scores {
		if v > max {
			max = v
		}
	}
	if max == 0 {
		return scores
	}

	out := make(map[string]float64, len(scores))
	for k, v := range scores {
		out[k] = v / max
	}
	return out
}

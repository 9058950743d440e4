package importgraph

import (
	"github.com/dominikbraun/graph"
)

// Graph is a directed graph of file-to-file import edges, backed by
// dominikbraun/graph's generic directed graph over path strings.
type Graph struct {
	g     graph.Graph[string, string]
	nodes []string
	seen  map[string]bool
}

// NewGraph returns an empty import graph.
func NewGraph() *Graph {
	return &Graph{
		g:    graph.New(graph.StringHash, graph.Directed()),
		seen: map[string]bool{},
	}
}

// AddNode registers a file path as a graph vertex, idempotently.
func (g *Graph) AddNode(path string) {
	if g.seen[path] {
		return
	}
	g.seen[path] = true
	g.nodes = append(g.nodes, path)
	_ = g.g.AddVertex(path)
}

// AddEdge records that from imports to, adding both as nodes first.
func (g *Graph) AddEdge(from, to string) {
	g.AddNode(from)
	g.AddNode(to)
	_ = g.g.AddEdge(from, to)
}

// ImportEdge is one file's already-resolved outgoing imports.
type ImportEdge struct {
	File     string
	Imported []string
}

// FromImports builds a Graph directly from (file, imported-files) pairs,
// skipping resolution — used when callers already have resolved targets.
func FromImports(imports []ImportEdge) *Graph {
	g := NewGraph()
	for _, e := range imports {
		g.AddNode(e.File)
		for _, dep := range e.Imported {
			g.AddEdge(e.File, dep)
		}
	}
	return g
}

// Nodes returns every registered path, in insertion order.
func (g *Graph) Nodes() []string { return g.nodes }

// NodeCount returns the number of vertices.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the total number of directed edges.
func (g *Graph) EdgeCount() int {
	adj, err := g.g.AdjacencyMap()
	if err != nil {
		return 0
	}
	total := 0
	for _, targets := range adj {
		total += len(targets)
	}
	return total
}

// Outgoing returns the paths that `from` imports.
func (g *Graph) Outgoing(from string) []string {
	adj, err := g.g.AdjacencyMap()
	if err != nil {
		return nil
	}
	targets := adj[from]
	out := make([]string, 0, len(targets))
	for t := range targets {
		out = append(out, t)
	}
	return out
}

// Incoming returns the paths that import `to`.
func (g *Graph) Incoming(to string) []string {
	pred, err := g.g.PredecessorMap()
	if err != nil {
		return nil
	}
	sources := pred[to]
	out := make([]string, 0, len(sources))
	for s := range sources {
		out = append(out, s)
	}
	return out
}

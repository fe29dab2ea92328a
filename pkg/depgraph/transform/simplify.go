// Package transform implements structural transformations over hierarchical
// dependency graphs: transitive reduction, cycle extraction, flattening,
// merging, and edge reversal.
//
// Every function is pure: it flattens its input through [depgraph.FlatView]
// where an algorithm needs a flat, index-addressed graph, runs the algorithm,
// and projects the result back onto a freshly built hierarchy. Inputs are
// never mutated.
package transform

import (
	"gonum.org/v1/gonum/graph/topo"

	"github.com/matzehuels/depgraph/pkg/depgraph"
	"github.com/matzehuels/depgraph/pkg/errors"
)

// Simplify removes redundant edges via transitive reduction.
//
// If A→B→C and A→C all exist, the direct A→C edge is implied by the longer
// path and is removed. Only the edge set changes: nodes, subgraph structure,
// and attributes are preserved at every nesting level. Edges with
// unresolvable endpoints cannot survive the reduction and are dropped.
//
// The graph must be a DAG. A cycle (including a self-loop) yields an
// ErrCodeCyclicGraph error and no partial result.
func Simplify(g *depgraph.Graph) (*depgraph.Graph, error) {
	view := depgraph.NewFlatView(g)

	if len(view.SelfLoops) > 0 {
		return nil, errors.New(errors.ErrCodeCyclicGraph,
			"node %q depends on itself; transitive reduction requires a DAG", view.IDs[view.SelfLoops[0]])
	}

	sorted, err := topo.Sort(view.G)
	if err != nil {
		return nil, errors.New(errors.ErrCodeCyclicGraph,
			"graph contains cycles; transitive reduction requires a DAG. Run 'depgraph cycles' to identify them")
	}

	// Re-index into topological positions so every edge points forward.
	n := len(sorted)
	pos := make([]int, view.Len())
	topoID := make([]int64, n)
	for p, node := range sorted {
		pos[node.ID()] = p
		topoID[p] = node.ID()
	}

	adj := make([][]int, n)
	edges := view.G.Edges()
	for edges.Next() {
		e := edges.Edge()
		from, to := pos[e.From().ID()], pos[e.To().ID()]
		adj[from] = append(adj[from], to)
	}

	reach := reachability(adj)

	// An edge u→v is redundant when another successor of u already reaches v.
	keep := make(map[[2]string]bool)
	for u := range adj {
		for _, v := range adj[u] {
			redundant := false
			for _, w := range adj[u] {
				if w != v && reach[w][v] {
					redundant = true
					break
				}
			}
			if !redundant {
				keep[[2]string{view.IDs[topoID[u]], view.IDs[topoID[v]]}] = true
			}
		}
	}

	return g.FilterEdges(func(e depgraph.Edge) bool {
		return keep[[2]string{e.From, e.To}]
	}), nil
}

// reachability computes the transitive closure of a topologically indexed
// adjacency list. reach[u][v] reports whether v is reachable from u via one
// or more edges. Processing in reverse topological order lets each node reuse
// its successors' already-complete rows.
func reachability(adj [][]int) [][]bool {
	n := len(adj)
	reach := make([][]bool, n)
	for u := n - 1; u >= 0; u-- {
		reach[u] = make([]bool, n)
		for _, v := range adj[u] {
			reach[u][v] = true
			for w, ok := range reach[v] {
				if ok {
					reach[u][w] = true
				}
			}
		}
	}
	return reach
}

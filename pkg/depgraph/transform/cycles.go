package transform

import (
	"fmt"

	"gonum.org/v1/gonum/graph/topo"

	"github.com/matzehuels/depgraph/pkg/depgraph"
)

// Cycles extracts the strongly connected components that form cycles.
//
// Each SCC with two or more nodes becomes a subgraph named cycle_0, cycle_1,
// and so on, holding the member nodes and the edges between them. Edges that
// connect one cycle to another are promoted to the root. Nodes outside any
// cycle are dropped entirely, as are self-loops: a node that only depends on
// itself is not useful cycle-breaking output. A graph without cycles yields
// an empty graph.
func Cycles(g *depgraph.Graph) *depgraph.Graph {
	view := depgraph.NewFlatView(g)

	component := make(map[string]int)
	var cycles [][]string
	for _, scc := range topo.TarjanSCC(view.G) {
		if len(scc) < 2 {
			continue
		}
		members := make([]string, 0, len(scc))
		for _, node := range scc {
			id := view.IDs[node.ID()]
			component[id] = len(cycles)
			members = append(members, id)
		}
		cycles = append(cycles, members)
	}

	out := depgraph.New()
	out.ID = g.ID
	if len(cycles) == 0 {
		return out
	}

	for i, members := range cycles {
		inCycle := make(map[string]bool, len(members))
		for _, id := range members {
			inCycle[id] = true
		}
		sub := depgraph.New()
		sub.ID = fmt.Sprintf("cycle_%d", i)
		for pair := g.AllNodes().Oldest(); pair != nil; pair = pair.Next() {
			if inCycle[pair.Key] {
				sub.AddNode(pair.Key, pair.Value.Clone())
			}
		}
		for _, e := range g.AllEdges() {
			if inCycle[e.From] && inCycle[e.To] {
				sub.AddEdge(e.Clone())
			}
		}
		out.Subgraphs = append(out.Subgraphs, sub)
	}

	// Edges bridging two distinct cycles live at the root.
	for _, e := range g.AllEdges() {
		from, fromOK := component[e.From]
		to, toOK := component[e.To]
		if fromOK && toOK && from != to {
			out.AddEdge(e.Clone())
		}
	}

	return out
}

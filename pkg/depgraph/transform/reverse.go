package transform

import "github.com/matzehuels/depgraph/pkg/depgraph"

// Reverse flips the direction of every edge at every nesting level. Nodes,
// attributes, and subgraph structure are untouched, so a "depends on" graph
// becomes a "depended on by" graph. Reverse is its own inverse.
func Reverse(g *depgraph.Graph) *depgraph.Graph {
	out := g.Clone()
	reverseEdges(out)
	return out
}

func reverseEdges(g *depgraph.Graph) {
	for i := range g.Edges {
		g.Edges[i].From, g.Edges[i].To = g.Edges[i].To, g.Edges[i].From
	}
	for _, sub := range g.Subgraphs {
		reverseEdges(sub)
	}
}

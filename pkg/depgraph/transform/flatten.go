package transform

import "github.com/matzehuels/depgraph/pkg/depgraph"

// Flatten collapses all subgraph structure into a single flat graph. Nodes
// keep their first-wins deduplicated definitions and edges keep document
// order, matching the traversal of AllNodes and AllEdges. Flattening an
// already flat graph is a no-op apart from the copy.
func Flatten(g *depgraph.Graph) *depgraph.Graph {
	out := depgraph.New()
	out.ID = g.ID
	out.Attrs = g.Attrs.Clone()
	for pair := g.AllNodes().Oldest(); pair != nil; pair = pair.Next() {
		out.AddNode(pair.Key, pair.Value.Clone())
	}
	for _, e := range g.AllEdges() {
		out.AddEdge(e.Clone())
	}
	return out
}

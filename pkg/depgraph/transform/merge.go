package transform

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/matzehuels/depgraph/pkg/depgraph"
)

// Merge combines multiple graphs into one.
//
// Nodes are unioned by ID with later definitions overwriting earlier ones.
// Edges are deduplicated by (from, to): the first occurrence fixes the label,
// and attributes merge with earlier values winning. Subgraphs with matching
// IDs merge recursively; unnamed subgraphs are kept as-is in input order.
// Merging zero graphs yields an empty graph.
func Merge(graphs ...*depgraph.Graph) *depgraph.Graph {
	out := depgraph.New()
	if len(graphs) == 0 {
		return out
	}
	out.ID = graphs[0].ID

	edges := orderedmap.New[[2]string, *depgraph.Edge]()
	named := orderedmap.New[string, []*depgraph.Graph]()

	for _, g := range graphs {
		mergeAttrs(out.Attrs, g.Attrs)
		for pair := g.Nodes.Oldest(); pair != nil; pair = pair.Next() {
			out.AddNode(pair.Key, pair.Value.Clone())
		}
		for _, e := range g.Edges {
			key := [2]string{e.From, e.To}
			if existing, ok := edges.Get(key); ok {
				mergeAttrs(existing.Attrs, e.Attrs)
				continue
			}
			clone := e.Clone()
			if clone.Attrs == nil {
				clone.Attrs = depgraph.NewAttrs()
			}
			edges.Set(key, &clone)
		}
		for _, sub := range g.Subgraphs {
			if sub.ID == "" {
				out.Subgraphs = append(out.Subgraphs, sub.Clone())
				continue
			}
			group, _ := named.Get(sub.ID)
			named.Set(sub.ID, append(group, sub))
		}
	}

	for pair := edges.Oldest(); pair != nil; pair = pair.Next() {
		out.AddEdge(*pair.Value)
	}
	for pair := named.Oldest(); pair != nil; pair = pair.Next() {
		out.Subgraphs = append(out.Subgraphs, Merge(pair.Value...))
	}
	return out
}

// mergeAttrs copies src entries into dst without overwriting existing keys.
func mergeAttrs(dst, src *depgraph.Attrs) {
	for k, v := range src.All() {
		dst.SetDefault(k, v)
	}
}

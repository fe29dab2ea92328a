package transform

import (
	"github.com/matzehuels/depgraph/pkg/depgraph"
)

// SliceOptions configures [Slice].
type SliceOptions struct {
	// DropOrphans removes nodes that are not inside any subgraph, along
	// with their edges.
	DropOrphans bool
	// Recursive applies the cut independently at every hierarchy level
	// instead of only across top-level groups.
	Recursive bool
}

// Slice cuts edges that cross subgraph boundaries, isolating each subgraph
// into a disconnected component.
//
// By default every node is assigned to the top-level subgraph it sits under,
// however deeply nested, and an edge survives only when both endpoints share
// that group. Root-level nodes form no group: edges among them survive
// unless DropOrphans is set. In recursive mode the same cut is applied at
// each level against its immediate child subgraphs, so edges between an
// inner subgraph and its parent's own nodes are cut too.
func Slice(g *depgraph.Graph, opts SliceOptions) *depgraph.Graph {
	if opts.Recursive {
		return sliceLevel(g, opts.DropOrphans)
	}
	groups := make(map[string]int)
	for i, sub := range g.Subgraphs {
		assignGroup(sub, groups, i)
	}
	return rebuildSliced(g, groups, opts.DropOrphans)
}

// assignGroup maps every node under sub, at any depth, to group.
func assignGroup(sub *depgraph.Graph, groups map[string]int, group int) {
	for pair := sub.Nodes.Oldest(); pair != nil; pair = pair.Next() {
		groups[pair.Key] = group
	}
	for _, child := range sub.Subgraphs {
		assignGroup(child, groups, group)
	}
}

// edgeAllowed keeps an edge when both endpoints share a group, or when both
// are root-level and orphans are kept.
func edgeAllowed(e depgraph.Edge, groups map[string]int, dropOrphans bool) bool {
	from, fromOK := groups[e.From]
	to, toOK := groups[e.To]
	switch {
	case fromOK && toOK:
		return from == to
	case !fromOK && !toOK:
		return !dropOrphans
	default:
		return false
	}
}

// filterLevel copies one level's own nodes and edges through the group cut.
func filterLevel(g *depgraph.Graph, groups map[string]int, dropOrphans bool) *depgraph.Graph {
	out := depgraph.New()
	out.ID = g.ID
	out.Attrs = g.Attrs.Clone()
	for pair := g.Nodes.Oldest(); pair != nil; pair = pair.Next() {
		if _, grouped := groups[pair.Key]; grouped || !dropOrphans {
			out.AddNode(pair.Key, pair.Value.Clone())
		}
	}
	for _, e := range g.Edges {
		if edgeAllowed(e, groups, dropOrphans) {
			out.AddEdge(e.Clone())
		}
	}
	return out
}

// rebuildSliced applies a single global group map at every level.
func rebuildSliced(g *depgraph.Graph, groups map[string]int, dropOrphans bool) *depgraph.Graph {
	out := filterLevel(g, groups, dropOrphans)
	for _, sub := range g.Subgraphs {
		out.Subgraphs = append(out.Subgraphs, rebuildSliced(sub, groups, dropOrphans))
	}
	return out
}

// sliceLevel regroups at each level. A level without subgraphs has no
// boundaries to cut and is kept as is.
func sliceLevel(g *depgraph.Graph, dropOrphans bool) *depgraph.Graph {
	if len(g.Subgraphs) == 0 {
		return g.Clone()
	}
	groups := make(map[string]int)
	for i, sub := range g.Subgraphs {
		assignGroup(sub, groups, i)
	}
	out := filterLevel(g, groups, dropOrphans)
	for _, sub := range g.Subgraphs {
		out.Subgraphs = append(out.Subgraphs, sliceLevel(sub, dropOrphans))
	}
	return out
}

// Package diff computes structural differences between two dependency graphs
// and renders them as annotated graphs, change lists, or summaries.
//
// The comparison is by identity, not position: nodes match on ID, edges as a
// multiset on the (from, to, label) triple. Node attribute or label changes
// surface as Changed; a node whose definitions match but whose subgraph
// location differs is Moved. Edges have no Changed state, attribute-only
// differences leave an edge Unchanged.
package diff

import (
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/matzehuels/depgraph/pkg/depgraph"
)

// Status classifies a node or edge in a comparison.
type Status int

const (
	StatusUnchanged Status = iota
	StatusAdded
	StatusRemoved
	StatusChanged
	StatusMoved
)

// String returns the lowercase name used in diff attributes and summaries.
func (s Status) String() string {
	switch s {
	case StatusAdded:
		return "added"
	case StatusRemoved:
		return "removed"
	case StatusChanged:
		return "changed"
	case StatusMoved:
		return "moved"
	default:
		return "unchanged"
	}
}

// NodeDiff records the fate of a single node. After is nil for removed nodes,
// Before is nil for added ones.
type NodeDiff struct {
	ID     string
	Status Status
	Before *depgraph.NodeInfo
	After  *depgraph.NodeInfo
}

// EdgeDiff records the fate of a single edge. The embedded edge carries the
// attributes from the side it was taken from: after for added and unchanged,
// before for removed.
type EdgeDiff struct {
	Edge   depgraph.Edge
	Status Status
}

// GraphDiff is the result of comparing two graphs. Nodes are ordered as in
// the after graph with removed nodes appended in before order; edges follow
// the same convention.
type GraphDiff struct {
	Nodes *orderedmap.OrderedMap[string, *NodeDiff]
	Edges []EdgeDiff
}

// Compare diffs before against after. Comparing a graph against itself
// yields only Unchanged entries.
func Compare(before, after *depgraph.Graph) *GraphDiff {
	d := &GraphDiff{Nodes: orderedmap.New[string, *NodeDiff]()}

	beforeNodes := before.AllNodes()
	afterNodes := after.AllNodes()
	beforePaths := subgraphPaths(before)
	afterPaths := subgraphPaths(after)

	for pair := afterNodes.Oldest(); pair != nil; pair = pair.Next() {
		nd := &NodeDiff{ID: pair.Key, After: pair.Value}
		if prev, ok := beforeNodes.Get(pair.Key); !ok {
			nd.Status = StatusAdded
		} else {
			nd.Before = prev
			switch {
			case !prev.Equal(pair.Value):
				nd.Status = StatusChanged
			case beforePaths[pair.Key] != afterPaths[pair.Key]:
				nd.Status = StatusMoved
			default:
				nd.Status = StatusUnchanged
			}
		}
		d.Nodes.Set(pair.Key, nd)
	}
	for pair := beforeNodes.Oldest(); pair != nil; pair = pair.Next() {
		if _, ok := afterNodes.Get(pair.Key); !ok {
			d.Nodes.Set(pair.Key, &NodeDiff{ID: pair.Key, Status: StatusRemoved, Before: pair.Value})
		}
	}

	// Edges match as a multiset: each after occurrence consumes one before
	// occurrence of the same key, and the surplus on either side is reported.
	remaining := make(map[[3]string]int)
	for _, e := range before.AllEdges() {
		remaining[edgeKey(e)]++
	}
	for _, e := range after.AllEdges() {
		key := edgeKey(e)
		status := StatusAdded
		if remaining[key] > 0 {
			status = StatusUnchanged
			remaining[key]--
		}
		d.Edges = append(d.Edges, EdgeDiff{Edge: e.Clone(), Status: status})
	}
	for _, e := range before.AllEdges() {
		key := edgeKey(e)
		if remaining[key] > 0 {
			remaining[key]--
			d.Edges = append(d.Edges, EdgeDiff{Edge: e.Clone(), Status: StatusRemoved})
		}
	}

	return d
}

// HasChanges reports whether any node or edge is not Unchanged.
func (d *GraphDiff) HasChanges() bool {
	for pair := d.Nodes.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value.Status != StatusUnchanged {
			return true
		}
	}
	for _, e := range d.Edges {
		if e.Status != StatusUnchanged {
			return true
		}
	}
	return false
}

func edgeKey(e depgraph.Edge) [3]string {
	return [3]string{e.From, e.To, e.Label}
}

// subgraphPaths maps every node ID to the path of subgraphs containing it.
// Unnamed subgraphs contribute their ordinal so position changes between
// anonymous groups still register.
func subgraphPaths(g *depgraph.Graph) map[string]string {
	paths := make(map[string]string)
	var walk func(g *depgraph.Graph, prefix string)
	walk = func(g *depgraph.Graph, prefix string) {
		for pair := g.Nodes.Oldest(); pair != nil; pair = pair.Next() {
			if _, seen := paths[pair.Key]; !seen {
				paths[pair.Key] = prefix
			}
		}
		for i, sub := range g.Subgraphs {
			name := sub.ID
			if name == "" {
				name = "#" + strconv.Itoa(i)
			}
			walk(sub, prefix+"/"+name)
		}
	}
	walk(g, "")
	return paths
}

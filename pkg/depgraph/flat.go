package depgraph

import (
	"gonum.org/v1/gonum/graph/simple"
)

// FlatView is a flattened, index-addressed view of a [Graph], bridging the
// hierarchical model to gonum's graph algorithms. Every node reachable via
// [Graph.AllNodes] gets exactly one dense index; the indices double as gonum
// node IDs.
//
// Edges whose endpoints do not resolve anywhere in the hierarchy are excluded
// from the gonum graph and collected in Dangling; whether that is an error is
// decided per algorithm. Self-loops are likewise kept out of the gonum graph
// (simple graphs reject them) and recorded in SelfLoops.
//
// The view is a read-side adapter: it never mutates the source graph.
type FlatView struct {
	// Source is the graph the view was built from.
	Source *Graph
	// G is the flattened directed graph; node IDs are 0..len(IDs)-1.
	G *simple.DirectedGraph
	// IDs maps dense index to node ID.
	IDs []string
	// Index maps node ID to dense index.
	Index map[string]int64
	// SelfLoops lists indices of nodes with an edge to themselves.
	SelfLoops []int64
	// Dangling lists edges with at least one unresolvable endpoint.
	Dangling []Edge
}

// NewFlatView flattens g into a FlatView. Node order follows [Graph.AllNodes].
func NewFlatView(g *Graph) *FlatView {
	allNodes := g.AllNodes()

	view := &FlatView{
		Source: g,
		G:      simple.NewDirectedGraph(),
		IDs:    make([]string, 0, allNodes.Len()),
		Index:  make(map[string]int64, allNodes.Len()),
	}

	for pair := allNodes.Oldest(); pair != nil; pair = pair.Next() {
		idx := int64(len(view.IDs))
		view.Index[pair.Key] = idx
		view.IDs = append(view.IDs, pair.Key)
		view.G.AddNode(simple.Node(idx))
	}

	for _, e := range g.AllEdges() {
		from, okFrom := view.Index[e.From]
		to, okTo := view.Index[e.To]
		switch {
		case !okFrom || !okTo:
			view.Dangling = append(view.Dangling, e)
		case from == to:
			view.SelfLoops = append(view.SelfLoops, from)
		default:
			view.G.SetEdge(simple.Edge{F: simple.Node(from), T: simple.Node(to)})
		}
	}

	return view
}

// Len returns the number of flattened nodes.
func (v *FlatView) Len() int { return len(v.IDs) }

// Roots returns the indices of nodes with no incoming edges, in index order.
func (v *FlatView) Roots() []int64 {
	var roots []int64
	for idx := range v.IDs {
		if v.G.To(int64(idx)).Len() == 0 {
			roots = append(roots, int64(idx))
		}
	}
	return roots
}

// BFS walks from seeds following outgoing edges (or incoming when reverse is
// set) and returns the set of visited indices. Seeds are always included.
// maxDepth < 0 means unbounded; maxDepth == 0 returns just the seeds.
func (v *FlatView) BFS(seeds []int64, reverse bool, maxDepth int) map[int64]bool {
	type item struct {
		idx   int64
		depth int
	}
	visited := make(map[int64]bool)
	var queue []item
	for _, s := range seeds {
		if !visited[s] {
			visited[s] = true
			queue = append(queue, item{s, 0})
		}
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if maxDepth >= 0 && cur.depth >= maxDepth {
			continue
		}
		neighbors := v.G.From(cur.idx)
		if reverse {
			neighbors = v.G.To(cur.idx)
		}
		for neighbors.Next() {
			n := neighbors.Node().ID()
			if !visited[n] {
				visited[n] = true
				queue = append(queue, item{n, cur.depth + 1})
			}
		}
	}

	return visited
}

// Filter projects a set of kept indices back onto the source hierarchy,
// preserving subgraph structure and dropping emptied subgraphs.
func (v *FlatView) Filter(keep map[int64]bool) *Graph {
	ids := make(map[string]bool, len(keep))
	for idx := range keep {
		if idx >= 0 && idx < int64(len(v.IDs)) {
			ids[v.IDs[idx]] = true
		}
	}
	return v.Source.FilterNodes(ids)
}

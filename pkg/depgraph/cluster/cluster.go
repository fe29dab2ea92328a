// Package cluster groups graph nodes into communities and reshapes the graph
// so each community becomes a subgraph.
//
// Two algorithms are available: [LabelPropagation], a lightweight in-house
// implementation, and [Louvain], which delegates modularity optimization to
// gonum. Both consume the same [Options] and produce a [Partition] that can
// be projected back onto the source graph with [Partition.Graph].
package cluster

import (
	"fmt"

	"github.com/matzehuels/depgraph/pkg/depgraph"
)

// Options configures a clustering run.
type Options struct {
	// Directed treats edges as one-way when building adjacency. When false,
	// every edge also connects its target back to its source.
	Directed bool

	// MaxIterations bounds label propagation passes. Zero or negative means
	// the default of 100.
	MaxIterations int

	// Seed controls shuffling of the node visit order. Nil disables
	// shuffling entirely, which keeps unseeded runs deterministic.
	Seed *int64

	// Resolution tunes Louvain community granularity. Values above 1 favor
	// smaller communities. Zero means the default of 1.0.
	Resolution float64
}

// Partition is an ordered list of clusters, each an ordered list of node IDs.
// Every node of the clustered graph appears in exactly one cluster.
type Partition [][]string

// Algorithm is a community detection strategy.
type Algorithm interface {
	// Cluster partitions the nodes of g.
	Cluster(g *depgraph.Graph, opts Options) (Partition, error)
}

// Graph projects the partition onto src, producing a new graph with one
// subgraph per cluster named cluster_0, cluster_1, and so on. Edges within a
// cluster move into its subgraph; edges between two different clusters are
// promoted to the root. Edges touching a node outside the partition are
// dropped. Node definitions and order follow src.
func (p Partition) Graph(src *depgraph.Graph) *depgraph.Graph {
	out := depgraph.New()
	out.ID = src.ID

	clusterOf := make(map[string]int)
	for i, members := range p {
		for _, id := range members {
			clusterOf[id] = i
		}
	}

	for i, members := range p {
		inCluster := make(map[string]bool, len(members))
		for _, id := range members {
			inCluster[id] = true
		}
		sub := depgraph.New()
		sub.ID = fmt.Sprintf("cluster_%d", i)
		for pair := src.AllNodes().Oldest(); pair != nil; pair = pair.Next() {
			if inCluster[pair.Key] {
				sub.AddNode(pair.Key, pair.Value.Clone())
			}
		}
		for _, e := range src.AllEdges() {
			if inCluster[e.From] && inCluster[e.To] {
				sub.AddEdge(e.Clone())
			}
		}
		out.Subgraphs = append(out.Subgraphs, sub)
	}

	for _, e := range src.AllEdges() {
		from, fromOK := clusterOf[e.From]
		to, toOK := clusterOf[e.To]
		if fromOK && toOK && from != to {
			out.AddEdge(e.Clone())
		}
	}

	return out
}

// adjacency builds per-node deduplicated neighbor lists from a flat view.
// Self-loops count as a node neighboring itself. In undirected mode incoming
// edges contribute neighbors as well.
func adjacency(view *depgraph.FlatView, directed bool) [][]int64 {
	n := view.Len()
	loops := make(map[int64]bool, len(view.SelfLoops))
	for _, id := range view.SelfLoops {
		loops[id] = true
	}
	adj := make([][]int64, n)
	for i := int64(0); i < int64(n); i++ {
		seen := make(map[int64]bool)
		add := func(id int64) {
			if !seen[id] {
				seen[id] = true
				adj[i] = append(adj[i], id)
			}
		}
		for it := view.G.From(i); it.Next(); {
			add(it.Node().ID())
		}
		if !directed {
			for it := view.G.To(i); it.Next(); {
				add(it.Node().ID())
			}
		}
		if loops[i] {
			add(i)
		}
	}
	return adj
}

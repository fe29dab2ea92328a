package cluster

import (
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/community"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/matzehuels/depgraph/pkg/depgraph"
	"github.com/matzehuels/depgraph/pkg/errors"
)

// Louvain clusters nodes by modularity optimization, delegated to gonum's
// community detection. Compared to [LabelPropagation] it tends to find
// larger, better separated communities and supports a resolution parameter.
type Louvain struct{}

// Cluster implements [Algorithm].
func (Louvain) Cluster(g *depgraph.Graph, opts Options) (Partition, error) {
	view := depgraph.NewFlatView(g)
	if view.Len() == 0 {
		return nil, nil
	}

	resolution := opts.Resolution
	if resolution == 0 {
		resolution = 1.0
	}

	var src rand.Source
	if opts.Seed != nil {
		src = rand.NewPCG(uint64(*opts.Seed), 0)
	}

	var input graph.Graph = view.G
	if !opts.Directed {
		input = undirect(view)
	}

	reduced, err := modularize(input, resolution, src)
	if err != nil {
		return nil, err
	}

	var partition Partition
	for _, comm := range reduced.Communities() {
		members := make(map[string]bool, len(comm))
		for _, node := range comm {
			members[view.IDs[node.ID()]] = true
		}
		ids := make([]string, 0, len(members))
		for id := range members {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		partition = append(partition, ids)
	}
	sort.Slice(partition, func(i, j int) bool {
		return partition[i][0] < partition[j][0]
	})
	return partition, nil
}

// modularize wraps community.Modularize, which panics on inputs it cannot
// handle rather than returning an error.
func modularize(g graph.Graph, resolution float64, src rand.Source) (c community.ReducedGraph, err error) {
	defer func() {
		if r := recover(); r != nil {
			c = nil
			err = errors.New(errors.ErrCodeClusteringFailed, "community detection failed: %v", r)
		}
	}()
	return community.Modularize(g, resolution, src), nil
}

// undirect collapses the flat directed graph into an undirected one. Parallel
// edges in opposite directions collapse to a single undirected edge.
func undirect(view *depgraph.FlatView) *simple.UndirectedGraph {
	u := simple.NewUndirectedGraph()
	for i := int64(0); i < int64(view.Len()); i++ {
		u.AddNode(simple.Node(i))
	}
	edges := view.G.Edges()
	for edges.Next() {
		e := edges.Edge()
		u.SetEdge(simple.Edge{F: simple.Node(e.From().ID()), T: simple.Node(e.To().ID())})
	}
	return u
}

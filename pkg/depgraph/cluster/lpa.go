package cluster

import (
	"math/rand/v2"
	"sort"

	"github.com/matzehuels/depgraph/pkg/depgraph"
)

const defaultMaxIterations = 100

// LabelPropagation clusters nodes with the label propagation algorithm.
//
// Every node starts with a unique label. Each pass visits every node and
// adopts the label most common among its neighbors, breaking ties toward the
// smallest label. The process stops when a full pass changes nothing or the
// iteration limit is hit. Nodes sharing a final label form a cluster;
// isolated nodes keep their own label and end up in singleton clusters.
//
// Without a seed no shuffling happens and the result is fully deterministic.
// The tie-breaking rule makes the per-pass outcome independent of visit
// order, so seeding mostly affects which of several equally good stable
// states is reached first.
type LabelPropagation struct{}

// Cluster implements [Algorithm].
func (LabelPropagation) Cluster(g *depgraph.Graph, opts Options) (Partition, error) {
	view := depgraph.NewFlatView(g)
	n := view.Len()
	if n == 0 {
		return nil, nil
	}

	adj := adjacency(view, opts.Directed)

	labels := make([]int, n)
	order := make([]int, n)
	for i := range labels {
		labels[i] = i
		order[i] = i
	}

	var rng *rand.Rand
	if opts.Seed != nil {
		rng = rand.New(rand.NewPCG(uint64(*opts.Seed), 0))
	}

	maxIter := opts.MaxIterations
	if maxIter <= 0 {
		maxIter = defaultMaxIterations
	}

	for iter := 0; iter < maxIter; iter++ {
		if rng != nil {
			rng.Shuffle(n, func(i, j int) { order[i], order[j] = order[j], order[i] })
		}
		changed := false
		for _, i := range order {
			if len(adj[i]) == 0 {
				continue
			}
			counts := make(map[int]int, len(adj[i]))
			for _, nb := range adj[i] {
				counts[labels[nb]]++
			}
			best, bestCount := labels[i], counts[labels[i]]
			for label, count := range counts {
				if count > bestCount || (count == bestCount && label < best) {
					best, bestCount = label, count
				}
			}
			if best != labels[i] {
				labels[i] = best
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	// Group by final label, clusters ordered by ascending label.
	groups := make(map[int][]string)
	for i, label := range labels {
		groups[label] = append(groups[label], view.IDs[i])
	}
	keys := make([]int, 0, len(groups))
	for label := range groups {
		keys = append(keys, label)
	}
	sort.Ints(keys)

	partition := make(Partition, 0, len(keys))
	for _, label := range keys {
		partition = append(partition, groups[label])
	}
	return partition, nil
}

package transform

import (
	"github.com/matzehuels/depgraph/pkg/depgraph"
)

// BetweenOptions configures [Between]. Include patterns select the query
// endpoints; Exclude patterns remove nodes from the result afterwards.
// Multiple patterns on either side combine with OR.
type BetweenOptions struct {
	Include []string
	Exclude []string
	Key     MatchKey
}

// Between extracts the subgraph formed by all directed paths between any
// pair of nodes matched by the include patterns.
//
// For matched nodes q1..qk it computes forward and backward reachability
// from each, then keeps every node lying on a directed path from qi to qj
// for some ordered pair with i != j. Fewer than two matches yield an empty
// graph, since no path can exist.
func Between(g *depgraph.Graph, opts BetweenOptions) (*depgraph.Graph, error) {
	include, err := NewMatcher(opts.Include, false)
	if err != nil {
		return nil, err
	}
	view := depgraph.NewFlatView(g)

	var matched []int64
	for pair := g.AllNodes().Oldest(); pair != nil; pair = pair.Next() {
		if include.Match(opts.Key.Text(pair.Key, pair.Value)) {
			matched = append(matched, view.Index[pair.Key])
		}
	}
	if len(matched) < 2 {
		return view.Filter(nil), nil
	}

	forwards := make([]map[int64]bool, len(matched))
	backwards := make([]map[int64]bool, len(matched))
	for i, q := range matched {
		forwards[i] = view.BFS([]int64{q}, false, -1)
		backwards[i] = view.BFS([]int64{q}, true, -1)
	}

	// A node sits on a qi -> qj path exactly when it is forward-reachable
	// from qi and backward-reachable from qj.
	keep := make(map[int64]bool)
	for i, fwd := range forwards {
		for j, bwd := range backwards {
			if i == j {
				continue
			}
			for node := range fwd {
				if bwd[node] {
					keep[node] = true
				}
			}
		}
	}

	if len(opts.Exclude) > 0 {
		exclude, err := NewMatcher(opts.Exclude, false)
		if err != nil {
			return nil, err
		}
		for pair := g.AllNodes().Oldest(); pair != nil; pair = pair.Next() {
			if exclude.Match(opts.Key.Text(pair.Key, pair.Value)) {
				delete(keep, view.Index[pair.Key])
			}
		}
	}

	return view.Filter(keep), nil
}

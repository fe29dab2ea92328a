package query

import (
	"sort"

	"gonum.org/v1/gonum/graph/topo"

	"github.com/matzehuels/depgraph/pkg/depgraph"
	"github.com/matzehuels/depgraph/pkg/depgraph/transform"
)

// Selection picks the initial node set for a listing. The zero value selects
// every node.
type Selection string

const (
	SelectAll    Selection = "all"
	SelectRoots  Selection = "roots"
	SelectLeaves Selection = "leaves"
)

// NodeSort orders a node listing. The numeric orders sort descending by
// count, ties broken by node ID; topo falls back to traversal order when the
// graph has cycles.
type NodeSort string

const (
	SortNone        NodeSort = "none"
	SortTopo        NodeSort = "topo"
	SortInDegree    NodeSort = "in-degree"
	SortOutDegree   NodeSort = "out-degree"
	SortAncestors   NodeSort = "ancestors"
	SortDescendants NodeSort = "descendants"
)

// NodesOptions configures a node listing. The zero value lists every node in
// traversal order.
type NodesOptions struct {
	Select  Selection
	Include []string
	Exclude []string
	// And requires every include pattern to match instead of any one.
	And bool
	Key transform.MatchKey
	// Sort orders the listing after filtering and expansion.
	Sort    NodeSort
	Reverse bool
	// Limit truncates the listing when positive, after sorting.
	Limit int
	// Deps expands the selection with all dependencies of selected nodes.
	Deps bool
	// RDeps expands with all reverse dependencies.
	RDeps bool
	// Depth bounds the expansion; nil means unbounded. Setting a depth
	// implies Deps.
	Depth *int
}

// NodeResult is one listing entry. Count carries the sort figure for the
// numeric orders; HasCount reports whether it is meaningful.
type NodeResult struct {
	ID       string
	Label    string
	Count    int
	HasCount bool
}

// Nodes lists the graph's nodes with optional selection, glob filtering,
// dependency expansion, and sorting.
func Nodes(g *depgraph.Graph, opts NodesOptions) ([]NodeResult, error) {
	view := depgraph.NewFlatView(g)
	allNodes := g.AllNodes()

	var selected []int64
	switch opts.Select {
	case SelectRoots:
		selected = view.Roots()
	case SelectLeaves:
		for idx := range view.IDs {
			if view.G.From(int64(idx)).Len() == 0 {
				selected = append(selected, int64(idx))
			}
		}
	default:
		for idx := range view.IDs {
			selected = append(selected, int64(idx))
		}
	}

	if len(opts.Include) > 0 {
		include, err := transform.NewMatcher(opts.Include, opts.And)
		if err != nil {
			return nil, err
		}
		selected = retain(selected, view, allNodes, opts.Key, include, true)
	}
	if len(opts.Exclude) > 0 {
		exclude, err := transform.NewMatcher(opts.Exclude, false)
		if err != nil {
			return nil, err
		}
		selected = retain(selected, view, allNodes, opts.Key, exclude, false)
	}

	deps := opts.Deps || opts.Depth != nil
	if deps || opts.RDeps {
		depth := -1
		if opts.Depth != nil {
			depth = *opts.Depth
		}
		expanded := make(map[int64]bool, len(selected))
		for _, idx := range selected {
			expanded[idx] = true
		}
		if deps {
			for idx := range view.BFS(selected, false, depth) {
				expanded[idx] = true
			}
		}
		if opts.RDeps {
			for idx := range view.BFS(selected, true, depth) {
				expanded[idx] = true
			}
		}
		selected = selected[:0]
		for idx := range view.IDs {
			if expanded[int64(idx)] {
				selected = append(selected, int64(idx))
			}
		}
	}

	type entry struct {
		idx   int64
		count int
	}
	entries := make([]entry, 0, len(selected))
	hasCount := false
	switch opts.Sort {
	case SortTopo:
		if order, err := topo.Sort(view.G); err == nil {
			inSelection := make(map[int64]bool, len(selected))
			for _, idx := range selected {
				inSelection[idx] = true
			}
			for _, node := range order {
				if inSelection[node.ID()] {
					entries = append(entries, entry{idx: node.ID()})
				}
			}
			break
		}
		// Cyclic graph, keep traversal order.
		fallthrough
	case SortNone, "":
		for _, idx := range selected {
			entries = append(entries, entry{idx: idx})
		}
	default:
		hasCount = true
		for _, idx := range selected {
			entries = append(entries, entry{idx: idx, count: sortCount(view, idx, opts.Sort)})
		}
		sort.SliceStable(entries, func(i, j int) bool {
			if entries[i].count != entries[j].count {
				return entries[i].count > entries[j].count
			}
			return view.IDs[entries[i].idx] < view.IDs[entries[j].idx]
		})
	}

	if opts.Reverse {
		for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
			entries[i], entries[j] = entries[j], entries[i]
		}
	}
	if opts.Limit > 0 && opts.Limit < len(entries) {
		entries = entries[:opts.Limit]
	}

	results := make([]NodeResult, 0, len(entries))
	for _, e := range entries {
		id := view.IDs[e.idx]
		info, _ := allNodes.Get(id)
		results = append(results, NodeResult{
			ID:       id,
			Label:    info.DisplayLabel(id),
			Count:    e.count,
			HasCount: hasCount,
		})
	}
	return results, nil
}

// retain filters indices by pattern match, keeping matches or non-matches.
func retain(selected []int64, view *depgraph.FlatView, nodes *depgraph.NodeMap, key transform.MatchKey, m *transform.Matcher, want bool) []int64 {
	kept := selected[:0]
	for _, idx := range selected {
		id := view.IDs[idx]
		info, _ := nodes.Get(id)
		if m.Match(key.Text(id, info)) == want {
			kept = append(kept, idx)
		}
	}
	return kept
}

func sortCount(view *depgraph.FlatView, idx int64, s NodeSort) int {
	switch s {
	case SortInDegree:
		return view.G.To(idx).Len()
	case SortOutDegree:
		return view.G.From(idx).Len()
	case SortAncestors:
		return len(view.BFS([]int64{idx}, true, -1)) - 1
	default:
		return len(view.BFS([]int64{idx}, false, -1)) - 1
	}
}

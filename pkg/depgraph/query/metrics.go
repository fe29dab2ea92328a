package query

import (
	"fmt"
	"io"
	"strconv"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/matzehuels/depgraph/pkg/depgraph"
)

// Metrics summarizes the shape of a dependency graph. Figures are computed
// on the flattened view, so self-loops, duplicate edges, and dangling edges
// do not count.
type Metrics struct {
	Nodes  int
	Edges  int
	Roots  int
	Leaves int
	// MaxDepth is the longest directed path length. Undefined (HasMaxDepth
	// false) when the graph has cycles.
	MaxDepth    int
	HasMaxDepth bool
	MaxFanOut   int
	MaxFanIn    int
	AvgFanOut   float64
	Density     float64
	// Cycles counts strongly connected components of two or more nodes.
	Cycles int
	// Diamonds counts merge points: nodes whose parents share a common
	// ancestor.
	Diamonds int
	// Components counts weakly connected components.
	Components int
}

// Compute derives the metrics for g.
func Compute(g *depgraph.Graph) Metrics {
	view := depgraph.NewFlatView(g)
	m := Metrics{Nodes: view.Len()}

	for idx := range view.IDs {
		in := view.G.To(int64(idx)).Len()
		out := view.G.From(int64(idx)).Len()
		m.Edges += out
		if in == 0 {
			m.Roots++
		}
		if out == 0 {
			m.Leaves++
		}
		if in > m.MaxFanIn {
			m.MaxFanIn = in
		}
		if out > m.MaxFanOut {
			m.MaxFanOut = out
		}
	}
	if m.Nodes > 0 {
		m.AvgFanOut = float64(m.Edges) / float64(m.Nodes)
	}
	if m.Nodes > 1 {
		m.Density = float64(m.Edges) / (float64(m.Nodes) * float64(m.Nodes-1))
	}

	for _, scc := range topo.TarjanSCC(view.G) {
		if len(scc) >= 2 {
			m.Cycles++
		}
	}

	if m.Cycles == 0 {
		if order, err := topo.Sort(view.G); err == nil {
			// Longest-path DP in topological order.
			dist := make([]int, m.Nodes)
			for _, node := range order {
				next := view.G.From(node.ID())
				for next.Next() {
					n := next.Node().ID()
					if d := dist[node.ID()] + 1; d > dist[n] {
						dist[n] = d
						if d > m.MaxDepth {
							m.MaxDepth = d
						}
					}
				}
			}
			m.HasMaxDepth = true
		}
	}

	if m.Nodes > 0 {
		und := simple.NewUndirectedGraph()
		for i := int64(0); i < int64(view.Len()); i++ {
			und.AddNode(simple.Node(i))
		}
		edges := view.G.Edges()
		for edges.Next() {
			e := edges.Edge()
			und.SetEdge(simple.Edge{F: simple.Node(e.From().ID()), T: simple.Node(e.To().ID())})
		}
		m.Components = len(topo.ConnectedComponents(und))
	}

	m.Diamonds = countDiamonds(view)
	return m
}

// countDiamonds counts nodes with two or more parents where some pair of
// parents shares an ancestor, i.e. a fork that re-merges.
func countDiamonds(view *depgraph.FlatView) int {
	count := 0
	for idx := range view.IDs {
		var parents []int64
		incoming := view.G.To(int64(idx))
		for incoming.Next() {
			parents = append(parents, incoming.Node().ID())
		}
		if len(parents) < 2 {
			continue
		}
		seen := make(map[int64]bool)
		diamond := false
		for _, parent := range parents {
			for ancestor := range view.BFS([]int64{parent}, true, -1) {
				if seen[ancestor] {
					diamond = true
					break
				}
				seen[ancestor] = true
			}
			if diamond {
				break
			}
		}
		if diamond {
			count++
		}
	}
	return count
}

// Write renders the metrics as tab-separated name/value lines. An undefined
// max depth prints an empty value.
func (m Metrics) Write(w io.Writer) error {
	maxDepth := ""
	if m.HasMaxDepth {
		maxDepth = strconv.Itoa(m.MaxDepth)
	}
	lines := []string{
		fmt.Sprintf("nodes\t%d", m.Nodes),
		fmt.Sprintf("edges\t%d", m.Edges),
		fmt.Sprintf("roots\t%d", m.Roots),
		fmt.Sprintf("leaves\t%d", m.Leaves),
		fmt.Sprintf("max_depth\t%s", maxDepth),
		fmt.Sprintf("max_fan_out\t%d", m.MaxFanOut),
		fmt.Sprintf("max_fan_in\t%d", m.MaxFanIn),
		fmt.Sprintf("avg_fan_out\t%.2f", m.AvgFanOut),
		fmt.Sprintf("density\t%.6f", m.Density),
		fmt.Sprintf("cycles\t%d", m.Cycles),
		fmt.Sprintf("diamonds\t%d", m.Diamonds),
		fmt.Sprintf("components\t%d", m.Components),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

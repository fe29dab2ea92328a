package depgraph

import (
	"testing"
)

func flatFixture() *Graph {
	g := New()
	g.AddNode("a", NewNodeInfo(""))
	g.AddNode("b", NewNodeInfo(""))
	sub := New()
	sub.ID = "inner"
	sub.AddNode("c", NewNodeInfo(""))
	g.Subgraphs = append(g.Subgraphs, sub)
	g.AddEdge(NewEdge("a", "b"))
	g.AddEdge(NewEdge("b", "c"))
	return g
}

func TestNewFlatViewIndexing(t *testing.T) {
	v := NewFlatView(flatFixture())
	if v.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", v.Len())
	}
	for i, id := range v.IDs {
		if v.Index[id] != int64(i) {
			t.Errorf("Index[%q] = %d, want %d", id, v.Index[id], i)
		}
	}
	if v.G.Edges().Len() != 2 {
		t.Errorf("flat edges = %d, want 2", v.G.Edges().Len())
	}
}

func TestNewFlatViewSelfLoopsAndDangling(t *testing.T) {
	g := New()
	g.AddNode("a", NewNodeInfo(""))
	g.AddEdge(NewEdge("a", "a"))
	g.AddEdge(NewEdge("a", "ghost"))

	v := NewFlatView(g)
	if len(v.SelfLoops) != 1 || v.IDs[v.SelfLoops[0]] != "a" {
		t.Errorf("SelfLoops = %v", v.SelfLoops)
	}
	if len(v.Dangling) != 1 || v.Dangling[0].To != "ghost" {
		t.Errorf("Dangling = %v", v.Dangling)
	}
	if v.G.Edges().Len() != 0 {
		t.Error("self-loops and dangling edges must not reach the flat graph")
	}
}

func TestFlatViewRoots(t *testing.T) {
	v := NewFlatView(flatFixture())
	roots := v.Roots()
	if len(roots) != 1 || v.IDs[roots[0]] != "a" {
		t.Errorf("Roots() = %v, want [a]", roots)
	}
}

func TestFlatViewBFS(t *testing.T) {
	v := NewFlatView(flatFixture())
	seed := v.Index["a"]

	reached := v.BFS([]int64{seed}, false, -1)
	if len(reached) != 3 {
		t.Errorf("forward BFS reached %d nodes, want 3", len(reached))
	}

	depth1 := v.BFS([]int64{seed}, false, 1)
	if len(depth1) != 2 {
		t.Errorf("depth-1 BFS reached %d nodes, want 2", len(depth1))
	}

	back := v.BFS([]int64{v.Index["c"]}, true, -1)
	if len(back) != 3 {
		t.Errorf("reverse BFS reached %d nodes, want 3", len(back))
	}
}

func TestFlatViewFilter(t *testing.T) {
	v := NewFlatView(flatFixture())
	got := v.Filter(map[int64]bool{v.Index["b"]: true, v.Index["c"]: true})
	if got.AllNodes().Len() != 2 {
		t.Errorf("filtered nodes = %d, want 2", got.AllNodes().Len())
	}
	if _, ok := got.AllNodes().Get("c"); !ok {
		t.Error("subgraph node c missing after filter")
	}
	if len(got.AllEdges()) != 1 {
		t.Errorf("filtered edges = %d, want 1", len(got.AllEdges()))
	}
}

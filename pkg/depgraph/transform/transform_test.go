package transform

import (
	"testing"

	"github.com/matzehuels/depgraph/pkg/depgraph"
)

func nestedGraph() *depgraph.Graph {
	g := depgraph.New()
	g.AddNode("root", depgraph.NewNodeInfo("Root"))
	sub := depgraph.New()
	sub.ID = "cluster_a"
	sub.AddNode("a", depgraph.NewNodeInfo(""))
	sub.AddNode("b", depgraph.NewNodeInfo(""))
	sub.AddEdge(depgraph.NewEdge("a", "b"))
	g.Subgraphs = append(g.Subgraphs, sub)
	g.AddEdge(depgraph.NewEdge("root", "a"))
	return g
}

func TestFlattenCollapsesSubgraphs(t *testing.T) {
	got := Flatten(nestedGraph())
	if len(got.Subgraphs) != 0 {
		t.Fatalf("subgraphs = %d, want 0", len(got.Subgraphs))
	}
	if got.Nodes.Len() != 3 {
		t.Errorf("nodes = %d, want 3", got.Nodes.Len())
	}
	assertEdges(t, got, [][2]string{{"root", "a"}, {"a", "b"}})
}

func TestFlattenIdempotent(t *testing.T) {
	once := Flatten(nestedGraph())
	twice := Flatten(once)
	if twice.Nodes.Len() != once.Nodes.Len() || len(twice.Edges) != len(once.Edges) {
		t.Error("flattening twice changed the graph")
	}
	for i, e := range twice.Edges {
		if e.From != once.Edges[i].From || e.To != once.Edges[i].To {
			t.Errorf("edge %d order changed: %v vs %v", i, e, once.Edges[i])
		}
	}
}

func TestMergeUnionsNodesAndEdges(t *testing.T) {
	g1 := buildGraph([]string{"a", "b"}, [][2]string{{"a", "b"}})
	g2 := buildGraph([]string{"b", "c"}, [][2]string{{"b", "c"}, {"a", "b"}})
	got := Merge(g1, g2)
	if got.Nodes.Len() != 3 {
		t.Errorf("nodes = %d, want 3", got.Nodes.Len())
	}
	assertEdges(t, got, [][2]string{{"a", "b"}, {"b", "c"}})
}

func TestMergeLaterNodeWins(t *testing.T) {
	g1 := depgraph.New()
	g1.AddNode("a", depgraph.NewNodeInfo("old"))
	g2 := depgraph.New()
	g2.AddNode("a", depgraph.NewNodeInfo("new"))
	got := Merge(g1, g2)
	info, _ := got.Node("a")
	if info.Label != "new" {
		t.Errorf("label = %q, want new", info.Label)
	}
}

func TestMergeEdgeAttrsEarlierWins(t *testing.T) {
	g1 := depgraph.New()
	g1.AddNode("a", depgraph.NewNodeInfo(""))
	g1.AddNode("b", depgraph.NewNodeInfo(""))
	e1 := depgraph.NewEdge("a", "b")
	e1.Attrs = depgraph.NewAttrs()
	e1.Attrs.Set("color", "red")
	g1.AddEdge(e1)

	g2 := depgraph.New()
	e2 := depgraph.NewEdge("a", "b")
	e2.Attrs = depgraph.NewAttrs()
	e2.Attrs.Set("color", "blue")
	e2.Attrs.Set("style", "dashed")
	g2.AddEdge(e2)

	got := Merge(g1, g2)
	if len(got.Edges) != 1 {
		t.Fatalf("edges = %d, want 1", len(got.Edges))
	}
	if v, _ := got.Edges[0].Attrs.Get("color"); v != "red" {
		t.Errorf("color = %q, want red", v)
	}
	if v, _ := got.Edges[0].Attrs.Get("style"); v != "dashed" {
		t.Errorf("style = %q, want dashed", v)
	}
}

func TestMergeNamedSubgraphsRecursively(t *testing.T) {
	g1 := depgraph.New()
	s1 := depgraph.New()
	s1.ID = "shared"
	s1.AddNode("a", depgraph.NewNodeInfo(""))
	g1.Subgraphs = append(g1.Subgraphs, s1)

	g2 := depgraph.New()
	s2 := depgraph.New()
	s2.ID = "shared"
	s2.AddNode("b", depgraph.NewNodeInfo(""))
	g2.Subgraphs = append(g2.Subgraphs, s2)

	got := Merge(g1, g2)
	if len(got.Subgraphs) != 1 {
		t.Fatalf("subgraphs = %d, want 1", len(got.Subgraphs))
	}
	if got.Subgraphs[0].Nodes.Len() != 2 {
		t.Errorf("merged subgraph nodes = %d, want 2", got.Subgraphs[0].Nodes.Len())
	}
}

func TestMergeEmpty(t *testing.T) {
	if got := Merge(); !got.IsEmpty() {
		t.Error("merging nothing should give an empty graph")
	}
}

func TestReverseFlipsEdges(t *testing.T) {
	got := Reverse(nestedGraph())
	if got.Edges[0].From != "a" || got.Edges[0].To != "root" {
		t.Errorf("root edge = %v, want a→root", got.Edges[0])
	}
	sub := got.Subgraphs[0]
	if sub.Edges[0].From != "b" || sub.Edges[0].To != "a" {
		t.Errorf("subgraph edge = %v, want b→a", sub.Edges[0])
	}
}

func TestReverseIsInvolution(t *testing.T) {
	g := nestedGraph()
	back := Reverse(Reverse(g))
	for i, e := range back.AllEdges() {
		orig := g.AllEdges()[i]
		if e.From != orig.From || e.To != orig.To {
			t.Errorf("edge %d = %v, want %v", i, e, orig)
		}
	}
}

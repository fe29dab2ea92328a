package transform

import (
	"testing"

	"github.com/matzehuels/depgraph/pkg/depgraph"
	"github.com/matzehuels/depgraph/pkg/errors"
)

func buildGraph(nodes []string, edges [][2]string) *depgraph.Graph {
	g := depgraph.New()
	for _, id := range nodes {
		g.AddNode(id, depgraph.NewNodeInfo(""))
	}
	for _, e := range edges {
		g.AddEdge(depgraph.NewEdge(e[0], e[1]))
	}
	return g
}

func edgePairs(g *depgraph.Graph) [][2]string {
	var pairs [][2]string
	for _, e := range g.AllEdges() {
		pairs = append(pairs, [2]string{e.From, e.To})
	}
	return pairs
}

func TestSimplifyRemovesRedundantEdge(t *testing.T) {
	g := buildGraph([]string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}, {"a", "c"}})
	got, err := Simplify(g)
	if err != nil {
		t.Fatalf("Simplify() error = %v", err)
	}
	want := [][2]string{{"a", "b"}, {"b", "c"}}
	assertEdges(t, got, want)
	if got.AllNodes().Len() != 3 {
		t.Errorf("node count = %d, want 3", got.AllNodes().Len())
	}
}

func TestSimplifyDiamond(t *testing.T) {
	// a→b→d, a→c→d, plus a redundant a→d shortcut.
	g := buildGraph([]string{"a", "b", "c", "d"}, [][2]string{
		{"a", "b"}, {"a", "c"}, {"a", "d"}, {"b", "d"}, {"c", "d"},
	})
	got, err := Simplify(g)
	if err != nil {
		t.Fatalf("Simplify() error = %v", err)
	}
	assertEdges(t, got, [][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}})
}

func TestSimplifyErrorsOnCycle(t *testing.T) {
	g := buildGraph([]string{"a", "b"}, [][2]string{{"a", "b"}, {"b", "a"}})
	if _, err := Simplify(g); !errors.Is(err, errors.ErrCodeCyclicGraph) {
		t.Fatalf("Simplify() error = %v, want CYCLIC_GRAPH", err)
	}
}

func TestSimplifyErrorsOnSelfLoop(t *testing.T) {
	g := buildGraph([]string{"a", "b"}, [][2]string{{"a", "a"}, {"a", "b"}})
	if _, err := Simplify(g); !errors.Is(err, errors.ErrCodeCyclicGraph) {
		t.Fatalf("Simplify() error = %v, want CYCLIC_GRAPH", err)
	}
}

func TestSimplifyEmptyGraph(t *testing.T) {
	got, err := Simplify(depgraph.New())
	if err != nil {
		t.Fatalf("Simplify() error = %v", err)
	}
	if !got.IsEmpty() {
		t.Error("simplified empty graph is not empty")
	}
}

func TestSimplifyReverseInsertionOrder(t *testing.T) {
	// Same diamond, edges inserted back-to-front. The result must not
	// depend on insertion order.
	g := buildGraph([]string{"d", "c", "b", "a"}, [][2]string{
		{"c", "d"}, {"b", "d"}, {"a", "d"}, {"a", "c"}, {"a", "b"},
	})
	got, err := Simplify(g)
	if err != nil {
		t.Fatalf("Simplify() error = %v", err)
	}
	assertEdges(t, got, [][2]string{{"c", "d"}, {"b", "d"}, {"a", "c"}, {"a", "b"}})
}

func TestSimplifyPreservesSubgraphs(t *testing.T) {
	g := depgraph.New()
	sub := depgraph.New()
	sub.ID = "inner"
	sub.AddNode("a", depgraph.NewNodeInfo(""))
	sub.AddNode("b", depgraph.NewNodeInfo(""))
	sub.AddEdge(depgraph.NewEdge("a", "b"))
	g.Subgraphs = append(g.Subgraphs, sub)
	g.AddNode("c", depgraph.NewNodeInfo(""))
	g.AddEdge(depgraph.NewEdge("b", "c"))
	g.AddEdge(depgraph.NewEdge("a", "c"))

	got, err := Simplify(g)
	if err != nil {
		t.Fatalf("Simplify() error = %v", err)
	}
	if len(got.Subgraphs) != 1 || got.Subgraphs[0].ID != "inner" {
		t.Fatal("subgraph structure not preserved")
	}
	assertEdges(t, got, [][2]string{{"a", "b"}, {"b", "c"}})
}

func assertEdges(t *testing.T, g *depgraph.Graph, want [][2]string) {
	t.Helper()
	got := edgePairs(g)
	if len(got) != len(want) {
		t.Fatalf("edges = %v, want %v", got, want)
	}
	wantSet := make(map[[2]string]bool, len(want))
	for _, p := range want {
		wantSet[p] = true
	}
	for _, p := range got {
		if !wantSet[p] {
			t.Errorf("unexpected edge %v (want %v)", p, want)
		}
	}
}

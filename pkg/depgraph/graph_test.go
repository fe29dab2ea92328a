package depgraph

import (
	"testing"
)

func TestAttrsOrderAndUpdate(t *testing.T) {
	a := NewAttrs()
	a.Set("z", "1")
	a.Set("a", "2")
	a.Set("z", "3") // update keeps position

	var keys []string
	for k := range a.All() {
		keys = append(keys, k)
	}
	if len(keys) != 2 || keys[0] != "z" || keys[1] != "a" {
		t.Errorf("key order = %v, want [z a]", keys)
	}
	if v, _ := a.Get("z"); v != "3" {
		t.Errorf("z = %q, want 3", v)
	}
}

func TestAttrsNilSafety(t *testing.T) {
	var a *Attrs
	if a.Len() != 0 {
		t.Error("nil Len() != 0")
	}
	if _, ok := a.Get("x"); ok {
		t.Error("nil Get() reported a value")
	}
	for range a.All() {
		t.Fatal("nil All() yielded a pair")
	}
	if !a.Equal(nil) {
		t.Error("nil attrs should equal nil attrs")
	}
}

func TestAttrsEqualIsOrderSensitive(t *testing.T) {
	a := NewAttrs()
	a.Set("x", "1")
	a.Set("y", "2")
	b := NewAttrs()
	b.Set("y", "2")
	b.Set("x", "1")
	if a.Equal(b) {
		t.Error("attrs with different key order should not be equal")
	}
}

func TestAllNodesTraversalOrder(t *testing.T) {
	g := New()
	g.AddNode("root", NewNodeInfo(""))
	first := New()
	first.ID = "first"
	first.AddNode("f1", NewNodeInfo(""))
	inner := New()
	inner.AddNode("i1", NewNodeInfo(""))
	first.Subgraphs = append(first.Subgraphs, inner)
	second := New()
	second.ID = "second"
	second.AddNode("s1", NewNodeInfo(""))
	g.Subgraphs = append(g.Subgraphs, first, second)

	var got []string
	for pair := g.AllNodes().Oldest(); pair != nil; pair = pair.Next() {
		got = append(got, pair.Key)
	}
	want := []string{"root", "f1", "i1", "s1"}
	if len(got) != len(want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	g := New()
	info := NewNodeInfo("Alpha")
	info.Attrs = NewAttrs()
	info.Attrs.Set("k", "v")
	g.AddNode("a", info)
	sub := New()
	sub.AddNode("b", NewNodeInfo(""))
	g.Subgraphs = append(g.Subgraphs, sub)

	clone := g.Clone()
	cloned, _ := clone.Node("a")
	cloned.Label = "mutated"
	cloned.Attrs.Set("k", "changed")
	clone.Subgraphs[0].AddNode("c", NewNodeInfo(""))

	orig, _ := g.Node("a")
	if orig.Label != "Alpha" {
		t.Error("clone shares NodeInfo with original")
	}
	if v, _ := orig.Attrs.Get("k"); v != "v" {
		t.Error("clone shares attrs with original")
	}
	if g.Subgraphs[0].Nodes.Len() != 1 {
		t.Error("clone shares subgraphs with original")
	}
}

func TestFilterNodesDropsEmptySubgraphs(t *testing.T) {
	g := New()
	g.AddNode("a", NewNodeInfo(""))
	sub := New()
	sub.ID = "inner"
	sub.AddNode("b", NewNodeInfo(""))
	g.Subgraphs = append(g.Subgraphs, sub)
	g.AddEdge(NewEdge("a", "b"))

	got := g.FilterNodes(map[string]bool{"a": true})
	if len(got.Subgraphs) != 0 {
		t.Error("emptied subgraph should be dropped")
	}
	if len(got.Edges) != 0 {
		t.Error("edge with filtered endpoint should be dropped")
	}
}

func TestDisplayLabel(t *testing.T) {
	if got := NewNodeInfo("").DisplayLabel("id"); got != "id" {
		t.Errorf("DisplayLabel = %q, want id", got)
	}
	if got := NewNodeInfo("Label").DisplayLabel("id"); got != "Label" {
		t.Errorf("DisplayLabel = %q, want Label", got)
	}
}

func TestIsEmpty(t *testing.T) {
	g := New()
	if !g.IsEmpty() {
		t.Error("new graph should be empty")
	}
	sub := New()
	sub.AddNode("a", NewNodeInfo(""))
	g.Subgraphs = append(g.Subgraphs, sub)
	if g.IsEmpty() {
		t.Error("graph with a populated subgraph is not empty")
	}
}

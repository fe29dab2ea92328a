package format

import (
	"strings"
	"testing"

	"github.com/matzehuels/depgraph/pkg/depgraph"
	"github.com/matzehuels/depgraph/pkg/errors"
)

func TestParseDOTBasic(t *testing.T) {
	input := `digraph deps {
    rankdir=LR;
    a [label="Alpha"];
    b;
    a -> b [label="uses", style=dashed];
}`
	g, err := parseDOT([]byte(input))
	if err != nil {
		t.Fatalf("parseDOT() error = %v", err)
	}
	if g.ID != "deps" {
		t.Errorf("ID = %q, want deps", g.ID)
	}
	if v, _ := g.Attrs.Get("rankdir"); v != "LR" {
		t.Errorf("rankdir = %q, want LR", v)
	}
	a, ok := g.Node("a")
	if !ok || a.Label != "Alpha" {
		t.Errorf("node a = %+v, want label Alpha", a)
	}
	if len(g.Edges) != 1 {
		t.Fatalf("edges = %d, want 1", len(g.Edges))
	}
	e := g.Edges[0]
	if e.Label != "uses" {
		t.Errorf("edge label = %q, want uses", e.Label)
	}
	if v, _ := e.Attrs.Get("style"); v != "dashed" {
		t.Errorf("edge style = %q, want dashed", v)
	}
}

func TestParseDOTImplicitNodes(t *testing.T) {
	g, err := parseDOT([]byte(`digraph { a -> b -> c; }`))
	if err != nil {
		t.Fatalf("parseDOT() error = %v", err)
	}
	if g.Nodes.Len() != 3 {
		t.Errorf("nodes = %d, want 3", g.Nodes.Len())
	}
	if len(g.Edges) != 2 {
		t.Errorf("edges = %d, want 2", len(g.Edges))
	}
}

func TestParseDOTSubgraphs(t *testing.T) {
	input := `digraph {
    a -> b;
    subgraph cluster_0 {
        label="Core";
        b [label="B"];
        c;
        b -> c;
    }
}`
	g, err := parseDOT([]byte(input))
	if err != nil {
		t.Fatalf("parseDOT() error = %v", err)
	}
	if len(g.Subgraphs) != 1 {
		t.Fatalf("subgraphs = %d, want 1", len(g.Subgraphs))
	}
	sub := g.Subgraphs[0]
	if sub.ID != "cluster_0" {
		t.Errorf("subgraph ID = %q", sub.ID)
	}
	if v, _ := sub.Attrs.Get("label"); v != "Core" {
		t.Errorf("subgraph label = %q, want Core", v)
	}
	// b was referenced at the root before its real declaration; the bare
	// placeholder must not survive next to the explicit one.
	if _, ok := g.Nodes.Get("b"); ok {
		t.Error("placeholder b should have been removed from the root")
	}
	if info, ok := sub.Nodes.Get("b"); !ok || info.Label != "B" {
		t.Error("explicit b missing from subgraph")
	}
}

func TestParseDOTSkipsDefaults(t *testing.T) {
	input := `digraph {
    node [shape=box];
    edge [color=gray];
    graph [rankdir=TB];
    a;
}`
	g, err := parseDOT([]byte(input))
	if err != nil {
		t.Fatalf("parseDOT() error = %v", err)
	}
	if g.Nodes.Len() != 1 {
		t.Errorf("nodes = %d, want 1 (defaults must not become nodes)", g.Nodes.Len())
	}
	if v, _ := g.Attrs.Get("rankdir"); v != "TB" {
		t.Errorf("rankdir = %q, want TB", v)
	}
}

func TestParseDOTComments(t *testing.T) {
	input := "digraph {\n// line\n# hash\n/* block\nstill block */\na -> b;\n}"
	g, err := parseDOT([]byte(input))
	if err != nil {
		t.Fatalf("parseDOT() error = %v", err)
	}
	if len(g.Edges) != 1 {
		t.Errorf("edges = %d, want 1", len(g.Edges))
	}
}

func TestParseDOTInvalid(t *testing.T) {
	for _, input := range []string{"", "graph_name {}", `digraph { a -> ; }`, `digraph { a [x] }`} {
		if _, err := parseDOT([]byte(input)); !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("parseDOT(%q) error = %v, want INVALID_FORMAT", input, err)
		}
	}
}

func TestEmitDOT(t *testing.T) {
	g := depgraph.New()
	g.ID = "deps"
	g.Attrs.Set("rankdir", "LR")
	g.AddNode("a", depgraph.NewNodeInfo("Alpha node"))
	g.AddNode("b", depgraph.NewNodeInfo(""))
	e := depgraph.NewEdge("a", "b")
	e.Label = "uses"
	g.AddEdge(e)
	sub := depgraph.New()
	sub.ID = "cluster_0"
	sub.AddNode("c", depgraph.NewNodeInfo(""))
	g.Subgraphs = append(g.Subgraphs, sub)

	var buf strings.Builder
	if err := emitDOT(&buf, g); err != nil {
		t.Fatalf("emitDOT() error = %v", err)
	}
	want := `digraph deps {
    rankdir=LR;
    a [label="Alpha node"];
    b;
    a -> b [label="uses"];
    subgraph cluster_0 {
        c;
    }
}
`
	if buf.String() != want {
		t.Errorf("emitDOT() = %q, want %q", buf.String(), want)
	}
}

func TestEmitDOTQuoting(t *testing.T) {
	g := depgraph.New()
	g.AddNode("my-pkg", depgraph.NewNodeInfo(`say "hi"`))

	var buf strings.Builder
	if err := emitDOT(&buf, g); err != nil {
		t.Fatalf("emitDOT() error = %v", err)
	}
	if !strings.Contains(buf.String(), `"my-pkg" [label="say \"hi\""]`) {
		t.Errorf("quoting wrong: %q", buf.String())
	}
}

func TestDOTRoundTrip(t *testing.T) {
	g := depgraph.New()
	g.AddNode("a", depgraph.NewNodeInfo("Alpha"))
	g.AddNode("b", depgraph.NewNodeInfo(""))
	g.AddEdge(depgraph.NewEdge("a", "b"))
	sub := depgraph.New()
	sub.ID = "cluster_0"
	sub.AddNode("c", depgraph.NewNodeInfo(""))
	g.Subgraphs = append(g.Subgraphs, sub)

	var buf strings.Builder
	if err := emitDOT(&buf, g); err != nil {
		t.Fatalf("emitDOT() error = %v", err)
	}
	back, err := parseDOT([]byte(buf.String()))
	if err != nil {
		t.Fatalf("parseDOT() error = %v", err)
	}
	if back.AllNodes().Len() != 3 {
		t.Errorf("nodes after round trip = %d, want 3", back.AllNodes().Len())
	}
	if len(back.Subgraphs) != 1 || back.Subgraphs[0].ID != "cluster_0" {
		t.Error("subgraph lost in round trip")
	}
	info, ok := back.AllNodes().Get("a")
	if !ok || info.Label != "Alpha" {
		t.Error("label lost in round trip")
	}
}

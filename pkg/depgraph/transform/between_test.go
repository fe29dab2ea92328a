package transform

import (
	"sort"
	"testing"

	"github.com/matzehuels/depgraph/pkg/depgraph"
	"github.com/matzehuels/depgraph/pkg/errors"
)

func TestBetweenPaths(t *testing.T) {
	tests := []struct {
		name      string
		nodes     []string
		edges     [][2]string
		include   []string
		wantNodes []string
		wantEdges [][2]string
	}{
		{
			name:      "direct path",
			nodes:     []string{"a", "b"},
			edges:     [][2]string{{"a", "b"}},
			include:   []string{"a", "b"},
			wantNodes: []string{"a", "b"},
			wantEdges: [][2]string{{"a", "b"}},
		},
		{
			name:      "intermediate nodes kept",
			nodes:     []string{"a", "b", "c"},
			edges:     [][2]string{{"a", "b"}, {"b", "c"}},
			include:   []string{"a", "c"},
			wantNodes: []string{"a", "b", "c"},
			wantEdges: [][2]string{{"a", "b"}, {"b", "c"}},
		},
		{
			name:      "no path is empty",
			nodes:     []string{"a", "b", "c", "d"},
			edges:     [][2]string{{"a", "b"}, {"c", "d"}},
			include:   []string{"a", "c"},
			wantNodes: nil,
			wantEdges: nil,
		},
		{
			name:      "diamond keeps both branches",
			nodes:     []string{"a", "b", "c", "d"},
			edges:     [][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}},
			include:   []string{"a", "d"},
			wantNodes: []string{"a", "b", "c", "d"},
			wantEdges: [][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}},
		},
		{
			name:      "unrelated component excluded",
			nodes:     []string{"a", "b", "c", "d", "e"},
			edges:     [][2]string{{"a", "b"}, {"b", "c"}, {"d", "e"}},
			include:   []string{"a", "c"},
			wantNodes: []string{"a", "b", "c"},
			wantEdges: [][2]string{{"a", "b"}, {"b", "c"}},
		},
		{
			name:      "cycle fully included",
			nodes:     []string{"a", "b", "c"},
			edges:     [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}},
			include:   []string{"a", "c"},
			wantNodes: []string{"a", "b", "c"},
			wantEdges: [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}},
		},
		{
			name:      "single match is empty",
			nodes:     []string{"a", "b"},
			edges:     [][2]string{{"a", "b"}},
			include:   []string{"a"},
			wantNodes: nil,
			wantEdges: nil,
		},
		{
			name:      "no match is empty",
			nodes:     []string{"a", "b"},
			edges:     [][2]string{{"a", "b"}},
			include:   []string{"nonexistent"},
			wantNodes: nil,
			wantEdges: nil,
		},
		{
			name:      "glob matches every endpoint",
			nodes:     []string{"a", "b", "c"},
			edges:     [][2]string{{"a", "b"}, {"b", "c"}},
			include:   []string{"?"},
			wantNodes: []string{"a", "b", "c"},
			wantEdges: [][2]string{{"a", "b"}, {"b", "c"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := buildGraph(tt.nodes, tt.edges)
			got, err := Between(g, BetweenOptions{Include: tt.include})
			if err != nil {
				t.Fatalf("Between() error = %v", err)
			}
			var ids []string
			for pair := got.AllNodes().Oldest(); pair != nil; pair = pair.Next() {
				ids = append(ids, pair.Key)
			}
			sort.Strings(ids)
			want := append([]string(nil), tt.wantNodes...)
			sort.Strings(want)
			if len(ids) != len(want) {
				t.Fatalf("nodes = %v, want %v", ids, want)
			}
			for i := range ids {
				if ids[i] != want[i] {
					t.Fatalf("nodes = %v, want %v", ids, want)
				}
			}
			assertEdges(t, got, tt.wantEdges)
		})
	}
}

func TestBetweenExclude(t *testing.T) {
	g := buildGraph([]string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}})
	got, err := Between(g, BetweenOptions{Include: []string{"a", "c"}, Exclude: []string{"b"}})
	if err != nil {
		t.Fatalf("Between() error = %v", err)
	}
	if got.AllNodes().Len() != 2 {
		t.Errorf("nodes = %d, want 2", got.AllNodes().Len())
	}
	if _, ok := got.Node("b"); ok {
		t.Error("excluded node b should not survive")
	}
	if len(got.AllEdges()) != 0 {
		t.Errorf("edges = %v, want none", got.AllEdges())
	}
}

func TestBetweenMatchByID(t *testing.T) {
	g := depgraph.New()
	g.AddNode("1", depgraph.NewNodeInfo("libfoo"))
	g.AddNode("2", depgraph.NewNodeInfo("libbar"))
	g.AddEdge(depgraph.NewEdge("1", "2"))

	got, err := Between(g, BetweenOptions{Include: []string{"1", "2"}, Key: MatchID})
	if err != nil {
		t.Fatalf("Between() error = %v", err)
	}
	if got.AllNodes().Len() != 2 {
		t.Errorf("nodes = %d, want 2", got.AllNodes().Len())
	}
	assertEdges(t, got, [][2]string{{"1", "2"}})
}

func TestBetweenInvalidPattern(t *testing.T) {
	g := buildGraph([]string{"a"}, nil)
	if _, err := Between(g, BetweenOptions{Include: []string{"["}}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Between() error = %v, want INVALID_INPUT", err)
	}
}

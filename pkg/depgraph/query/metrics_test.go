package query

import (
	"strings"
	"testing"
)

func TestComputeEmptyGraph(t *testing.T) {
	m := Compute(buildGraph(nil, nil))
	if m.Nodes != 0 || m.Edges != 0 || m.Components != 0 {
		t.Errorf("metrics = %+v, want all zero", m)
	}
	if !m.HasMaxDepth || m.MaxDepth != 0 {
		t.Errorf("max depth = %v/%v, want defined zero", m.MaxDepth, m.HasMaxDepth)
	}
}

func TestComputeChain(t *testing.T) {
	g := buildGraph([][2]string{{"a", "a"}, {"b", "b"}, {"c", "c"}}, [][2]string{{"a", "b"}, {"b", "c"}})
	m := Compute(g)
	if m.Nodes != 3 || m.Edges != 2 || m.Roots != 1 || m.Leaves != 1 {
		t.Errorf("metrics = %+v", m)
	}
	if !m.HasMaxDepth || m.MaxDepth != 2 {
		t.Errorf("max depth = %v/%v, want 2", m.MaxDepth, m.HasMaxDepth)
	}
	if m.Cycles != 0 || m.Diamonds != 0 || m.Components != 1 {
		t.Errorf("metrics = %+v", m)
	}
}

func TestComputeDiamond(t *testing.T) {
	g := buildGraph(
		[][2]string{{"a", "a"}, {"b", "b"}, {"c", "c"}, {"d", "d"}},
		[][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}},
	)
	m := Compute(g)
	if m.Diamonds != 1 {
		t.Errorf("diamonds = %d, want 1", m.Diamonds)
	}
	if m.MaxFanOut != 2 || m.MaxFanIn != 2 {
		t.Errorf("fan = %d/%d, want 2/2", m.MaxFanOut, m.MaxFanIn)
	}
	if !m.HasMaxDepth || m.MaxDepth != 2 {
		t.Errorf("max depth = %v/%v, want 2", m.MaxDepth, m.HasMaxDepth)
	}
}

func TestComputeCycle(t *testing.T) {
	g := buildGraph([][2]string{{"a", "a"}, {"b", "b"}}, [][2]string{{"a", "b"}, {"b", "a"}})
	m := Compute(g)
	if m.Cycles != 1 {
		t.Errorf("cycles = %d, want 1", m.Cycles)
	}
	if m.HasMaxDepth {
		t.Errorf("max depth defined on cyclic graph")
	}
}

func TestComputeComponents(t *testing.T) {
	g := buildGraph(
		[][2]string{{"a", "a"}, {"b", "b"}, {"c", "c"}, {"d", "d"}},
		[][2]string{{"a", "b"}, {"c", "d"}},
	)
	m := Compute(g)
	if m.Components != 2 {
		t.Errorf("components = %d, want 2", m.Components)
	}
}

func TestComputeDensityAndAvgFanOut(t *testing.T) {
	g := buildGraph([][2]string{{"a", "a"}, {"b", "b"}, {"c", "c"}}, [][2]string{{"a", "b"}, {"b", "c"}})
	m := Compute(g)
	if got := m.AvgFanOut; got < 0.66 || got > 0.67 {
		t.Errorf("avg fan out = %v, want 2/3", got)
	}
	if got := m.Density; got < 0.33 || got > 0.34 {
		t.Errorf("density = %v, want 2/6", got)
	}
}

func TestMetricsWrite(t *testing.T) {
	g := buildGraph([][2]string{{"a", "a"}, {"b", "b"}}, [][2]string{{"a", "b"}})
	var b strings.Builder
	if err := Compute(g).Write(&b); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	want := "nodes\t2\nedges\t1\nroots\t1\nleaves\t1\nmax_depth\t1\nmax_fan_out\t1\nmax_fan_in\t1\navg_fan_out\t0.50\ndensity\t0.500000\ncycles\t0\ndiamonds\t0\ncomponents\t1\n"
	if b.String() != want {
		t.Errorf("Write() = %q, want %q", b.String(), want)
	}
}

func TestMetricsWriteUndefinedMaxDepth(t *testing.T) {
	g := buildGraph([][2]string{{"a", "a"}, {"b", "b"}}, [][2]string{{"a", "b"}, {"b", "a"}})
	var b strings.Builder
	if err := Compute(g).Write(&b); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if !strings.Contains(b.String(), "max_depth\t\n") {
		t.Errorf("Write() = %q, want empty max_depth value", b.String())
	}
}

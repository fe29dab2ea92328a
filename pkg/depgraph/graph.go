// Package depgraph defines the hierarchical dependency-graph model shared by
// every parser, transformation, and emitter in this module.
//
// A [Graph] owns its nodes, its edges, and a list of nested subgraphs, each of
// which is itself a Graph. Node IDs are unique across the whole hierarchy, and
// an edge may connect nodes living at different nesting levels; that is how
// cross-cluster relationships are expressed. Insertion order of attributes,
// nodes, and edges is preserved everywhere: several input formats are
// order-sensitive, and deterministic output depends on it.
//
// Transformations never mutate their input; they return freshly built graphs.
package depgraph

import (
	"encoding/json"
	"iter"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Attrs is an insertion-ordered map of string attributes. Duplicate keys are
// impossible; setting an existing key updates the value in place without
// changing its position. The zero value is not usable (use [NewAttrs]),
// but all read methods are safe on a nil receiver.
type Attrs struct {
	m *orderedmap.OrderedMap[string, string]
}

// NewAttrs returns an empty attribute map.
func NewAttrs() *Attrs {
	return &Attrs{m: orderedmap.New[string, string]()}
}

// Set stores a key/value pair, preserving the key's original position if it
// already exists.
func (a *Attrs) Set(key, value string) {
	a.m.Set(key, value)
}

// SetDefault stores the pair only if the key is not already present.
func (a *Attrs) SetDefault(key, value string) {
	if _, ok := a.m.Get(key); !ok {
		a.m.Set(key, value)
	}
}

// Get returns the value for key and whether it was present.
func (a *Attrs) Get(key string) (string, bool) {
	if a == nil || a.m == nil {
		return "", false
	}
	return a.m.Get(key)
}

// Len returns the number of attributes.
func (a *Attrs) Len() int {
	if a == nil || a.m == nil {
		return 0
	}
	return a.m.Len()
}

// All iterates over attributes in insertion order.
func (a *Attrs) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if a == nil || a.m == nil {
			return
		}
		for pair := a.m.Oldest(); pair != nil; pair = pair.Next() {
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}

// Clone returns a deep copy.
func (a *Attrs) Clone() *Attrs {
	out := NewAttrs()
	for k, v := range a.All() {
		out.Set(k, v)
	}
	return out
}

// Equal reports whether two attribute maps hold the same key/value pairs in
// the same order.
func (a *Attrs) Equal(b *Attrs) bool {
	if a.Len() != b.Len() {
		return false
	}
	next, stop := iter.Pull2(b.All())
	defer stop()
	for k, v := range a.All() {
		bk, bv, ok := next()
		if !ok || k != bk || v != bv {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the attributes as a JSON object with keys in insertion
// order.
func (a *Attrs) MarshalJSON() ([]byte, error) {
	if a == nil || a.m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(a.m)
}

// UnmarshalJSON decodes a JSON object preserving key order.
func (a *Attrs) UnmarshalJSON(data []byte) error {
	m := orderedmap.New[string, string]()
	if err := json.Unmarshal(data, m); err != nil {
		return err
	}
	a.m = m
	return nil
}

// NodeInfo carries the display data attached to a node ID.
type NodeInfo struct {
	// Label is the display string. Empty means "no explicit label";
	// emitters fall back to the node ID.
	Label string
	// Type is an optional node kind (e.g. "lib", "bin", "build-script").
	// Semantics are format-specific on input.
	Type string
	// Attrs holds arbitrary extra attributes carried through where the
	// output format allows.
	Attrs *Attrs
}

// NewNodeInfo returns a NodeInfo with the given label and empty attributes.
func NewNodeInfo(label string) *NodeInfo {
	return &NodeInfo{Label: label, Attrs: NewAttrs()}
}

// DisplayLabel returns the label if set, otherwise id.
func (n *NodeInfo) DisplayLabel(id string) string {
	if n.Label != "" {
		return n.Label
	}
	return id
}

// Clone returns a deep copy.
func (n *NodeInfo) Clone() *NodeInfo {
	return &NodeInfo{Label: n.Label, Type: n.Type, Attrs: n.Attrs.Clone()}
}

// Equal reports whether label, type, and attributes all match.
func (n *NodeInfo) Equal(o *NodeInfo) bool {
	return n.Label == o.Label && n.Type == o.Type && n.Attrs.Equal(o.Attrs)
}

// Edge is a directed connection between two node IDs. The endpoints need not
// resolve within the same Graph instance; they may reference nodes anywhere
// in the hierarchy.
type Edge struct {
	From  string
	To    string
	Label string
	Attrs *Attrs
}

// NewEdge returns an unlabeled edge with empty attributes.
func NewEdge(from, to string) Edge {
	return Edge{From: from, To: to, Attrs: NewAttrs()}
}

// Clone returns a deep copy.
func (e Edge) Clone() Edge {
	return Edge{From: e.From, To: e.To, Label: e.Label, Attrs: e.Attrs.Clone()}
}

// NodeMap is an insertion-ordered map from node ID to [NodeInfo].
type NodeMap = orderedmap.OrderedMap[string, *NodeInfo]

// Graph is the recursive dependency-graph unit. A Graph owns its subgraphs by
// value (a tree, not a pointer graph); cross-level edges are resolved by ID
// lookup, never by direct references into subgraph structures.
//
// The zero value is not usable; use [New].
type Graph struct {
	// ID identifies the graph when it is itself a subgraph or cluster.
	ID string
	// Attrs holds graph-level attributes (e.g. DOT rankdir, label).
	Attrs *Attrs
	// Nodes maps node ID to its info, in insertion order.
	Nodes *NodeMap
	// Edges lists this level's edges in insertion order.
	Edges []Edge
	// Subgraphs lists nested graphs in insertion order.
	Subgraphs []*Graph
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		Attrs: NewAttrs(),
		Nodes: orderedmap.New[string, *NodeInfo](),
	}
}

// AddNode inserts or replaces a node at this level.
func (g *Graph) AddNode(id string, info *NodeInfo) {
	if info == nil {
		info = NewNodeInfo("")
	}
	g.Nodes.Set(id, info)
}

// AddEdge appends an edge at this level.
func (g *Graph) AddEdge(e Edge) {
	if e.Attrs == nil {
		e.Attrs = NewAttrs()
	}
	g.Edges = append(g.Edges, e)
}

// Node looks up a node at this level only. Use [Graph.AllNodes] for
// hierarchy-wide lookups.
func (g *Graph) Node(id string) (*NodeInfo, bool) {
	return g.Nodes.Get(id)
}

// AllNodes collects every node from this graph and all nested subgraphs,
// depth-first: own nodes first, then each subgraph in stored order. Flattening
// an already-flat graph yields the same nodes in the same order.
//
// The returned map shares NodeInfo pointers with the graph; callers must not
// modify them.
func (g *Graph) AllNodes() *NodeMap {
	result := orderedmap.New[string, *NodeInfo]()
	g.collectNodes(result)
	return result
}

func (g *Graph) collectNodes(result *NodeMap) {
	for pair := g.Nodes.Oldest(); pair != nil; pair = pair.Next() {
		result.Set(pair.Key, pair.Value)
	}
	for _, sg := range g.Subgraphs {
		sg.collectNodes(result)
	}
}

// AllEdges collects every edge from this graph and all nested subgraphs, in
// the same depth-first order as [Graph.AllNodes].
func (g *Graph) AllEdges() []Edge {
	var result []Edge
	g.collectEdges(&result)
	return result
}

func (g *Graph) collectEdges(result *[]Edge) {
	*result = append(*result, g.Edges...)
	for _, sg := range g.Subgraphs {
		sg.collectEdges(result)
	}
}

// IsEmpty reports whether the graph has no nodes, edges, or subgraphs.
func (g *Graph) IsEmpty() bool {
	return g.Nodes.Len() == 0 && len(g.Edges) == 0 && len(g.Subgraphs) == 0
}

// Clone returns a deep copy of the whole hierarchy.
func (g *Graph) Clone() *Graph {
	out := New()
	out.ID = g.ID
	out.Attrs = g.Attrs.Clone()
	for pair := g.Nodes.Oldest(); pair != nil; pair = pair.Next() {
		out.Nodes.Set(pair.Key, pair.Value.Clone())
	}
	out.Edges = make([]Edge, 0, len(g.Edges))
	for _, e := range g.Edges {
		out.Edges = append(out.Edges, e.Clone())
	}
	for _, sg := range g.Subgraphs {
		out.Subgraphs = append(out.Subgraphs, sg.Clone())
	}
	return out
}

// FilterNodes returns a copy of the hierarchy containing only nodes whose ID
// is in keep, plus edges where both endpoints survive. Subgraphs left with no
// nodes and no non-empty children are dropped.
func (g *Graph) FilterNodes(keep map[string]bool) *Graph {
	out := New()
	out.ID = g.ID
	out.Attrs = g.Attrs.Clone()
	for pair := g.Nodes.Oldest(); pair != nil; pair = pair.Next() {
		if keep[pair.Key] {
			out.Nodes.Set(pair.Key, pair.Value.Clone())
		}
	}
	for _, e := range g.Edges {
		if keep[e.From] && keep[e.To] {
			out.Edges = append(out.Edges, e.Clone())
		}
	}
	for _, sg := range g.Subgraphs {
		filtered := sg.FilterNodes(keep)
		if filtered.Nodes.Len() > 0 || len(filtered.Subgraphs) > 0 {
			out.Subgraphs = append(out.Subgraphs, filtered)
		}
	}
	return out
}

// FilterEdges returns a copy of the hierarchy keeping only edges for which
// keep reports true. Nodes, subgraph structure, and attributes are untouched.
func (g *Graph) FilterEdges(keep func(Edge) bool) *Graph {
	out := New()
	out.ID = g.ID
	out.Attrs = g.Attrs.Clone()
	for pair := g.Nodes.Oldest(); pair != nil; pair = pair.Next() {
		out.Nodes.Set(pair.Key, pair.Value.Clone())
	}
	for _, e := range g.Edges {
		if keep(e) {
			out.Edges = append(out.Edges, e.Clone())
		}
	}
	for _, sg := range g.Subgraphs {
		out.Subgraphs = append(out.Subgraphs, sg.FilterEdges(keep))
	}
	return out
}

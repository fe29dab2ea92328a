package format

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/matzehuels/depgraph/pkg/depgraph"
	"github.com/matzehuels/depgraph/pkg/errors"
)

// jsonGraph is the canonical lossless representation. Nodes and edges are
// arrays so document order survives the round trip; attrs keep key order
// through the ordered map's JSON support.
type jsonGraph struct {
	ID        string          `json:"id,omitempty"`
	Attrs     *depgraph.Attrs `json:"attrs,omitempty"`
	Nodes     []jsonNode      `json:"nodes"`
	Edges     []jsonEdge      `json:"edges"`
	Subgraphs []*jsonGraph    `json:"subgraphs,omitempty"`
}

type jsonNode struct {
	ID    string          `json:"id"`
	Label string          `json:"label,omitempty"`
	Type  string          `json:"type,omitempty"`
	Attrs *depgraph.Attrs `json:"attrs,omitempty"`
}

type jsonEdge struct {
	From  string          `json:"from"`
	To    string          `json:"to"`
	Label string          `json:"label,omitempty"`
	Attrs *depgraph.Attrs `json:"attrs,omitempty"`
}

func parseJSON(data []byte) (*depgraph.Graph, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var jg jsonGraph
	if err := dec.Decode(&jg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid graph JSON")
	}
	return fromJSONGraph(&jg), nil
}

func emitJSON(w io.Writer, g *depgraph.Graph) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSONGraph(g))
}

func toJSONGraph(g *depgraph.Graph) *jsonGraph {
	jg := &jsonGraph{
		ID:    g.ID,
		Nodes: make([]jsonNode, 0, g.Nodes.Len()),
		Edges: make([]jsonEdge, 0, len(g.Edges)),
	}
	if g.Attrs.Len() > 0 {
		jg.Attrs = g.Attrs
	}
	for pair := g.Nodes.Oldest(); pair != nil; pair = pair.Next() {
		n := jsonNode{ID: pair.Key, Label: pair.Value.Label, Type: pair.Value.Type}
		if pair.Value.Attrs.Len() > 0 {
			n.Attrs = pair.Value.Attrs
		}
		jg.Nodes = append(jg.Nodes, n)
	}
	for _, e := range g.Edges {
		je := jsonEdge{From: e.From, To: e.To, Label: e.Label}
		if e.Attrs.Len() > 0 {
			je.Attrs = e.Attrs
		}
		jg.Edges = append(jg.Edges, je)
	}
	for _, sub := range g.Subgraphs {
		jg.Subgraphs = append(jg.Subgraphs, toJSONGraph(sub))
	}
	return jg
}

func fromJSONGraph(jg *jsonGraph) *depgraph.Graph {
	g := depgraph.New()
	g.ID = jg.ID
	if jg.Attrs != nil {
		g.Attrs = jg.Attrs
	}
	for _, n := range jg.Nodes {
		info := depgraph.NewNodeInfo(n.Label)
		info.Type = n.Type
		info.Attrs = n.Attrs
		g.AddNode(n.ID, info)
	}
	for _, e := range jg.Edges {
		edge := depgraph.NewEdge(e.From, e.To)
		edge.Label = e.Label
		edge.Attrs = e.Attrs
		g.AddEdge(edge)
	}
	for _, sub := range jg.Subgraphs {
		g.Subgraphs = append(g.Subgraphs, fromJSONGraph(sub))
	}
	return g
}

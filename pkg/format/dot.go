package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/matzehuels/depgraph/pkg/depgraph"
)

var dotKeywords = map[string]bool{
	"node": true, "edge": true, "graph": true,
	"digraph": true, "subgraph": true, "strict": true,
}

// emitDOT writes g as a Graphviz digraph. Subgraphs are emitted as nested
// subgraph blocks so cluster structure survives a round trip.
func emitDOT(w io.Writer, g *depgraph.Graph) error {
	var b strings.Builder
	b.WriteString("digraph")
	if g.ID != "" {
		b.WriteString(" " + dotID(g.ID))
	}
	b.WriteString(" {\n")
	emitDOTBody(&b, g, 1)
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func emitDOTBody(b *strings.Builder, g *depgraph.Graph, depth int) {
	indent := strings.Repeat("    ", depth)
	for k, v := range g.Attrs.All() {
		fmt.Fprintf(b, "%s%s=%s;\n", indent, dotID(k), dotID(v))
	}
	for pair := g.Nodes.Oldest(); pair != nil; pair = pair.Next() {
		b.WriteString(indent + dotID(pair.Key))
		if attrs := nodeAttrList(pair.Value); attrs != "" {
			b.WriteString(" [" + attrs + "]")
		}
		b.WriteString(";\n")
	}
	for _, e := range g.Edges {
		fmt.Fprintf(b, "%s%s -> %s", indent, dotID(e.From), dotID(e.To))
		if attrs := edgeAttrList(e); attrs != "" {
			b.WriteString(" [" + attrs + "]")
		}
		b.WriteString(";\n")
	}
	for _, sub := range g.Subgraphs {
		b.WriteString(indent + "subgraph")
		if sub.ID != "" {
			b.WriteString(" " + dotID(sub.ID))
		}
		b.WriteString(" {\n")
		emitDOTBody(b, sub, depth+1)
		b.WriteString(indent + "}\n")
	}
}

func nodeAttrList(info *depgraph.NodeInfo) string {
	var parts []string
	if info.Label != "" {
		parts = append(parts, "label="+dotQuote(info.Label))
	}
	if info.Type != "" {
		parts = append(parts, "type="+dotQuote(info.Type))
	}
	for k, v := range info.Attrs.All() {
		parts = append(parts, dotID(k)+"="+dotQuote(v))
	}
	return strings.Join(parts, ", ")
}

func edgeAttrList(e depgraph.Edge) string {
	var parts []string
	if e.Label != "" {
		parts = append(parts, "label="+dotQuote(e.Label))
	}
	for k, v := range e.Attrs.All() {
		parts = append(parts, dotID(k)+"="+dotQuote(v))
	}
	return strings.Join(parts, ", ")
}

// dotID renders an identifier, quoting unless it is a bare ID.
func dotID(s string) string {
	if isBareID(s) {
		return s
	}
	return dotQuote(s)
}

// dotQuote wraps s in double quotes, escaping embedded quotes. Backslashes
// are left alone: DOT uses them for directives like \n and \l inside labels.
func dotQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

func isBareID(s string) bool {
	if s == "" || dotKeywords[strings.ToLower(s)] {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_',
			r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

package format

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/matzehuels/depgraph/pkg/depgraph"
	"github.com/matzehuels/depgraph/pkg/errors"
)

var (
	mermaidNode     = regexp.MustCompile(`^(\w+)(?:\[([^\]]*)\]|\(([^)]*)\))?$`)
	mermaidEdge     = regexp.MustCompile(`^(\w+)(?:\[([^\]]*)\]|\(([^)]*)\))?\s*-[.=-]*->(?:\|([^|]*)\|)?\s*(\w+)(?:\[([^\]]*)\]|\(([^)]*)\))?$`)
	mermaidSubgraph = regexp.MustCompile(`^subgraph\s+(\w+)(?:\s*\[([^\]]*)\])?$`)
)

// parseMermaid decodes a flowchart with at most one level of subgraph
// blocks. Node shapes beyond [text] and (text) are not recognized.
func parseMermaid(data []byte) (*depgraph.Graph, error) {
	g := depgraph.New()
	current := g

	lines := strings.Split(string(data), "\n")
	headerSeen := false
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "%%") {
			continue
		}
		if !headerSeen {
			m := mermaidHeader.FindStringSubmatch(line)
			if m == nil {
				return nil, errors.New(errors.ErrCodeInvalidFormat, "line %d: expected flowchart header", i+1)
			}
			g.Attrs.Set("direction", strings.Fields(line)[1])
			headerSeen = true
			continue
		}
		if m := mermaidSubgraph.FindStringSubmatch(line); m != nil {
			if current != g {
				return nil, errors.New(errors.ErrCodeInvalidFormat, "line %d: nested subgraphs are not supported", i+1)
			}
			sub := depgraph.New()
			sub.ID = m[1]
			if m[2] != "" {
				sub.Attrs.Set("label", unescapeMermaid(m[2]))
			}
			g.Subgraphs = append(g.Subgraphs, sub)
			current = sub
			continue
		}
		if line == "end" {
			if current == g {
				return nil, errors.New(errors.ErrCodeInvalidFormat, "line %d: end without subgraph", i+1)
			}
			current = g
			continue
		}
		if m := mermaidEdge.FindStringSubmatch(line); m != nil {
			from, to := m[1], m[5]
			ensureMermaidNode(g, current, from, firstNonEmpty(m[2], m[3]))
			ensureMermaidNode(g, current, to, firstNonEmpty(m[6], m[7]))
			e := depgraph.NewEdge(from, to)
			e.Label = unescapeMermaid(m[4])
			current.AddEdge(e)
			continue
		}
		if m := mermaidNode.FindStringSubmatch(line); m != nil {
			ensureMermaidNode(g, current, m[1], firstNonEmpty(m[2], m[3]))
			continue
		}
		return nil, errors.New(errors.ErrCodeInvalidFormat, "line %d: cannot parse %q", i+1, line)
	}
	if current != g {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unterminated subgraph %q", current.ID)
	}
	return g, nil
}

func ensureMermaidNode(root, current *depgraph.Graph, id, label string) {
	if info, ok := root.AllNodes().Get(id); ok {
		if label != "" && info.Label == "" {
			info.Label = unescapeMermaid(label)
		}
		return
	}
	current.AddNode(id, depgraph.NewNodeInfo(unescapeMermaid(label)))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// emitMermaid writes g as a flowchart. Nested subgraphs below the first
// level are hoisted into their nearest top-level ancestor.
func emitMermaid(w io.Writer, g *depgraph.Graph) error {
	var b strings.Builder
	direction, ok := g.Attrs.Get("direction")
	if !ok {
		direction = "TD"
	}
	b.WriteString("flowchart " + direction + "\n")

	writeNode := func(indent, id string, info *depgraph.NodeInfo) {
		label := info.DisplayLabel(id)
		if label == id {
			b.WriteString(indent + id + "\n")
		} else {
			fmt.Fprintf(&b, "%s%s[%s]\n", indent, id, escapeMermaid(label))
		}
	}

	for pair := g.Nodes.Oldest(); pair != nil; pair = pair.Next() {
		writeNode("    ", pair.Key, pair.Value)
	}
	for _, sub := range g.Subgraphs {
		title := sub.ID
		if label, ok := sub.Attrs.Get("label"); ok {
			title = sub.ID + "[" + escapeMermaid(label) + "]"
		}
		b.WriteString("    subgraph " + title + "\n")
		for pair := sub.AllNodes().Oldest(); pair != nil; pair = pair.Next() {
			writeNode("        ", pair.Key, pair.Value)
		}
		b.WriteString("    end\n")
	}
	for _, e := range g.AllEdges() {
		if e.Label == "" {
			fmt.Fprintf(&b, "    %s --> %s\n", e.From, e.To)
		} else {
			fmt.Fprintf(&b, "    %s -->|%s| %s\n", e.From, escapeMermaid(e.Label), e.To)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeMermaid(s string) string {
	if strings.ContainsAny(s, `"[]|()`) {
		return `"` + strings.ReplaceAll(s, `"`, "#quot;") + `"`
	}
	return s
}

func unescapeMermaid(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) && len(s) >= 2 {
		s = s[1 : len(s)-1]
	}
	return strings.ReplaceAll(s, "#quot;", `"`)
}

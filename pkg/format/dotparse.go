package format

import (
	"sort"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/matzehuels/depgraph/pkg/depgraph"
	"github.com/matzehuels/depgraph/pkg/errors"
)

// parseDOT decodes the Graphviz subset this module emits and the common
// hand-written variants: strict/graph/digraph headers, nested subgraphs,
// node and edge statements with attribute lists, quoted identifiers, and
// //, /* */ and # comments. Port syntax and HTML labels are not supported.
// Node and edge default statements ("node [...]", "edge [...]") are skipped.
func parseDOT(data []byte) (*depgraph.Graph, error) {
	toks, err := lexDOT(string(data))
	if err != nil {
		return nil, err
	}
	p := &dotParser{toks: toks, implicit: make(map[*depgraph.Graph]map[string]bool)}
	g, err := p.parseGraph()
	if err != nil {
		return nil, err
	}
	p.removeImplicitDuplicates(g)
	sortNodeKeys(g)
	return g, nil
}

type dotTokenKind int

const (
	tokID dotTokenKind = iota
	tokPunct
	tokArrow
	tokEOF
)

type dotToken struct {
	kind dotTokenKind
	text string
	line int
}

func lexDOT(src string) ([]dotToken, error) {
	var toks []dotToken
	line := 1
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == '\n':
			line++
			i++
		case c == ' ' || c == '\t' || c == '\r':
			i++
		case c == '#':
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case strings.HasPrefix(src[i:], "//"):
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case strings.HasPrefix(src[i:], "/*"):
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				return nil, errors.New(errors.ErrCodeInvalidFormat, "line %d: unterminated comment", line)
			}
			line += strings.Count(src[i:i+2+end+2], "\n")
			i += 2 + end + 2
		case c == '"':
			j := i + 1
			var b strings.Builder
			for j < len(src) && src[j] != '"' {
				if src[j] == '\\' && j+1 < len(src) && src[j+1] == '"' {
					b.WriteByte('"')
					j += 2
					continue
				}
				if src[j] == '\n' {
					line++
				}
				b.WriteByte(src[j])
				j++
			}
			if j >= len(src) {
				return nil, errors.New(errors.ErrCodeInvalidFormat, "line %d: unterminated string", line)
			}
			toks = append(toks, dotToken{tokID, b.String(), line})
			i = j + 1
		case c == '-' && i+1 < len(src) && (src[i+1] == '>' || src[i+1] == '-'):
			toks = append(toks, dotToken{tokArrow, src[i : i+2], line})
			i += 2
		case strings.IndexByte("{}[]=;,", c) >= 0:
			toks = append(toks, dotToken{tokPunct, string(c), line})
			i++
		case isDOTIDChar(c):
			j := i
			for j < len(src) && isDOTIDChar(src[j]) {
				j++
			}
			toks = append(toks, dotToken{tokID, src[i:j], line})
			i = j
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "line %d: unexpected character %q", line, c)
		}
	}
	return append(toks, dotToken{tokEOF, "", line}), nil
}

func isDOTIDChar(c byte) bool {
	return c == '_' || c == '.' ||
		c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

type dotParser struct {
	toks []dotToken
	pos  int
	root *depgraph.Graph
	// implicit tracks nodes created only because an edge referenced them.
	implicit map[*depgraph.Graph]map[string]bool
}

func (p *dotParser) peek() dotToken { return p.toks[p.pos] }

func (p *dotParser) next() dotToken {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *dotParser) errf(t dotToken, format string, args ...any) error {
	args = append([]any{t.line}, args...)
	return errors.New(errors.ErrCodeInvalidFormat, "line %d: "+format, args...)
}

func (p *dotParser) expectPunct(text string) error {
	t := p.next()
	if t.kind != tokPunct || t.text != text {
		return p.errf(t, "expected %q, got %q", text, t.text)
	}
	return nil
}

func (p *dotParser) parseGraph() (*depgraph.Graph, error) {
	t := p.next()
	if t.kind == tokID && strings.EqualFold(t.text, "strict") {
		t = p.next()
	}
	if t.kind != tokID || !strings.EqualFold(t.text, "digraph") && !strings.EqualFold(t.text, "graph") {
		return nil, p.errf(t, "expected digraph or graph, got %q", t.text)
	}
	g := depgraph.New()
	p.root = g
	if p.peek().kind == tokID {
		g.ID = p.next().text
	}
	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	if err := p.parseBody(g); err != nil {
		return nil, err
	}
	return g, p.expectPunct("}")
}

// parseBody consumes statements up to, but not including, the closing brace.
func (p *dotParser) parseBody(g *depgraph.Graph) error {
	for {
		t := p.peek()
		switch {
		case t.kind == tokEOF:
			return nil
		case t.kind == tokPunct && t.text == "}":
			return nil
		case t.kind == tokPunct && t.text == ";":
			p.next()
		case t.kind == tokPunct && t.text == "{":
			if err := p.parseSubgraph(g, ""); err != nil {
				return err
			}
		case t.kind == tokID && strings.EqualFold(t.text, "subgraph"):
			p.next()
			id := ""
			if p.peek().kind == tokID {
				id = p.next().text
			}
			if err := p.parseSubgraph(g, id); err != nil {
				return err
			}
		case t.kind == tokID:
			if err := p.parseStatement(g); err != nil {
				return err
			}
		default:
			return p.errf(t, "unexpected token %q", t.text)
		}
	}
}

func (p *dotParser) parseSubgraph(parent *depgraph.Graph, id string) error {
	if err := p.expectPunct("{"); err != nil {
		return err
	}
	sub := depgraph.New()
	sub.ID = id
	if err := p.parseBody(sub); err != nil {
		return err
	}
	if err := p.expectPunct("}"); err != nil {
		return err
	}
	parent.Subgraphs = append(parent.Subgraphs, sub)
	return nil
}

func (p *dotParser) parseStatement(g *depgraph.Graph) error {
	id := p.next()

	// Default-attribute statements apply to all following nodes or edges;
	// graph-level ones fold into the graph attrs. Defaults are skipped.
	if p.peek().kind == tokPunct && p.peek().text == "[" {
		lower := strings.ToLower(id.text)
		if lower == "node" || lower == "edge" || lower == "graph" {
			attrs, err := p.parseAttrLists()
			if err != nil {
				return err
			}
			if lower == "graph" {
				for k, v := range attrs.All() {
					g.Attrs.Set(k, v)
				}
			}
			return nil
		}
	}

	// ID '=' ID at statement level sets a graph attribute.
	if p.peek().kind == tokPunct && p.peek().text == "=" {
		p.next()
		val := p.next()
		if val.kind != tokID {
			return p.errf(val, "expected attribute value, got %q", val.text)
		}
		g.Attrs.Set(id.text, val.text)
		return nil
	}

	// Node statement or edge chain.
	endpoints := []string{id.text}
	for p.peek().kind == tokArrow {
		p.next()
		ep := p.next()
		if ep.kind != tokID {
			return p.errf(ep, "expected edge endpoint, got %q", ep.text)
		}
		endpoints = append(endpoints, ep.text)
	}

	var attrs *depgraph.Attrs
	if p.peek().kind == tokPunct && p.peek().text == "[" {
		var err error
		if attrs, err = p.parseAttrLists(); err != nil {
			return err
		}
	}

	if len(endpoints) == 1 {
		p.defineNode(g, endpoints[0], attrs)
		return nil
	}
	for i := 0; i+1 < len(endpoints); i++ {
		p.ensureNode(g, endpoints[i])
		p.ensureNode(g, endpoints[i+1])
		e := depgraph.NewEdge(endpoints[i], endpoints[i+1])
		if attrs != nil {
			for k, v := range attrs.All() {
				if k == "label" {
					e.Label = v
					continue
				}
				if e.Attrs == nil {
					e.Attrs = depgraph.NewAttrs()
				}
				e.Attrs.Set(k, v)
			}
		}
		g.AddEdge(e)
	}
	return nil
}

// parseAttrLists consumes one or more consecutive bracketed attribute lists.
func (p *dotParser) parseAttrLists() (*depgraph.Attrs, error) {
	attrs := depgraph.NewAttrs()
	for p.peek().kind == tokPunct && p.peek().text == "[" {
		p.next()
		for {
			t := p.peek()
			if t.kind == tokPunct && t.text == "]" {
				p.next()
				break
			}
			if t.kind == tokPunct && (t.text == "," || t.text == ";") {
				p.next()
				continue
			}
			key := p.next()
			if key.kind != tokID {
				return nil, p.errf(key, "expected attribute name, got %q", key.text)
			}
			if err := p.expectPunct("="); err != nil {
				return nil, err
			}
			val := p.next()
			if val.kind != tokID {
				return nil, p.errf(val, "expected attribute value, got %q", val.text)
			}
			attrs.Set(key.text, val.text)
		}
	}
	return attrs, nil
}

// defineNode records an explicit node declaration, replacing any implicit
// placeholder.
func (p *dotParser) defineNode(g *depgraph.Graph, id string, attrs *depgraph.Attrs) {
	info, ok := g.Node(id)
	if !ok {
		info = depgraph.NewNodeInfo("")
	}
	if attrs != nil {
		for k, v := range attrs.All() {
			switch k {
			case "label":
				info.Label = v
			case "type":
				info.Type = v
			default:
				if info.Attrs == nil {
					info.Attrs = depgraph.NewAttrs()
				}
				info.Attrs.Set(k, v)
			}
		}
	}
	g.AddNode(id, info)
	if marks := p.implicit[g]; marks != nil {
		delete(marks, id)
	}
}

// ensureNode creates a bare node for an edge endpoint unless the ID already
// exists somewhere in the hierarchy parsed so far.
func (p *dotParser) ensureNode(g *depgraph.Graph, id string) {
	if _, ok := p.root.AllNodes().Get(id); ok {
		return
	}
	g.AddNode(id, depgraph.NewNodeInfo(""))
	if p.implicit[g] == nil {
		p.implicit[g] = make(map[string]bool)
	}
	p.implicit[g][id] = true
}

// removeImplicitDuplicates drops bare placeholder nodes whose ID is declared
// explicitly in a descendant subgraph. This covers edges written before the
// subgraph that really owns their endpoints.
func (p *dotParser) removeImplicitDuplicates(g *depgraph.Graph) {
	for _, sub := range g.Subgraphs {
		p.removeImplicitDuplicates(sub)
	}
	marks := p.implicit[g]
	for id := range marks {
		info, ok := g.Node(id)
		if !ok || info.Label != "" || info.Type != "" || info.Attrs.Len() > 0 {
			continue
		}
		for _, sub := range g.Subgraphs {
			if _, ok := sub.AllNodes().Get(id); ok {
				g.Nodes.Delete(id)
				break
			}
		}
	}
}

// sortNodeKeys orders every level's node map alphabetically by ID. DOT input
// interleaves declarations and edges, so insertion order is rarely
// meaningful; sorted keys give deterministic output.
func sortNodeKeys(g *depgraph.Graph) {
	keys := make([]string, 0, g.Nodes.Len())
	for pair := g.Nodes.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	sort.Strings(keys)
	sorted := orderedmap.New[string, *depgraph.NodeInfo]()
	for _, k := range keys {
		info, _ := g.Nodes.Get(k)
		sorted.Set(k, info)
	}
	g.Nodes = sorted
	for _, sub := range g.Subgraphs {
		sortNodeKeys(sub)
	}
}

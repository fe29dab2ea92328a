package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/matzehuels/depgraph/pkg/depgraph"
	"github.com/matzehuels/depgraph/pkg/errors"
)

// parseTGF decodes Trivial Graph Format: node lines ("id label..."), a lone
// "#" separator, then edge lines ("from to label..."). TGF has no notion of
// nesting or attributes.
func parseTGF(data []byte) (*depgraph.Graph, error) {
	g := depgraph.New()
	inEdges := false
	for i, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if trimmed == "#" {
			if inEdges {
				return nil, errors.New(errors.ErrCodeInvalidFormat, "line %d: duplicate # separator", i+1)
			}
			inEdges = true
			continue
		}
		fields := strings.Fields(trimmed)
		if !inEdges {
			label := ""
			if len(fields) > 1 {
				label = strings.Join(fields[1:], " ")
			}
			g.AddNode(fields[0], depgraph.NewNodeInfo(label))
			continue
		}
		if len(fields) < 2 {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "line %d: edge needs two endpoints", i+1)
		}
		e := depgraph.NewEdge(fields[0], fields[1])
		if len(fields) > 2 {
			e.Label = strings.Join(fields[2:], " ")
		}
		g.AddEdge(e)
	}
	return g, nil
}

// emitTGF writes the flat projection of g. Subgraph structure and attributes
// cannot be represented and are dropped.
func emitTGF(w io.Writer, g *depgraph.Graph) error {
	for pair := g.AllNodes().Oldest(); pair != nil; pair = pair.Next() {
		label := pair.Value.DisplayLabel(pair.Key)
		var err error
		if label == pair.Key {
			_, err = fmt.Fprintf(w, "%s\n", pair.Key)
		} else {
			_, err = fmt.Fprintf(w, "%s\t%s\n", pair.Key, label)
		}
		if err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, "#\n"); err != nil {
		return err
	}
	for _, e := range g.AllEdges() {
		var err error
		if e.Label == "" {
			_, err = fmt.Fprintf(w, "%s\t%s\n", e.From, e.To)
		} else {
			_, err = fmt.Fprintf(w, "%s\t%s\t%s\n", e.From, e.To, e.Label)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/matzehuels/depgraph/pkg/depgraph"
)

// emitDepfile writes Makefile-style dependency lines, one per node with
// outgoing edges: "target: dep dep ...". Nodes without dependencies are
// omitted, as is all nesting.
func emitDepfile(w io.Writer, g *depgraph.Graph) error {
	deps := make(map[string][]string)
	for _, e := range g.AllEdges() {
		deps[e.From] = append(deps[e.From], e.To)
	}
	for pair := g.AllNodes().Oldest(); pair != nil; pair = pair.Next() {
		targets := deps[pair.Key]
		if len(targets) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n", pair.Key, strings.Join(targets, " ")); err != nil {
			return err
		}
	}
	return nil
}

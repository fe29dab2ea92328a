package diff

import (
	"fmt"
	"io"

	"github.com/matzehuels/depgraph/pkg/depgraph"
)

// Subtract extracts what disappeared: the removed nodes, shaped like the
// before hierarchy, plus the edges whose endpoints were both removed.
// Subgraphs that end up empty are dropped. Diffing a graph against itself
// subtracts to an empty graph.
func Subtract(d *GraphDiff, before *depgraph.Graph) *depgraph.Graph {
	removed := make(map[string]bool)
	for pair := d.Nodes.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value.Status == StatusRemoved {
			removed[pair.Value.ID] = true
		}
	}
	return before.FilterNodes(removed)
}

// WriteList writes a tab-separated change list. Each changed node produces a
// line "<marker>\t<id>" with the label appended when it differs from the ID;
// each changed edge produces "<marker>\t<from>\t<to>". Unchanged entries are
// omitted. Markers are +, -, ~, and >.
func WriteList(w io.Writer, d *GraphDiff) error {
	for pair := d.Nodes.Oldest(); pair != nil; pair = pair.Next() {
		nd := pair.Value
		if nd.Status == StatusUnchanged {
			continue
		}
		info := nd.After
		if info == nil {
			info = nd.Before
		}
		label := info.DisplayLabel(nd.ID)
		var err error
		if label == nd.ID {
			_, err = fmt.Fprintf(w, "%s\t%s\n", listMarker(nd.Status), nd.ID)
		} else {
			_, err = fmt.Fprintf(w, "%s\t%s\t%s\n", listMarker(nd.Status), nd.ID, label)
		}
		if err != nil {
			return err
		}
	}
	for _, ed := range d.Edges {
		if ed.Status == StatusUnchanged {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", listMarker(ed.Status), ed.Edge.From, ed.Edge.To); err != nil {
			return err
		}
	}
	return nil
}

func listMarker(s Status) string {
	switch s {
	case StatusAdded:
		return "+"
	case StatusRemoved:
		return "-"
	case StatusChanged:
		return "~"
	case StatusMoved:
		return ">"
	default:
		return ""
	}
}

// WriteSummary writes per-status counts, one "name\tcount" line per status,
// nodes first. All lines appear even when the count is zero.
func WriteSummary(w io.Writer, d *GraphDiff) error {
	var nodes [5]int
	for pair := d.Nodes.Oldest(); pair != nil; pair = pair.Next() {
		nodes[pair.Value.Status]++
	}
	var edges [5]int
	for _, ed := range d.Edges {
		edges[ed.Status]++
	}
	lines := []struct {
		name  string
		count int
	}{
		{"added_nodes", nodes[StatusAdded]},
		{"removed_nodes", nodes[StatusRemoved]},
		{"changed_nodes", nodes[StatusChanged]},
		{"moved_nodes", nodes[StatusMoved]},
		{"unchanged_nodes", nodes[StatusUnchanged]},
		{"added_edges", edges[StatusAdded]},
		{"removed_edges", edges[StatusRemoved]},
		{"unchanged_edges", edges[StatusUnchanged]},
	}
	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "%s\t%d\n", l.name, l.count); err != nil {
			return err
		}
	}
	return nil
}

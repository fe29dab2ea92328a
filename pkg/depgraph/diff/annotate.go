package diff

import (
	"github.com/matzehuels/depgraph/pkg/depgraph"
)

const removedClusterID = "cluster_removed"

// Annotate renders a diff as a single visual graph shaped like the after
// graph. Node labels gain a status prefix ("+ ", "- ", "~ ", "> ") and nodes
// and edges carry color, fontcolor, and diff attributes suitable for DOT
// output. Removed nodes, which have no place in the after hierarchy, are
// appended at the root, or grouped into a "Removed" subgraph when cluster is
// set. All edges live at the root.
func Annotate(d *GraphDiff, after *depgraph.Graph, cluster bool) *depgraph.Graph {
	out := annotateSubgraph(d, after)

	removedHost := out
	if cluster {
		sub := depgraph.New()
		sub.ID = removedClusterID
		sub.Attrs.Set("label", "Removed")
		removedHost = sub
	}
	hasRemoved := false
	for pair := d.Nodes.Oldest(); pair != nil; pair = pair.Next() {
		nd := pair.Value
		if nd.Status != StatusRemoved {
			continue
		}
		hasRemoved = true
		removedHost.AddNode(nd.ID, annotateNode(nd.ID, nd.Before, StatusRemoved))
	}
	if cluster && hasRemoved {
		out.Subgraphs = append(out.Subgraphs, removedHost)
	}

	for _, ed := range d.Edges {
		e := ed.Edge.Clone()
		if e.Attrs == nil {
			e.Attrs = depgraph.NewAttrs()
		}
		if c := statusColor(ed.Status); c != "" {
			e.Attrs.Set("color", c)
		}
		e.Attrs.Set("diff", ed.Status.String())
		out.AddEdge(e)
	}

	return out
}

// annotateSubgraph rebuilds the after hierarchy with annotated node
// definitions and no edges.
func annotateSubgraph(d *GraphDiff, g *depgraph.Graph) *depgraph.Graph {
	out := depgraph.New()
	out.ID = g.ID
	out.Attrs = g.Attrs.Clone()
	for pair := g.Nodes.Oldest(); pair != nil; pair = pair.Next() {
		nd, ok := d.Nodes.Get(pair.Key)
		if !ok {
			continue
		}
		out.AddNode(pair.Key, annotateNode(pair.Key, pair.Value, nd.Status))
	}
	for _, sub := range g.Subgraphs {
		annotated := annotateSubgraph(d, sub)
		if !annotated.IsEmpty() {
			out.Subgraphs = append(out.Subgraphs, annotated)
		}
	}
	return out
}

func annotateNode(id string, info *depgraph.NodeInfo, status Status) *depgraph.NodeInfo {
	out := info.Clone()
	if out.Attrs == nil {
		out.Attrs = depgraph.NewAttrs()
	}
	if prefix := statusPrefix(status); prefix != "" {
		out.Label = prefix + out.DisplayLabel(id)
	}
	if c := statusColor(status); c != "" {
		out.Attrs.Set("color", c)
		out.Attrs.Set("fontcolor", c)
	}
	out.Attrs.Set("diff", status.String())
	return out
}

func statusPrefix(s Status) string {
	switch s {
	case StatusAdded:
		return "+ "
	case StatusRemoved:
		return "- "
	case StatusChanged:
		return "~ "
	case StatusMoved:
		return "> "
	default:
		return ""
	}
}

func statusColor(s Status) string {
	switch s {
	case StatusAdded:
		return "green"
	case StatusRemoved:
		return "red"
	case StatusChanged:
		return "orange"
	case StatusMoved:
		return "blue"
	default:
		return ""
	}
}

// Package query answers "what is in this graph?" questions as plain text:
// node listings, edge listings, and whole-graph metrics. Unlike the
// transforms, nothing here produces graph output.
package query

import (
	"github.com/matzehuels/depgraph/pkg/depgraph"
)

// Field selects what listings print for a node: its ID or display label.
// The zero value prints labels.
type Field string

const (
	FieldID    Field = "id"
	FieldLabel Field = "label"
)

func (f Field) text(id string, info *depgraph.NodeInfo) string {
	if f == FieldID {
		return id
	}
	return info.DisplayLabel(id)
}

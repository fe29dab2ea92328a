package query

import (
	"sort"

	"github.com/matzehuels/depgraph/pkg/depgraph"
	"github.com/matzehuels/depgraph/pkg/depgraph/transform"
)

// EdgeSort orders an edge listing lexicographically by one endpoint, the
// other endpoint breaking ties.
type EdgeSort string

const (
	EdgeSortNone   EdgeSort = "none"
	EdgeSortSource EdgeSort = "source"
	EdgeSortTarget EdgeSort = "target"
)

// EdgesOptions configures an edge listing. A pattern matches an edge when
// either endpoint matches it.
type EdgesOptions struct {
	Include []string
	Exclude []string
	// And requires every include pattern to match on one endpoint.
	And     bool
	Key     transform.MatchKey
	Sort    EdgeSort
	Reverse bool
	// Limit truncates the listing when positive, after sorting.
	Limit int
	// Field selects what to print for the endpoints.
	Field Field
}

// EdgeResult is one listing entry. From and To carry the requested field;
// Label is the edge's own label and may be empty.
type EdgeResult struct {
	From  string
	To    string
	Label string
}

// Edges lists the graph's edges with optional filtering and sorting. Edges
// with an unresolvable endpoint are skipped.
func Edges(g *depgraph.Graph, opts EdgesOptions) ([]EdgeResult, error) {
	var include, exclude *transform.Matcher
	var err error
	if len(opts.Include) > 0 {
		if include, err = transform.NewMatcher(opts.Include, opts.And); err != nil {
			return nil, err
		}
	}
	if len(opts.Exclude) > 0 {
		if exclude, err = transform.NewMatcher(opts.Exclude, false); err != nil {
			return nil, err
		}
	}

	allNodes := g.AllNodes()
	var results []EdgeResult
	for _, e := range g.AllEdges() {
		fromInfo, okFrom := allNodes.Get(e.From)
		toInfo, okTo := allNodes.Get(e.To)
		if !okFrom || !okTo {
			continue
		}
		fromText := opts.Key.Text(e.From, fromInfo)
		toText := opts.Key.Text(e.To, toInfo)
		if include != nil && !include.Match(fromText) && !include.Match(toText) {
			continue
		}
		if exclude != nil && (exclude.Match(fromText) || exclude.Match(toText)) {
			continue
		}
		results = append(results, EdgeResult{
			From:  opts.Field.text(e.From, fromInfo),
			To:    opts.Field.text(e.To, toInfo),
			Label: e.Label,
		})
	}

	switch opts.Sort {
	case EdgeSortSource:
		sort.SliceStable(results, func(i, j int) bool {
			if results[i].From != results[j].From {
				return results[i].From < results[j].From
			}
			return results[i].To < results[j].To
		})
	case EdgeSortTarget:
		sort.SliceStable(results, func(i, j int) bool {
			if results[i].To != results[j].To {
				return results[i].To < results[j].To
			}
			return results[i].From < results[j].From
		})
	}
	if opts.Reverse {
		for i, j := 0, len(results)-1; i < j; i, j = i+1, j-1 {
			results[i], results[j] = results[j], results[i]
		}
	}
	if opts.Limit > 0 && opts.Limit < len(results) {
		results = results[:opts.Limit]
	}
	return results, nil
}

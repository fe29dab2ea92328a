package transform

import (
	"path"

	"github.com/matzehuels/depgraph/pkg/depgraph"
	"github.com/matzehuels/depgraph/pkg/errors"
)

// MatchKey selects the node text glob patterns are matched against. The zero
// value matches display labels, falling back to the ID for unlabeled nodes.
type MatchKey string

const (
	MatchID    MatchKey = "id"
	MatchLabel MatchKey = "label"
)

// Text returns the matchable text for a node under the key.
func (k MatchKey) Text(id string, info *depgraph.NodeInfo) string {
	if k == MatchID {
		return id
	}
	return info.DisplayLabel(id)
}

// Matcher tests node text against a set of glob patterns (*, ?, [...]).
type Matcher struct {
	patterns []string
	and      bool
}

// NewMatcher validates patterns and builds a matcher. With and set, a text
// must satisfy every pattern; otherwise any single pattern suffices.
func NewMatcher(patterns []string, and bool) (*Matcher, error) {
	for _, p := range patterns {
		if _, err := path.Match(p, ""); err != nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "invalid pattern %q", p)
		}
	}
	return &Matcher{patterns: patterns, and: and}, nil
}

// Match reports whether text satisfies the pattern set. A matcher without
// patterns matches nothing.
func (m *Matcher) Match(text string) bool {
	for _, p := range m.patterns {
		ok, _ := path.Match(p, text)
		if m.and && !ok {
			return false
		}
		if !m.and && ok {
			return true
		}
	}
	return m.and && len(m.patterns) > 0
}

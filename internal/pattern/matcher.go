package pattern

import (
	"context"
	"sort"

	"github.com/Veraticus/smartcp/internal/model"
	"github.com/Veraticus/smartcp/internal/nlp"
)

// Match is a rule hit over tokens [Start, End).
type Match struct {
	Label    string
	Category model.Category
	Text     string
	Start    int
	End      int
}

// Matcher evaluates registry rules against analyzed documents.
type Matcher struct {
	registry *Registry
}

// NewMatcher creates a new pattern matcher over the given registry.
func NewMatcher(registry *Registry) *Matcher {
	return &Matcher{registry: registry}
}

// Name identifies the strategy in logs and metrics.
func (m *Matcher) Name() string {
	return "pattern"
}

// RequiresPipeline reports that the matcher needs tokens from the linguistic pipeline.
func (m *Matcher) RequiresPipeline() bool {
	return true
}

// Match returns every rule hit in doc. A rule emits one match for each end
// position it can reach from a start token, so overlapping spans are kept.
func (m *Matcher) Match(doc *nlp.Doc) []Match {
	if doc == nil {
		return nil
	}

	var matches []Match
	for start := range doc.Tokens {
		for _, rule := range m.registry.rules {
			for _, end := range matchEnds(rule.Tokens, doc.Tokens, start) {
				if end == start {
					continue
				}
				matches = append(matches, Match{
					Label:    rule.Label,
					Category: rule.Category,
					Text:     doc.Span(start, end),
					Start:    start,
					End:      end,
				})
			}
		}
	}
	return matches
}

// Extract groups matched spans by category.
func (m *Matcher) Extract(_ context.Context, _ string, doc *nlp.Doc) (model.Clauses, error) {
	clauses := model.Clauses{}
	for _, match := range m.Match(doc) {
		clauses.Add(match.Category, match.Text)
	}
	return clauses, nil
}

// matchEnds returns the sorted distinct end positions at which constraints
// match tokens starting at pos. A repeating constraint may take any number of
// tokens, including none.
func matchEnds(constraints []Constraint, tokens []nlp.Token, pos int) []int {
	seen := map[int]struct{}{}
	collectEnds(constraints, tokens, pos, seen)

	ends := make([]int, 0, len(seen))
	for end := range seen {
		ends = append(ends, end)
	}
	sort.Ints(ends)
	return ends
}

func collectEnds(constraints []Constraint, tokens []nlp.Token, pos int, seen map[int]struct{}) {
	if len(constraints) == 0 {
		seen[pos] = struct{}{}
		return
	}

	c := constraints[0]
	if !c.Repeat {
		if pos < len(tokens) && c.Test(tokens[pos]) {
			collectEnds(constraints[1:], tokens, pos+1, seen)
		}
		return
	}

	for k := pos; ; k++ {
		collectEnds(constraints[1:], tokens, k, seen)
		if k >= len(tokens) || !c.Test(tokens[k]) {
			return
		}
	}
}

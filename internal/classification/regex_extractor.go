// Package classification provides regular-expression clause extraction that runs
// directly on raw document text.
package classification

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Veraticus/smartcp/internal/model"
	"github.com/Veraticus/smartcp/internal/nlp"
)

// Group is a set of expressions whose matches belong to one category.
type Group struct {
	Category model.Category
	Patterns []string
}

type compiledGroup struct {
	category model.Category
	regexes  []*regexp.Regexp
}

// RegexExtractor applies category regex groups to raw text. It never depends
// on the linguistic pipeline, so its output is identical in degraded mode.
type RegexExtractor struct {
	groups    []compiledGroup
	maxLength int
}

// Option configures a RegexExtractor.
type Option func(*RegexExtractor)

// WithMaxClauseLength discards matches longer than n runes. Zero keeps all matches.
func WithMaxClauseLength(n int) Option {
	return func(r *RegexExtractor) {
		r.maxLength = n
	}
}

// NewRegexExtractor compiles groups. Expressions are made case-insensitive and
// dot-all unless they already carry flags.
func NewRegexExtractor(groups []Group, opts ...Option) (*RegexExtractor, error) {
	compiled := make([]compiledGroup, 0, len(groups))

	for _, g := range groups {
		if !g.Category.Valid() {
			return nil, fmt.Errorf("unknown category %q in regex group", g.Category)
		}

		cg := compiledGroup{category: g.Category}
		for _, p := range g.Patterns {
			regexStr := p
			if !strings.HasPrefix(regexStr, "(?") {
				regexStr = "(?is)" + regexStr
			}

			re, err := regexp.Compile(regexStr)
			if err != nil {
				return nil, fmt.Errorf("failed to compile pattern %s for %s: %w", p, g.Category, err)
			}
			cg.regexes = append(cg.regexes, re)
		}
		compiled = append(compiled, cg)
	}

	r := &RegexExtractor{groups: compiled}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Name identifies the strategy in logs and metrics.
func (r *RegexExtractor) Name() string {
	return "regex"
}

// RequiresPipeline reports false; the regex fallback always runs.
func (r *RegexExtractor) RequiresPipeline() bool {
	return false
}

// Extract returns every trimmed match of every expression, grouped by category.
func (r *RegexExtractor) Extract(_ context.Context, text string, _ *nlp.Doc) (model.Clauses, error) {
	clauses := model.Clauses{}

	for _, g := range r.groups {
		for _, re := range g.regexes {
			for _, match := range re.FindAllString(text, -1) {
				match = strings.TrimSpace(match)
				if r.maxLength > 0 && utf8.RuneCountInString(match) > r.maxLength {
					continue
				}
				clauses.Add(g.category, match)
			}
		}
	}
	return clauses, nil
}

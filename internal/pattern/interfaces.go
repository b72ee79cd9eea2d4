// Package pattern provides token-sequence rules that tag clause spans in an
// analyzed document.
package pattern

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Veraticus/smartcp/internal/model"
	"github.com/Veraticus/smartcp/internal/nlp"
)

// ErrInvalidRule is returned when a rule cannot be registered.
var ErrInvalidRule = errors.New("invalid pattern rule")

// ConstraintKind selects the token test a Constraint applies.
type ConstraintKind int

// Constraint kinds.
const (
	// KindLowerIn matches when the lowercase token is in Values.
	KindLowerIn ConstraintKind = iota
	// KindAlpha matches tokens made only of letters.
	KindAlpha
	// KindLikeNum matches numeric literals.
	KindLikeNum
)

// Constraint tests a single token. Repeat makes it match zero or more tokens.
type Constraint struct {
	values map[string]struct{}
	Kind   ConstraintKind
	Repeat bool
}

// LowerIn matches a token whose lowercase form is one of words.
func LowerIn(words ...string) Constraint {
	values := make(map[string]struct{}, len(words))
	for _, w := range words {
		values[strings.ToLower(w)] = struct{}{}
	}
	return Constraint{Kind: KindLowerIn, values: values}
}

// Alpha matches one alphabetic token.
func Alpha() Constraint {
	return Constraint{Kind: KindAlpha}
}

// AnyAlpha matches zero or more alphabetic tokens.
func AnyAlpha() Constraint {
	return Constraint{Kind: KindAlpha, Repeat: true}
}

// LikeNum matches one numeric literal token.
func LikeNum() Constraint {
	return Constraint{Kind: KindLikeNum}
}

// ZeroOrMore returns a copy of c that may repeat.
func (c Constraint) ZeroOrMore() Constraint {
	c.Repeat = true
	return c
}

// Test reports whether tok satisfies the constraint.
func (c Constraint) Test(tok nlp.Token) bool {
	switch c.Kind {
	case KindLowerIn:
		_, ok := c.values[tok.Lower]
		return ok
	case KindAlpha:
		return tok.IsAlpha()
	case KindLikeNum:
		return tok.LikeNum()
	}
	return false
}

// Values returns the sorted word set of a KindLowerIn constraint.
func (c Constraint) Values() []string {
	out := make([]string, 0, len(c.values))
	for v := range c.values {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Rule is a named ordered sequence of token constraints.
type Rule struct {
	Label    string
	Category model.Category
	Tokens   []Constraint
}

func (r Rule) validate() error {
	if strings.TrimSpace(r.Label) == "" {
		return fmt.Errorf("%w: missing label", ErrInvalidRule)
	}
	if !r.Category.Valid() {
		return fmt.Errorf("%w: %s has unknown category %q", ErrInvalidRule, r.Label, r.Category)
	}
	if len(r.Tokens) == 0 {
		return fmt.Errorf("%w: %s has no constraints", ErrInvalidRule, r.Label)
	}

	fixed := 0
	for i, c := range r.Tokens {
		switch c.Kind {
		case KindLowerIn:
			if len(c.values) == 0 {
				return fmt.Errorf("%w: %s constraint %d has an empty word set", ErrInvalidRule, r.Label, i)
			}
		case KindAlpha, KindLikeNum:
		default:
			return fmt.Errorf("%w: %s constraint %d has unknown kind %d", ErrInvalidRule, r.Label, i, c.Kind)
		}
		if !c.Repeat {
			fixed++
		}
	}
	if fixed == 0 {
		return fmt.Errorf("%w: %s can match an empty span", ErrInvalidRule, r.Label)
	}
	return nil
}

// Registry is an immutable set of rules.
type Registry struct {
	rules []Rule
}

// NewRegistry validates rules and returns a registry holding them.
func NewRegistry(rules ...Rule) (*Registry, error) {
	kept := make([]Rule, 0, len(rules))
	for _, r := range rules {
		if err := r.validate(); err != nil {
			return nil, err
		}
		r.Tokens = append([]Constraint(nil), r.Tokens...)
		kept = append(kept, r)
	}
	return &Registry{rules: kept}, nil
}

// Rules returns a copy of the registered rules.
func (r *Registry) Rules() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	return len(r.rules)
}

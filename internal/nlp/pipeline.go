// Package nlp adapts an optional natural-language model into the token,
// sentence and entity view that the clause extractors consume.
package nlp

import (
	"context"
	"strings"
	"unicode"
)

// Pipeline turns raw text into an analyzed Doc. Callers must check Available
// before calling Process; an unavailable pipeline returns ErrUnavailable.
type Pipeline interface {
	// Available reports whether a language model was acquired.
	Available() bool
	// Process analyzes a single document.
	Process(ctx context.Context, text string) (*Doc, error)
}

// Token is a single word or punctuation mark with its byte offsets into Doc.Text.
type Token struct {
	Text  string
	Lower string
	Start int
	End   int
}

// IsAlpha reports whether the token consists only of letters.
func (t Token) IsAlpha() bool {
	if t.Text == "" {
		return false
	}
	for _, r := range t.Text {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// numberWords are spelled-out numbers treated as numeric literals.
var numberWords = map[string]struct{}{
	"zero": {}, "one": {}, "two": {}, "three": {}, "four": {}, "five": {},
	"six": {}, "seven": {}, "eight": {}, "nine": {}, "ten": {}, "eleven": {},
	"twelve": {}, "thirteen": {}, "fourteen": {}, "fifteen": {}, "sixteen": {},
	"seventeen": {}, "eighteen": {}, "nineteen": {}, "twenty": {}, "thirty": {},
	"forty": {}, "fifty": {}, "sixty": {}, "seventy": {}, "eighty": {},
	"ninety": {}, "hundred": {}, "thousand": {}, "million": {}, "billion": {},
}

// LikeNum reports whether the token resembles a number: digits with optional
// separators, a simple fraction, or a spelled-out number word.
func (t Token) LikeNum() bool {
	text := strings.TrimLeft(t.Text, "+-~±")
	text = strings.NewReplacer(",", "", ".", "").Replace(text)
	if isDigits(text) {
		return true
	}
	if num, den, ok := strings.Cut(text, "/"); ok && isDigits(num) && isDigits(den) {
		return true
	}
	_, ok := numberWords[t.Lower]
	return ok
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Entity is a recognized named entity.
type Entity struct {
	Text  string
	Label string
}

// Entity labels kept by the clause extractors.
const (
	LabelOrg      = "ORG"
	LabelGPE      = "GPE"
	LabelMoney    = "MONEY"
	LabelDate     = "DATE"
	LabelQuantity = "QUANTITY"
)

// Doc is the analyzed form of one document.
type Doc struct {
	Text      string
	Tokens    []Token
	Sentences []string
	Entities  []Entity
}

// Span returns the original text covered by tokens [start, end).
func (d *Doc) Span(start, end int) string {
	if start < 0 || end > len(d.Tokens) || start >= end {
		return ""
	}
	return d.Text[d.Tokens[start].Start:d.Tokens[end-1].End]
}

// Package keyword extracts named entities and keyword-bearing sentences from
// analyzed documents.
package keyword

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Veraticus/smartcp/internal/model"
	"github.com/Veraticus/smartcp/internal/nlp"
)

// MinSentenceLength is the rune count a sentence must exceed to be kept.
const MinSentenceLength = 20

// Group attaches sentences containing any of Terms to Category.
type Group struct {
	Category model.Category
	Terms    []string
}

// DefaultGroups returns the payment, laytime, port and general term groups.
func DefaultGroups() []Group {
	return []Group{
		{Category: model.CategoryPaymentTerms, Terms: []string{"payment", "freight", "demurrage", "despatch", "commission"}},
		{Category: model.CategoryLaytimeClauses, Terms: []string{"laytime", "loading", "discharging", "notice", "commencement"}},
		{Category: model.CategoryPortClauses, Terms: []string{"port", "berth", "anchorage", "terminal", "wharf"}},
		{Category: model.CategoryGeneralTerms, Terms: []string{"force majeure", "arbitration", "governing law", "cancellation"}},
	}
}

// SentenceExtractor selects whole sentences by keyword group.
type SentenceExtractor struct {
	groups []Group
}

// NewSentenceExtractor creates an extractor over groups. Terms are matched
// case-insensitively as substrings.
func NewSentenceExtractor(groups []Group) *SentenceExtractor {
	kept := make([]Group, 0, len(groups))
	for _, g := range groups {
		terms := make([]string, 0, len(g.Terms))
		for _, term := range g.Terms {
			if term = strings.ToLower(strings.TrimSpace(term)); term != "" {
				terms = append(terms, term)
			}
		}
		kept = append(kept, Group{Category: g.Category, Terms: terms})
	}
	return &SentenceExtractor{groups: kept}
}

// Name identifies the strategy in logs and metrics.
func (s *SentenceExtractor) Name() string {
	return "sentences"
}

// RequiresPipeline reports that sentence segmentation needs the linguistic pipeline.
func (s *SentenceExtractor) RequiresPipeline() bool {
	return true
}

// Extract attaches each sentence to every group whose terms it contains.
func (s *SentenceExtractor) Extract(_ context.Context, _ string, doc *nlp.Doc) (model.Clauses, error) {
	clauses := model.Clauses{}
	if doc == nil {
		return clauses, nil
	}

	for _, sent := range doc.Sentences {
		text := strings.TrimSpace(sent)
		if utf8.RuneCountInString(text) <= MinSentenceLength {
			continue
		}
		lower := strings.ToLower(text)

		for _, g := range s.groups {
			if containsAny(lower, g.Terms) {
				clauses.Add(g.Category, text)
			}
		}
	}
	return clauses, nil
}

func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}

// DefaultEntityLabels are the entity labels kept by EntityExtractor.
var DefaultEntityLabels = []string{nlp.LabelOrg, nlp.LabelGPE, nlp.LabelMoney, nlp.LabelDate, nlp.LabelQuantity}

// EntityExtractor emits recognized entities as "<text> (<label>)".
type EntityExtractor struct {
	labels map[string]struct{}
}

// NewEntityExtractor creates an extractor keeping only the given labels.
func NewEntityExtractor(labels ...string) *EntityExtractor {
	if len(labels) == 0 {
		labels = DefaultEntityLabels
	}
	set := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		set[l] = struct{}{}
	}
	return &EntityExtractor{labels: set}
}

// Name identifies the strategy in logs and metrics.
func (e *EntityExtractor) Name() string {
	return "entities"
}

// RequiresPipeline reports that entity recognition needs the linguistic pipeline.
func (e *EntityExtractor) RequiresPipeline() bool {
	return true
}

// Extract collects entities with a kept label into key_entities.
func (e *EntityExtractor) Extract(_ context.Context, _ string, doc *nlp.Doc) (model.Clauses, error) {
	clauses := model.Clauses{}
	if doc == nil {
		return clauses, nil
	}

	for _, ent := range doc.Entities {
		if _, ok := e.labels[ent.Label]; !ok {
			continue
		}
		clauses.Add(model.CategoryKeyEntities, fmt.Sprintf("%s (%s)", ent.Text, ent.Label))
	}
	return clauses, nil
}

// Package model defines the core data structures for the smartcp application.
package model

import (
	"sort"
	"strings"
)

// Clauses is a partial category to text mapping emitted by a single extraction
// strategy. It may contain duplicates and untrimmed text.
type Clauses map[Category][]string

// Add appends items to the given category.
func (c Clauses) Add(category Category, items ...string) {
	if len(items) == 0 {
		return
	}
	c[category] = append(c[category], items...)
}

// Merge appends every item of other into c.
func (c Clauses) Merge(other Clauses) {
	for category, items := range other {
		c.Add(category, items...)
	}
}

// Count returns the number of items across all categories.
func (c Clauses) Count() int {
	total := 0
	for _, items := range c {
		total += len(items)
	}
	return total
}

// ExtractionResult maps every clause category to a deduplicated set of
// non-empty trimmed strings. Every category key is always present.
type ExtractionResult map[Category][]string

// NewExtractionResult returns a result with all six categories present and empty.
func NewExtractionResult() ExtractionResult {
	result := make(ExtractionResult, len(allCategories))
	for _, category := range allCategories {
		result[category] = []string{}
	}
	return result
}

// Finalize builds an ExtractionResult from accumulated clauses: items are
// trimmed, empty strings dropped and duplicates removed. Surviving items are
// sorted so output is stable, though callers must treat each list as a set.
// Categories outside the closed set are ignored.
func Finalize(acc Clauses) ExtractionResult {
	result := NewExtractionResult()
	for _, category := range allCategories {
		seen := make(map[string]struct{}, len(acc[category]))
		for _, item := range acc[category] {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			if _, dup := seen[item]; dup {
				continue
			}
			seen[item] = struct{}{}
			result[category] = append(result[category], item)
		}
		sort.Strings(result[category])
	}
	return result
}

// Total returns the number of extracted items across all categories.
func (r ExtractionResult) Total() int {
	total := 0
	for _, items := range r {
		total += len(items)
	}
	return total
}

// Has reports whether the category has at least one extracted item.
// Absent categories count as empty.
func (r ExtractionResult) Has(category Category) bool {
	return len(r[category]) > 0
}

// CompletenessReport maps each essential category to a status line.
type CompletenessReport map[Category]string

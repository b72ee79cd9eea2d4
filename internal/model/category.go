package model

import "fmt"

// Category identifies one of the fixed clause buckets.
type Category string

// Clause categories.
const (
	CategoryPaymentTerms        Category = "payment_terms"
	CategoryLaytimeClauses      Category = "laytime_clauses"
	CategoryCargoSpecifications Category = "cargo_specifications"
	CategoryPortClauses         Category = "port_clauses"
	CategoryGeneralTerms        Category = "general_terms"
	CategoryKeyEntities         Category = "key_entities"
)

// allCategories is the closed category set in presentation order.
var allCategories = []Category{
	CategoryPaymentTerms,
	CategoryLaytimeClauses,
	CategoryCargoSpecifications,
	CategoryPortClauses,
	CategoryGeneralTerms,
	CategoryKeyEntities,
}

// Categories returns every clause category in presentation order.
func Categories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

// Valid reports whether c belongs to the closed category set.
func (c Category) Valid() bool {
	for _, known := range allCategories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory converts a string into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown clause category %q", s)
	}
	return c, nil
}

func (c Category) String() string {
	return string(c)
}

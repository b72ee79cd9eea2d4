package pattern

import "github.com/Veraticus/smartcp/internal/model"

// Rule labels.
const (
	LabelPaymentTerms = "PAYMENT_TERMS"
	LabelLaytime      = "LAYTIME"
	LabelCargo        = "CARGO"
)

// DefaultRules returns the built-in payment, laytime and cargo rules.
func DefaultRules() []Rule {
	return []Rule{
		// Payment terms
		{
			Label:    LabelPaymentTerms,
			Category: model.CategoryPaymentTerms,
			Tokens:   []Constraint{LowerIn("payment", "pay"), LowerIn("shall", "will", "must"), AnyAlpha()},
		},
		{
			Label:    LabelPaymentTerms,
			Category: model.CategoryPaymentTerms,
			Tokens:   []Constraint{LowerIn("freight"), AnyAlpha(), LowerIn("payable", "due", "payment")},
		},
		{
			Label:    LabelPaymentTerms,
			Category: model.CategoryPaymentTerms,
			Tokens:   []Constraint{LowerIn("demurrage", "despatch"), AnyAlpha()},
		},

		// Laytime
		{
			Label:    LabelLaytime,
			Category: model.CategoryLaytimeClauses,
			Tokens:   []Constraint{LowerIn("laytime"), AnyAlpha()},
		},
		{
			Label:    LabelLaytime,
			Category: model.CategoryLaytimeClauses,
			Tokens:   []Constraint{LowerIn("loading", "discharging"), LowerIn("time"), AnyAlpha()},
		},
		{
			Label:    LabelLaytime,
			Category: model.CategoryLaytimeClauses,
			Tokens:   []Constraint{LikeNum(), LowerIn("hours", "days"), LowerIn("loading", "discharging", "laytime")},
		},

		// Cargo
		{
			Label:    LabelCargo,
			Category: model.CategoryCargoSpecifications,
			Tokens:   []Constraint{LowerIn("cargo"), AnyAlpha()},
		},
		{
			Label:    LabelCargo,
			Category: model.CategoryCargoSpecifications,
			Tokens:   []Constraint{LowerIn("quantity", "tonnage"), AnyAlpha()},
		},
		{
			Label:    LabelCargo,
			Category: model.CategoryCargoSpecifications,
			Tokens:   []Constraint{LikeNum(), LowerIn("mt", "tons", "tonnes", "metric")},
		},
	}
}

// DefaultRegistry returns a registry holding DefaultRules.
func DefaultRegistry() *Registry {
	registry, err := NewRegistry(DefaultRules()...)
	if err != nil {
		panic(err) // built-in rules are static
	}
	return registry
}

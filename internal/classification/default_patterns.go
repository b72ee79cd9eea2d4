package classification

import "github.com/Veraticus/smartcp/internal/model"

// DefaultGroups returns the built-in regex groups. Each expression runs
// case-insensitively with "." matching newlines, and ends at the next "." or ";".
func DefaultGroups() []Group {
	return []Group{
		{
			Category: model.CategoryPaymentTerms,
			Patterns: []string{
				`freight\s+.*?payable.*?[.;]`,
				`demurrage\s+.*?[.;]`,
				`payment\s+.*?[.;]`,
			},
		},
		{
			Category: model.CategoryLaytimeClauses,
			Patterns: []string{
				`laytime\s+.*?[.;]`,
				`loading\s+time\s+.*?[.;]`,
				`discharging\s+time\s+.*?[.;]`,
			},
		},
		{
			Category: model.CategoryCargoSpecifications,
			Patterns: []string{
				`\d+\s*(?:mt|tons?|tonnes?)\s+.*?[.;]`,
				`cargo\s+.*?[.;]`,
				`quantity\s+.*?[.;]`,
			},
		},
		{
			Category: model.CategoryPortClauses,
			Patterns: []string{
				`port\s+of\s+.*?[.;]`,
				`berth\s+.*?[.;]`,
				`terminal\s+.*?[.;]`,
			},
		},
		{
			Category: model.CategoryGeneralTerms,
			Patterns: []string{
				`force\s+majeure\s+.*?[.;]`,
				`arbitration\s+.*?[.;]`,
				`governing\s+law\s+.*?[.;]`,
			},
		},
	}
}

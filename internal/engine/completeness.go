package engine

import (
	"strings"

	"github.com/Veraticus/smartcp/internal/model"
)

// Completeness markers.
const (
	FoundMarker   = "✓"
	MissingMarker = "⚠"
)

// Essential is a category every charter party is expected to cover.
type Essential struct {
	Category model.Category
	Label    string
}

var essentials = []Essential{
	{Category: model.CategoryPaymentTerms, Label: "Payment and freight terms"},
	{Category: model.CategoryCargoSpecifications, Label: "Cargo specifications"},
	{Category: model.CategoryPortClauses, Label: "Port and loading/discharging terms"},
	{Category: model.CategoryLaytimeClauses, Label: "Laytime provisions"},
}

// Essentials returns the essential categories in report order.
func Essentials() []Essential {
	out := make([]Essential, len(essentials))
	copy(out, essentials)
	return out
}

// AnalyzeCompleteness reports, for each essential category, whether the
// result holds at least one item.
func AnalyzeCompleteness(result model.ExtractionResult) model.CompletenessReport {
	report := make(model.CompletenessReport, len(essentials))
	for _, e := range essentials {
		if result.Has(e.Category) {
			report[e.Category] = FoundMarker + " " + e.Label + " found"
		} else {
			report[e.Category] = MissingMarker + " " + e.Label + " missing or unclear"
		}
	}
	return report
}

// IsComplete reports whether every essential category was found.
func IsComplete(report model.CompletenessReport) bool {
	for _, e := range essentials {
		status, ok := report[e.Category]
		if !ok || !strings.HasPrefix(status, FoundMarker) {
			return false
		}
	}
	return true
}

package merge

import (
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/smartcp/internal/model"
	"github.com/stretchr/testify/assert"
)

var generatedAt = time.Date(2024, 3, 15, 14, 30, 5, 0, time.UTC)

func TestCompose_AllSections(t *testing.T) {
	docs := model.DocumentSet{
		model.RoleFixtureRecap:      "Vessel: MV Ocean Star\n",
		model.RoleBaseCP:            "GENCON 1994 Part II",
		model.RoleNegotiatedClauses: "Clause 31: Ice clause applies.",
		"addendum":                  "Addendum No. 1",
	}
	result := model.NewExtractionResult()
	result[model.CategoryPortClauses] = []string{"Port of Rotterdam."}
	result[model.CategoryPaymentTerms] = []string{"Freight prepaid.", "Demurrage USD 10,000 pdpr."}

	got := Compose(docs, result, generatedAt)

	want := strings.Join([]string{
		"=== FIXTURE RECAP ===",
		"",
		"Vessel: MV Ocean Star",
		"",
		"GENCON 1994 Part II",
		"",
		"=== NEGOTIATED CLAUSES ===",
		"",
		"Clause 31: Ice clause applies.",
		"",
		"=== ADDENDUM ===",
		"",
		"Addendum No. 1",
		"",
		"=== EXTRACTED CLAUSES SUMMARY ===",
		"",
		"PAYMENT_TERMS:",
		"1. Freight prepaid.",
		"2. Demurrage USD 10,000 pdpr.",
		"",
		"PORT_CLAUSES:",
		"1. Port of Rotterdam.",
		"",
		"=== CONTRACT GENERATED ===",
		"Generated on: 2024-03-15 14:30:05",
		"By: Smart CP Generator",
		"",
		footerNote,
		"",
	}, "\n")

	assert.Equal(t, want, got)
}

func TestCompose_SectionOrder(t *testing.T) {
	got := Compose(model.DocumentSet{
		model.RoleNegotiatedClauses: "negotiated",
		model.RoleBaseCP:            "base",
		model.RoleFixtureRecap:      "recap",
	}, model.NewExtractionResult(), generatedAt)

	recap := strings.Index(got, "recap")
	base := strings.Index(got, "base")
	negotiated := strings.Index(got, "negotiated")
	footer := strings.Index(got, HeadingGenerated)

	assert.Less(t, recap, base)
	assert.Less(t, base, negotiated)
	assert.Less(t, negotiated, footer)
}

func TestCompose_OnlyFooterWhenEmpty(t *testing.T) {
	got := Compose(model.DocumentSet{}, model.NewExtractionResult(), generatedAt)

	assert.True(t, strings.HasPrefix(got, HeadingGenerated))
	assert.NotContains(t, got, HeadingSummary)
	assert.NotContains(t, got, HeadingFixtureRecap)
	assert.NotContains(t, got, HeadingNegotiated)
}

func TestCompose_BlankDocumentsSkipped(t *testing.T) {
	got := Compose(model.DocumentSet{
		model.RoleFixtureRecap: "   ",
		model.RoleBaseCP:       "base",
	}, nil, generatedAt)

	assert.NotContains(t, got, HeadingFixtureRecap)
	assert.True(t, strings.HasPrefix(got, "base\n\n"))
}

func TestFormatClauses(t *testing.T) {
	assert.Empty(t, FormatClauses(model.NewExtractionResult()))
	assert.Empty(t, FormatClauses(nil))

	result := model.NewExtractionResult()
	result[model.CategoryKeyEntities] = []string{"Rotterdam (GPE)"}
	result[model.CategoryLaytimeClauses] = []string{"Laytime 72 hours."}

	assert.Equal(t, "LAYTIME_CLAUSES:\n1. Laytime 72 hours.\n\nKEY_ENTITIES:\n1. Rotterdam (GPE)", FormatClauses(result))
}

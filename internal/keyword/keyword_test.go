package keyword

import (
	"context"
	"testing"

	"github.com/Veraticus/smartcp/internal/model"
	"github.com/Veraticus/smartcp/internal/nlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentenceExtractor_Extract(t *testing.T) {
	ctx := context.Background()
	extractor := NewSentenceExtractor(DefaultGroups())

	tests := []struct {
		want      model.Clauses
		name      string
		sentences []string
	}{
		{
			name:      "sentence attached to several groups",
			sentences: []string{"Laytime shall count from arrival at the loading port berth."},
			want: model.Clauses{
				model.CategoryLaytimeClauses: {"Laytime shall count from arrival at the loading port berth."},
				model.CategoryPortClauses:    {"Laytime shall count from arrival at the loading port berth."},
			},
		},
		{
			name:      "case insensitive multi word term",
			sentences: []string{"  Any dispute goes to ARBITRATION in London under GOVERNING LAW of England.  "},
			want: model.Clauses{
				model.CategoryGeneralTerms: {"Any dispute goes to ARBITRATION in London under GOVERNING LAW of England."},
			},
		},
		{
			name:      "short sentences dropped",
			sentences: []string{"Freight prepaid.", "Port: Santos.", "Exactly twenty chars"},
			want:      model.Clauses{},
		},
		{
			name:      "substring match",
			sentences: []string{"Commissions of 2.5 pct are deducted from hire."},
			want: model.Clauses{
				model.CategoryPaymentTerms: {"Commissions of 2.5 pct are deducted from hire."},
			},
		},
		{
			name:      "no keywords",
			sentences: []string{"Owners shall appoint agents at their own expense."},
			want:      model.Clauses{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractor.Extract(ctx, "", &nlp.Doc{Sentences: tt.sentences})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSentenceExtractor_CustomGroups(t *testing.T) {
	extractor := NewSentenceExtractor([]Group{
		{Category: model.CategoryGeneralTerms, Terms: []string{"  ICE CLAUSE ", ""}},
	})

	got, err := extractor.Extract(context.Background(), "", &nlp.Doc{
		Sentences: []string{"The BIMCO ice clause applies throughout this charter."},
	})
	require.NoError(t, err)
	assert.Equal(t, model.Clauses{
		model.CategoryGeneralTerms: {"The BIMCO ice clause applies throughout this charter."},
	}, got)
}

func TestEntityExtractor_Extract(t *testing.T) {
	doc := &nlp.Doc{Entities: []nlp.Entity{
		{Text: "Oceanic Bulk Ltd", Label: nlp.LabelOrg},
		{Text: "Rotterdam", Label: nlp.LabelGPE},
		{Text: "USD 12,500", Label: nlp.LabelMoney},
		{Text: "15 March 2024", Label: nlp.LabelDate},
		{Text: "50,000 MT", Label: nlp.LabelQuantity},
		{Text: "John Smith", Label: "PERSON"},
	}}

	got, err := NewEntityExtractor().Extract(context.Background(), "", doc)
	require.NoError(t, err)

	assert.Equal(t, model.Clauses{
		model.CategoryKeyEntities: {
			"Oceanic Bulk Ltd (ORG)",
			"Rotterdam (GPE)",
			"USD 12,500 (MONEY)",
			"15 March 2024 (DATE)",
			"50,000 MT (QUANTITY)",
		},
	}, got)
}

func TestEntityExtractor_CustomLabels(t *testing.T) {
	doc := &nlp.Doc{Entities: []nlp.Entity{
		{Text: "Rotterdam", Label: nlp.LabelGPE},
		{Text: "John Smith", Label: "PERSON"},
	}}

	got, err := NewEntityExtractor("PERSON").Extract(context.Background(), "", doc)
	require.NoError(t, err)
	assert.Equal(t, model.Clauses{model.CategoryKeyEntities: {"John Smith (PERSON)"}}, got)
}

func TestExtractors_NilDoc(t *testing.T) {
	ctx := context.Background()

	clauses, err := NewSentenceExtractor(DefaultGroups()).Extract(ctx, "text", nil)
	require.NoError(t, err)
	assert.Empty(t, clauses)

	clauses, err = NewEntityExtractor().Extract(ctx, "text", nil)
	require.NoError(t, err)
	assert.Empty(t, clauses)
}

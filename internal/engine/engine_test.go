package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/Veraticus/smartcp/internal/model"
	"github.com/Veraticus/smartcp/internal/nlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPipeline segments text into a fixed set of sentences.
type stubPipeline struct {
	err       error
	sentences []string
	entities  []nlp.Entity
}

func (p *stubPipeline) Available() bool { return true }

func (p *stubPipeline) Process(_ context.Context, text string) (*nlp.Doc, error) {
	if p.err != nil {
		return nil, p.err
	}
	return &nlp.Doc{
		Text:      text,
		Tokens:    nlp.Tokenize(text),
		Sentences: p.sentences,
		Entities:  p.entities,
	}, nil
}

type stubStrategy struct {
	clauses  model.Clauses
	err      error
	panicMsg string
	name     string
	calls    []string
	pipeline bool
}

func (s *stubStrategy) Name() string           { return s.name }
func (s *stubStrategy) RequiresPipeline() bool { return s.pipeline }

func (s *stubStrategy) Extract(_ context.Context, text string, _ *nlp.Doc) (model.Clauses, error) {
	s.calls = append(s.calls, text)
	if s.panicMsg != "" {
		panic(s.panicMsg)
	}
	return s.clauses, s.err
}

type recordingObserver struct {
	documents []string
	failures  []string
	results   int
}

func (o *recordingObserver) ObserveDocument(role string)           { o.documents = append(o.documents, role) }
func (o *recordingObserver) ObserveStrategy(string, model.Clauses) {}
func (o *recordingObserver) ObserveFailure(stage string)           { o.failures = append(o.failures, stage) }
func (o *recordingObserver) ObserveResult(model.ExtractionResult)  { o.results++ }

func newDefaultEngine(t *testing.T, pipeline nlp.Pipeline, opts ...Option) *ClauseEngine {
	t.Helper()
	e, err := NewDefault(pipeline, Config{}, opts...)
	require.NoError(t, err)
	return e
}

func assertWellFormed(t *testing.T, result model.ExtractionResult) {
	t.Helper()
	require.Len(t, result, len(model.Categories()))
	for _, category := range model.Categories() {
		items, ok := result[category]
		require.True(t, ok, "category %s missing", category)
		require.NotNil(t, items)
		seen := map[string]bool{}
		for _, item := range items {
			assert.NotEmpty(t, item)
			assert.False(t, seen[item], "duplicate %q in %s", item, category)
			seen[item] = true
		}
	}
}

func TestEngine_RegexOnlyPaymentTerms(t *testing.T) {
	e := newDefaultEngine(t, nlp.Unavailable())

	result, err := e.Run(context.Background(), model.DocumentSet{
		model.RoleBaseCP: "Freight shall be payable within 5 days of completion of loading.",
	})
	require.NoError(t, err)
	assertWellFormed(t, result)

	assert.Equal(t, []string{"Freight shall be payable within 5 days of completion of loading."},
		result[model.CategoryPaymentTerms])
	for _, category := range model.Categories() {
		if category != model.CategoryPaymentTerms {
			assert.Empty(t, result[category], category)
		}
	}
}

func TestEngine_FixtureRecap(t *testing.T) {
	e := newDefaultEngine(t, nlp.Unavailable())

	result := e.Extract(context.Background(), model.DocumentSet{
		model.RoleFixtureRecap: "Cargo: 50000 MT iron ore. Port of Rotterdam. Laytime 72 hours.",
	})
	assertWellFormed(t, result)

	assert.Contains(t, result[model.CategoryCargoSpecifications], "50000 MT iron ore.")
	assert.Contains(t, result[model.CategoryPortClauses], "Port of Rotterdam.")
	assert.Contains(t, result[model.CategoryLaytimeClauses], "Laytime 72 hours.")
}

func TestEngine_EmptyDocumentSet(t *testing.T) {
	observer := &recordingObserver{}
	e := newDefaultEngine(t, nlp.Unavailable(), WithObserver(observer))

	result, err := e.Run(context.Background(), model.DocumentSet{})
	require.NoError(t, err)
	assertWellFormed(t, result)
	assert.Zero(t, result.Total())
	assert.Empty(t, observer.documents)
	assert.Equal(t, 1, observer.results)

	report := AnalyzeCompleteness(result)
	require.Len(t, report, 4)
	for _, status := range report {
		assert.Contains(t, status, "missing or unclear")
	}
	assert.False(t, IsComplete(report))
}

func TestEngine_SentenceInSeveralCategories(t *testing.T) {
	sentence := "Laytime shall commence once the vessel is at the berth."
	e := newDefaultEngine(t, &stubPipeline{sentences: []string{sentence}})

	result, err := e.Run(context.Background(), model.DocumentSet{model.RoleBaseCP: sentence})
	require.NoError(t, err)
	assertWellFormed(t, result)

	assert.Contains(t, result[model.CategoryLaytimeClauses], sentence)
	assert.Contains(t, result[model.CategoryPortClauses], sentence)
}

func TestEngine_EntitiesWithPipeline(t *testing.T) {
	e := newDefaultEngine(t, &stubPipeline{
		entities: []nlp.Entity{{Text: "Rotterdam", Label: nlp.LabelGPE}},
	})

	result := e.Extract(context.Background(), model.DocumentSet{model.RoleFixtureRecap: "Rotterdam"})
	assert.Equal(t, []string{"Rotterdam (GPE)"}, result[model.CategoryKeyEntities])
}

func TestEngine_Idempotent(t *testing.T) {
	docs := model.DocumentSet{
		model.RoleFixtureRecap:      "Cargo: 50000 MT iron ore. Port of Rotterdam. Laytime 72 hours.",
		model.RoleBaseCP:            "Freight shall be payable within 5 days of completion of loading.",
		model.RoleNegotiatedClauses: "Arbitration in London; Demurrage USD 12,000 per day pro rata.",
	}
	e := newDefaultEngine(t, nlp.Unavailable())

	first := e.Extract(context.Background(), docs)
	second := e.Extract(context.Background(), docs)
	assert.Equal(t, first, second)
}

func TestEngine_DuplicatesAcrossDocuments(t *testing.T) {
	text := "Port of Santos."
	e := newDefaultEngine(t, nlp.Unavailable())

	result := e.Extract(context.Background(), model.DocumentSet{
		model.RoleFixtureRecap: text,
		model.RoleBaseCP:       text,
	})
	assert.Equal(t, []string{"Port of Santos."}, result[model.CategoryPortClauses])
}

func TestEngine_SkipsPipelineStrategiesWhenUnavailable(t *testing.T) {
	linguistic := &stubStrategy{name: "linguistic", pipeline: true}
	plain := &stubStrategy{name: "plain", clauses: model.Clauses{model.CategoryGeneralTerms: {"  ice clause  ", ""}}}

	e := New(nlp.Unavailable(), []Strategy{linguistic, plain})
	assert.False(t, e.PipelineAvailable())

	result, err := e.Run(context.Background(), model.DocumentSet{model.RoleBaseCP: "text"})
	require.NoError(t, err)
	assert.Empty(t, linguistic.calls)
	assert.Equal(t, []string{"text"}, plain.calls)
	assert.Equal(t, []string{"ice clause"}, result[model.CategoryGeneralTerms])
}

func TestEngine_NilPipeline(t *testing.T) {
	e := New(nil, nil)
	assert.False(t, e.PipelineAvailable())
	assertWellFormed(t, e.Extract(context.Background(), model.DocumentSet{model.RoleBaseCP: "x"}))
}

func TestEngine_FailureReturnsPartialResult(t *testing.T) {
	tests := []struct {
		name      string
		failing   *stubStrategy
		wantStage string
	}{
		{
			name: "error",
			failing: &stubStrategy{
				name:    "broken",
				clauses: model.Clauses{model.CategoryPortClauses: {"Berth one."}},
				err:     errors.New("boom"),
			},
			wantStage: "broken",
		},
		{
			name:      "panic",
			failing:   &stubStrategy{name: "panicky", panicMsg: "index out of range"},
			wantStage: "panicky",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := &stubStrategy{name: "first", clauses: model.Clauses{model.CategoryPaymentTerms: {"Freight prepaid."}}}
			after := &stubStrategy{name: "after"}
			observer := &recordingObserver{}

			e := New(nlp.Unavailable(), []Strategy{first, tt.failing, after}, WithObserver(observer))
			result, err := e.Run(context.Background(), model.DocumentSet{
				model.RoleBaseCP:       "base",
				model.RoleFixtureRecap: "recap",
			})

			require.Error(t, err)
			var extractErr *ExtractionError
			require.ErrorAs(t, err, &extractErr)
			assert.Equal(t, tt.wantStage, extractErr.Stage)
			assert.Equal(t, model.RoleBaseCP, extractErr.Role)

			assertWellFormed(t, result)
			assert.Equal(t, []string{"Freight prepaid."}, result[model.CategoryPaymentTerms])
			assert.Empty(t, after.calls)
			assert.Equal(t, []string{"base"}, first.calls)
			assert.Equal(t, []string{tt.wantStage}, observer.failures)
			assert.Equal(t, 1, observer.results)
		})
	}
}

func TestEngine_PartialClausesKeptOnError(t *testing.T) {
	failing := &stubStrategy{
		name:    "broken",
		clauses: model.Clauses{model.CategoryPortClauses: {"Berth one."}},
		err:     errors.New("boom"),
	}

	result, err := New(nlp.Unavailable(), []Strategy{failing}).Run(context.Background(),
		model.DocumentSet{model.RoleBaseCP: "text"})
	require.Error(t, err)
	assert.Equal(t, []string{"Berth one."}, result[model.CategoryPortClauses])
}

func TestEngine_PipelineFailure(t *testing.T) {
	plain := &stubStrategy{name: "plain"}
	e := New(&stubPipeline{err: errors.New("model exploded")}, []Strategy{plain})

	result, err := e.Run(context.Background(), model.DocumentSet{model.RoleBaseCP: "text"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model exploded")

	var extractErr *ExtractionError
	require.ErrorAs(t, err, &extractErr)
	assert.Equal(t, StagePipeline, extractErr.Stage)
	assert.Empty(t, plain.calls)
	assertWellFormed(t, result)
}

func TestEngine_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	plain := &stubStrategy{name: "plain"}
	result, err := New(nlp.Unavailable(), []Strategy{plain}).Run(ctx, model.DocumentSet{model.RoleBaseCP: "text"})

	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, plain.calls)
	assertWellFormed(t, result)
}

func TestAnalyzeCompleteness(t *testing.T) {
	result := model.NewExtractionResult()
	result[model.CategoryPaymentTerms] = []string{"Freight prepaid."}

	report := AnalyzeCompleteness(result)

	assert.Equal(t, model.CompletenessReport{
		model.CategoryPaymentTerms:        "✓ Payment and freight terms found",
		model.CategoryCargoSpecifications: "⚠ Cargo specifications missing or unclear",
		model.CategoryPortClauses:         "⚠ Port and loading/discharging terms missing or unclear",
		model.CategoryLaytimeClauses:      "⚠ Laytime provisions missing or unclear",
	}, report)
	assert.False(t, IsComplete(report))

	for _, e := range Essentials() {
		result[e.Category] = []string{"x"}
	}
	assert.True(t, IsComplete(AnalyzeCompleteness(result)))
}

func TestEssentials_ReturnsCopy(t *testing.T) {
	list := Essentials()
	list[0].Label = "changed"
	assert.Equal(t, "Payment and freight terms", Essentials()[0].Label)
}

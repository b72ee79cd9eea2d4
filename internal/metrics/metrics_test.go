package metrics

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/smartcp/internal/engine"
	"github.com/Veraticus/smartcp/internal/model"
	"github.com/Veraticus/smartcp/internal/nlp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Observe(t *testing.T) {
	r := NewRecorder()

	r.ObserveDocument(model.RoleBaseCP)
	r.ObserveDocument(model.RoleBaseCP)
	r.ObserveStrategy("regex", model.Clauses{
		model.CategoryPortClauses:  {"Port of Rotterdam.", "Berth one."},
		model.CategoryGeneralTerms: {},
	})
	r.ObserveFailure("pattern")

	result := model.NewExtractionResult()
	result[model.CategoryPortClauses] = []string{"Port of Rotterdam."}
	r.ObserveResult(result)

	assert.InDelta(t, 2, testutil.ToFloat64(r.DocumentsTotal.WithLabelValues(model.RoleBaseCP)), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(r.ItemsTotal.WithLabelValues("regex", string(model.CategoryPortClauses))), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.FailuresTotal.WithLabelValues("pattern")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.ResultItems.WithLabelValues(string(model.CategoryPortClauses))), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(r.ResultItems.WithLabelValues(string(model.CategoryKeyEntities))), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.ExtractionsTotal), 0)

	// Empty categories never create a series.
	assert.Equal(t, 1, testutil.CollectAndCount(r.ItemsTotal))
}

type failingStrategy struct{}

func (failingStrategy) Name() string           { return "broken" }
func (failingStrategy) RequiresPipeline() bool { return false }
func (failingStrategy) Extract(context.Context, string, *nlp.Doc) (model.Clauses, error) {
	return nil, errors.New("boom")
}

func TestRecorder_WithEngine(t *testing.T) {
	r := NewRecorder()

	e, err := engine.NewDefault(nlp.Unavailable(), engine.Config{}, engine.WithObserver(r))
	require.NoError(t, err)

	e.Extract(context.Background(), model.DocumentSet{
		model.RoleFixtureRecap: "Cargo: 50000 MT iron ore. Port of Rotterdam. Laytime 72 hours.",
	})

	assert.InDelta(t, 1, testutil.ToFloat64(r.DocumentsTotal.WithLabelValues(model.RoleFixtureRecap)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.ResultItems.WithLabelValues(string(model.CategoryPortClauses))), 0)
	assert.Positive(t, testutil.ToFloat64(r.ItemsTotal.WithLabelValues("regex", string(model.CategoryCargoSpecifications))))

	failing := engine.New(nlp.Unavailable(), []engine.Strategy{failingStrategy{}}, engine.WithObserver(r))
	failing.Extract(context.Background(), model.DocumentSet{model.RoleBaseCP: "text"})
	assert.InDelta(t, 1, testutil.ToFloat64(r.FailuresTotal.WithLabelValues("broken")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(r.ExtractionsTotal), 0)
}

func TestRecorder_WriteTextfile(t *testing.T) {
	r := NewRecorder()
	r.ObserveDocument(model.RoleFixtureRecap)

	path := filepath.Join(t.TempDir(), "smartcp.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `smartcp_documents_processed_total{role="fixture_recap"} 1`)

	err = r.WriteTextfile(filepath.Join(t.TempDir(), "missing", "dir", "x.prom"))
	require.Error(t, err)
}

func TestNewRecorder_Independent(t *testing.T) {
	a := NewRecorder()
	b := NewRecorder()
	a.ObserveFailure("regex")

	assert.InDelta(t, 0, testutil.ToFloat64(b.FailuresTotal.WithLabelValues("regex")), 0)
}

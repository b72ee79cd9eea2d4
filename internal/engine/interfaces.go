package engine

import (
	"context"

	"github.com/Veraticus/smartcp/internal/model"
	"github.com/Veraticus/smartcp/internal/nlp"
)

// Strategy is one independent clause extraction method.
type Strategy interface {
	// Name identifies the strategy in logs and metrics.
	Name() string
	// RequiresPipeline reports whether the strategy needs an analyzed Doc.
	// Such strategies are skipped when the linguistic pipeline is unavailable.
	RequiresPipeline() bool
	// Extract emits a partial category mapping for one document. doc is nil
	// for strategies that do not require the pipeline.
	Extract(ctx context.Context, text string, doc *nlp.Doc) (model.Clauses, error)
}

// Observer receives extraction events, typically for metrics.
type Observer interface {
	ObserveDocument(role string)
	ObserveStrategy(strategy string, clauses model.Clauses)
	ObserveFailure(stage string)
	ObserveResult(result model.ExtractionResult)
}

type noopObserver struct{}

func (noopObserver) ObserveDocument(string)                {}
func (noopObserver) ObserveStrategy(string, model.Clauses) {}
func (noopObserver) ObserveFailure(string)                 {}
func (noopObserver) ObserveResult(model.ExtractionResult)  {}

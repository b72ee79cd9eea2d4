// Package engine implements the clause extraction engine that combines the
// individual strategies into a single categorized result.
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/smartcp/internal/classification"
	"github.com/Veraticus/smartcp/internal/keyword"
	"github.com/Veraticus/smartcp/internal/model"
	"github.com/Veraticus/smartcp/internal/nlp"
	"github.com/Veraticus/smartcp/internal/pattern"
)

// StagePipeline names the linguistic analysis stage in errors and metrics.
const StagePipeline = "pipeline"

// ExtractionError describes where a caught extraction failure happened.
type ExtractionError struct {
	Err   error
	Role  string
	Stage string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed in %s for %s: %v", e.Stage, e.Role, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Config holds configuration options for the default strategies.
type Config struct {
	// MaxClauseLength discards regex matches longer than this many runes. Zero keeps all.
	MaxClauseLength int
}

// ClauseEngine runs the strategies over every document and aggregates the
// results.
type ClauseEngine struct {
	pipeline   nlp.Pipeline
	observer   Observer
	strategies []Strategy
}

// Option configures a ClauseEngine.
type Option func(*ClauseEngine)

// WithObserver registers an observer for extraction events.
func WithObserver(o Observer) Option {
	return func(e *ClauseEngine) {
		if o != nil {
			e.observer = o
		}
	}
}

// DefaultStrategies returns the pattern matcher, entity extractor, sentence
// extractor and regex fallback, in that order.
func DefaultStrategies(cfg Config) ([]Strategy, error) {
	regex, err := classification.NewRegexExtractor(
		classification.DefaultGroups(),
		classification.WithMaxClauseLength(cfg.MaxClauseLength),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build regex extractor: %w", err)
	}

	return []Strategy{
		pattern.NewMatcher(pattern.DefaultRegistry()),
		keyword.NewEntityExtractor(),
		keyword.NewSentenceExtractor(keyword.DefaultGroups()),
		regex,
	}, nil
}

// New creates an engine over the given pipeline and strategies.
func New(pipeline nlp.Pipeline, strategies []Strategy, opts ...Option) *ClauseEngine {
	if pipeline == nil {
		pipeline = nlp.Unavailable()
	}

	e := &ClauseEngine{
		pipeline:   pipeline,
		strategies: strategies,
		observer:   noopObserver{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewDefault creates an engine with DefaultStrategies.
func NewDefault(pipeline nlp.Pipeline, cfg Config, opts ...Option) (*ClauseEngine, error) {
	strategies, err := DefaultStrategies(cfg)
	if err != nil {
		return nil, err
	}
	return New(pipeline, strategies, opts...), nil
}

// PipelineAvailable reports whether linguistic strategies will run.
func (e *ClauseEngine) PipelineAvailable() bool {
	return e.pipeline.Available()
}

// Extract returns the best-effort categorized clauses for docs. It never fails;
// see Run for the caught error.
func (e *ClauseEngine) Extract(ctx context.Context, docs model.DocumentSet) model.ExtractionResult {
	result, _ := e.Run(ctx, docs)
	return result
}

// Run extracts clauses from docs. Any strategy error or panic stops extraction
// and is logged; the result then holds everything collected before the
// failure. The result is always complete in shape: all categories present,
// trimmed, deduplicated and without empty strings.
func (e *ClauseEngine) Run(ctx context.Context, docs model.DocumentSet) (model.ExtractionResult, error) {
	acc := model.Clauses{}

	err := e.collect(ctx, docs, acc)
	if err != nil {
		slog.Error("Error in clause extraction", "error", err)
		stage := "unknown"
		if extractErr, ok := err.(*ExtractionError); ok {
			stage = extractErr.Stage
		}
		e.observer.ObserveFailure(stage)
	}

	result := model.Finalize(acc)
	slog.Info("Extracted clauses", "total", result.Total())
	e.observer.ObserveResult(result)

	return result, err
}

func (e *ClauseEngine) collect(ctx context.Context, docs model.DocumentSet, acc model.Clauses) (err error) {
	role, stage := "", ""
	defer func() {
		if r := recover(); r != nil {
			err = &ExtractionError{Role: role, Stage: stage, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	available := e.pipeline.Available()

	for _, role = range docs.Roles() {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return &ExtractionError{Role: role, Stage: "context", Err: ctxErr}
		}

		text := docs[role]
		slog.Info("Processing document for clause extraction", "role", role)
		e.observer.ObserveDocument(role)

		var doc *nlp.Doc
		if available {
			stage = StagePipeline
			doc, err = e.pipeline.Process(ctx, text)
			if err != nil {
				return &ExtractionError{Role: role, Stage: stage, Err: err}
			}
		}

		for _, strategy := range e.strategies {
			if strategy.RequiresPipeline() && doc == nil {
				continue
			}

			stage = strategy.Name()
			clauses, extractErr := strategy.Extract(ctx, text, doc)
			acc.Merge(clauses)
			if extractErr != nil {
				return &ExtractionError{Role: role, Stage: stage, Err: extractErr}
			}

			e.observer.ObserveStrategy(stage, clauses)
			slog.Debug("Strategy finished",
				"role", role,
				"strategy", stage,
				"items", clauses.Count())
		}
	}

	return nil
}

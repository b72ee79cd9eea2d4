// Package contract runs the end-to-end charter party processing workflow:
// record creation, clause extraction, merging and persistence.
package contract

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Veraticus/smartcp/internal/common"
	"github.com/Veraticus/smartcp/internal/engine"
	"github.com/Veraticus/smartcp/internal/merge"
	"github.com/Veraticus/smartcp/internal/model"
	"github.com/Veraticus/smartcp/internal/service"
)

// ErrMissingName indicates a contract was submitted without a name.
var ErrMissingName = errors.New("contract name is required")

// Extractor produces categorized clauses from a document set. A non-nil error
// accompanies a partial but well-formed result.
type Extractor interface {
	Run(ctx context.Context, docs model.DocumentSet) (model.ExtractionResult, error)
}

// Processor drives contracts through processing and records the outcome.
type Processor struct {
	store     service.Storage
	extractor Extractor
	now       func() time.Time
	retry     service.RetryOptions
}

// Option configures a Processor.
type Option func(*Processor)

// WithRetryOptions overrides the retry policy used for status writes.
func WithRetryOptions(opts service.RetryOptions) Option {
	return func(p *Processor) {
		p.retry = opts
	}
}

// WithClock overrides the clock used for the generation timestamp.
func WithClock(now func() time.Time) Option {
	return func(p *Processor) {
		p.now = now
	}
}

// NewProcessor creates a processor over store and extractor.
func NewProcessor(store service.Storage, extractor Extractor, opts ...Option) *Processor {
	p := &Processor{
		store:     store,
		extractor: extractor,
		now:       time.Now,
		retry: service.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: 50 * time.Millisecond,
			MaxDelay:     time.Second,
			Multiplier:   2,
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process stores a new contract for docs, extracts and merges its clauses and
// marks it completed. A failure after the record exists moves it to error
// with an ERROR processing log. Extraction problems that still yield a
// partial result are logged as warnings and do not fail the contract.
func (p *Processor) Process(ctx context.Context, name string, docs model.DocumentSet) (*model.Contract, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrMissingName
	}
	if docs.IsEmpty() {
		return nil, common.ErrNoDocuments
	}

	contract := &model.Contract{
		Name:      name,
		Documents: docs,
		Status:    model.StatusProcessing,
	}
	if err := p.store.CreateContract(ctx, contract); err != nil {
		return nil, fmt.Errorf("failed to create contract record: %w", err)
	}

	roles := docs.Roles()
	p.log(ctx, contract.ID, model.LogLevelInfo,
		fmt.Sprintf("Started processing %d documents: %s", len(roles), strings.Join(roles, ", ")))
	common.LogInfo("Processing contract", common.Fields{
		"contract_id": contract.ID,
		"name":        name,
		"documents":   len(roles),
	})

	result, err := p.extractor.Run(ctx, docs)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return contract, p.fail(ctx, contract, fmt.Errorf("clause extraction interrupted: %w", err))
		}
		p.log(ctx, contract.ID, model.LogLevelWarning, fmt.Sprintf("Clause extraction incomplete: %v", err))
		common.LogWarn("Clause extraction incomplete", common.Fields{
			"contract_id": contract.ID,
			"error":       err.Error(),
		})
	}

	contract.Clauses = result
	contract.Completeness = engine.AnalyzeCompleteness(result)
	contract.FinalContract = merge.Compose(docs, result, p.now())
	contract.Status = model.StatusCompleted

	if err := p.update(ctx, contract); err != nil {
		return contract, p.fail(ctx, contract, fmt.Errorf("failed to save contract: %w", err))
	}

	p.log(ctx, contract.ID, model.LogLevelInfo,
		fmt.Sprintf("Contract processing completed: %d clauses extracted", result.Total()))
	common.LogInfo("Contract processed", common.Fields{
		"contract_id": contract.ID,
		"clauses":     result.Total(),
		"complete":    engine.IsComplete(contract.Completeness),
	})

	return contract, nil
}

// Stats summarizes all stored contracts. The success rate is the percentage
// of completed contracts, rounded to one decimal.
func (p *Processor) Stats(ctx context.Context) (model.ContractStats, error) {
	counts, err := p.store.CountByStatus(ctx)
	if err != nil {
		return model.ContractStats{}, fmt.Errorf("failed to count contracts: %w", err)
	}

	var stats model.ContractStats
	for _, count := range counts {
		stats.Total += count
	}
	stats.Completed = counts[model.StatusCompleted]

	if stats.Total > 0 {
		rate := float64(stats.Completed) / float64(stats.Total) * 100
		stats.SuccessRate = math.Round(rate*10) / 10
	}
	return stats, nil
}

// fail records cause on the contract and returns it. The error state is
// written even when ctx is already cancelled.
func (p *Processor) fail(ctx context.Context, contract *model.Contract, cause error) error {
	ctx = context.WithoutCancel(ctx)

	common.LogError(cause, "Contract processing failed", common.Fields{"contract_id": contract.ID})

	contract.Status = model.StatusError
	if err := p.update(ctx, contract); err != nil {
		common.LogError(err, "Failed to mark contract as errored", common.Fields{"contract_id": contract.ID})
	}
	p.log(ctx, contract.ID, model.LogLevelError, cause.Error())

	return cause
}

func (p *Processor) update(ctx context.Context, contract *model.Contract) error {
	return common.WithRetry(ctx, func() error {
		return p.store.UpdateContract(ctx, contract)
	}, p.retry)
}

// log writes a processing log entry. Log failures never fail processing.
func (p *Processor) log(ctx context.Context, contractID string, level model.LogLevel, message string) {
	if err := p.store.AddLog(ctx, contractID, level, message); err != nil {
		common.LogError(err, "Failed to write processing log", common.Fields{
			"contract_id": contractID,
			"level":       string(level),
		})
	}
}

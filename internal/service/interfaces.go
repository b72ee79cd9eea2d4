// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/smartcp/internal/model"
)

// ContractFilter defines filtering options for contract queries.
type ContractFilter struct {
	// Status limits results to one status when non-empty.
	Status model.ContractStatus
	// Search matches contract names case-insensitively.
	Search string
	Limit  int
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Contract operations
	CreateContract(ctx context.Context, contract *model.Contract) error
	UpdateContract(ctx context.Context, contract *model.Contract) error
	GetContract(ctx context.Context, id string) (*model.Contract, error)
	ListContracts(ctx context.Context, filter ContractFilter) ([]model.Contract, error)
	CountByStatus(ctx context.Context) (map[model.ContractStatus]int, error)
	DeleteContract(ctx context.Context, id string) error

	// Processing log operations
	AddLog(ctx context.Context, contractID string, level model.LogLevel, message string) error
	GetLogs(ctx context.Context, contractID string) ([]model.ProcessingLog, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

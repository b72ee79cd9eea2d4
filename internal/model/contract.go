package model

import "time"

// ContractStatus is the processing state of a contract record.
type ContractStatus string

// Contract status constants.
const (
	StatusDraft      ContractStatus = "draft"
	StatusProcessing ContractStatus = "processing"
	StatusCompleted  ContractStatus = "completed"
	StatusError      ContractStatus = "error"
)

// transitions lists the allowed next states for each status.
var transitions = map[ContractStatus][]ContractStatus{
	StatusDraft:      {StatusProcessing},
	StatusProcessing: {StatusCompleted, StatusError},
}

// Valid reports whether s is a known status.
func (s ContractStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusProcessing, StatusCompleted, StatusError:
		return true
	}
	return false
}

// CanTransitionTo reports whether a record in status s may move to next.
// Keeping the same status is always allowed.
func (s ContractStatus) CanTransitionTo(next ContractStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Contract is a persisted contract processing record.
type Contract struct {
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Documents     DocumentSet
	Clauses       ExtractionResult
	Completeness  CompletenessReport
	ID            string
	Name          string
	FinalContract string
	Status        ContractStatus
}

// LogLevel is the severity of a processing log entry.
type LogLevel string

// Processing log levels.
const (
	LogLevelInfo    LogLevel = "INFO"
	LogLevelWarning LogLevel = "WARNING"
	LogLevelError   LogLevel = "ERROR"
)

// ProcessingLog records an event that happened while processing a contract.
type ProcessingLog struct {
	CreatedAt  time.Time
	ContractID string
	Level      LogLevel
	Message    string
	ID         int64
}

// ContractStats summarizes stored contracts.
type ContractStats struct {
	Total       int
	Completed   int
	SuccessRate float64
}

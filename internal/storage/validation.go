package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/smartcp/internal/model"
)

// Validation errors.
var (
	ErrNilContext      = errors.New("context cannot be nil")
	ErrEmptyString     = errors.New("string parameter cannot be empty")
	ErrNilParameter    = errors.New("parameter cannot be nil")
	ErrInvalidStatus   = errors.New("invalid contract status")
	ErrInvalidLogLevel = errors.New("invalid log level")
	ErrInvalidContract = errors.New("invalid contract")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateContract checks the fields every stored contract must carry.
func validateContract(contract *model.Contract) error {
	if contract == nil {
		return fmt.Errorf("%w: contract", ErrNilParameter)
	}
	if strings.TrimSpace(contract.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidContract)
	}
	if !contract.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, contract.Status)
	}
	return nil
}

func validateLogLevel(level model.LogLevel) error {
	switch level {
	case model.LogLevelInfo, model.LogLevelWarning, model.LogLevelError:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidLogLevel, level)
}

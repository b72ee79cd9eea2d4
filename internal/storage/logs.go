package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Veraticus/smartcp/internal/common"
	"github.com/Veraticus/smartcp/internal/model"
)

// AddLog records a processing event for an existing contract.
func (s *SQLiteStorage) AddLog(ctx context.Context, contractID string, level model.LogLevel, message string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(contractID, "contractID"); err != nil {
		return err
	}
	if err := validateLogLevel(level); err != nil {
		return err
	}
	if err := validateString(message, "message"); err != nil {
		return err
	}

	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM contracts WHERE id = ?`, contractID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: contract %s", common.ErrNotFound, contractID)
	}
	if err != nil {
		return fmt.Errorf("failed to check contract: %w", classify(err))
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO processing_logs (contract_id, log_level, message, created_at)
		VALUES (?, ?, ?, ?)
	`, contractID, string(level), message, s.now())
	if err != nil {
		return fmt.Errorf("failed to add processing log: %w", classify(err))
	}
	return nil
}

// GetLogs returns the processing logs of a contract, oldest first.
func (s *SQLiteStorage) GetLogs(ctx context.Context, contractID string) ([]model.ProcessingLog, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(contractID, "contractID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, contract_id, log_level, message, created_at
		FROM processing_logs
		WHERE contract_id = ?
		ORDER BY id
	`, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to get processing logs: %w", classify(err))
	}
	defer func() { _ = rows.Close() }()

	var logs []model.ProcessingLog
	for rows.Next() {
		var entry model.ProcessingLog
		var level string
		if err := rows.Scan(&entry.ID, &entry.ContractID, &level, &entry.Message, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan processing log: %w", err)
		}
		entry.Level = model.LogLevel(level)
		logs = append(logs, entry)
	}

	return logs, rows.Err()
}

package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/smartcp/internal/common"
	"github.com/Veraticus/smartcp/internal/model"
	"github.com/Veraticus/smartcp/internal/service"
	"github.com/google/uuid"
)

const contractColumns = `id, name, documents, final_contract, extracted_clauses, completeness, status, created_at, updated_at`

// CreateContract inserts a new contract record. A missing ID is generated and
// a missing status defaults to draft. New records may only start as draft or
// processing.
func (s *SQLiteStorage) CreateContract(ctx context.Context, contract *model.Contract) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if contract != nil && contract.Status == "" {
		contract.Status = model.StatusDraft
	}
	if err := validateContract(contract); err != nil {
		return err
	}
	if contract.Status != model.StatusDraft && contract.Status != model.StatusProcessing {
		return fmt.Errorf("%w: new contract cannot start as %s", common.ErrInvalidTransition, contract.Status)
	}

	if contract.ID == "" {
		contract.ID = uuid.NewString()
	}
	now := s.now()
	contract.CreatedAt = now
	contract.UpdatedAt = now

	encoded, err := encodeContract(contract)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO contracts (`+contractColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		contract.ID,
		contract.Name,
		encoded.documents,
		contract.FinalContract,
		encoded.clauses,
		encoded.completeness,
		string(contract.Status),
		contract.CreatedAt,
		contract.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: contract %s", common.ErrDuplicateEntry, contract.ID)
		}
		return fmt.Errorf("failed to create contract: %w", classify(err))
	}

	return nil
}

// UpdateContract saves every mutable field of contract. The status change
// from the stored record must be an allowed transition.
func (s *SQLiteStorage) UpdateContract(ctx context.Context, contract *model.Contract) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateContract(contract); err != nil {
		return err
	}
	if err := validateString(contract.ID, "id"); err != nil {
		return err
	}

	encoded, err := encodeContract(contract)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", classify(err))
	}
	defer func() { _ = tx.Rollback() }()

	var current string
	err = tx.QueryRowContext(ctx, `SELECT status FROM contracts WHERE id = ?`, contract.ID).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: contract %s", common.ErrNotFound, contract.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to get contract status: %w", classify(err))
	}

	if !model.ContractStatus(current).CanTransitionTo(contract.Status) {
		return fmt.Errorf("%w: %s to %s", common.ErrInvalidTransition, current, contract.Status)
	}

	contract.UpdatedAt = s.now()

	_, err = tx.ExecContext(ctx, `
		UPDATE contracts
		SET name = ?, documents = ?, final_contract = ?, extracted_clauses = ?,
			completeness = ?, status = ?, updated_at = ?
		WHERE id = ?
	`,
		contract.Name,
		encoded.documents,
		contract.FinalContract,
		encoded.clauses,
		encoded.completeness,
		string(contract.Status),
		contract.UpdatedAt,
		contract.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update contract: %w", classify(err))
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit contract update: %w", classify(err))
	}
	return nil
}

// GetContract retrieves a contract by ID.
func (s *SQLiteStorage) GetContract(ctx context.Context, id string) (*model.Contract, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+contractColumns+` FROM contracts WHERE id = ?`, id)
	contract, err := scanContract(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: contract %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contract: %w", classify(err))
	}
	return contract, nil
}

// ListContracts returns contracts matching filter, newest first.
func (s *SQLiteStorage) ListContracts(ctx context.Context, filter service.ContractFilter) ([]model.Contract, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, filter.Status)
	}

	query := `SELECT ` + contractColumns + ` FROM contracts WHERE 1=1`
	var args []any

	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(filter.Status))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		query += ` AND name LIKE ? ESCAPE '\'`
		args = append(args, "%"+escapeLike(search)+"%")
	}

	query += ` ORDER BY created_at DESC, rowid DESC`

	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", classify(err))
	}
	defer func() { _ = rows.Close() }()

	var contracts []model.Contract
	for rows.Next() {
		contract, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contract: %w", err)
		}
		contracts = append(contracts, *contract)
	}

	return contracts, rows.Err()
}

// CountByStatus returns the number of contracts in each status. Every known
// status is present in the result.
func (s *SQLiteStorage) CountByStatus(ctx context.Context) (map[model.ContractStatus]int, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	counts := map[model.ContractStatus]int{
		model.StatusDraft:      0,
		model.StatusProcessing: 0,
		model.StatusCompleted:  0,
		model.StatusError:      0,
	}

	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM contracts GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count contracts: %w", classify(err))
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan contract count: %w", err)
		}
		counts[model.ContractStatus(status)] = count
	}

	return counts, rows.Err()
}

// DeleteContract removes a contract and its processing logs.
func (s *SQLiteStorage) DeleteContract(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", classify(err))
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM processing_logs WHERE contract_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete processing logs: %w", classify(err))
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM contracts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete contract: %w", classify(err))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: contract %s", common.ErrNotFound, id)
	}

	return tx.Commit()
}

type encodedContract struct {
	documents    string
	clauses      string
	completeness string
}

func encodeContract(contract *model.Contract) (encodedContract, error) {
	documents := contract.Documents
	if documents == nil {
		documents = model.DocumentSet{}
	}
	clauses := contract.Clauses
	if clauses == nil {
		clauses = model.NewExtractionResult()
	}
	completeness := contract.Completeness
	if completeness == nil {
		completeness = model.CompletenessReport{}
	}

	var out encodedContract
	for _, field := range []struct {
		value any
		dst   *string
		name  string
	}{
		{value: documents, dst: &out.documents, name: "documents"},
		{value: clauses, dst: &out.clauses, name: "extracted clauses"},
		{value: completeness, dst: &out.completeness, name: "completeness"},
	} {
		data, err := json.Marshal(field.value)
		if err != nil {
			return encodedContract{}, fmt.Errorf("failed to encode %s: %w", field.name, err)
		}
		*field.dst = string(data)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanContract(row scanner) (*model.Contract, error) {
	var contract model.Contract
	var status, documents, clauses, completenessJSON string

	err := row.Scan(
		&contract.ID,
		&contract.Name,
		&documents,
		&contract.FinalContract,
		&clauses,
		&completenessJSON,
		&status,
		&contract.CreatedAt,
		&contract.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	contract.Status = model.ContractStatus(status)

	contract.Documents = model.DocumentSet{}
	if err := json.Unmarshal([]byte(documents), &contract.Documents); err != nil {
		return nil, fmt.Errorf("%w: documents: %v", common.ErrDatabaseCorrupted, err)
	}

	raw := model.Clauses{}
	if err := json.Unmarshal([]byte(clauses), &raw); err != nil {
		return nil, fmt.Errorf("%w: extracted clauses: %v", common.ErrDatabaseCorrupted, err)
	}
	contract.Clauses = model.Finalize(raw)

	contract.Completeness = model.CompletenessReport{}
	if err := json.Unmarshal([]byte(completenessJSON), &contract.Completeness); err != nil {
		return nil, fmt.Errorf("%w: completeness: %v", common.ErrDatabaseCorrupted, err)
	}

	return &contract, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

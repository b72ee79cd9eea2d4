// Package testutil provides shared test utilities for smartcp: isolated
// SQLite databases and seeded contract records.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Veraticus/smartcp/internal/model"
	"github.com/Veraticus/smartcp/internal/service"
	"github.com/Veraticus/smartcp/internal/storage"
)

// TestDB represents a test database with associated test utilities.
type TestDB struct {
	Storage *storage.SQLiteStorage
	t       *testing.T
}

// TestDBOptions provides configuration options for test database setup.
type TestDBOptions struct {
	CustomSetup    func(context.Context, service.Storage) error
	SkipMigrations bool
}

// SetupTestDB creates a migrated database in a temporary directory. It is
// closed when the test ends.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()
	return SetupTestDBWithOptions(t, TestDBOptions{})
}

// SetupTestDBWithOptions creates a test database with custom options.
func SetupTestDBWithOptions(t *testing.T, opts TestDBOptions) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "contracts.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	ctx := context.Background()

	if !opts.SkipMigrations {
		if err := store.Migrate(ctx); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}
	}

	if opts.CustomSetup != nil {
		if err := opts.CustomSetup(ctx, store); err != nil {
			t.Fatalf("custom setup failed: %v", err)
		}
	}

	return &TestDB{
		Storage: store,
		t:       t,
	}
}

// MustCreateContract stores a contract and walks it to status through the
// allowed transitions, failing the test on any error.
func (db *TestDB) MustCreateContract(name string, docs model.DocumentSet, status model.ContractStatus) *model.Contract {
	db.t.Helper()
	ctx := context.Background()

	contract := &model.Contract{Name: name, Documents: docs, Status: model.StatusDraft}
	if err := db.Storage.CreateContract(ctx, contract); err != nil {
		db.t.Fatalf("failed to create contract %q: %v", name, err)
	}

	var path []model.ContractStatus
	switch status {
	case model.StatusDraft, "":
	case model.StatusProcessing:
		path = []model.ContractStatus{model.StatusProcessing}
	default:
		path = []model.ContractStatus{model.StatusProcessing, status}
	}

	for _, next := range path {
		contract.Status = next
		if err := db.Storage.UpdateContract(ctx, contract); err != nil {
			db.t.Fatalf("failed to move contract %q to %s: %v", name, next, err)
		}
	}
	return contract
}

package storage

import (
	"context"
	"testing"

	"github.com/Veraticus/smartcp/internal/common"
	"github.com/Veraticus/smartcp/internal/model"
	"github.com/Veraticus/smartcp/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContract(name string) *model.Contract {
	return &model.Contract{
		Name: name,
		Documents: model.DocumentSet{
			model.RoleFixtureRecap: "Cargo: 50000 MT iron ore.",
			model.RoleBaseCP:       "Freight payable on signing.",
		},
	}
}

func TestCreateContract(t *testing.T) {
	store := createTestStorage(t)
	fixedClock(store)
	ctx := context.Background()

	contract := newTestContract("MV Ocean Star / Vale")
	require.NoError(t, store.CreateContract(ctx, contract))

	assert.NotEmpty(t, contract.ID)
	assert.Equal(t, model.StatusDraft, contract.Status)
	assert.False(t, contract.CreatedAt.IsZero())

	got, err := store.GetContract(ctx, contract.ID)
	require.NoError(t, err)
	assert.Equal(t, contract.Name, got.Name)
	assert.Equal(t, contract.Documents, got.Documents)
	assert.Equal(t, model.StatusDraft, got.Status)
	assert.Equal(t, model.NewExtractionResult(), got.Clauses)
	assert.Empty(t, got.Completeness)
	assert.True(t, contract.CreatedAt.Equal(got.CreatedAt))
}

func TestCreateContract_Validation(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	tests := []struct {
		wantErr  error
		contract *model.Contract
		name     string
	}{
		{name: "nil contract", contract: nil, wantErr: ErrNilParameter},
		{name: "blank name", contract: &model.Contract{Name: "  "}, wantErr: ErrInvalidContract},
		{name: "unknown status", contract: &model.Contract{Name: "x", Status: "archived"}, wantErr: ErrInvalidStatus},
		{name: "starts completed", contract: &model.Contract{Name: "x", Status: model.StatusCompleted}, wantErr: common.ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.CreateContract(ctx, tt.contract)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateContract_DuplicateID(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	first := newTestContract("first")
	first.ID = "fixed-id"
	require.NoError(t, store.CreateContract(ctx, first))

	second := newTestContract("second")
	second.ID = "fixed-id"
	require.ErrorIs(t, store.CreateContract(ctx, second), common.ErrDuplicateEntry)
}

func TestUpdateContract_Transitions(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		path    []model.ContractStatus
	}{
		{name: "draft to processing to completed", path: []model.ContractStatus{model.StatusProcessing, model.StatusCompleted}},
		{name: "processing to error", path: []model.ContractStatus{model.StatusProcessing, model.StatusError}},
		{name: "same status", path: []model.ContractStatus{model.StatusDraft}},
		{name: "draft to completed", path: []model.ContractStatus{model.StatusCompleted}, wantErr: common.ErrInvalidTransition},
		{name: "completed to processing", path: []model.ContractStatus{model.StatusProcessing, model.StatusCompleted, model.StatusProcessing}, wantErr: common.ErrInvalidTransition},
		{name: "error to completed", path: []model.ContractStatus{model.StatusProcessing, model.StatusError, model.StatusCompleted}, wantErr: common.ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := createTestStorage(t)
			ctx := context.Background()
			contract := newTestContract(tt.name)
			require.NoError(t, store.CreateContract(ctx, contract))

			var err error
			for _, status := range tt.path {
				contract.Status = status
				if err = store.UpdateContract(ctx, contract); err != nil {
					break
				}
			}

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			got, err := store.GetContract(ctx, contract.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.path[len(tt.path)-1], got.Status)
		})
	}
}

func TestUpdateContract_PersistsResult(t *testing.T) {
	store := createTestStorage(t)
	fixedClock(store)
	ctx := context.Background()

	contract := newTestContract("result")
	contract.Status = model.StatusProcessing
	require.NoError(t, store.CreateContract(ctx, contract))
	created := contract.UpdatedAt

	result := model.NewExtractionResult()
	result[model.CategoryPortClauses] = []string{"Port of Rotterdam.", "Berth one."}
	contract.Clauses = result
	contract.Completeness = model.CompletenessReport{model.CategoryPortClauses: "✓ Port and loading/discharging terms found"}
	contract.FinalContract = "=== FIXTURE RECAP ===\n..."
	contract.Status = model.StatusCompleted
	require.NoError(t, store.UpdateContract(ctx, contract))
	assert.True(t, contract.UpdatedAt.After(created))

	got, err := store.GetContract(ctx, contract.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Berth one.", "Port of Rotterdam."}, got.Clauses[model.CategoryPortClauses])
	assert.Len(t, got.Clauses, len(model.Categories()))
	assert.Equal(t, contract.Completeness, got.Completeness)
	assert.Equal(t, contract.FinalContract, got.FinalContract)
	assert.Equal(t, model.StatusCompleted, got.Status)
}

func TestUpdateContract_NotFound(t *testing.T) {
	store := createTestStorage(t)
	contract := newTestContract("missing")
	contract.ID = "does-not-exist"
	contract.Status = model.StatusDraft

	require.ErrorIs(t, store.UpdateContract(context.Background(), contract), common.ErrNotFound)
}

func TestGetContract_NotFound(t *testing.T) {
	store := createTestStorage(t)

	_, err := store.GetContract(context.Background(), "nope")
	require.ErrorIs(t, err, common.ErrNotFound)

	_, err = store.GetContract(context.Background(), "")
	require.ErrorIs(t, err, ErrEmptyString)
}

func TestListContracts(t *testing.T) {
	store := createTestStorage(t)
	fixedClock(store)
	ctx := context.Background()

	names := []string{"Ocean Star", "Pacific Dawn", "ocean breeze", "100%_Cargo"}
	ids := make(map[string]string, len(names))
	for _, name := range names {
		contract := newTestContract(name)
		require.NoError(t, store.CreateContract(ctx, contract))
		ids[name] = contract.ID
	}

	done := &model.Contract{ID: ids["Pacific Dawn"], Name: "Pacific Dawn", Status: model.StatusProcessing}
	require.NoError(t, store.UpdateContract(ctx, done))
	done.Status = model.StatusCompleted
	require.NoError(t, store.UpdateContract(ctx, done))

	contractNames := func(contracts []model.Contract) []string {
		out := make([]string, 0, len(contracts))
		for _, c := range contracts {
			out = append(out, c.Name)
		}
		return out
	}

	tests := []struct {
		name   string
		filter service.ContractFilter
		want   []string
	}{
		{name: "all newest first", filter: service.ContractFilter{}, want: []string{"100%_Cargo", "ocean breeze", "Pacific Dawn", "Ocean Star"}},
		{name: "status", filter: service.ContractFilter{Status: model.StatusCompleted}, want: []string{"Pacific Dawn"}},
		{name: "search is case insensitive", filter: service.ContractFilter{Search: "OCEAN"}, want: []string{"ocean breeze", "Ocean Star"}},
		{name: "search escapes wildcards", filter: service.ContractFilter{Search: "%_"}, want: []string{"100%_Cargo"}},
		{name: "limit", filter: service.ContractFilter{Limit: 2}, want: []string{"100%_Cargo", "ocean breeze"}},
		{name: "no match", filter: service.ContractFilter{Search: "atlantic"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contracts, err := store.ListContracts(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, contractNames(contracts))
		})
	}

	_, err := store.ListContracts(ctx, service.ContractFilter{Status: "archived"})
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestCountByStatus(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	counts, err := store.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[model.ContractStatus]int{
		model.StatusDraft:      0,
		model.StatusProcessing: 0,
		model.StatusCompleted:  0,
		model.StatusError:      0,
	}, counts)

	for i := 0; i < 3; i++ {
		require.NoError(t, store.CreateContract(ctx, newTestContract("draft")))
	}
	processing := newTestContract("processing")
	processing.Status = model.StatusProcessing
	require.NoError(t, store.CreateContract(ctx, processing))

	counts, err = store.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, counts[model.StatusDraft])
	assert.Equal(t, 1, counts[model.StatusProcessing])
	assert.Equal(t, 0, counts[model.StatusCompleted])
}

func TestDeleteContract(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	contract := newTestContract("delete me")
	require.NoError(t, store.CreateContract(ctx, contract))
	require.NoError(t, store.AddLog(ctx, contract.ID, model.LogLevelInfo, "Started processing"))

	require.NoError(t, store.DeleteContract(ctx, contract.ID))

	_, err := store.GetContract(ctx, contract.ID)
	require.ErrorIs(t, err, common.ErrNotFound)

	logs, err := store.GetLogs(ctx, contract.ID)
	require.NoError(t, err)
	assert.Empty(t, logs)

	require.ErrorIs(t, store.DeleteContract(ctx, contract.ID), common.ErrNotFound)
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/smartcp/internal/cli"
	"github.com/Veraticus/smartcp/internal/config"
	"github.com/Veraticus/smartcp/internal/engine"
	"github.com/Veraticus/smartcp/internal/ingest"
	"github.com/Veraticus/smartcp/internal/model"
	"github.com/Veraticus/smartcp/internal/service"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	config.SetDefaults(viper.GetViper())
	viper.Set(config.KeyNLPEnabled, false)
	viper.Set(config.KeyDatabasePath, filepath.Join(t.TempDir(), "contracts.db"))
	t.Cleanup(viper.Reset)
}

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseDocFlags(t *testing.T) {
	tests := []struct {
		want   map[string]string
		name   string
		errMsg string
		values []string
	}{
		{name: "none", values: nil, want: map[string]string{}},
		{name: "single", values: []string{"rider=rider.txt"}, want: map[string]string{"rider": "rider.txt"}},
		{name: "role is normalized", values: []string{" Rider = r.txt "}, want: map[string]string{"rider": "r.txt"}},
		{name: "path may contain equals", values: []string{"addendum=a=b.txt"}, want: map[string]string{"addendum": "a=b.txt"}},
		{name: "missing separator", values: []string{"rider.txt"}, errMsg: "expected role=path"},
		{name: "empty path", values: []string{"rider="}, errMsg: "expected role=path"},
		{name: "duplicate role", values: []string{"rider=a.txt", "RIDER=b.txt"}, errMsg: "more than once"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDocFlags(tt.values)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDocumentPaths(t *testing.T) {
	cmd := extractCmd()
	require.NoError(t, cmd.ParseFlags([]string{
		"--fixture-recap", "recap.txt",
		"--base-cp", "cp.docx",
		"--doc", "rider=rider.pdf",
	}))

	paths, err := documentPaths(cmd)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		model.RoleFixtureRecap: "recap.txt",
		model.RoleBaseCP:       "cp.docx",
		"rider":                "rider.pdf",
	}, paths)
}

func TestDocumentPaths_Errors(t *testing.T) {
	empty := extractCmd()
	require.NoError(t, empty.ParseFlags(nil))
	_, err := documentPaths(empty)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no documents given")

	duplicate := extractCmd()
	require.NoError(t, duplicate.ParseFlags([]string{"--base-cp", "a.txt", "--doc", "base_cp=b.txt"}))
	_, err = documentPaths(duplicate)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "more than once")
}

func TestReadDocuments_RejectsUnsupportedBeforeReading(t *testing.T) {
	dir := t.TempDir()
	cmd := extractCmd()
	cmd.SetErr(io.Discard)

	_, err := readDocuments(cmd, map[string]string{
		model.RoleFixtureRecap: filepath.Join(dir, "missing.txt"),
		model.RoleBaseCP:       writeDoc(t, dir, "cp.doc", "legacy"),
	}, 0)
	require.ErrorIs(t, err, ingest.ErrUnsupportedType)
}

func TestExtractCommand_JSON(t *testing.T) {
	resetViper(t)
	dir := t.TempDir()
	recap := writeDoc(t, dir, "recap.txt", "Cargo: 50000 MT iron ore. Laytime 72 hours.")
	base := writeDoc(t, dir, "cp.txt", "Freight shall be payable within 5 days of completion of loading.")

	var out bytes.Buffer
	cmd := extractCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--fixture-recap", recap, "--base-cp", base, "--json"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	var got extractOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Len(t, got.Clauses, len(model.Categories()))
	assert.NotEmpty(t, got.Clauses[model.CategoryPaymentTerms])
	assert.Len(t, got.Completeness, len(engine.Essentials()))
	assert.Empty(t, got.Error)
}

func TestExtractCommand_Text(t *testing.T) {
	resetViper(t)
	dir := t.TempDir()
	base := writeDoc(t, dir, "cp.txt", "Freight shall be payable within 5 days of completion of loading.")

	var out bytes.Buffer
	cmd := extractCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--base-cp", base})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	assert.Contains(t, out.String(), cli.DocumentIcon+" Extracted")
	assert.Contains(t, out.String(), "from 1 documents")
	assert.Contains(t, out.String(), "Payment Terms")
	assert.Contains(t, out.String(), "Completeness")
}

func TestProcessAndContractsCommands(t *testing.T) {
	resetViper(t)
	dir := t.TempDir()
	base := writeDoc(t, dir, "cp.txt", "Freight shall be payable within 5 days of completion of loading. Port of Santos.")
	output := filepath.Join(dir, "contract.txt")

	var out bytes.Buffer
	process := processCmd()
	process.SetOut(&out)
	process.SetErr(io.Discard)
	process.SetArgs([]string{"MV Ocean Star", "--base-cp", base, "--output", output})
	require.NoError(t, process.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), `Processed "MV Ocean Star"`)

	merged, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(merged), "Port of Santos.")
	assert.Contains(t, string(merged), "=== CONTRACT GENERATED ===")

	out.Reset()
	list := contractsListCmd()
	list.SetOut(&out)
	list.SetArgs([]string{"--status", "completed"})
	require.NoError(t, list.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "MV Ocean Star")

	out.Reset()
	stats := contractsStatsCmd()
	stats.SetOut(&out)
	stats.SetArgs(nil)
	require.NoError(t, stats.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "Total contracts: 1")
	assert.Contains(t, out.String(), "100.0%")
}

func TestContractsDelete_Declined(t *testing.T) {
	resetViper(t)
	dir := t.TempDir()
	base := writeDoc(t, dir, "cp.txt", "Port of Santos.")

	process := processCmd()
	process.SetOut(io.Discard)
	process.SetErr(io.Discard)
	process.SetArgs([]string{"keep me", "--base-cp", base})
	require.NoError(t, process.ExecuteContext(context.Background()))

	store, err := openStore(context.Background())
	require.NoError(t, err)
	contracts, err := store.ListContracts(context.Background(), service.ContractFilter{})
	require.NoError(t, err)
	require.Len(t, contracts, 1)
	require.NoError(t, store.Close())

	var out bytes.Buffer
	del := contractsDeleteCmd()
	del.SetOut(&out)
	del.SetIn(bytes.NewBufferString("n\n"))
	del.SetArgs([]string{contracts[0].ID[:8]})
	require.NoError(t, del.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "Nothing deleted")

	out.Reset()
	del = contractsDeleteCmd()
	del.SetOut(&out)
	del.SetArgs([]string{contracts[0].ID, "--yes"})
	require.NoError(t, del.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), `Deleted contract "keep me"`)
}

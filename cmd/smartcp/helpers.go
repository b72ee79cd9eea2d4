package main

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/Veraticus/smartcp/internal/cli"
	"github.com/Veraticus/smartcp/internal/config"
	"github.com/Veraticus/smartcp/internal/engine"
	"github.com/Veraticus/smartcp/internal/ingest"
	"github.com/Veraticus/smartcp/internal/metrics"
	"github.com/Veraticus/smartcp/internal/model"
	"github.com/Veraticus/smartcp/internal/nlp"
	"github.com/Veraticus/smartcp/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// loadConfig resolves the application configuration from viper.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// initStorage opens the contract database and brings its schema up to date.
func initStorage(ctx context.Context, cfg config.Config) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// initEngine builds the clause engine and the metrics recorder observing it.
func initEngine(cfg config.Config) (*engine.ClauseEngine, *metrics.Recorder, error) {
	pipeline := nlp.Load(nlp.Options{
		Enabled:   cfg.NLPEnabled,
		ModelPath: cfg.NLPModelPath,
	})

	recorder := metrics.NewRecorder()
	e, err := engine.NewDefault(pipeline, engine.Config{MaxClauseLength: cfg.MaxClauseLength}, engine.WithObserver(recorder))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create clause engine: %w", err)
	}
	return e, recorder, nil
}

// writeMetrics exports the recorder when a textfile path is configured.
func writeMetrics(cfg config.Config, recorder *metrics.Recorder) {
	if cfg.MetricsTextfile == "" {
		return
	}
	if err := recorder.WriteTextfile(cfg.MetricsTextfile); err != nil {
		slog.Warn("Failed to write metrics textfile", "path", cfg.MetricsTextfile, "error", err)
	}
}

// addDocumentFlags registers the document input flags shared by extract and
// process.
func addDocumentFlags(cmd *cobra.Command) {
	cmd.Flags().String("fixture-recap", "", "fixture recap document (.txt, .docx, .pdf)")
	cmd.Flags().String("base-cp", "", "base charter party document")
	cmd.Flags().String("negotiated", "", "negotiated clauses document")
	cmd.Flags().StringArray("doc", nil, "additional document as role=path (repeatable)")
}

// documentPaths collects role to path mappings from the document flags.
func documentPaths(cmd *cobra.Command) (map[string]string, error) {
	paths := make(map[string]string)
	for flag, role := range map[string]string{
		"fixture-recap": model.RoleFixtureRecap,
		"base-cp":       model.RoleBaseCP,
		"negotiated":    model.RoleNegotiatedClauses,
	} {
		if path, _ := cmd.Flags().GetString(flag); path != "" {
			paths[role] = path
		}
	}

	docs, _ := cmd.Flags().GetStringArray("doc")
	extra, err := parseDocFlags(docs)
	if err != nil {
		return nil, err
	}
	for role, path := range extra {
		if _, exists := paths[role]; exists {
			return nil, fmt.Errorf("document role %q given more than once", role)
		}
		paths[role] = path
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("no documents given: use --fixture-recap, --base-cp, --negotiated or --doc role=path")
	}
	return paths, nil
}

// parseDocFlags parses role=path values.
func parseDocFlags(values []string) (map[string]string, error) {
	out := make(map[string]string, len(values))
	for _, value := range values {
		role, path, ok := strings.Cut(value, "=")
		role = strings.ToLower(strings.TrimSpace(role))
		path = strings.TrimSpace(path)
		if !ok || role == "" || path == "" {
			return nil, fmt.Errorf("invalid --doc value %q: expected role=path", value)
		}
		if _, exists := out[role]; exists {
			return nil, fmt.Errorf("document role %q given more than once", role)
		}
		out[role] = path
	}
	return out, nil
}

// readDocuments loads every document with a progress bar on stderr.
func readDocuments(cmd *cobra.Command, paths map[string]string, maxBytes int64) (model.DocumentSet, error) {
	// Type check everything before reading anything.
	for role, path := range paths {
		if err := ingest.CheckType(path); err != nil {
			return nil, fmt.Errorf("%s: %w", role, err)
		}
	}

	roles := make([]string, 0, len(paths))
	for role := range paths {
		roles = append(roles, role)
	}
	sort.Strings(roles)

	progress := cli.NewDocumentProgress(cmd.ErrOrStderr(), len(roles))
	docs := make(model.DocumentSet, len(roles))
	for _, role := range roles {
		text, err := ingest.ReadFile(paths[role], maxBytes)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", role, err)
		}
		docs[role] = text
		progress.Advance(role)
	}
	progress.Finish()

	return docs, nil
}

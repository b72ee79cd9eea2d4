package main

import (
	"fmt"
	"os"
	"time"

	"github.com/Veraticus/smartcp/internal/cli"
	"github.com/Veraticus/smartcp/internal/contract"
	"github.com/spf13/cobra"
)

func processCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process NAME",
		Short: "Extract, merge and store a contract",
		Long: `Create a contract record, extract clauses from the given documents, merge
them into a single contract text and store the result.`,
		Example: `  smartcp process "MV Ocean Star / Vale" --fixture-recap recap.txt --base-cp gencon.docx --output contract.txt`,
		Args:    cobra.ExactArgs(1),
		RunE:    runProcess,
	}

	addDocumentFlags(cmd)
	cmd.Flags().StringP("output", "o", "", "write the merged contract text to this file")

	return cmd
}

func runProcess(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	paths, err := documentPaths(cmd)
	if err != nil {
		return err
	}

	docs, err := readDocuments(cmd, paths, cfg.MaxDocumentBytes)
	if err != nil {
		return err
	}

	interrupts := cli.NewInterruptHandler(cmd.ErrOrStderr(), "The contract is marked as failed; run process again to retry.")
	ctx, stop := interrupts.HandleInterrupts(cmd.Context())
	defer stop()

	store, err := initStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	e, recorder, err := initEngine(cfg)
	if err != nil {
		return err
	}
	defer writeMetrics(cfg, recorder)

	start := time.Now()
	c, err := contract.NewProcessor(store, e).Process(ctx, args[0], docs)
	if err != nil {
		if c != nil {
			return fmt.Errorf("contract %s failed: %w", c.ID, err)
		}
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Processed %q in %s", c.Name, time.Since(start).Round(time.Millisecond))))
	fmt.Fprintf(out, "  ID: %s\n  Clauses: %d\n\n", c.ID, c.Clauses.Total())
	if err := cli.RenderCompleteness(out, c.Completeness); err != nil {
		return err
	}

	if output != "" {
		if err := os.WriteFile(output, []byte(c.FinalContract), 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", output, err)
		}
		fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Merged contract written to %s", output)))
	}

	return nil
}

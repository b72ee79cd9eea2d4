package main

import (
	"encoding/json"
	"fmt"

	"github.com/Veraticus/smartcp/internal/cli"
	"github.com/Veraticus/smartcp/internal/engine"
	"github.com/Veraticus/smartcp/internal/model"
	"github.com/spf13/cobra"
)

// extractOutput is the --json shape of the extract command.
type extractOutput struct {
	Clauses      model.ExtractionResult   `json:"clauses"`
	Completeness model.CompletenessReport `json:"completeness"`
	Error        string                   `json:"error,omitempty"`
}

func extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract clauses from charter party documents",
		Long: `Read the given documents, extract categorized clauses and report which
essential terms are present. Nothing is stored.`,
		Example: `  smartcp extract --fixture-recap recap.txt --base-cp gencon.docx
  smartcp extract --base-cp cp.pdf --doc rider=rider.txt --json`,
		Args: cobra.NoArgs,
		RunE: runExtract,
	}

	addDocumentFlags(cmd)
	cmd.Flags().Bool("json", false, "print the result as JSON")

	return cmd
}

func runExtract(cmd *cobra.Command, _ []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

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

	e, recorder, err := initEngine(cfg)
	if err != nil {
		return err
	}
	defer writeMetrics(cfg, recorder)

	result, extractErr := e.Run(cmd.Context(), docs)
	report := engine.AnalyzeCompleteness(result)

	out := cmd.OutOrStdout()
	if asJSON {
		payload := extractOutput{Clauses: result, Completeness: report}
		if extractErr != nil {
			payload.Error = extractErr.Error()
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}

	fmt.Fprintln(out, cli.FormatTitle(cli.DocumentIcon + " " + fmt.Sprintf("Extracted %d clauses from %d documents", result.Total(), len(docs))))
	if extractErr != nil {
		fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("Extraction incomplete: %v", extractErr)))
	}
	fmt.Fprintln(out)

	if err := cli.RenderResult(out, result); err != nil {
		return err
	}
	return cli.RenderCompleteness(out, report)
}

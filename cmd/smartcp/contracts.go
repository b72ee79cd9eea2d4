package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/smartcp/internal/cli"
	"github.com/Veraticus/smartcp/internal/common"
	"github.com/Veraticus/smartcp/internal/contract"
	"github.com/Veraticus/smartcp/internal/model"
	"github.com/Veraticus/smartcp/internal/service"
	"github.com/spf13/cobra"
)

func contractsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "contracts",
		Aliases: []string{"contract", "c"},
		Short:   "Manage stored contracts",
	}

	cmd.AddCommand(contractsListCmd())
	cmd.AddCommand(contractsShowCmd())
	cmd.AddCommand(contractsDeleteCmd())
	cmd.AddCommand(contractsStatsCmd())

	return cmd
}

func contractsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored contracts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, _ := cmd.Flags().GetString("status")
			search, _ := cmd.Flags().GetString("search")
			limit, _ := cmd.Flags().GetInt("limit")

			filter := service.ContractFilter{
				Status: model.ContractStatus(strings.ToLower(status)),
				Search: search,
				Limit:  limit,
			}
			if filter.Status != "" && !filter.Status.Valid() {
				return common.NewUserError(fmt.Sprintf("Unknown status %q (draft, processing, completed, error)", status), nil)
			}

			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			contracts, err := store.ListContracts(cmd.Context(), filter)
			if err != nil {
				return fmt.Errorf("failed to list contracts: %w", err)
			}
			return cli.RenderContracts(cmd.OutOrStdout(), contracts)
		},
	}

	cmd.Flags().String("status", "", "only contracts in this status")
	cmd.Flags().String("search", "", "only contracts whose name contains this text")
	cmd.Flags().Int("limit", 50, "maximum number of contracts (0 for all)")

	return cmd
}

func contractsShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show a contract's clauses, completeness and processing log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			showText, _ := cmd.Flags().GetBool("text")

			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			c, err := resolveContract(cmd.Context(), store, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if showText {
				_, err := fmt.Fprintln(out, c.FinalContract)
				return err
			}

			logs, err := store.GetLogs(cmd.Context(), c.ID)
			if err != nil {
				return fmt.Errorf("failed to get processing logs: %w", err)
			}
			return cli.RenderContract(out, c, logs)
		},
	}

	cmd.Flags().Bool("text", false, "print only the merged contract text")

	return cmd
}

func contractsDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a contract and its processing log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")

			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			c, err := resolveContract(cmd.Context(), store, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !yes {
				confirmed, err := cli.NewConfirmer(cmd.InOrStdin(), out).
					Confirm(cmd.Context(), fmt.Sprintf("Delete contract %q (%s)?", c.Name, cli.ShortID(c.ID)))
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(out, cli.FormatInfo("Nothing deleted"))
					return nil
				}
			}

			if err := store.DeleteContract(cmd.Context(), c.ID); err != nil {
				return fmt.Errorf("failed to delete contract: %w", err)
			}
			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Deleted contract %q", c.Name)))
			return nil
		},
	}

	cmd.Flags().BoolP("yes", "y", false, "delete without asking")

	return cmd
}

func contractsStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show contract processing statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			// Stats never extracts, so the processor needs no engine.
			stats, err := contract.NewProcessor(store, nil).Stats(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to compute stats: %w", err)
			}
			counts, err := store.CountByStatus(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to count contracts: %w", err)
			}
			return cli.RenderStats(cmd.OutOrStdout(), stats, counts)
		},
	}
}

// openStore loads configuration and opens the contract database.
func openStore(ctx context.Context) (service.Storage, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	store, err := initStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// resolveContract finds a contract by full ID or by a unique ID prefix.
func resolveContract(ctx context.Context, store service.Storage, id string) (*model.Contract, error) {
	c, err := store.GetContract(ctx, id)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	all, listErr := store.ListContracts(ctx, service.ContractFilter{})
	if listErr != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", listErr)
	}

	var matches []model.Contract
	for _, candidate := range all {
		if strings.HasPrefix(candidate.ID, id) {
			matches = append(matches, candidate)
		}
	}

	switch len(matches) {
	case 0:
		return nil, common.NewUserError(fmt.Sprintf("No contract with ID %q", id), err)
	case 1:
		return &matches[0], nil
	default:
		return nil, common.NewUserError(fmt.Sprintf("ID prefix %q matches %d contracts", id, len(matches)), nil)
	}
}

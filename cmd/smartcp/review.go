package main

import (
	"github.com/Veraticus/smartcp/internal/tui"
	"github.com/Veraticus/smartcp/internal/tui/themes"
	"github.com/spf13/cobra"
)

func reviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review ID",
		Short: "Review a contract's extracted clauses interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			theme, _ := cmd.Flags().GetString("theme")

			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			c, err := resolveContract(cmd.Context(), store, args[0])
			if err != nil {
				return err
			}

			return tui.RunReview(cmd.Context(), c, tui.WithTheme(themes.GetTheme(theme)))
		},
	}

	cmd.Flags().String("theme", "default", "color theme (default, mono)")

	return cmd
}

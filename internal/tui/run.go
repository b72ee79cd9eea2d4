package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/smartcp/internal/model"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrNoContract is returned when the review is started without a contract.
var ErrNoContract = errors.New("contract is required")

// RunReview shows the interactive clause review for contract until the user
// quits or ctx is canceled.
func RunReview(ctx context.Context, contract *model.Contract, opts ...Option) error {
	if contract == nil {
		return ErrNoContract
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}

	p := tea.NewProgram(NewModel(contract, opts...), programOpts...)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("review failed: %w", err)
	}
	return nil
}

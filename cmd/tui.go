package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/yotoup/internal/shared"
	"github.com/desertthunder/yotoup/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive card picker and uploader.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/yotoup-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	fileLogger.SetLevel(r.logger.GetLevel())
	r.SetLogger(fileLogger)

	auth, err := r.authenticator()
	if err != nil {
		return err
	}
	uploader, err := r.uploader()
	if err != nil {
		return err
	}

	model := ui.NewModel(ctx, r.cardLister(), uploader, auth)
	p := tea.NewProgram(model, tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"fittrack/internal/logging"
	"fittrack/internal/tui"
)

// browseCmd returns the "browse" command, which launches the interactive
// catalog browser.
func browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the catalog interactively",
		Long:  "Open a full-screen browser over the exercise catalog with rendered cards.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := logging.New()
			cfg, err := loadConfigInteractive()
			if err != nil {
				return err
			}
			catalog, _, err := loadReferenceData(cfg, logger)
			if err != nil {
				return err
			}

			model := tui.NewBrowseModel(catalog, logger.WithComponent("tui"))
			program := tea.NewProgram(model, tea.WithAltScreen())
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("browser failed: %w", err)
			}
			return nil
		},
	}
}

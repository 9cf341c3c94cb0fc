// ABOUTME: TUI entry point
// ABOUTME: Runs the bubbletea program in the alternate screen
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pronounce-labs/pronounce-go/internal/app"
)

// Run starts the practice TUI and blocks until the user quits.
func Run(tr *app.Trainer) error {
	program := tea.NewProgram(New(tr), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

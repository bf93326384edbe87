package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts an interactive session on the alternate screen and blocks until
// the user exits
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

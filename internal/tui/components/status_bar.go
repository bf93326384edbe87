package components

import (
	"github.com/charmbracelet/lipgloss"
)

// StatusBar holds the transient message shown below the panes. Any key press
// clears it.
type StatusBar struct {
	text    string
	isError bool
}

func NewStatusBar() *StatusBar {
	return &StatusBar{}
}

// SetText shows an informational message
func (s *StatusBar) SetText(text string) {
	s.text = text
	s.isError = false
}

// SetError shows a failure message
func (s *StatusBar) SetError(text string) {
	s.text = text
	s.isError = true
}

// Clear removes the message
func (s *StatusBar) Clear() {
	s.text = ""
	s.isError = false
}

func (s *StatusBar) Text() string  { return s.text }
func (s *StatusBar) IsError() bool { return s.isError }

// Visible reports whether there is a message to show
func (s *StatusBar) Visible() bool {
	return s.text != ""
}

// View renders the message with info or errStyle depending on its kind
func (s *StatusBar) View(info, errStyle lipgloss.Style) string {
	if s.text == "" {
		return ""
	}
	if s.isError {
		return errStyle.Render(s.text)
	}
	return info.Render(s.text)
}

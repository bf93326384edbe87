package styles

import (
	"jigolo/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the core UI styles, derived from one of the named colour
// sets in the configuration
type Theme struct {
	Name string

	Border       lipgloss.Style
	ActiveBorder lipgloss.Style
	Title        lipgloss.Style
	ActiveTitle  lipgloss.Style

	Cursor      lipgloss.Style // highlighted row in the tree and library list
	CursorLine  lipgloss.Style // cursor line in the content pane
	Selection   lipgloss.Style // lines inside a visual selection
	Placeholder lipgloss.Style

	Input  lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style

	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style
	HelpSep  lipgloss.Style
}

// NewTheme builds the styles for the named theme. Unknown names fall back to
// the default theme.
func NewTheme(name string) *Theme {
	colors := config.GetTheme(name)
	c := func(key string) lipgloss.Color { return lipgloss.Color(colors[key]) }

	return &Theme{
		Name: name,

		Border: lipgloss.NewStyle().
			Foreground(c("emphasis")),
		ActiveBorder: lipgloss.NewStyle().
			Foreground(c("border")),
		Title: lipgloss.NewStyle().
			Foreground(c("emphasis")),
		ActiveTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(c("primary")),

		Cursor: lipgloss.NewStyle().
			Bold(true).
			Reverse(true),
		CursorLine: lipgloss.NewStyle().
			Underline(true),
		Selection: lipgloss.NewStyle().
			Background(c("info")).
			Foreground(lipgloss.Color("0")),
		Placeholder: lipgloss.NewStyle().
			Foreground(c("emphasis")).
			Italic(true),

		Input: lipgloss.NewStyle().
			Foreground(c("primary")),
		Status: lipgloss.NewStyle().
			Foreground(c("success")),
		Error: lipgloss.NewStyle().
			Foreground(c("error")),

		HelpKey: lipgloss.NewStyle().
			Bold(true).
			Foreground(c("warning")),
		HelpDesc: lipgloss.NewStyle().
			Foreground(c("emphasis")),
		HelpSep: lipgloss.NewStyle().
			Foreground(c("emphasis")),
	}
}

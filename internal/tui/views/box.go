package views

import (
	"strings"

	"jigolo/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Box draws a rounded border of exactly width x height cells with title set
// into the top edge. Body lines beyond the interior are dropped, short ones
// are padded.
func Box(title string, body []string, width, height int, theme *styles.Theme, active bool) string {
	if width < 2 || height < 2 {
		return ""
	}
	b := lipgloss.RoundedBorder()
	border, titleStyle := theme.Border, theme.Title
	if active {
		border, titleStyle = theme.ActiveBorder, theme.ActiveTitle
	}
	inner := width - 2

	var sb strings.Builder

	// Top edge with the title
	label := ansi.Truncate(title, inner, "…")
	fill := inner - ansi.StringWidth(label)
	sb.WriteString(border.Render(b.TopLeft))
	sb.WriteString(titleStyle.Render(label))
	sb.WriteString(border.Render(strings.Repeat(b.Top, fill) + b.TopRight))

	for i := 0; i < height-2; i++ {
		line := ""
		if i < len(body) {
			line = ansi.Truncate(body[i], inner, "")
		}
		if pad := inner - ansi.StringWidth(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		sb.WriteString("\n")
		sb.WriteString(border.Render(b.Left))
		sb.WriteString(line)
		sb.WriteString(border.Render(b.Right))
	}

	sb.WriteString("\n")
	sb.WriteString(border.Render(b.BottomLeft + strings.Repeat(b.Bottom, inner) + b.BottomRight))
	return sb.String()
}

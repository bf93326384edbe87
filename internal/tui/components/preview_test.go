package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestPreviewPlain(t *testing.T) {
	p := NewPreview(false, "default")
	assert.Equal(t, []string{"# Title", "    body"}, p.Render("# Title\n\tbody", 40))
	assert.Nil(t, p.Render("", 40))
}

func TestPreviewMarkdown(t *testing.T) {
	p := NewPreview(true, "default")
	lines := p.Render("# Title\n\nSome **bold** text", 40)

	plain := ansi.Strip(strings.Join(lines, "\n"))
	assert.Contains(t, plain, "Title")
	assert.Contains(t, plain, "bold")
	assert.NotContains(t, plain, "**")

	// Renderer is reused for the same width
	p.Render("again", 40)
	assert.Len(t, p.renderers, 1)
}

func TestStatusBar(t *testing.T) {
	s := NewStatusBar()
	assert.False(t, s.Visible())
	assert.Empty(t, s.View(lipgloss.NewStyle(), lipgloss.NewStyle()))

	s.SetError("Title cannot be empty.")
	assert.True(t, s.IsError())
	assert.Equal(t, "Title cannot be empty.", ansi.Strip(s.View(lipgloss.NewStyle(), lipgloss.NewStyle())))

	s.SetText("Snippet saved!")
	assert.False(t, s.IsError())

	s.Clear()
	assert.False(t, s.Visible())
}

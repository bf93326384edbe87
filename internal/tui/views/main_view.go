package views

import (
	"fmt"
	"strings"

	"jigolo/internal/tui/components"
	"jigolo/internal/tui/styles"
	"jigolo/pkg/types"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	contentPlaceholder = "Select a file to view its content."
	emptyLibrary       = "No snippets saved. Use v to select, s to save."

	barHeight  = 3
	helpHeight = 1
)

// ModelReader defines the interface that views use to read model state
type ModelReader interface {
	Mode() types.Mode
	ActivePane() types.Pane
	Size() (width, height int)
	Tree() *components.FileTree
	TreeTitle() string
	Content() *components.Content
	LibraryView() *components.LibraryView
	Preview() *components.Preview
	InputBuffer() string
	StatusBar() *components.StatusBar
	Keys() types.KeyMap
	Theme() *styles.Theme
}

// Layout is the geometry of one frame
type Layout struct {
	Width      int
	Height     int
	MainHeight int
	TreeWidth  int
	RightWidth int
	BarHeight  int
}

// ComputeLayout splits the screen into the main panes, the optional
// input/status bar and the help line. The tree takes 30% of the width.
func ComputeLayout(width, height int, showBar bool) Layout {
	l := Layout{Width: max(0, width), Height: max(0, height)}
	if showBar {
		l.BarHeight = barHeight
	}
	l.MainHeight = max(0, l.Height-l.BarHeight-helpHeight)
	l.TreeWidth = l.Width * 30 / 100
	l.RightWidth = l.Width - l.TreeWidth
	return l
}

// InteriorHeight is the number of text rows inside a bordered main pane
func (l Layout) InteriorHeight() int {
	return max(0, l.MainHeight-2)
}

// ShowsBar reports whether the input/status bar is part of the frame
func ShowsBar(m ModelReader) bool {
	return m.Mode().IsInput() || m.StatusBar().Visible()
}

// ShowsLibrary reports whether the right pane shows the library instead of
// the content buffer
func ShowsLibrary(m ModelReader) bool {
	mode := m.Mode()
	return (mode == types.LibraryBrowse || mode == types.RenameInput) && m.LibraryView() != nil
}

// RenderMainView draws the whole frame
func RenderMainView(m ModelReader, l Layout) string {
	if l.Width <= 0 || l.Height <= 0 {
		return ""
	}
	theme := m.Theme()

	left := renderTree(m, l, theme)
	var right string
	if ShowsLibrary(m) {
		right = renderLibrary(m, l, theme)
	} else {
		right = renderContent(m, l, theme)
	}

	rows := []string{}
	if l.MainHeight > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	}
	if l.BarHeight > 0 {
		rows = append(rows, renderBar(m, l, theme))
	}
	rows = append(rows, renderHelp(m, l, theme))

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderTree(m ModelReader, l Layout, theme *styles.Theme) string {
	active := m.ActivePane() == types.FileList && !ShowsLibrary(m)
	lines := m.Tree().Lines(max(0, l.TreeWidth-2), theme.Cursor)
	return Box(m.TreeTitle(), lines, l.TreeWidth, l.MainHeight, theme, active)
}

// ContentTitle is the content pane title, including the selected line range
// while a selection is being made
func ContentTitle(m ModelReader) string {
	switch m.Mode() {
	case types.VisualSelect, types.TitleInput:
		if start, end, ok := m.Content().SelectionRange(); ok {
			return fmt.Sprintf("Content [VISUAL: lines %d-%d]", start+1, end+1)
		}
		return "Content [VISUAL]"
	}
	return "Content"
}

func renderContent(m ModelReader, l Layout, theme *styles.Theme) string {
	c := m.Content()
	active := m.ActivePane() == types.Content

	if !c.Loaded() {
		lines := []string{theme.Placeholder.Render(contentPlaceholder)}
		return Box(ContentTitle(m), lines, l.RightWidth, l.MainHeight, theme, active)
	}

	visible, first := c.VisibleLines()
	innerWidth := max(0, l.RightWidth-2)
	lines := make([]string, 0, len(visible))
	for i, text := range visible {
		line := first + i
		text = ansi.Truncate(text, innerWidth, "")

		style := lipgloss.NewStyle()
		styled := false
		if c.InSelection(line) {
			style = theme.Selection
			styled = true
			if pad := innerWidth - ansi.StringWidth(text); pad > 0 {
				text += strings.Repeat(" ", pad)
			}
		}
		if active && line == c.Cursor() {
			style = style.Inherit(theme.CursorLine).Underline(true)
			styled = true
		}
		if styled {
			text = style.Render(text)
		}
		lines = append(lines, text)
	}

	return Box(ContentTitle(m), lines, l.RightWidth, l.MainHeight, theme, active)
}

func renderLibrary(m ModelReader, l Layout, theme *styles.Theme) string {
	view := m.LibraryView()
	active := m.Mode() == types.LibraryBrowse

	if view.Len() == 0 {
		return Box("Library (empty)", []string{emptyLibrary}, l.RightWidth, l.MainHeight, theme, active)
	}

	listHeight := l.MainHeight * 40 / 100
	previewHeight := l.MainHeight - listHeight
	innerWidth := max(0, l.RightWidth-2)

	list := Box(
		fmt.Sprintf("Library (%d snippets)", view.Len()),
		view.Lines(innerWidth, max(0, listHeight-2), theme.Cursor),
		l.RightWidth, listHeight, theme, active,
	)

	title := "Preview"
	var body []string
	if snip, ok := view.SelectedSnippet(); ok {
		title = "Preview: " + snip.Title
		body = m.Preview().Render(snip.Content, innerWidth)
	}
	preview := Box(title, body, l.RightWidth, previewHeight, theme, active)

	return lipgloss.JoinVertical(lipgloss.Left, list, preview)
}

func renderBar(m ModelReader, l Layout, theme *styles.Theme) string {
	status := m.StatusBar()
	switch m.Mode() {
	case types.TitleInput, types.RenameInput:
		title := "Snippet title"
		if m.Mode() == types.RenameInput {
			title = "Rename snippet"
		}
		if status.Visible() {
			title += " (" + status.Text() + ")"
		}
		line := theme.Input.Render(m.InputBuffer()) + theme.Cursor.Render(" ")
		return Box(title, []string{line}, l.Width, l.BarHeight, theme, true)
	}
	return Box("Status", []string{status.View(theme.Status, theme.Error)}, l.Width, l.BarHeight, theme, false)
}

func renderHelp(m ModelReader, l Layout, theme *styles.Theme) string {
	h := help.New()
	h.Width = l.Width
	h.ShortSeparator = "  "
	h.Styles.ShortKey = theme.HelpKey
	h.Styles.ShortDesc = theme.HelpDesc
	h.Styles.ShortSeparator = theme.HelpSep
	return h.ShortHelpView(m.Keys().HelpBindings(m.Mode(), m.ActivePane()))
}

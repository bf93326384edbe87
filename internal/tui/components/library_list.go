package components

import (
	"strings"

	"jigolo/internal/library"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// LibraryView is the in-memory copy of the snippet library shown while
// browsing, plus the selected position. It is replaced after every write.
type LibraryView struct {
	lib      *library.Library
	selected int
	Offset   int
}

// NewLibraryView wraps lib with the first snippet selected
func NewLibraryView(lib *library.Library) *LibraryView {
	if lib == nil {
		lib = &library.Library{}
	}
	return &LibraryView{lib: lib}
}

// Library returns the wrapped library
func (v *LibraryView) Library() *library.Library {
	return v.lib
}

// Len returns the number of snippets
func (v *LibraryView) Len() int {
	return v.lib.Len()
}

// Selected returns the selected position
func (v *LibraryView) Selected() int {
	return v.selected
}

// SelectedSnippet returns the snippet at the selected position
func (v *LibraryView) SelectedSnippet() (library.Snippet, bool) {
	return v.lib.At(v.selected)
}

// Select moves the selection to i, clamped to the list
func (v *LibraryView) Select(i int) {
	v.selected = i
	v.Clamp()
}

// MoveUp selects the previous snippet
func (v *LibraryView) MoveUp() {
	if v.selected > 0 {
		v.selected--
	}
}

// MoveDown selects the next snippet
func (v *LibraryView) MoveDown() {
	if v.selected+1 < v.Len() {
		v.selected++
	}
}

// Replace swaps in a freshly loaded library and re-clamps the selection
func (v *LibraryView) Replace(lib *library.Library) {
	if lib == nil {
		lib = &library.Library{}
	}
	v.lib = lib
	v.Clamp()
}

// Clamp keeps the selection on a valid position, or 0 when empty
func (v *LibraryView) Clamp() {
	switch {
	case v.Len() == 0 || v.selected < 0:
		v.selected = 0
	case v.selected >= v.Len():
		v.selected = v.Len() - 1
	}
}

// Lines renders the titles that fit in height rows, each prefixed by two
// spaces and truncated to width. The selected row is drawn with cursor.
func (v *LibraryView) Lines(width, height int, cursor lipgloss.Style) []string {
	n := v.Len()
	if n == 0 {
		return nil
	}

	if height > 0 {
		if v.selected < v.Offset {
			v.Offset = v.selected
		}
		if v.selected >= v.Offset+height {
			v.Offset = v.selected - height + 1
		}
	} else {
		v.Offset = 0
	}
	end := n
	if height > 0 {
		end = min(n, v.Offset+height)
	}

	lines := make([]string, 0, end-v.Offset)
	for i := v.Offset; i < end; i++ {
		label := ansi.Truncate("  "+v.lib.Snippets[i].Title, width, "…")
		if i == v.selected {
			if pad := width - ansi.StringWidth(label); pad > 0 {
				label += strings.Repeat(" ", pad)
			}
			label = cursor.Render(label)
		}
		lines = append(lines, label)
	}
	return lines
}

package components

import "strings"

// Content is the text buffer behind the content pane: the loaded text, a
// cursor line, the first visible line and an optional selection anchor.
//
// The cursor always stays inside the viewport; scroll only ever moves to
// follow it. The viewport height is written by the render step alone.
type Content struct {
	text   string
	loaded bool
	lines  []string

	cursor         int
	scroll         int
	viewportHeight int

	anchor    int
	hasAnchor bool
}

// NewContent returns an empty buffer
func NewContent() *Content {
	return &Content{}
}

// LoadText replaces the buffer. Tabs become four spaces and the cursor,
// scroll and selection are reset.
func (c *Content) LoadText(raw string) {
	c.text = strings.ReplaceAll(raw, "\t", "    ")
	c.loaded = true
	c.lines = splitLines(c.text)
	c.cursor = 0
	c.scroll = 0
	c.anchor = 0
	c.hasAnchor = false
}

// splitLines splits on newlines. A trailing newline does not start a new
// line, and "" has no lines at all.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

func (c *Content) Loaded() bool    { return c.loaded }
func (c *Content) Text() string    { return c.text }
func (c *Content) Lines() []string { return c.lines }
func (c *Content) LineCount() int  { return len(c.lines) }
func (c *Content) Cursor() int     { return c.cursor }
func (c *Content) Scroll() int     { return c.scroll }

// ViewportHeight returns the number of text rows inside the pane border
func (c *Content) ViewportHeight() int {
	return c.viewportHeight
}

// SetViewportHeight records the pane's interior height. Only the render step
// calls this.
func (c *Content) SetViewportHeight(h int) {
	if h < 0 {
		h = 0
	}
	c.viewportHeight = h
}

func (c *Content) maxCursor() int {
	if len(c.lines) == 0 {
		return 0
	}
	return len(c.lines) - 1
}

func (c *Content) page() int {
	if c.viewportHeight < 1 {
		return 1
	}
	return c.viewportHeight
}

// CursorDown moves one line down
func (c *Content) CursorDown() {
	if c.cursor < c.maxCursor() {
		c.cursor++
		c.EnsureCursorVisible()
	}
}

// CursorUp moves one line up
func (c *Content) CursorUp() {
	if c.cursor > 0 {
		c.cursor--
		c.EnsureCursorVisible()
	}
}

// PageDown moves a viewport height down, stopping at the last line
func (c *Content) PageDown() {
	c.cursor = min(c.cursor+c.page(), c.maxCursor())
	c.EnsureCursorVisible()
}

// PageUp moves a viewport height up, stopping at the first line
func (c *Content) PageUp() {
	c.cursor = max(c.cursor-c.page(), 0)
	c.EnsureCursorVisible()
}

// EnsureCursorVisible scrolls just enough to bring the cursor into view
func (c *Content) EnsureCursorVisible() {
	if c.cursor < c.scroll {
		c.scroll = c.cursor
	} else if c.viewportHeight > 0 && c.cursor >= c.scroll+c.viewportHeight {
		c.scroll = c.cursor - c.viewportHeight + 1
	}
}

// StartSelection anchors a selection at the cursor
func (c *Content) StartSelection() {
	c.anchor = c.cursor
	c.hasAnchor = true
}

// ClearSelection drops the anchor
func (c *Content) ClearSelection() {
	c.anchor = 0
	c.hasAnchor = false
}

// Anchor returns the selection anchor, if any
func (c *Content) Anchor() (int, bool) {
	return c.anchor, c.hasAnchor
}

// SelectionRange returns the selected lines, start <= end, both inclusive
func (c *Content) SelectionRange() (start, end int, ok bool) {
	if !c.hasAnchor {
		return 0, 0, false
	}
	return min(c.anchor, c.cursor), max(c.anchor, c.cursor), true
}

// InSelection reports whether line is part of the selection
func (c *Content) InSelection(line int) bool {
	start, end, ok := c.SelectionRange()
	return ok && line >= start && line <= end
}

// SelectedText joins the selected lines. An end past the last line is
// clamped; a start past it yields nothing.
func (c *Content) SelectedText() (string, bool) {
	start, end, ok := c.SelectionRange()
	if !ok || !c.loaded || start >= len(c.lines) {
		return "", false
	}
	end = min(end, len(c.lines)-1)
	return strings.Join(c.lines[start:end+1], "\n"), true
}

// VisibleLines returns the lines inside the viewport and the index of the
// first one
func (c *Content) VisibleLines() ([]string, int) {
	if c.scroll >= len(c.lines) {
		return nil, c.scroll
	}
	end := len(c.lines)
	if c.viewportHeight > 0 {
		end = min(end, c.scroll+c.viewportHeight)
	}
	return c.lines[c.scroll:end], c.scroll
}

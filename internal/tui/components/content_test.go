package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoaded(text string, height int) *Content {
	c := NewContent()
	c.LoadText(text)
	c.SetViewportHeight(height)
	return c
}

func TestContentLoadText(t *testing.T) {
	c := newLoaded("a\tb\nc\n", 3)
	assert.True(t, c.Loaded())
	assert.Equal(t, "a    b\nc\n", c.Text())
	assert.Equal(t, []string{"a    b", "c"}, c.Lines())

	c.CursorDown()
	c.StartSelection()
	c.LoadText("x\r\ny")
	assert.Equal(t, 0, c.Cursor())
	assert.Equal(t, 0, c.Scroll())
	_, ok := c.Anchor()
	assert.False(t, ok)
	assert.Equal(t, []string{"x", "y"}, c.Lines())
}

func TestContentEmptyBuffer(t *testing.T) {
	c := newLoaded("", 5)
	assert.Equal(t, 0, c.LineCount())

	c.CursorDown()
	c.CursorUp()
	c.PageDown()
	c.PageUp()
	assert.Equal(t, 0, c.Cursor())
	assert.Equal(t, 0, c.Scroll())

	c.StartSelection()
	_, ok := c.SelectedText()
	assert.False(t, ok)
}

func TestContentScrollFollowsCursor(t *testing.T) {
	c := newLoaded("L0\nL1\nL2\nL3\nL4", 3)

	c.CursorDown()
	c.CursorDown()
	c.CursorDown()
	assert.Equal(t, 3, c.Cursor())
	assert.Equal(t, 1, c.Scroll())

	c.CursorDown()
	c.CursorDown()
	assert.Equal(t, 4, c.Cursor(), "cursor stops at the last line")
	assert.Equal(t, 2, c.Scroll())

	for i := 0; i < 4; i++ {
		c.CursorUp()
	}
	assert.Equal(t, 0, c.Cursor())
	assert.Equal(t, 0, c.Scroll())
}

func TestContentCursorInvariant(t *testing.T) {
	c := newLoaded("0\n1\n2\n3\n4\n5\n6\n7\n8\n9", 4)
	moves := []func(){c.CursorDown, c.CursorDown, c.PageDown, c.CursorUp, c.PageDown, c.PageDown, c.PageUp, c.CursorUp, c.PageUp, c.PageUp}

	for i, move := range moves {
		move()
		require.GreaterOrEqual(t, c.Cursor(), 0, "move %d", i)
		require.Less(t, c.Cursor(), c.LineCount(), "move %d", i)
		require.LessOrEqual(t, c.Scroll(), c.Cursor(), "move %d", i)
		require.LessOrEqual(t, c.Cursor(), c.Scroll()+c.ViewportHeight()-1, "move %d", i)
	}
}

func TestContentPaging(t *testing.T) {
	c := newLoaded("0\n1\n2\n3\n4\n5\n6", 3)

	c.PageDown()
	assert.Equal(t, 3, c.Cursor())
	c.PageDown()
	assert.Equal(t, 6, c.Cursor())
	c.PageDown()
	assert.Equal(t, 6, c.Cursor())
	assert.Equal(t, 4, c.Scroll())

	c.PageUp()
	assert.Equal(t, 3, c.Cursor())
	c.PageUp()
	c.PageUp()
	assert.Equal(t, 0, c.Cursor())
	assert.Equal(t, 0, c.Scroll())
}

func TestContentPagingWithoutViewport(t *testing.T) {
	c := newLoaded("0\n1\n2", 0)
	c.PageDown()
	assert.Equal(t, 1, c.Cursor(), "a zero height pages by one line")
}

func TestContentSelection(t *testing.T) {
	c := newLoaded("L0\nL1\nL2\nL3", 10)

	_, _, ok := c.SelectionRange()
	assert.False(t, ok)

	c.CursorDown()
	c.CursorDown()
	c.StartSelection()
	c.CursorUp()
	c.CursorUp()

	start, end, ok := c.SelectionRange()
	require.True(t, ok)
	assert.Equal(t, 0, start)
	assert.Equal(t, 2, end)
	assert.True(t, c.InSelection(1))
	assert.False(t, c.InSelection(3))

	text, ok := c.SelectedText()
	require.True(t, ok)
	assert.Equal(t, "L0\nL1\nL2", text)

	c.ClearSelection()
	assert.False(t, c.InSelection(1))
}

func TestContentSelectedTextClampsShrunkBuffer(t *testing.T) {
	c := newLoaded("L0\nL1\nL2\nL3", 10)
	c.CursorDown()
	c.StartSelection()
	c.CursorDown()
	c.CursorDown()

	c.lines = c.lines[:2]
	text, ok := c.SelectedText()
	require.True(t, ok)
	assert.Equal(t, "L1", text)

	c.lines = c.lines[:1]
	_, ok = c.SelectedText()
	assert.False(t, ok)
}

func TestContentVisibleLines(t *testing.T) {
	c := newLoaded("L0\nL1\nL2\nL3\nL4", 2)
	c.CursorDown()
	c.CursorDown()

	lines, first := c.VisibleLines()
	assert.Equal(t, 1, first)
	assert.Equal(t, []string{"L1", "L2"}, lines)

	c.SetViewportHeight(-3)
	assert.Equal(t, 0, c.ViewportHeight())
}

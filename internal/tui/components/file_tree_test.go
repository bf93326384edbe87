package components

import (
	"path/filepath"
	"testing"

	"jigolo/internal/discovery"
	"jigolo/internal/tui/common"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoots() []discovery.SourceRoot {
	a := filepath.FromSlash("/work/a")
	b := filepath.FromSlash("/work/b")
	return []discovery.SourceRoot{
		{Path: a, Files: []string{
			filepath.Join(a, "CLAUDE.md"),
			filepath.Join(a, "svc", "CLAUDE.md"),
		}},
		{Path: b, Files: []string{
			filepath.Join(b, "CLAUDE.md"),
		}},
	}
}

func TestNewFileTree(t *testing.T) {
	tree := NewFileTree(testRoots())

	require.Len(t, tree.Roots, 2)
	require.Len(t, tree.VisibleRows, 5)
	assert.True(t, tree.Roots[0].IsOpen)
	assert.Equal(t, "CLAUDE.md", tree.Roots[0].Children[0].Name)
	assert.Equal(t, filepath.Join("svc", "CLAUDE.md"), tree.Roots[0].Children[1].Name)
	assert.True(t, tree.Selected().IsRoot())
}

func TestFileTreeEmpty(t *testing.T) {
	tree := NewFileTree(nil)
	assert.True(t, tree.Selected().IsZero())

	tree.MoveDown()
	tree.Left()
	tree.Right()
	tree.Toggle()
	assert.Equal(t, 0, tree.Cursor)

	_, ok := tree.FirstFile()
	assert.False(t, ok)
	assert.Nil(t, tree.Lines(20, lipgloss.NewStyle()))
}

func TestFileTreeNavigation(t *testing.T) {
	roots := testRoots()
	tree := NewFileTree(roots)

	id, ok := tree.FirstFile()
	require.True(t, ok)
	assert.Equal(t, common.FileID(roots[0].Path, roots[0].Files[0]), id)

	require.True(t, tree.Select(id))
	assert.Equal(t, 1, tree.Cursor)

	tree.MoveDown()
	assert.Equal(t, roots[0].Files[1], tree.Selected().File())

	// Left from a file goes to its root, then collapses it
	tree.Left()
	assert.Equal(t, common.RootID(roots[0].Path), tree.Selected())
	tree.Left()
	assert.False(t, tree.Roots[0].IsOpen)
	assert.Len(t, tree.VisibleRows, 3)

	// Right expands, then enters the first child
	tree.Right()
	assert.True(t, tree.Roots[0].IsOpen)
	assert.True(t, tree.Selected().IsRoot())
	tree.Right()
	assert.Equal(t, id, tree.Selected())

	// Right on a file does nothing
	tree.Right()
	assert.Equal(t, id, tree.Selected())

	tree.MoveUp()
	tree.MoveUp()
	assert.Equal(t, 0, tree.Cursor)
}

func TestFileTreeToggleRootsOnly(t *testing.T) {
	tree := NewFileTree(testRoots())

	tree.Toggle()
	assert.False(t, tree.Roots[0].IsOpen)
	assert.Len(t, tree.VisibleRows, 3)

	tree.MoveDown()
	tree.MoveDown()
	assert.True(t, tree.Selected().IsFile())
	tree.Toggle()
	assert.Len(t, tree.VisibleRows, 3)
}

func TestFileTreeSelectOpensRoot(t *testing.T) {
	roots := testRoots()
	tree := NewFileTree(roots)
	tree.Toggle()

	assert.True(t, tree.Select(common.FileID(roots[0].Path, roots[0].Files[1])))
	assert.True(t, tree.Roots[0].IsOpen)
	assert.Equal(t, 2, tree.Cursor)

	assert.False(t, tree.Select(common.RootID("/missing")))
}

func TestFileTreeScrolling(t *testing.T) {
	tree := NewFileTree(testRoots())
	tree.SetHeight(2)

	for i := 0; i < 4; i++ {
		tree.MoveDown()
	}
	assert.Equal(t, 4, tree.Cursor)
	assert.Equal(t, 3, tree.Offset)
	assert.Len(t, tree.Lines(40, lipgloss.NewStyle()), 2)
}

func TestFileTreeLines(t *testing.T) {
	tree := NewFileTree(testRoots())
	lines := tree.Lines(40, lipgloss.NewStyle())

	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "▼ ")
	assert.Contains(t, lines[1], "  CLAUDE.md")

	tree.Toggle()
	lines = tree.Lines(40, lipgloss.NewStyle())
	assert.Contains(t, lines[0], "▶ ")
}

package components

import (
	"path/filepath"
	"strings"

	"jigolo/internal/discovery"
	"jigolo/internal/tui/common"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// TreeNode represents a node in the file tree
type TreeNode struct {
	ID       common.NodeID
	Name     string
	IsOpen   bool
	Children []*TreeNode
	Parent   *TreeNode
	Level    int
}

// IsRoot reports whether the node is a root directory
func (n *TreeNode) IsRoot() bool {
	return n.ID.IsRoot()
}

// FileTree displays the discovered roots, each with its files below it.
// Roots start open.
type FileTree struct {
	Roots       []*TreeNode
	Cursor      int
	VisibleRows []*TreeNode
	Height      int
	Offset      int // For scrolling
}

// NewFileTree builds the tree from discovered roots
func NewFileTree(roots []discovery.SourceRoot) *FileTree {
	tree := &FileTree{}

	for _, root := range roots {
		node := &TreeNode{
			ID:     common.RootID(root.Path),
			Name:   root.Path,
			IsOpen: true,
			Level:  0,
		}
		for _, file := range root.Files {
			name, err := filepath.Rel(root.Path, file)
			if err != nil || strings.HasPrefix(name, "..") {
				name = file
			}
			node.Children = append(node.Children, &TreeNode{
				ID:     common.FileID(root.Path, file),
				Name:   name,
				Parent: node,
				Level:  1,
			})
		}
		tree.Roots = append(tree.Roots, node)
	}

	tree.UpdateVisibleRows()
	return tree
}

// UpdateVisibleRows updates the list of visible rows based on which nodes are open
func (f *FileTree) UpdateVisibleRows() {
	f.VisibleRows = f.VisibleRows[:0]
	for _, root := range f.Roots {
		f.addVisibleNode(root)
	}

	// Adjust cursor if it's out of bounds
	if f.Cursor >= len(f.VisibleRows) {
		f.Cursor = max(0, len(f.VisibleRows)-1)
	}
}

// addVisibleNode recursively adds visible nodes to the VisibleRows slice
func (f *FileTree) addVisibleNode(node *TreeNode) {
	f.VisibleRows = append(f.VisibleRows, node)
	if node.IsOpen {
		for _, child := range node.Children {
			f.addVisibleNode(child)
		}
	}
}

func (f *FileTree) current() *TreeNode {
	if f.Cursor < 0 || f.Cursor >= len(f.VisibleRows) {
		return nil
	}
	return f.VisibleRows[f.Cursor]
}

// Selected returns the node under the cursor, or the zero NodeID for an empty tree
func (f *FileTree) Selected() common.NodeID {
	if node := f.current(); node != nil {
		return node.ID
	}
	return common.NodeID{}
}

// FirstFile returns the first file of the first root that has one
func (f *FileTree) FirstFile() (common.NodeID, bool) {
	for _, root := range f.Roots {
		if len(root.Children) > 0 {
			return root.Children[0].ID, true
		}
	}
	return common.NodeID{}, false
}

// Select moves the cursor to id, opening its root if needed
func (f *FileTree) Select(id common.NodeID) bool {
	for _, root := range f.Roots {
		if root.ID == id {
			return f.moveTo(root)
		}
		for _, child := range root.Children {
			if child.ID == id {
				if !root.IsOpen {
					root.IsOpen = true
					f.UpdateVisibleRows()
				}
				return f.moveTo(child)
			}
		}
	}
	return false
}

func (f *FileTree) moveTo(node *TreeNode) bool {
	for i, row := range f.VisibleRows {
		if row == node {
			f.Cursor = i
			f.EnsureCursorVisible()
			return true
		}
	}
	return false
}

// MoveUp moves the cursor up one row
func (f *FileTree) MoveUp() {
	if f.Cursor > 0 {
		f.Cursor--
	}
	f.EnsureCursorVisible()
}

// MoveDown moves the cursor down one row
func (f *FileTree) MoveDown() {
	if f.Cursor < len(f.VisibleRows)-1 {
		f.Cursor++
	}
	f.EnsureCursorVisible()
}

// Left closes an open root, otherwise moves to the parent
func (f *FileTree) Left() {
	node := f.current()
	if node == nil {
		return
	}
	if node.IsRoot() && node.IsOpen {
		f.Toggle()
		return
	}
	f.MoveToParent()
}

// Right opens a closed root, otherwise moves to its first child
func (f *FileTree) Right() {
	node := f.current()
	if node == nil || !node.IsRoot() {
		return
	}
	if !node.IsOpen {
		f.Toggle()
		return
	}
	if len(node.Children) > 0 {
		f.MoveDown()
	}
}

// Toggle expands or collapses the root at the cursor position
func (f *FileTree) Toggle() {
	node := f.current()
	if node == nil || !node.IsRoot() {
		return
	}
	node.IsOpen = !node.IsOpen
	f.UpdateVisibleRows()
	f.EnsureCursorVisible()
}

// MoveToParent moves the cursor to the parent of the current node
func (f *FileTree) MoveToParent() {
	node := f.current()
	if node == nil || node.Parent == nil {
		return
	}
	f.moveTo(node.Parent)
}

// EnsureCursorVisible makes sure the cursor is visible by adjusting the scroll offset
func (f *FileTree) EnsureCursorVisible() {
	if f.Height <= 0 {
		return
	}

	if f.Cursor < f.Offset {
		f.Offset = f.Cursor
	}
	if f.Cursor >= f.Offset+f.Height {
		f.Offset = f.Cursor - f.Height + 1
	}

	maxOffset := max(0, len(f.VisibleRows)-f.Height)
	if f.Offset > maxOffset {
		f.Offset = maxOffset
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

// SetHeight records the number of rows the pane can show
func (f *FileTree) SetHeight(h int) {
	f.Height = max(0, h)
	f.EnsureCursorVisible()
}

// Lines renders the visible window of the tree, one row per line, truncated
// to width. The cursor row is drawn with cursor.
func (f *FileTree) Lines(width int, cursor lipgloss.Style) []string {
	if len(f.VisibleRows) == 0 {
		return nil
	}

	end := len(f.VisibleRows)
	if f.Height > 0 {
		end = min(end, f.Offset+f.Height)
	}

	lines := make([]string, 0, end-f.Offset)
	for i := f.Offset; i < end; i++ {
		node := f.VisibleRows[i]

		var label string
		switch {
		case node.IsRoot() && node.IsOpen:
			label = "▼ " + node.Name
		case node.IsRoot():
			label = "▶ " + node.Name
		default:
			label = strings.Repeat("  ", node.Level) + node.Name
		}

		label = ansi.Truncate(label, width, "…")
		if i == f.Cursor {
			if pad := width - ansi.StringWidth(label); pad > 0 {
				label += strings.Repeat(" ", pad)
			}
			label = cursor.Render(label)
		}
		lines = append(lines, label)
	}
	return lines
}

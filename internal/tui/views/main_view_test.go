package views

import (
	"strings"
	"testing"

	"jigolo/internal/discovery"
	"jigolo/internal/library"
	"jigolo/internal/tui/components"
	"jigolo/internal/tui/styles"
	"jigolo/pkg/types"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock model for testing
type mockModel struct {
	mode    types.Mode
	pane    types.Pane
	tree    *components.FileTree
	content *components.Content
	lib     *components.LibraryView
	input   string
	status  *components.StatusBar
}

func newMockModel() *mockModel {
	return &mockModel{
		tree: components.NewFileTree([]discovery.SourceRoot{
			{Path: "/proj", Files: []string{"/proj/CLAUDE.md"}},
		}),
		content: components.NewContent(),
		status:  components.NewStatusBar(),
	}
}

func (m *mockModel) Mode() types.Mode                     { return m.mode }
func (m *mockModel) ActivePane() types.Pane               { return m.pane }
func (m *mockModel) Size() (int, int)                     { return 80, 24 }
func (m *mockModel) Tree() *components.FileTree           { return m.tree }
func (m *mockModel) TreeTitle() string                    { return "CLAUDE.md files" }
func (m *mockModel) Content() *components.Content         { return m.content }
func (m *mockModel) LibraryView() *components.LibraryView { return m.lib }
func (m *mockModel) Preview() *components.Preview         { return components.NewPreview(false, "default") }
func (m *mockModel) InputBuffer() string                  { return m.input }
func (m *mockModel) StatusBar() *components.StatusBar     { return m.status }
func (m *mockModel) Keys() types.KeyMap                   { return types.DefaultKeyMap() }
func (m *mockModel) Theme() *styles.Theme                 { return styles.NewTheme("default") }

func render(m *mockModel) string {
	l := ComputeLayout(80, 24, ShowsBar(m))
	m.content.SetViewportHeight(l.InteriorHeight())
	return ansi.Strip(RenderMainView(m, l))
}

func TestComputeLayout(t *testing.T) {
	l := ComputeLayout(100, 30, false)
	assert.Equal(t, 29, l.MainHeight)
	assert.Equal(t, 30, l.TreeWidth)
	assert.Equal(t, 70, l.RightWidth)
	assert.Equal(t, 27, l.InteriorHeight())

	l = ComputeLayout(100, 30, true)
	assert.Equal(t, 26, l.MainHeight)
	assert.Equal(t, 24, l.InteriorHeight())

	l = ComputeLayout(10, 2, true)
	assert.Equal(t, 0, l.MainHeight)
	assert.Equal(t, 0, l.InteriorHeight())
}

func TestRenderMainView(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(m *mockModel)
		contains []string // Strings that should be present in the output
		excludes []string // Strings that should not be present in the output
	}{
		{
			name:     "placeholder before load",
			setup:    func(m *mockModel) {},
			contains: []string{"CLAUDE.md files", "Content", "Select a file to view its content.", "Tab Content", "Enter Open"},
			excludes: []string{"Status"},
		},
		{
			name: "content pane help",
			setup: func(m *mockModel) {
				m.content.LoadText("first line\nsecond line")
				m.pane = types.Content
			},
			contains: []string{"first line", "second line", "Tab Files", "v Select", "L Library"},
		},
		{
			name: "visual selection title",
			setup: func(m *mockModel) {
				m.content.LoadText("a\nb\nc")
				m.pane = types.Content
				m.content.StartSelection()
				m.content.CursorDown()
				m.mode = types.VisualSelect
			},
			contains: []string{"Content [VISUAL: lines 1-2]", "j/k Extend", "s Save", "Esc Cancel"},
		},
		{
			name: "title input bar",
			setup: func(m *mockModel) {
				m.content.LoadText("a")
				m.content.StartSelection()
				m.mode = types.TitleInput
				m.input = "my title"
			},
			contains: []string{"Snippet title", "my title", "Enter Save"},
		},
		{
			name: "input bar shows validation error",
			setup: func(m *mockModel) {
				m.mode = types.RenameInput
				m.lib = components.NewLibraryView(&library.Library{Snippets: []library.Snippet{{Title: "A"}}})
				m.status.SetError("Title cannot be empty.")
			},
			contains: []string{"Rename snippet (Title cannot be empty.)"},
		},
		{
			name: "status message",
			setup: func(m *mockModel) {
				m.status.SetText("Snippet saved!")
			},
			contains: []string{"Status", "Snippet saved!"},
		},
		{
			name: "empty library",
			setup: func(m *mockModel) {
				m.mode = types.LibraryBrowse
				m.lib = components.NewLibraryView(nil)
			},
			contains: []string{"Library (empty)", "No snippets saved. Use v to select, s to save."},
			excludes: []string{"Select a file"},
		},
		{
			name: "library with preview",
			setup: func(m *mockModel) {
				m.mode = types.LibraryBrowse
				m.lib = components.NewLibraryView(&library.Library{Snippets: []library.Snippet{
					{Title: "Rules", Content: "always test"},
					{Title: "Style", Content: "gofmt"},
				}})
			},
			contains: []string{"Library (2 snippets)", "Rules", "Style", "Preview: Rules", "always test", "r Rename", "y Copy"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMockModel()
			tt.setup(m)
			output := render(m)

			for _, s := range tt.contains {
				assert.Contains(t, output, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, output, s)
			}
		})
	}
}

func TestRenderMainViewSize(t *testing.T) {
	m := newMockModel()
	m.status.SetText("hello")
	output := render(m)

	lines := strings.Split(output, "\n")
	require.Len(t, lines, 24)
	for i, line := range lines[:23] {
		assert.Equal(t, 80, ansi.StringWidth(line), "line %d", i)
	}
}

func TestRenderMainViewNoSize(t *testing.T) {
	m := newMockModel()
	assert.Empty(t, RenderMainView(m, ComputeLayout(0, 0, false)))
}

func TestBox(t *testing.T) {
	theme := styles.NewTheme("default")
	box := ansi.Strip(Box("Title that is far too long", []string{"one", "two", "three"}, 10, 4, theme, false))

	lines := strings.Split(box, "\n")
	require.Len(t, lines, 4)
	for _, line := range lines {
		assert.Equal(t, 10, ansi.StringWidth(line))
	}
	assert.True(t, strings.HasPrefix(lines[0], "╭Title"))
	assert.Equal(t, "│one     │", lines[1])
	assert.Equal(t, "│two     │", lines[2])
	assert.Equal(t, "╰────────╯", lines[3])

	assert.Empty(t, Box("x", nil, 1, 1, theme, false))
}

package tui

import (
	"fmt"
	"os"

	"jigolo/internal/discovery"
	"jigolo/internal/errors"
	"jigolo/internal/library"
	"jigolo/internal/log"
	"jigolo/internal/tui/common"
	"jigolo/internal/tui/components"
	"jigolo/internal/tui/styles"
	"jigolo/internal/tui/views"
	"jigolo/pkg/types"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Options configures a session. Everything the session needs from the
// environment is passed in here.
type Options struct {
	Roots []discovery.SourceRoot

	// Store persists snippets. Nil means the library location could not be
	// determined.
	Store library.Store

	ReadFile  func(path string) ([]byte, error)
	Clipboard func(text string) error

	Theme           string
	MarkdownPreview bool
	PatternLabel    string
	Keys            *types.KeyMap
}

// Model is the interactive session: the tree of discovered files, the
// content buffer and, while browsing, the snippet library.
type Model struct {
	mode   types.Mode
	pane   types.Pane
	width  int
	height int

	tree    *components.FileTree
	content *components.Content
	lib     *components.LibraryView
	preview *components.Preview
	status  *components.StatusBar
	input   []rune

	// loaded is the file whose text is in the content buffer
	loaded common.NodeID

	store     library.Store
	readFile  func(string) ([]byte, error)
	clipboard func(string) error

	keys      types.KeyMap
	theme     *styles.Theme
	treeTitle string
	quitting  bool
}

// New creates a session over roots and loads the first file, if any
func New(opts Options) *Model {
	m := &Model{
		mode:      types.Normal,
		pane:      types.FileList,
		tree:      components.NewFileTree(opts.Roots),
		content:   components.NewContent(),
		preview:   components.NewPreview(opts.MarkdownPreview, opts.Theme),
		status:    components.NewStatusBar(),
		store:     opts.Store,
		readFile:  opts.ReadFile,
		clipboard: opts.Clipboard,
		keys:      types.DefaultKeyMap(),
		theme:     styles.NewTheme(opts.Theme),
		treeTitle: opts.PatternLabel + " files",
	}
	if opts.Keys != nil {
		m.keys = *opts.Keys
	}
	if opts.PatternLabel == "" {
		m.treeTitle = "CLAUDE.md files"
	}
	if m.readFile == nil {
		m.readFile = os.ReadFile
	}
	if m.clipboard == nil {
		m.clipboard = clipboard.WriteAll
	}

	if id, ok := m.tree.FirstFile(); ok {
		m.tree.Select(id)
	}
	m.loadSelected()
	return m
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// View implements tea.Model. It lays out the frame and records the pane
// heights before the next key is handled.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	l := views.ComputeLayout(m.width, m.height, views.ShowsBar(m))
	m.tree.SetHeight(l.InteriorHeight())
	if !views.ShowsLibrary(m) {
		m.content.SetViewportHeight(l.InteriorHeight())
	}
	return views.RenderMainView(m, l)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status.Clear()

	if key.Matches(msg, m.keys.ForceQuit) {
		return m.quit()
	}

	switch m.mode {
	case types.VisualSelect:
		m.handleVisualKeys(msg)
	case types.TitleInput:
		m.handleTitleKeys(msg)
	case types.LibraryBrowse:
		m.handleLibraryKeys(msg)
	case types.RenameInput:
		m.handleRenameKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
	return m, nil
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	log.Debug("session exit requested")
	m.quitting = true
	return m, tea.Quit
}

func (m *Model) setMode(mode types.Mode) {
	if m.mode == mode {
		return
	}
	log.LogWithFields(log.F("from", m.mode.String()), log.F("to", mode.String())).Debug("mode change")
	m.mode = mode
}

func (m *Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.SwitchPane):
		m.pane = m.pane.Toggle()
		return m, nil
	}

	if m.pane == types.FileList {
		m.handleTreeKeys(msg)
	} else {
		m.handleContentKeys(msg)
	}
	return m, nil
}

func (m *Model) handleTreeKeys(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Open):
		m.selectTreeItem()
	case key.Matches(msg, m.keys.Down):
		m.tree.MoveDown()
		m.loadSelected()
	case key.Matches(msg, m.keys.Up):
		m.tree.MoveUp()
		m.loadSelected()
	case key.Matches(msg, m.keys.Left):
		m.tree.Left()
		m.loadSelected()
	case key.Matches(msg, m.keys.Right):
		m.tree.Right()
		m.loadSelected()
	}
}

func (m *Model) handleContentKeys(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Down):
		m.content.CursorDown()
	case key.Matches(msg, m.keys.Up):
		m.content.CursorUp()
	case key.Matches(msg, m.keys.PageDown):
		m.content.PageDown()
	case key.Matches(msg, m.keys.PageUp):
		m.content.PageUp()
	case key.Matches(msg, m.keys.Visual):
		m.content.StartSelection()
		m.setMode(types.VisualSelect)
	case key.Matches(msg, m.keys.Library):
		m.enterLibrary()
	}
}

func (m *Model) handleVisualKeys(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.content.ClearSelection()
		m.setMode(types.Normal)
	case key.Matches(msg, m.keys.Down):
		m.content.CursorDown()
	case key.Matches(msg, m.keys.Up):
		m.content.CursorUp()
	case key.Matches(msg, m.keys.Save):
		m.input = m.input[:0]
		m.setMode(types.TitleInput)
	}
}

func (m *Model) handleTitleKeys(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.input = m.input[:0]
		m.setMode(types.VisualSelect)
	case key.Matches(msg, m.keys.Confirm):
		m.saveSnippet()
	default:
		m.editInput(msg)
	}
}

func (m *Model) handleLibraryKeys(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.lib = nil
		m.setMode(types.Normal)
	case key.Matches(msg, m.keys.Down):
		m.lib.MoveDown()
	case key.Matches(msg, m.keys.Up):
		m.lib.MoveUp()
	case key.Matches(msg, m.keys.Delete):
		m.deleteSnippet()
	case key.Matches(msg, m.keys.Yank):
		m.copySnippet()
	case key.Matches(msg, m.keys.Rename):
		if snip, ok := m.lib.SelectedSnippet(); ok {
			m.input = []rune(snip.Title)
			m.setMode(types.RenameInput)
		}
	}
}

func (m *Model) handleRenameKeys(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.input = m.input[:0]
		m.setMode(types.LibraryBrowse)
	case key.Matches(msg, m.keys.Confirm):
		m.renameSnippet()
	default:
		m.editInput(msg)
	}
}

// editInput applies a key to the title buffer
func (m *Model) editInput(msg tea.KeyMsg) {
	if key.Matches(msg, m.keys.Backspace) {
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
		return
	}
	switch msg.Type {
	case tea.KeySpace:
		m.input = append(m.input, ' ')
	case tea.KeyRunes:
		m.input = append(m.input, msg.Runes...)
	}
}

// selectTreeItem toggles a root or loads a file
func (m *Model) selectTreeItem() {
	id := m.tree.Selected()
	switch {
	case id.IsRoot():
		m.tree.Toggle()
	case id.IsFile():
		m.loadFile(id)
	}
}

func (m *Model) loadSelected() {
	if id := m.tree.Selected(); id.IsFile() {
		m.loadFile(id)
	}
}

// loadFile reads id into the content buffer. A read failure is shown as the
// buffer text.
func (m *Model) loadFile(id common.NodeID) {
	path := id.File()
	data, err := m.readFile(path)
	if err != nil {
		log.LogWithError(errors.NewFileError("read failed", path, errors.FileReadFailed, err)).Warn("cannot load file")
		m.content.LoadText(fmt.Sprintf("Error reading %s: %v", path, err))
	} else {
		m.content.LoadText(string(data))
	}
	m.loaded = id
}

// Accessors used by the views and tests

func (m *Model) Mode() types.Mode                     { return m.mode }
func (m *Model) ActivePane() types.Pane               { return m.pane }
func (m *Model) Size() (int, int)                     { return m.width, m.height }
func (m *Model) Tree() *components.FileTree           { return m.tree }
func (m *Model) TreeTitle() string                    { return m.treeTitle }
func (m *Model) Content() *components.Content         { return m.content }
func (m *Model) LibraryView() *components.LibraryView { return m.lib }
func (m *Model) Preview() *components.Preview         { return m.preview }
func (m *Model) InputBuffer() string                  { return string(m.input) }
func (m *Model) StatusBar() *components.StatusBar     { return m.status }
func (m *Model) Keys() types.KeyMap                   { return m.keys }
func (m *Model) Theme() *styles.Theme                 { return m.theme }

// Loaded returns the node whose file is in the content buffer
func (m *Model) Loaded() common.NodeID {
	return m.loaded
}

// Quitting reports whether exit has been requested
func (m *Model) Quitting() bool {
	return m.quitting
}

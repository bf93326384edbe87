package testutils

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

// CreateTestFilesWithContent creates test files with specific content.
// Names may contain slashes; parent directories are created as needed.
func CreateTestFilesWithContent(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

// CreateTestFilesWithDefault creates a small project layout with context files
func CreateTestFilesWithDefault(t *testing.T, dir string) {
	t.Helper()
	files := map[string]string{
		"CLAUDE.md":              "# Project\n\nL1\nL2\nL3",
		"service/CLAUDE.md":      "# Service\n\tindented",
		"node_modules/CLAUDE.md": "never listed",
		"README.md":              "not a context file",
	}
	CreateTestFilesWithContent(t, dir, files)
}

// StripANSI removes ANSI escape sequences from a string
func StripANSI(str string) string {
	return ansi.Strip(str)
}

// Key builds the key message bubbletea delivers for a named key such as
// "enter", "esc", "tab" or "ctrl+c", or for a single printable rune.
func Key(name string) tea.KeyMsg {
	switch name {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "pgdown":
		return tea.KeyMsg{Type: tea.KeyPgDown}
	case "pgup":
		return tea.KeyMsg{Type: tea.KeyPgUp}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
}

// Type returns one key message per rune of s
func Type(s string) []tea.KeyMsg {
	msgs := make([]tea.KeyMsg, 0, len(s))
	for _, r := range s {
		msgs = append(msgs, Key(string(r)))
	}
	return msgs
}

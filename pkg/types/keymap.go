package types

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for every mode.
// It lives in pkg/types so the model and its tests share one definition.
type KeyMap struct {
	// General
	Quit       key.Binding
	ForceQuit  key.Binding
	SwitchPane key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Open     key.Binding

	// Selection & Library
	Visual  key.Binding
	Library key.Binding
	Save    key.Binding
	Rename  key.Binding
	Delete  key.Binding
	Yank    key.Binding
	Back    key.Binding

	// Input Mode Specific
	Confirm   key.Binding
	Cancel    key.Binding
	Backspace key.Binding
}

// DefaultKeyMap returns the vim-flavoured default bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "Quit")),
		ForceQuit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "Quit")),
		SwitchPane: key.NewBinding(key.WithKeys("tab"), key.WithHelp("Tab", "Switch")),

		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "Up")),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "Down")),
		Left:     key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "Collapse")),
		Right:    key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "Expand")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("PgUp", "Page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("PgDn", "Page down")),
		Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Open")),

		Visual:  key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "Select")),
		Library: key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "Library")),
		Save:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "Save")),
		Rename:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "Rename")),
		Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "Delete")),
		Yank:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "Copy")),
		Back:    key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("Esc", "Back")),

		Confirm:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Save")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "Cancel")),
		Backspace: key.NewBinding(key.WithKeys("backspace"), key.WithHelp("Backspace", "Delete char")),
	}
}

// relabel returns a copy of b with different help text
func relabel(b key.Binding, keys, desc string) key.Binding {
	b.SetHelp(keys, desc)
	return b
}

// HelpBindings returns the legend shown in the help bar for a mode and,
// in Normal mode, the active pane.
func (k KeyMap) HelpBindings(mode Mode, pane Pane) []key.Binding {
	upDown := func(desc string) key.Binding {
		return key.NewBinding(key.WithKeys("j", "k"), key.WithHelp("j/k", desc))
	}

	switch mode {
	case VisualSelect:
		return []key.Binding{upDown("Extend"), k.Save, k.Cancel}
	case TitleInput, RenameInput:
		return []key.Binding{k.Confirm, k.Cancel}
	case LibraryBrowse:
		return []key.Binding{upDown("Navigate"), k.Rename, k.Delete, k.Yank, k.Back}
	}

	if pane == Content {
		return []key.Binding{
			k.Quit,
			relabel(k.SwitchPane, "Tab", "Files"),
			upDown("Scroll"),
			k.Visual,
			k.Library,
		}
	}
	return []key.Binding{
		k.Quit,
		relabel(k.SwitchPane, "Tab", "Content"),
		upDown("Navigate"),
		k.Open,
	}
}

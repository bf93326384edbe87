package types

// Mode represents the current mode of the TUI. Exactly one is active and it
// decides which key bindings apply.
type Mode int

const (
	// Normal is the default mode for tree navigation and scrolling
	Normal Mode = iota
	// VisualSelect extends a line selection from the anchor to the cursor
	VisualSelect
	// TitleInput collects the title of a snippet about to be saved
	TitleInput
	// LibraryBrowse lists saved snippets with a preview
	LibraryBrowse
	// RenameInput collects the new title of the selected snippet
	RenameInput
)

func (m Mode) String() string {
	switch m {
	case Normal:
		return "NORMAL"
	case VisualSelect:
		return "VISUAL"
	case TitleInput:
		return "TITLE"
	case LibraryBrowse:
		return "LIBRARY"
	case RenameInput:
		return "RENAME"
	default:
		return "UNKNOWN"
	}
}

// IsInput reports whether the mode edits the title buffer
func (m Mode) IsInput() bool {
	return m == TitleInput || m == RenameInput
}

// Pane is the pane receiving navigation keys in Normal mode
type Pane int

const (
	FileList Pane = iota
	Content
)

func (p Pane) String() string {
	if p == Content {
		return "content"
	}
	return "files"
}

// Toggle returns the other pane
func (p Pane) Toggle() Pane {
	if p == Content {
		return FileList
	}
	return Content
}

package tui

import (
	"strings"

	"jigolo/internal/errors"
	"jigolo/internal/library"
	"jigolo/internal/log"
	"jigolo/internal/tui/components"
	"jigolo/pkg/types"
)

// Snippet library operations. Every write goes to the store and the
// browse view is reloaded from it afterwards.

// resetSelection returns to Normal with no selection and an empty title
func (m *Model) resetSelection() {
	m.content.ClearSelection()
	m.input = m.input[:0]
	m.setMode(types.Normal)
}

// saveSnippet appends the selected lines under the typed title
func (m *Model) saveSnippet() {
	if m.store == nil {
		m.status.SetError(errors.ErrLibraryPath.Error())
		m.resetSelection()
		return
	}

	title := strings.TrimSpace(string(m.input))
	if title == "" {
		m.status.SetError(errors.ErrEmptyTitle.Error())
		return
	}

	text, ok := m.content.SelectedText()
	if !ok {
		m.status.SetError(errors.ErrNoSelection.Error())
		m.resetSelection()
		return
	}

	snip := library.Snippet{Title: title, Content: text, Source: m.loaded.String()}
	if err := m.store.Append(snip); err != nil {
		log.LogWithError(err).Error("append snippet failed")
		m.status.SetError("Save failed: " + err.Error())
	} else {
		log.LogWithFields(log.F("title", title), log.F("source", snip.Source)).Info("snippet saved")
		m.status.SetText("Snippet saved!")
	}
	m.resetSelection()
}

// enterLibrary loads the library and switches to browsing it
func (m *Model) enterLibrary() {
	if m.store == nil {
		m.status.SetError(errors.ErrLibraryPath.Error())
		return
	}
	lib, err := m.store.Load()
	if err != nil {
		log.LogWithError(err).Error("load library failed")
		m.status.SetError("Failed to load library: " + err.Error())
		return
	}
	m.lib = components.NewLibraryView(lib)
	m.setMode(types.LibraryBrowse)
}

// reloadLibrary replaces the browse view with the stored library. On
// failure the view is left as it was.
func (m *Model) reloadLibrary() error {
	lib, err := m.store.Load()
	if err != nil {
		log.LogWithError(err).Error("reload library failed")
		return err
	}
	m.lib.Replace(lib)
	return nil
}

// deleteSnippet removes the selected snippet
func (m *Model) deleteSnippet() {
	if m.lib.Len() == 0 {
		return
	}
	index := m.lib.Selected()
	if err := m.store.Delete(index); err != nil {
		log.LogWithError(err).Error("delete snippet failed")
		m.status.SetError("Delete failed: " + err.Error())
		return
	}
	if err := m.reloadLibrary(); err != nil {
		m.status.SetError("Failed to load library: " + err.Error())
		return
	}
	log.LogWithFields(log.F("index", index)).Info("snippet deleted")
	m.status.SetText("Snippet deleted.")
}

// renameSnippet retitles the selected snippet. The view is reloaded whether
// or not the write succeeded.
func (m *Model) renameSnippet() {
	title := strings.TrimSpace(string(m.input))
	if title == "" {
		m.status.SetError(errors.ErrEmptyTitle.Error())
		return
	}

	index := m.lib.Selected()
	writeErr := m.store.Rename(index, title)
	reloadErr := m.reloadLibrary()

	switch {
	case writeErr != nil:
		log.LogWithError(writeErr).Error("rename snippet failed")
		m.status.SetError("Rename failed: " + writeErr.Error())
	case reloadErr != nil:
		m.status.SetError("Failed to load library: " + reloadErr.Error())
	default:
		log.LogWithFields(log.F("index", index), log.F("title", title)).Info("snippet renamed")
		m.status.SetText("Snippet renamed.")
	}

	m.input = m.input[:0]
	m.setMode(types.LibraryBrowse)
}

// copySnippet puts the selected snippet's content on the clipboard
func (m *Model) copySnippet() {
	snip, ok := m.lib.SelectedSnippet()
	if !ok {
		return
	}
	if err := m.clipboard(snip.Content); err != nil {
		log.LogWithError(err).Warn("clipboard write failed")
		m.status.SetError("Copy failed: " + err.Error())
		return
	}
	m.status.SetText("Snippet copied to clipboard.")
}

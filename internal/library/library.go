// Package library persists the snippet library.
//
// Snippets are addressed by position. There is no stable id: deleting a
// snippet shifts every later one down by one.
package library

import (
	"fmt"

	"jigolo/internal/config"
	"jigolo/internal/errors"
)

// Snippet is a titled excerpt of a file. Source is the identity of the file
// it was taken from.
type Snippet struct {
	Title   string `toml:"title"`
	Content string `toml:"content"`
	Source  string `toml:"source"`
}

// Library is the ordered snippet list
type Library struct {
	Snippets []Snippet `toml:"snippets"`
}

// Len returns the number of snippets
func (l *Library) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Snippets)
}

// At returns the snippet at index i
func (l *Library) At(i int) (Snippet, bool) {
	if i < 0 || i >= l.Len() {
		return Snippet{}, false
	}
	return l.Snippets[i], true
}

// Titles returns the snippet titles in order
func (l *Library) Titles() []string {
	titles := make([]string, 0, l.Len())
	for i := 0; i < l.Len(); i++ {
		titles = append(titles, l.Snippets[i].Title)
	}
	return titles
}

// Store is the durable snippet list.
//
// Load on missing storage returns an empty library. Delete and Rename on an
// index outside the list are no-ops.
type Store interface {
	Load() (*Library, error)
	Save(lib *Library) error
	Append(s Snippet) error
	Delete(index int) error
	Rename(index int, title string) error
}

// Open returns the store for backend at path
func Open(backend, path string) (Store, error) {
	if path == "" {
		return nil, errors.ErrLibraryPath
	}
	switch backend {
	case "", config.BackendTOML:
		return NewTOMLStore(path), nil
	case config.BackendSQLite:
		s, err := NewSQLiteStore(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, errors.NewConfigError(fmt.Sprintf("unknown backend %q", backend), "library.backend", errors.InvalidConfig, nil)
	}
}

package library

import (
	"database/sql"
	"os"
	"path/filepath"

	"jigolo/internal/errors"
	"jigolo/internal/log"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the library in a SQLite database. Rows are ordered by
// their insertion id, so positional indexes behave exactly like the TOML
// store's list positions.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

// NewSQLiteStore opens (and if needed creates) the database at path
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		cause := errors.NewFileError("cannot create directory", filepath.Dir(path), errors.FileCreateFailed, err)
		return nil, errors.NewStoreError("failed to open library", cause).
			WithKind(errors.StoreWriteFailed).
			WithOperation("open")
	}

	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.NewStoreError("failed to open "+path, err).WithOperation("open")
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, errors.NewStoreError("failed to configure "+path, err).WithOperation("open")
		}
	}

	s := &SQLiteStore{path: path, db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmt := `CREATE TABLE IF NOT EXISTS snippets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		source TEXT NOT NULL DEFAULT ''
	);`
	if _, err := s.db.Exec(stmt); err != nil {
		return errors.NewStoreError("failed to migrate "+s.path, err).WithOperation("migrate")
	}
	return nil
}

// Path returns the database location
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close releases the database handle
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load reads every snippet in insertion order
func (s *SQLiteStore) Load() (*Library, error) {
	rows, err := s.db.Query(`SELECT title, content, source FROM snippets ORDER BY id`)
	if err != nil {
		return nil, errors.NewStoreError("failed to read "+s.path, err).
			WithKind(errors.StoreReadFailed).
			WithOperation("load")
	}
	defer rows.Close()

	lib := &Library{}
	for rows.Next() {
		var snip Snippet
		if err := rows.Scan(&snip.Title, &snip.Content, &snip.Source); err != nil {
			return nil, errors.NewStoreError("failed to read "+s.path, err).
				WithKind(errors.LibraryCorrupt).
				WithOperation("load")
		}
		lib.Snippets = append(lib.Snippets, snip)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStoreError("failed to read "+s.path, err).
			WithKind(errors.StoreReadFailed).
			WithOperation("load")
	}
	return lib, nil
}

// Save replaces the stored library with lib
func (s *SQLiteStore) Save(lib *Library) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.NewStoreError("failed to write "+s.path, err).
			WithKind(errors.StoreWriteFailed).
			WithOperation("save")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM snippets`); err != nil {
		return errors.NewStoreError("failed to write "+s.path, err).
			WithKind(errors.StoreWriteFailed).
			WithOperation("save")
	}
	for _, snip := range lib.snippets() {
		if _, err := tx.Exec(`INSERT INTO snippets (title, content, source) VALUES (?, ?, ?)`,
			snip.Title, snip.Content, snip.Source); err != nil {
			return errors.NewStoreError("failed to write "+s.path, err).
				WithKind(errors.StoreWriteFailed).
				WithOperation("save")
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.NewStoreError("failed to write "+s.path, err).
			WithKind(errors.StoreWriteFailed).
			WithOperation("save")
	}

	log.LogWithFields(log.F("path", s.path), log.F("snippets", lib.Len())).Debug("library saved")
	return nil
}

// Append inserts snip after every existing snippet
func (s *SQLiteStore) Append(snip Snippet) error {
	_, err := s.db.Exec(`INSERT INTO snippets (title, content, source) VALUES (?, ?, ?)`,
		snip.Title, snip.Content, snip.Source)
	if err != nil {
		return errors.NewStoreError("failed to write "+s.path, err).
			WithKind(errors.StoreWriteFailed).
			WithOperation("append")
	}
	return nil
}

// Delete removes the snippet at index
func (s *SQLiteStore) Delete(index int) error {
	if index < 0 {
		return nil
	}
	_, err := s.db.Exec(`DELETE FROM snippets WHERE id = (SELECT id FROM snippets ORDER BY id LIMIT 1 OFFSET ?)`, index)
	if err != nil {
		return errors.NewStoreError("failed to write "+s.path, err).
			WithKind(errors.StoreWriteFailed).
			WithOperation("delete").
			WithContext("index", index)
	}
	return nil
}

// Rename replaces the title of the snippet at index
func (s *SQLiteStore) Rename(index int, title string) error {
	if index < 0 {
		return nil
	}
	_, err := s.db.Exec(`UPDATE snippets SET title = ? WHERE id = (SELECT id FROM snippets ORDER BY id LIMIT 1 OFFSET ?)`, title, index)
	if err != nil {
		return errors.NewStoreError("failed to write "+s.path, err).
			WithKind(errors.StoreWriteFailed).
			WithOperation("rename").
			WithContext("index", index)
	}
	return nil
}

func (l *Library) snippets() []Snippet {
	if l == nil {
		return nil
	}
	return l.Snippets
}

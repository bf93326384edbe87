package library

import (
	"bytes"
	"os"
	"path/filepath"

	"jigolo/internal/errors"
	"jigolo/internal/log"

	"github.com/BurntSushi/toml"
)

// TOMLStore keeps the library in a single TOML file as an array of
// [[snippets]] tables. Every mutation is a full read-modify-write.
type TOMLStore struct {
	path string
}

// NewTOMLStore returns a store backed by the file at path. The file is not
// touched until the first write.
func NewTOMLStore(path string) *TOMLStore {
	return &TOMLStore{path: path}
}

// Path returns the library file location
func (s *TOMLStore) Path() string {
	return s.path
}

// Load reads the library. A missing file is an empty library.
func (s *TOMLStore) Load() (*Library, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Library{}, nil
		}
		return nil, errors.NewStoreError("failed to read "+s.path, err).
			WithKind(errors.StoreReadFailed).
			WithContext("path", s.path)
	}

	lib := &Library{}
	if _, err := toml.Decode(string(data), lib); err != nil {
		return nil, errors.NewStoreError("failed to parse "+s.path, err).
			WithKind(errors.LibraryCorrupt).
			WithContext("path", s.path)
	}
	return lib, nil
}

// Save writes lib, creating parent directories as needed
func (s *TOMLStore) Save(lib *Library) error {
	if lib == nil {
		lib = &Library{}
	}
	if lib.Snippets == nil {
		lib = &Library{Snippets: []Snippet{}}
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		cause := errors.NewFileError("cannot create directory", dir, errors.FileCreateFailed, err)
		return errors.NewStoreError("failed to save library", cause).
			WithKind(errors.StoreWriteFailed).
			WithContext("path", s.path)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(lib); err != nil {
		return errors.NewStoreError("failed to serialize library", err).
			WithKind(errors.StoreWriteFailed)
	}

	// Written to a sibling first, then renamed over the library
	tmp, err := os.CreateTemp(dir, ".library-*.toml")
	if err != nil {
		return errors.NewStoreError("failed to write "+s.path, err).
			WithKind(errors.StoreWriteFailed).
			WithContext("path", s.path)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return errors.NewStoreError("failed to write "+s.path, err).
			WithKind(errors.StoreWriteFailed).
			WithContext("path", s.path)
	}
	if err := tmp.Close(); err != nil {
		return errors.NewStoreError("failed to write "+s.path, err).
			WithKind(errors.StoreWriteFailed).
			WithContext("path", s.path)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return errors.NewStoreError("failed to write "+s.path, err).
			WithKind(errors.StoreWriteFailed).
			WithContext("path", s.path)
	}

	log.LogWithFields(log.F("path", s.path), log.F("snippets", len(lib.Snippets))).Debug("library saved")
	return nil
}

// Append adds snip to the end of the library
func (s *TOMLStore) Append(snip Snippet) error {
	lib, err := s.Load()
	if err != nil {
		return err
	}
	lib.Snippets = append(lib.Snippets, snip)
	return s.Save(lib)
}

// Delete removes the snippet at index
func (s *TOMLStore) Delete(index int) error {
	lib, err := s.Load()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(lib.Snippets) {
		return nil
	}
	lib.Snippets = append(lib.Snippets[:index], lib.Snippets[index+1:]...)
	return s.Save(lib)
}

// Rename replaces the title of the snippet at index
func (s *TOMLStore) Rename(index int, title string) error {
	lib, err := s.Load()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(lib.Snippets) {
		return nil
	}
	lib.Snippets[index].Title = title
	return s.Save(lib)
}

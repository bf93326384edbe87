// Package discovery finds context files below a set of root directories.
//
// Directories named in the skip list are pruned from the walk entirely, so
// large dependency trees never cost a single readdir.
package discovery

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"jigolo/internal/config"
	"jigolo/internal/errors"
	"jigolo/internal/log"

	"github.com/gobwas/glob"
)

// SourceRoot is one root directory and the matching files found below it.
// Files are absolute and sorted.
type SourceRoot struct {
	Path  string
	Files []string
}

// FileCount returns the number of files in the root
func (r SourceRoot) FileCount() int {
	return len(r.Files)
}

// String renders the root header followed by one indented relative path per file.
func (r SourceRoot) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d %s)\n", r.Path, r.FileCount(), plural(r.FileCount(), "file", "files"))
	for _, file := range r.Files {
		rel, err := filepath.Rel(r.Path, file)
		if err != nil || strings.HasPrefix(rel, "..") {
			rel = file
		}
		fmt.Fprintf(&b, "  %s\n", rel)
	}
	return b.String()
}

// Options controls a walk
type Options struct {
	Patterns []string
	SkipDirs []string
	MaxDepth int
	// OnError receives entries that could not be read. The walk continues.
	OnError func(path string, err error)
}

// DefaultOptions matches CLAUDE.md with the default skip list
func DefaultOptions() Options {
	return Options{
		Patterns: []string{"CLAUDE.md"},
		SkipDirs: append([]string(nil), config.DefaultSkipDirs...),
		MaxDepth: 100,
	}
}

// OptionsFromConfig builds walk options from the discovery section of cfg
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Patterns: cfg.Discovery.Patterns,
		SkipDirs: cfg.Discovery.SkipDirs,
		MaxDepth: cfg.Discovery.MaxDepth,
	}
}

// Matcher holds the compiled form of Options
type Matcher struct {
	globs    []glob.Glob
	skip     map[string]struct{}
	maxDepth int
	onError  func(path string, err error)
}

// NewMatcher compiles the patterns in opts
func NewMatcher(opts Options) (*Matcher, error) {
	m := &Matcher{
		skip:     make(map[string]struct{}, len(opts.SkipDirs)),
		maxDepth: opts.MaxDepth,
		onError:  opts.OnError,
	}
	for _, pattern := range opts.Patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, errors.NewConfigError(fmt.Sprintf("invalid pattern %q", pattern), "discovery.patterns", errors.InvalidConfig, err)
		}
		m.globs = append(m.globs, g)
	}
	for _, dir := range opts.SkipDirs {
		m.skip[dir] = struct{}{}
	}
	return m, nil
}

// MatchName reports whether a file base name matches any pattern
func (m *Matcher) MatchName(name string) bool {
	for _, g := range m.globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// SkipDir reports whether a directory with this base name is pruned
func (m *Matcher) SkipDir(name string) bool {
	_, ok := m.skip[name]
	return ok
}

// MaxDepth returns the deepest level the walker descends to
func (m *Matcher) MaxDepth() int {
	return m.maxDepth
}

func (m *Matcher) reportError(path string, err error) {
	log.LogWithFields(log.F("path", path)).WithError(err).Warn("skipping unreadable entry")
	if m.onError != nil {
		m.onError(path, err)
	}
}

// Resolve checks that path names an existing directory and returns its
// absolute, symlink-free form.
func Resolve(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewFileError("path does not exist", path, errors.FileNotFound, nil)
		}
		if os.IsPermission(err) {
			return "", errors.NewFileError("permission denied", path, errors.FileAccessDenied, err)
		}
		return "", errors.NewFileError("cannot stat path", path, errors.InvalidPath, err)
	}
	if !info.IsDir() {
		return "", errors.NewFileError("not a directory", path, errors.NotADirectory, nil)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return path, nil
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}

// FindFiles walks root and returns every matching file, sorted. Directories
// in the skip list are never entered. Symlinked directories are not followed;
// a symlink whose target is a regular file is reported when its name matches.
func FindFiles(root string, m *Matcher) []string {
	var files []string

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			m.reportError(path, err)
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			if m.SkipDir(d.Name()) || depth(root, path) >= m.maxDepth {
				return filepath.SkipDir
			}
			return nil
		}

		if !m.MatchName(d.Name()) || depth(root, path) > m.maxDepth {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			info, statErr := os.Stat(path)
			if statErr != nil || !info.Mode().IsRegular() {
				return nil
			}
		} else if !d.Type().IsRegular() {
			return nil
		}

		files = append(files, path)
		return nil
	})

	sort.Strings(files)
	return files
}

// depth counts path segments between root and path
func depth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}

// Discover resolves each path and walks it. Paths that are not directories
// are skipped and reported in failed; the walk never stops on them.
func Discover(paths []string, m *Matcher) (roots []SourceRoot, failed []error) {
	for _, path := range paths {
		resolved, err := Resolve(path)
		if err != nil {
			log.LogWithError(err).Warn("skipping root")
			failed = append(failed, err)
			continue
		}
		files := FindFiles(resolved, m)
		log.LogWithFields(log.F("root", resolved), log.F("files", len(files))).Debug("discovered root")
		roots = append(roots, SourceRoot{Path: resolved, Files: files})
	}
	return roots, failed
}

// WithGlobal prepends the user-wide file as its own root when it exists and
// was not already found under one of roots.
func WithGlobal(roots []SourceRoot, globalFile string) []SourceRoot {
	if globalFile == "" {
		return roots
	}
	info, err := os.Stat(globalFile)
	if err != nil || info.IsDir() {
		return roots
	}
	if resolved, err := filepath.EvalSymlinks(globalFile); err == nil {
		globalFile = resolved
	}

	for _, root := range roots {
		for _, file := range root.Files {
			if file == globalFile {
				return roots
			}
		}
	}

	global := SourceRoot{Path: filepath.Dir(globalFile), Files: []string{globalFile}}
	return append([]SourceRoot{global}, roots...)
}

// TotalFiles sums the file counts of roots
func TotalFiles(roots []SourceRoot) int {
	total := 0
	for _, root := range roots {
		total += root.FileCount()
	}
	return total
}

// FormatList writes the flat listing of roots. label names the kind of file
// in the summary lines, e.g. "CLAUDE.md".
func FormatList(w io.Writer, roots []SourceRoot, label string) error {
	total := TotalFiles(roots)
	if total == 0 {
		_, err := fmt.Fprintf(w, "No %s files found.\n", label)
		return err
	}

	for _, root := range roots {
		if _, err := fmt.Fprintf(w, "\n%s", root); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Found %d %s %s in %d %s.\n",
		total, label, plural(total, "file", "files"),
		len(roots), plural(len(roots), "directory", "directories"))
	return err
}

// ScanningLine is the progress line printed before a walk starts
func ScanningLine(n int) string {
	return fmt.Sprintf("Scanning %d %s...", n, plural(n, "directory", "directories"))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

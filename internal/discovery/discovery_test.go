package discovery

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"jigolo/internal/errors"
	"jigolo/pkg/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMatcher(t *testing.T) *Matcher {
	t.Helper()
	m, err := NewMatcher(DefaultOptions())
	require.NoError(t, err)
	return m
}

func TestFindFilesNested(t *testing.T) {
	root := t.TempDir()
	testutils.CreateTestFilesWithContent(t, root, map[string]string{
		"CLAUDE.md":             "root",
		"sub/CLAUDE.md":         "sub",
		"sub/deep/CLAUDE.md":    "deep",
		"sub/not-claude.md":     "ignored",
		"another/dir/README.md": "ignored",
		"another/dir/CLAUDE.md": "kept",
	})

	files := FindFiles(root, newMatcher(t))

	assert.Equal(t, []string{
		filepath.Join(root, "CLAUDE.md"),
		filepath.Join(root, "another/dir/CLAUDE.md"),
		filepath.Join(root, "sub/CLAUDE.md"),
		filepath.Join(root, "sub/deep/CLAUDE.md"),
	}, files)
}

func TestFindFilesEmpty(t *testing.T) {
	root := t.TempDir()
	testutils.CreateTestFilesWithContent(t, root, map[string]string{"README.md": "not claude"})

	assert.Empty(t, FindFiles(root, newMatcher(t)))
}

func TestFindFilesPrunesSkipDirs(t *testing.T) {
	root := t.TempDir()
	testutils.CreateTestFilesWithContent(t, root, map[string]string{
		"CLAUDE.md":                   "keep",
		"node_modules/deep/CLAUDE.md": "skip",
		".git/CLAUDE.md":              "skip",
		"target/debug/CLAUDE.md":      "skip",
		"src/vendor/CLAUDE.md":        "skip",
		"src/CLAUDE.md":               "keep",
	})

	files := FindFiles(root, newMatcher(t))

	assert.Equal(t, []string{
		filepath.Join(root, "CLAUDE.md"),
		filepath.Join(root, "src/CLAUDE.md"),
	}, files)
}

func TestFindFilesPatterns(t *testing.T) {
	root := t.TempDir()
	testutils.CreateTestFilesWithContent(t, root, map[string]string{
		"CLAUDE.md":      "a",
		"AGENTS.md":      "b",
		"docs/CLAUDE.md": "c",
		"docs/notes.txt": "d",
	})

	m, err := NewMatcher(Options{Patterns: []string{"*.md"}, MaxDepth: 100})
	require.NoError(t, err)

	files := FindFiles(root, m)
	assert.Len(t, files, 3)
	assert.NotContains(t, files, filepath.Join(root, "docs/notes.txt"))
}

func TestFindFilesMaxDepth(t *testing.T) {
	root := t.TempDir()
	testutils.CreateTestFilesWithContent(t, root, map[string]string{
		"CLAUDE.md":       "0",
		"a/CLAUDE.md":     "1",
		"a/b/CLAUDE.md":   "2",
		"a/b/c/CLAUDE.md": "3",
	})

	opts := DefaultOptions()
	opts.MaxDepth = 2
	m, err := NewMatcher(opts)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "CLAUDE.md"),
		filepath.Join(root, "a/CLAUDE.md"),
	}, FindFiles(root, m))
}

func TestFindFilesFollowsFileSymlinks(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(t.TempDir(), "shared.md")
	require.NoError(t, os.WriteFile(target, []byte("shared"), 0644))
	require.NoError(t, os.Symlink(target, filepath.Join(root, "CLAUDE.md")))

	assert.Equal(t, []string{filepath.Join(root, "CLAUDE.md")}, FindFiles(root, newMatcher(t)))
}

func TestNewMatcherRejectsBadPattern(t *testing.T) {
	_, err := NewMatcher(Options{Patterns: []string{"[unclosed"}})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidConfig(err))
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "somefile.txt")
	require.NoError(t, os.WriteFile(file, []byte("content"), 0644))

	resolved, err := Resolve(dir)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(resolved))

	_, err = Resolve(filepath.Join(dir, "missing"))
	require.Error(t, err)
	assert.True(t, errors.IsFileNotFound(err))
	assert.Contains(t, err.Error(), "path does not exist")

	_, err = Resolve(file)
	require.Error(t, err)
	assert.True(t, errors.IsNotADirectory(err))
	assert.Contains(t, err.Error(), "not a directory")
}

func TestDiscover(t *testing.T) {
	good := t.TempDir()
	testutils.CreateTestFilesWithContent(t, good, map[string]string{"CLAUDE.md": "x"})
	missing := filepath.Join(t.TempDir(), "gone")

	roots, failed := Discover([]string{good, missing}, newMatcher(t))

	require.Len(t, roots, 1)
	assert.Equal(t, 1, roots[0].FileCount())
	require.Len(t, failed, 1)
	assert.True(t, errors.IsFileNotFound(failed[0]))
}

func TestWithGlobal(t *testing.T) {
	home := t.TempDir()
	global := filepath.Join(home, ".claude", "CLAUDE.md")
	testutils.CreateTestFilesWithContent(t, home, map[string]string{".claude/CLAUDE.md": "global"})
	global, err := filepath.EvalSymlinks(global)
	require.NoError(t, err)

	project := SourceRoot{Path: "/work/project", Files: []string{"/work/project/CLAUDE.md"}}

	t.Run("prepends when not found", func(t *testing.T) {
		roots := WithGlobal([]SourceRoot{project}, global)
		require.Len(t, roots, 2)
		assert.Equal(t, filepath.Dir(global), roots[0].Path)
		assert.Equal(t, []string{global}, roots[0].Files)
		assert.Equal(t, project, roots[1])
	})

	t.Run("skips when already discovered", func(t *testing.T) {
		already := SourceRoot{Path: filepath.Dir(global), Files: []string{global}}
		roots := WithGlobal([]SourceRoot{already}, global)
		assert.Len(t, roots, 1)
	})

	t.Run("skips when missing", func(t *testing.T) {
		roots := WithGlobal([]SourceRoot{project}, filepath.Join(home, "nope", "CLAUDE.md"))
		assert.Len(t, roots, 1)
	})

	t.Run("skips when unknown", func(t *testing.T) {
		roots := WithGlobal(nil, "")
		assert.Empty(t, roots)
	})
}

func TestSourceRootString(t *testing.T) {
	root := SourceRoot{
		Path:  "/tmp/test",
		Files: []string{"/tmp/test/CLAUDE.md", "/tmp/test/sub/CLAUDE.md"},
	}
	assert.Equal(t, "/tmp/test (2 files)\n  CLAUDE.md\n  sub/CLAUDE.md\n", root.String())

	single := SourceRoot{Path: "/tmp/test", Files: []string{"/tmp/test/CLAUDE.md"}}
	assert.Contains(t, single.String(), "(1 file)")
}

func TestFormatList(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, FormatList(&buf, []SourceRoot{{Path: "/tmp/x"}}, "CLAUDE.md"))
		assert.Equal(t, "No CLAUDE.md files found.\n", buf.String())
	})

	t.Run("roots and footer", func(t *testing.T) {
		roots := []SourceRoot{
			{Path: "/a", Files: []string{"/a/CLAUDE.md"}},
			{Path: "/b", Files: []string{"/b/CLAUDE.md", "/b/c/CLAUDE.md"}},
		}
		var buf bytes.Buffer
		require.NoError(t, FormatList(&buf, roots, "CLAUDE.md"))
		assert.Equal(t,
			"\n/a (1 file)\n  CLAUDE.md\n"+
				"\n/b (2 files)\n  CLAUDE.md\n  c/CLAUDE.md\n"+
				"Found 3 CLAUDE.md files in 2 directories.\n",
			buf.String())
	})

	t.Run("singular footer", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, FormatList(&buf, []SourceRoot{{Path: "/a", Files: []string{"/a/CLAUDE.md"}}}, "CLAUDE.md"))
		assert.Contains(t, buf.String(), "Found 1 CLAUDE.md file in 1 directory.")
	})
}

func TestScanningLine(t *testing.T) {
	assert.Equal(t, "Scanning 1 directory...", ScanningLine(1))
	assert.Equal(t, "Scanning 3 directories...", ScanningLine(3))
}

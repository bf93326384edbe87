package watch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"jigolo/internal/discovery"
	"jigolo/internal/log"

	"github.com/fsnotify/fsnotify"
)

// Change is a create, write, remove or rename of a file whose name matches
// the discovery patterns
type Change struct {
	Path      string
	Op        fsnotify.Op
	Timestamp time.Time
}

// Watcher monitors directory trees for changes to matching files using
// fsnotify. fsnotify watches are not recursive, so every directory the
// discovery walk would visit gets its own watch.
type Watcher struct {
	matcher *discovery.Matcher

	// Trees passed to AddTree, used to measure the depth of new directories
	roots map[string]struct{}

	// Directories being watched
	directories map[string]struct{}

	// Channel to receive changes
	changes chan Change

	// Channel to signal stop
	stopChan chan struct{}
	done     chan struct{}

	// fsnotify watcher instance
	fsWatcher *fsnotify.Watcher

	// Lock for running state and the directory set
	mutex sync.RWMutex

	// Whether the watcher is running
	running bool

	// Whether the fsnotify watcher has been closed
	closed bool
}

// New creates a new watcher for files accepted by m
func New(m *discovery.Matcher) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		matcher:     m,
		roots:       make(map[string]struct{}),
		directories: make(map[string]struct{}),
		changes:     make(chan Change, 64),
		fsWatcher:   fsWatcher,
	}, nil
}

// AddTree watches root and every directory below it that discovery would
// descend into
func (w *Watcher) AddTree(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("error accessing directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", root)
	}

	w.mutex.Lock()
	w.roots[root] = struct{}{}
	w.mutex.Unlock()

	return w.walk(root, root)
}

// walk watches start and the directories below it, measuring depth from
// the tree root so max_depth applies as it does during discovery
func (w *Watcher) walk(root, start string) error {
	return filepath.WalkDir(start, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == start {
				return err
			}
			log.LogWithFields(log.F("path", path), log.F("error", err)).Warn("skipping unreadable directory")
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.pruned(root, path) {
			return filepath.SkipDir
		}
		return w.addDirectory(path)
	})
}

// pruned reports whether discovery would skip the directory path below root
func (w *Watcher) pruned(root, path string) bool {
	return w.matcher.SkipDir(filepath.Base(path)) || depth(root, path) >= w.matcher.MaxDepth()
}

// rootOf returns the deepest watched tree root containing path
func (w *Watcher) rootOf(path string) (string, bool) {
	w.mutex.RLock()
	defer w.mutex.RUnlock()

	best := ""
	for root := range w.roots {
		if (path == root || isBelow(root, path)) && len(root) > len(best) {
			best = root
		}
	}
	return best, best != ""
}

func isBelow(dir, path string) bool {
	return strings.HasPrefix(path, strings.TrimSuffix(dir, string(filepath.Separator))+string(filepath.Separator))
}

func depth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}

func (w *Watcher) addDirectory(dir string) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if _, ok := w.directories[dir]; ok {
		return nil
	}
	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("failed to add directory %s to watcher: %w", dir, err)
	}
	w.directories[dir] = struct{}{}
	log.LogWithFields(log.F("directory", dir)).Debug("watching directory")
	return nil
}

// Changes returns the channel that delivers matching file changes. It is
// closed by Stop.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Start begins processing fsnotify events
func (w *Watcher) Start() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.running {
		return fmt.Errorf("watcher already running")
	}
	if w.closed {
		return fmt.Errorf("watcher is closed")
	}
	w.running = true
	w.stopChan = make(chan struct{})
	w.done = make(chan struct{})

	go w.loop(w.stopChan, w.done)

	log.Debug("watcher started")
	return nil
}

func (w *Watcher) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handle(event, stop)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.LogWithFields(log.F("error", err)).Error("fsnotify watcher error")

		case <-stop:
			return
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event, stop <-chan struct{}) {
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if w.addNewDirectory(event.Name) {
				w.send(event, stop)
			}
			return
		}
	}

	// A watched directory that was removed or moved away takes its files
	// with it
	if event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename) {
		if w.forget(event.Name) {
			w.send(event, stop)
			return
		}
	}

	if !w.matcher.MatchName(filepath.Base(event.Name)) {
		return
	}
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) &&
		!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return
	}
	w.send(event, stop)
}

// addNewDirectory watches a directory created or moved into a watched tree,
// unless discovery would prune it
func (w *Watcher) addNewDirectory(dir string) bool {
	root, ok := w.rootOf(dir)
	if !ok || (dir != root && w.pruned(root, dir)) {
		return false
	}
	if err := w.walk(root, dir); err != nil {
		log.LogWithFields(log.F("directory", dir), log.F("error", err)).Warn("cannot watch new directory")
		return false
	}
	return true
}

// forget drops path and every watched directory below it. It reports
// whether any of them was watched.
func (w *Watcher) forget(path string) bool {
	w.mutex.Lock()
	var gone []string
	for dir := range w.directories {
		if dir == path || isBelow(path, dir) {
			gone = append(gone, dir)
			delete(w.directories, dir)
		}
	}
	w.mutex.Unlock()

	for _, dir := range gone {
		// Removed directories lose their watch on their own
		_ = w.fsWatcher.Remove(dir)
		log.LogWithFields(log.F("directory", dir)).Debug("stopped watching directory")
	}
	return len(gone) > 0
}

func (w *Watcher) send(event fsnotify.Event, stop <-chan struct{}) {
	change := Change{Path: event.Name, Op: event.Op, Timestamp: time.Now()}
	select {
	case w.changes <- change:
	case <-stop:
	}
}

// Stop halts the watcher and closes the change channel
func (w *Watcher) Stop() {
	w.mutex.Lock()
	if !w.running {
		w.mutex.Unlock()
		return
	}
	w.running = false
	w.closed = true
	close(w.stopChan)
	done := w.done
	w.mutex.Unlock()

	if err := w.fsWatcher.Close(); err != nil {
		log.LogWithFields(log.F("error", err)).Error("error closing fsnotify watcher")
	}
	<-done
	close(w.changes)

	log.Debug("watcher stopped")
}

// Close releases the fsnotify watcher, stopping it first if it is running.
// It is safe to call on a watcher that was never started.
func (w *Watcher) Close() error {
	w.Stop()

	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	return w.fsWatcher.Close()
}

// IsRunning returns whether the watcher is currently active
func (w *Watcher) IsRunning() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.running
}

// Directories returns the watched directories, sorted
func (w *Watcher) Directories() []string {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	dirs := make([]string, 0, len(w.directories))
	for dir := range w.directories {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs
}

package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"jigolo/internal/discovery"
	"jigolo/internal/watch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaemon_RefreshAfterChanges(t *testing.T) {
	// 1. Setup a watched project
	dir := t.TempDir()
	m, err := discovery.NewMatcher(discovery.DefaultOptions())
	require.NoError(t, err)
	w, err := watch.New(m)
	require.NoError(t, err)
	require.NoError(t, w.AddTree(dir))

	// 2. Run the daemon, reporting each batch
	batches := make(chan []watch.Change, 4)
	daemon := watch.NewDaemon(w, 50*time.Millisecond, func(changes []watch.Change) {
		batches <- changes
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- daemon.Run(ctx) }()

	require.Eventually(t, func() bool { return daemon.Status().Running }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)

	// 3. A burst of writes settles into one refresh
	path := filepath.Join(dir, "CLAUDE.md")
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("rules"), 0644))
	}

	select {
	case batch := <-batches:
		require.NotEmpty(t, batch)
		assert.Equal(t, path, batch[0].Path)
	case <-time.After(3 * time.Second):
		t.Fatal("no refresh after writing a context file")
	}

	status := daemon.Status()
	assert.GreaterOrEqual(t, status.Refreshes, 1)
	assert.False(t, status.LastActivity.IsZero())
	assert.Equal(t, []string{dir}, status.WatchDirectories)

	// 4. Cancelling stops the daemon and the watcher
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("daemon did not stop")
	}
	assert.False(t, daemon.Status().Running)
	assert.False(t, w.IsRunning())
}

func TestDaemon_NoDirectories(t *testing.T) {
	m, err := discovery.NewMatcher(discovery.DefaultOptions())
	require.NoError(t, err)
	w, err := watch.New(m)
	require.NoError(t, err)

	daemon := watch.NewDaemon(w, 0, nil)
	assert.Error(t, daemon.Run(context.Background()))
}

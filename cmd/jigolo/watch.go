package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"jigolo/internal/config"
	"jigolo/internal/discovery"
	"jigolo/internal/log"
	"jigolo/internal/watch"

	"github.com/spf13/cobra"
)

// watchListing reprints the listing whenever a matching file under roots
// changes, until the command context is cancelled or the process is
// interrupted
func watchListing(cmd *cobra.Command, args []string, roots []discovery.SourceRoot, m *discovery.Matcher, paths config.Paths, cfg *config.Config) error {
	w, err := watch.New(m)
	if err != nil {
		return err
	}
	defer w.Close()

	for _, root := range roots {
		// The global file's directory is not watched recursively
		if isGlobalRoot(root, paths) {
			continue
		}
		if err := w.AddTree(root.Path); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var mu sync.Mutex
	daemon := watch.NewDaemon(w, watch.DefaultDelay, func(changes []watch.Change) {
		mu.Lock()
		defer mu.Unlock()

		log.LogWithFields(log.F("changes", len(changes))).Info("relisting")
		fresh, _ := discovery.Discover(args, m)
		if cfg.Discovery.IncludeGlobal {
			fresh = discovery.WithGlobal(fresh, paths.GlobalFile())
		}
		if err := discovery.FormatList(cmd.OutOrStdout(), fresh, cfg.PatternLabel()); err != nil {
			log.LogError(err, "cannot write listing")
		}
	})

	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %d %s for changes. Press Ctrl+C to stop.\n",
		len(w.Directories()), pluralDirs(len(w.Directories())))
	return daemon.Run(ctx)
}

func isGlobalRoot(root discovery.SourceRoot, paths config.Paths) bool {
	global := paths.GlobalFile()
	if global == "" || len(root.Files) != 1 {
		return false
	}
	if resolved, err := filepath.EvalSymlinks(global); err == nil {
		global = resolved
	}
	return root.Files[0] == global && root.Path == filepath.Dir(global)
}

func pluralDirs(n int) string {
	if n == 1 {
		return "directory"
	}
	return "directories"
}

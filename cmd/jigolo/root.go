package main

import (
	"errors"
	"fmt"
	"io"

	"jigolo/internal/config"
	"jigolo/internal/discovery"
	"jigolo/internal/library"
	"jigolo/internal/log"
	"jigolo/internal/tui"

	"github.com/spf13/cobra"
)

// ErrAllPathsFailed is returned when none of the given paths is a directory
var ErrAllPathsFailed = errors.New("none of the given paths is a directory")

type rootOptions struct {
	list       bool
	watch      bool
	debug      bool
	configFile string
	logFile    string
}

// NewRootCmd creates the root command for the current user
func NewRootCmd() *cobra.Command {
	return newRootCmd(config.DefaultPaths(), tui.Run)
}

// newRootCmd builds the command with explicit paths and session runner
func newRootCmd(paths config.Paths, runSession func(tui.Options) error) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "jigolo [paths...]",
		Short: "Browse CLAUDE.md files and collect snippets from them",
		Long: `jigolo finds CLAUDE.md files below the given directories (default: the
current directory) and opens them in a two-pane terminal browser. Lines can
be selected and saved as titled snippets to a personal library.

With --list the files are printed instead, and --watch keeps the listing
up to date as files change.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, paths, opts, runSession)
		},
	}

	cmd.Flags().BoolVarP(&opts.list, "list", "l", false, "Print the discovered files instead of opening the browser")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "With --list, reprint the listing when files change")
	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default is $HOME/.config/jigolo/config.yaml)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "Write logs to this file")

	return cmd
}

func run(cmd *cobra.Command, args []string, paths config.Paths, opts *rootOptions, runSession func(tui.Options) error) error {
	if opts.watch && !opts.list {
		return fmt.Errorf("--watch can only be used with --list")
	}
	errOut := cmd.ErrOrStderr()

	cfg := loadConfig(errOut, paths, opts.configFile)
	closeLog := configureLogging(cfg, opts)
	defer closeLog()

	if len(args) == 0 {
		args = []string{"."}
	}

	matcher, err := discovery.NewMatcher(discovery.OptionsFromConfig(cfg))
	if err != nil {
		return err
	}

	fmt.Fprintln(errOut, discovery.ScanningLine(len(args)))
	roots, failed := discovery.Discover(args, matcher)
	for _, err := range failed {
		fmt.Fprintf(errOut, "Warning: %v\n", err)
	}
	if len(roots) == 0 && len(failed) > 0 {
		return ErrAllPathsFailed
	}
	if cfg.Discovery.IncludeGlobal {
		roots = discovery.WithGlobal(roots, paths.GlobalFile())
	}

	label := cfg.PatternLabel()
	if opts.list {
		if err := discovery.FormatList(cmd.OutOrStdout(), roots, label); err != nil {
			return err
		}
		if opts.watch {
			return watchListing(cmd, args, roots, matcher, paths, cfg)
		}
		return nil
	}

	store := openStore(errOut, paths, cfg)
	if closer, ok := store.(io.Closer); ok {
		defer closer.Close()
	}

	return runSession(tui.Options{
		Roots:           roots,
		Store:           store,
		Theme:           cfg.UI.Theme,
		MarkdownPreview: cfg.UI.MarkdownPreview,
		PatternLabel:    label,
	})
}

// loadConfig reads the config file, falling back to defaults with a warning
func loadConfig(errOut io.Writer, paths config.Paths, file string) *config.Config {
	var (
		cfg *config.Config
		err error
	)
	if file != "" {
		cfg, err = config.LoadConfigFile(file)
	} else {
		cfg, err = config.LoadConfig(paths)
	}
	if err != nil {
		fmt.Fprintf(errOut, "Warning: %v\n", err)
		fmt.Fprintln(errOut, "Using default settings.")
		cfg = config.New()
	}
	return cfg
}

// configureLogging routes logs to the configured file. Without one, logs
// are discarded.
func configureLogging(cfg *config.Config, opts *rootOptions) func() {
	log.SetDebug(opts.debug || cfg.Log.Level == "debug")

	file := cfg.Log.File
	if opts.logFile != "" {
		file = opts.logFile
	}
	if file == "" {
		return func() {}
	}

	logOpts := []log.Option{log.WithFile(file), log.WithLevel(cfg.Log.Level)}
	if cfg.Log.JSON {
		logOpts = append(logOpts, log.WithJSON())
	}
	log.Configure(logOpts...)
	log.LogWithFields(log.F("version", version)).Info("jigolo starting")

	return func() {
		log.Default().Close()
		log.Configure()
	}
}

// openStore opens the snippet library. A nil store means snippets cannot be
// saved this session; the browser reports that when the user tries.
func openStore(errOut io.Writer, paths config.Paths, cfg *config.Config) library.Store {
	path, err := paths.LibraryPath(cfg)
	if err != nil {
		log.LogWithError(err).Warn("no library location")
		return nil
	}
	store, err := library.Open(cfg.Library.Backend, path)
	if err != nil {
		log.LogWithError(err).Error("cannot open library")
		fmt.Fprintf(errOut, "Warning: %v\n", err)
		return nil
	}
	log.LogWithFields(log.F("path", path), log.F("backend", cfg.Library.Backend)).Debug("library opened")
	return store
}

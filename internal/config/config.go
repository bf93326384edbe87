package config

import (
	"fmt"
	"os"
	"path/filepath"

	"jigolo/internal/errors"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

// AppName names the per-user configuration directory
const AppName = "jigolo"

// Snippet store backends
const (
	BackendTOML   = "toml"
	BackendSQLite = "sqlite"
)

// DefaultSkipDirs lists directory names whose subtrees are never walked
var DefaultSkipDirs = []string{
	"node_modules",
	".git",
	"target",
	".cache",
	"__pycache__",
	".venv",
	"vendor",
	"dist",
	".next",
	".nuxt",
	"build",
}

// Config represents the application configuration structure.
type Config struct {
	Discovery struct {
		Patterns      []string `yaml:"patterns"`       // Glob patterns matched against file base names
		SkipDirs      []string `yaml:"skip_dirs"`      // Directory names pruned from traversal
		IncludeGlobal bool     `yaml:"include_global"` // Prepend ~/.claude/CLAUDE.md as its own root
		MaxDepth      int      `yaml:"max_depth"`      // Maximum walk depth below each root
	} `yaml:"discovery"`
	Library struct {
		Backend string `yaml:"backend"` // toml or sqlite
		Path    string `yaml:"path"`    // Overrides the default library location
	} `yaml:"library"`
	UI struct {
		Theme           string `yaml:"theme"`            // Theme name, see ListThemes
		MarkdownPreview bool   `yaml:"markdown_preview"` // Render library previews as markdown
	} `yaml:"ui"`
	Log struct {
		File  string `yaml:"file"`  // Log destination; empty discards logs
		Level string `yaml:"level"` // debug, info, warn, error
		JSON  bool   `yaml:"json"`  // One JSON object per entry
	} `yaml:"log"`
}

// Paths holds every location derived from the user's environment. It is
// resolved once at startup and handed to the components that need it.
type Paths struct {
	Home        string
	ConfigDir   string
	ConfigFile  string
	LibraryFile string
}

// ResolvePaths derives the default locations from home. An empty home leaves
// every path empty.
func ResolvePaths(home string) Paths {
	if home == "" {
		return Paths{}
	}
	dir := filepath.Join(home, ".config", AppName)
	return Paths{
		Home:        home,
		ConfigDir:   dir,
		ConfigFile:  filepath.Join(dir, "config.yaml"),
		LibraryFile: filepath.Join(dir, "library.toml"),
	}
}

// DefaultPaths resolves paths from the current user's home directory
func DefaultPaths() Paths {
	home, err := os.UserHomeDir()
	if err != nil {
		return Paths{}
	}
	return ResolvePaths(home)
}

// LibraryPath returns the snippet library location for cfg. It fails with a
// ConfigNotSet error when neither the config nor the environment provide one.
func (p Paths) LibraryPath(cfg *Config) (string, error) {
	if cfg != nil && cfg.Library.Path != "" {
		return expandHome(cfg.Library.Path, p.Home), nil
	}
	if p.LibraryFile == "" {
		return "", errors.ErrLibraryPath
	}
	if cfg != nil && cfg.Library.Backend == BackendSQLite {
		return filepath.Join(filepath.Dir(p.LibraryFile), "library.db"), nil
	}
	return p.LibraryFile, nil
}

// GlobalFile returns the user-wide context file location, or "" when home is unknown
func (p Paths) GlobalFile() string {
	if p.Home == "" {
		return ""
	}
	return filepath.Join(p.Home, ".claude", "CLAUDE.md")
}

func expandHome(path, home string) string {
	if home != "" && len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}

// LoadConfig loads configuration from the default location
// (~/.config/jigolo/config.yaml).
func LoadConfig(paths Paths) (*Config, error) {
	if paths.ConfigFile == "" {
		return defaultConfig(), nil
	}
	return LoadConfigFile(paths.ConfigFile)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.NewConfigError("error reading config file", path, errors.ConfigNotFound, err)
	}

	// Unmarshal onto the defaults so unset keys keep their default value
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
	}

	if len(cfg.Discovery.Patterns) == 0 {
		cfg.Discovery.Patterns = []string{"CLAUDE.md"}
	}
	if cfg.Discovery.SkipDirs == nil {
		cfg.Discovery.SkipDirs = append([]string(nil), DefaultSkipDirs...)
	}
	if cfg.Library.Backend == "" {
		cfg.Library.Backend = BackendTOML
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// defaultConfig returns the default configuration.
func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Discovery.Patterns = []string{"CLAUDE.md"}
	cfg.Discovery.SkipDirs = append([]string(nil), DefaultSkipDirs...)
	cfg.Discovery.IncludeGlobal = true
	cfg.Discovery.MaxDepth = 100

	cfg.Library.Backend = BackendTOML

	cfg.UI.Theme = "default"
	cfg.UI.MarkdownPreview = true

	cfg.Log.Level = "info"

	return cfg
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.NewConfigError("nil config", "", errors.InvalidConfig, nil)
	}

	if len(c.Discovery.Patterns) == 0 {
		return errors.NewConfigError("at least one pattern is required", "discovery.patterns", errors.InvalidConfig, nil)
	}
	for i, pattern := range c.Discovery.Patterns {
		if pattern == "" {
			return errors.NewConfigError(fmt.Sprintf("pattern %d is empty", i), "discovery.patterns", errors.InvalidConfig, nil)
		}
		if _, err := glob.Compile(pattern); err != nil {
			return errors.NewConfigError(fmt.Sprintf("pattern %q does not compile", pattern), "discovery.patterns", errors.InvalidConfig, err)
		}
	}
	for _, dir := range c.Discovery.SkipDirs {
		if dir == "" {
			return errors.NewConfigError("skip directory name cannot be empty", "discovery.skip_dirs", errors.InvalidConfig, nil)
		}
	}
	if c.Discovery.MaxDepth < 0 {
		return errors.NewConfigError("max depth must be >= 0", "discovery.max_depth", errors.InvalidConfig, nil)
	}

	switch c.Library.Backend {
	case BackendTOML, BackendSQLite:
	default:
		return errors.NewConfigError(fmt.Sprintf("unknown backend %q", c.Library.Backend), "library.backend", errors.InvalidConfig, nil)
	}

	return nil
}

// PatternLabel is the human name used in listings: the single pattern when
// there is exactly one, otherwise "matching".
func (c *Config) PatternLabel() string {
	if len(c.Discovery.Patterns) == 1 {
		return c.Discovery.Patterns[0]
	}
	return "matching"
}

// GetTheme returns a predefined theme configuration by name.
// If the theme doesn't exist, returns the default theme.
func GetTheme(name string) map[string]string {
	themes := map[string]map[string]string{
		"default": {
			"primary":  "51",  // Cyan
			"success":  "114", // Green
			"warning":  "220", // Yellow
			"error":    "196", // Red
			"info":     "39",  // Blue
			"emphasis": "240", // Dark Grey
			"border":   "51",  // Cyan
		},
		"dark": {
			"primary":  "105",
			"success":  "78",
			"warning":  "214",
			"error":    "160",
			"info":     "33",
			"emphasis": "238",
			"border":   "105",
		},
		"light": {
			"primary":  "135",
			"success":  "150",
			"warning":  "222",
			"error":    "210",
			"info":     "117",
			"emphasis": "252",
			"border":   "135",
		},
		"monochrome": {
			"primary":  "245",
			"success":  "252",
			"warning":  "241",
			"error":    "232",
			"info":     "248",
			"emphasis": "236",
			"border":   "245",
		},
		"ocean": {
			"primary":  "31",
			"success":  "36",
			"warning":  "220",
			"error":    "196",
			"info":     "33",
			"emphasis": "24",
			"border":   "31",
		},
		"sunset": {
			"primary":  "208",
			"success":  "154",
			"warning":  "214",
			"error":    "196",
			"info":     "69",
			"emphasis": "95",
			"border":   "208",
		},
	}

	if theme, exists := themes[name]; exists {
		return theme
	}

	return themes["default"]
}

// ListThemes returns a list of available theme names.
func ListThemes() []string {
	return []string{"default", "dark", "light", "monochrome", "ocean", "sunset"}
}

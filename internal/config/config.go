package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/devflow-tools/wtm/internal/system"
)

// Config is the on-disk wtm configuration.
type Config struct {
	Worktree  WorktreeConfig  `toml:"worktree"`
	Discovery DiscoveryConfig `toml:"discovery"`
}

// WorktreeConfig controls worktree creation and editor launch.
type WorktreeConfig struct {
	// BaseDir is where new worktrees are created, relative to the
	// repository root. Defaults to the parent directory.
	BaseDir string `toml:"base_dir"`

	// BranchPrefix is prepended to branches created by wtm.
	BranchPrefix string `toml:"branch_prefix"`

	// Editor is a shell-quoted command line used by `wtm open`.
	// Empty means fall back to $VISUAL, $EDITOR, then "code".
	Editor string `toml:"editor"`
}

// DiscoveryConfig controls documentation discovery.
type DiscoveryConfig struct {
	// Dirs are the directories scanned for markdown files,
	// relative to the scan root.
	Dirs []string `toml:"dirs"`

	// Ignore lists case-insensitive filename substrings to skip.
	Ignore []string `toml:"ignore"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Worktree: WorktreeConfig{
			BaseDir: "..",
		},
		Discovery: DiscoveryConfig{
			Dirs:   []string{"docs"},
			Ignore: []string{"changelog", "license", "contributing"},
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(dir, "wtm", "config.toml"), nil
}

// Load reads the configuration from path. A missing file is not an
// error; defaults are returned. Unset fields fall back to defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := system.DefaultFS().ReadFile(path)
	if err != nil {
		if errorsIsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Worktree.BaseDir == "" {
		cfg.Worktree.BaseDir = def.Worktree.BaseDir
	}
	if len(cfg.Discovery.Dirs) == 0 {
		cfg.Discovery.Dirs = def.Discovery.Dirs
	}
	if cfg.Discovery.Ignore == nil {
		cfg.Discovery.Ignore = def.Discovery.Ignore
	}
}

// Validate checks that the Config is usable.
func (c *Config) Validate() error {
	if strings.HasPrefix(c.Worktree.BranchPrefix, "/") || strings.Contains(c.Worktree.BranchPrefix, "..") {
		return fmt.Errorf("invalid branch_prefix %q", c.Worktree.BranchPrefix)
	}
	for _, d := range c.Discovery.Dirs {
		if filepath.IsAbs(d) {
			return fmt.Errorf("discovery dirs must be relative (got %q)", d)
		}
	}
	return nil
}

func errorsIsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

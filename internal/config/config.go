package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fallrising/dotfiles/internal/logger"
)

// DefaultPath returns the default location of update.yaml under the user's
// config directory. Falls back to a relative path if the home directory
// cannot be resolved.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "update.yaml"
	}
	return filepath.Join(home, ".config", "dotfiles", "update.yaml")
}

// Load reads update.yaml from the given path (or the default location when
// path is empty) and returns a populated Config. A missing file is not an
// error: the tool must work with zero setup, so defaults are returned.
// A file that exists but cannot be parsed is an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	cfg := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			logger.Debug("[DEBUG] No config at %s, using defaults\n", path)
			cfg.expandPaths()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	// Fill back any field the file left empty.
	applyDefaults(cfg)
	cfg.expandPaths()

	logger.Debug("[DEBUG] Config loaded from %s\n", path)
	return cfg, nil
}

// Default returns the built-in configuration used when no update.yaml exists.
// The dotfiles path honors the DOTFILES environment variable and falls back
// to ~/dotfiles.
func Default() *Config {
	return &Config{
		Brew: BrewConfig{Command: "brew"},
		Nvim: NvimConfig{Command: "nvim", SyncCommand: "Lazy! sync"},
		Dotfiles: DotfilesConfig{
			Path:   "$DOTFILES",
			Branch: "main",
			Remote: "origin",
		},
		Zsh: ZshConfig{PluginsDir: "~/.zsh/plugins"},
	}
}

// applyDefaults fills empty fields in a parsed config with the built-in
// values, so a partial update.yaml only overrides what it names.
func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Brew.Command == "" {
		cfg.Brew.Command = def.Brew.Command
	}
	if cfg.Nvim.Command == "" {
		cfg.Nvim.Command = def.Nvim.Command
	}
	if cfg.Nvim.SyncCommand == "" {
		cfg.Nvim.SyncCommand = def.Nvim.SyncCommand
	}
	if cfg.Dotfiles.Path == "" {
		cfg.Dotfiles.Path = def.Dotfiles.Path
	}
	if cfg.Dotfiles.Branch == "" {
		cfg.Dotfiles.Branch = def.Dotfiles.Branch
	}
	if cfg.Dotfiles.Remote == "" {
		cfg.Dotfiles.Remote = def.Dotfiles.Remote
	}
	if cfg.Zsh.PluginsDir == "" && len(cfg.Zsh.Plugins) == 0 {
		cfg.Zsh.PluginsDir = def.Zsh.PluginsDir
	}
}

// expandPaths expands environment variables and a leading ~ in every
// configured path. An unset $DOTFILES resolves to ~/dotfiles.
func (c *Config) expandPaths() {
	c.Dotfiles.Path = ExpandPath(c.Dotfiles.Path)
	if c.Dotfiles.Path == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			c.Dotfiles.Path = filepath.Join(home, "dotfiles")
		}
	}
	c.Zsh.PluginsDir = ExpandPath(c.Zsh.PluginsDir)
	for i := range c.Zsh.Plugins {
		c.Zsh.Plugins[i].Path = ExpandPath(c.Zsh.Plugins[i].Path)
	}
}

// ExpandPath expands environment variable references and a leading "~" in a
// filesystem path.
func ExpandPath(path string) string {
	path = os.ExpandEnv(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}

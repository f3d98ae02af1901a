package config

import (
	"os"
	"path/filepath"
	"sort"
)

// Config is the top-level structure parsed from update.yaml.
// Every field is optional; missing values fall back to Default().
type Config struct {
	Brew     BrewConfig     `yaml:"brew"`
	Nvim     NvimConfig     `yaml:"nvim"`
	Dotfiles DotfilesConfig `yaml:"dotfiles"`
	Zsh      ZshConfig      `yaml:"zsh"`
}

// BrewConfig configures the Homebrew update routine.
// - Command: the brew executable to invoke.
type BrewConfig struct {
	Command string `yaml:"command"`
}

// NvimConfig configures the editor-plugin update routine.
// - Command: the editor executable to invoke headless.
// - SyncCommand: the ex command handed to the editor's plugin manager
//   (e.g. "Lazy! sync").
type NvimConfig struct {
	Command     string `yaml:"command"`
	SyncCommand string `yaml:"sync_command"`
}

// DotfilesConfig configures the dotfiles-repository update routine.
// - Path: repository root; environment variables and ~ are expanded, so
//   "$DOTFILES" works as a value.
// - Branch: the primary branch the checkout must be on before pulling.
// - Remote: the remote to fetch and fast-forward from.
type DotfilesConfig struct {
	Path   string `yaml:"path"`
	Branch string `yaml:"branch"`
	Remote string `yaml:"remote"`
}

// ZshConfig configures the zsh-plugin update routine.
// - PluginsDir: a directory whose git-checkout subdirectories are picked up
//   automatically.
// - Plugins: explicit registry entries, for plugins living elsewhere.
type ZshConfig struct {
	PluginsDir string   `yaml:"plugins_dir"`
	Plugins    []Plugin `yaml:"plugins"`
}

// Plugin is one zsh plugin registry entry: a display name and the path of
// its git checkout.
type Plugin struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// Registry assembles the full zsh plugin list: the explicit entries first,
// then any git checkout found directly under PluginsDir that was not already
// listed. Directory scan results are sorted for a stable update order.
func (z ZshConfig) Registry() []Plugin {
	plugins := make([]Plugin, 0, len(z.Plugins))
	seen := make(map[string]bool)
	for _, p := range z.Plugins {
		plugins = append(plugins, p)
		seen[p.Path] = true
	}

	if z.PluginsDir == "" {
		return plugins
	}
	entries, err := os.ReadDir(z.PluginsDir)
	if err != nil {
		// A missing plugins directory just means nothing to scan.
		return plugins
	}

	var scanned []Plugin
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(z.PluginsDir, e.Name())
		if _, err := os.Stat(filepath.Join(dir, ".git")); err != nil {
			continue
		}
		if seen[dir] {
			continue
		}
		scanned = append(scanned, Plugin{Name: e.Name(), Path: dir})
	}
	sort.Slice(scanned, func(i, j int) bool { return scanned[i].Name < scanned[j].Name })

	return append(plugins, scanned...)
}

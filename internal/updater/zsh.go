package updater

import (
	"fmt"
	"strings"

	"github.com/fallrising/dotfiles/internal/config"
	"github.com/fallrising/dotfiles/internal/format"
	"github.com/fallrising/dotfiles/internal/logger"
	"github.com/fallrising/dotfiles/internal/runner"
)

// Zsh pulls every registered zsh plugin checkout. Each plugin is updated in
// place via git with the plugin directory passed as the working directory;
// the process working directory is never changed. A failing plugin is
// reported and the remaining plugins still run.
func (u *Updater) Zsh() error {
	section("Zsh plugins")

	plugins := u.cfg.Zsh.Registry()
	if len(plugins) == 0 {
		logger.Info("No zsh plugins registered.\n")
		return nil
	}

	var failed []string
	for _, plugin := range plugins {
		if err := u.updatePlugin(plugin); err != nil {
			logger.Error("[ERROR] %s: %v\n", plugin.Name, err)
			failed = append(failed, plugin.Name)
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("zsh: %d of %d plugins failed (%s)",
			len(failed), len(plugins), strings.Join(failed, ", "))
	}
	logger.Success("Zsh plugins are up to date.\n")
	return nil
}

// updatePlugin pulls one plugin checkout and reports what changed: the
// number of new commits and the latest subject line, or "already up to
// date" when the revision did not move.
func (u *Updater) updatePlugin(plugin config.Plugin) error {
	before, err := u.gitValue(plugin.Path, "rev-parse", "HEAD")
	if err != nil {
		return err
	}

	out, err := runner.Spin("Updating "+plugin.Name, plugin.Path, "git", "pull", "--recurse-submodules")
	if err != nil {
		if u.verbose && len(out) > 0 {
			fmt.Println(strings.TrimSpace(string(out)))
		}
		return fmt.Errorf("git pull: %w", err)
	}

	after, err := u.gitValue(plugin.Path, "rev-parse", "HEAD")
	if err != nil {
		return err
	}

	if before == after {
		fmt.Printf("%s %s\n", format.Key(plugin.Name), format.Value("already up to date"))
		return nil
	}

	count, err := u.gitValue(plugin.Path, "rev-list", "--count", before+".."+after)
	if err != nil {
		return err
	}
	subject, err := u.gitValue(plugin.Path, "log", "-1", "--format=%s")
	if err != nil {
		return err
	}
	fmt.Printf("%s %s\n", format.Key(plugin.Name),
		format.Value(fmt.Sprintf("%s new commit(s), latest: %s", count, subject)))
	return nil
}

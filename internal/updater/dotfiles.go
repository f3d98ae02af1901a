package updater

import (
	"fmt"
	"strings"

	"github.com/fallrising/dotfiles/internal/format"
	"github.com/fallrising/dotfiles/internal/logger"
	"github.com/fallrising/dotfiles/internal/runner"
)

// Dotfiles updates the dotfiles repository with a fast-forward-only pull.
// The checkout must sit on its configured primary branch; anything else is
// a precondition failure and nothing is mutated. When local and remote
// revisions already match, the routine reports up to date and stops after
// the fetch.
func (u *Updater) Dotfiles() error {
	section("Dotfiles")

	dir := u.cfg.Dotfiles.Path
	branch := u.cfg.Dotfiles.Branch
	remote := u.cfg.Dotfiles.Remote
	remoteRef := remote + "/" + branch

	current, err := u.gitValue(dir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return err
	}
	if current != branch {
		logger.Warn("[WARN] Dotfiles checkout is on %q, not %q. Skipping update.\n", current, branch)
		return fmt.Errorf("dotfiles: checkout on %q, expected %q", current, branch)
	}

	fetchRes, err := runner.Run(dir, "git", "fetch", remote)
	if err != nil {
		return u.fail("git fetch", fetchRes.Output, err)
	}

	local, err := u.gitValue(dir, "rev-parse", "HEAD")
	if err != nil {
		return err
	}
	upstream, err := u.gitValue(dir, "rev-parse", remoteRef)
	if err != nil {
		return err
	}
	if local == upstream {
		logger.Info("Already up to date.\n")
		return nil
	}

	// Show what is coming in before touching the working tree.
	logRes, err := runner.Run(dir, "git", "log", "--oneline", "--graph", "--decorate", "HEAD.."+remoteRef)
	if err == nil && strings.TrimSpace(logRes.Output) != "" {
		fmt.Println(format.KeyValue("Incoming", remoteRef))
		fmt.Println(strings.TrimRight(logRes.Output, "\n"))
	}

	pullRes, err := runner.Run(dir, "git", "pull", "--ff-only", remote, branch)
	if err != nil {
		// Divergent local commits: refuse to merge, leave it to the user.
		return u.fail("git pull --ff-only", pullRes.Output, err)
	}

	logger.Success("Dotfiles updated to %s.\n", upstream[:min(len(upstream), 12)])
	return nil
}

// gitValue runs a git query in dir and returns its trimmed single-value
// output.
func (u *Updater) gitValue(dir string, args ...string) (string, error) {
	res, err := runner.Run(dir, "git", args...)
	if err != nil {
		return "", u.fail("git "+strings.Join(args, " "), res.Output, err)
	}
	return strings.TrimSpace(res.Output), nil
}

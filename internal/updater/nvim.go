package updater

import (
	"fmt"

	"github.com/fallrising/dotfiles/internal/logger"
	"github.com/fallrising/dotfiles/internal/runner"
)

// nvimMarkers are failure substrings the headless editor prints while still
// exiting zero (plugin manager errors end up in messages, not the exit
// status). Checked only after the real exit status.
var nvimMarkers = []string{"Error", "ERROR", "Could not", "not installed"}

// Nvim runs the editor headless and lets its plugin manager synchronize the
// installed plugin set: install missing plugins, update the rest, remove
// what is no longer configured.
func (u *Updater) Nvim() error {
	section("Neovim plugins")

	res, err := runner.Run("", u.cfg.Nvim.Command, "--headless", "+"+u.cfg.Nvim.SyncCommand, "+qa")
	if err != nil {
		return u.fail("nvim plugin sync", res.Output, err)
	}

	if line, ok := runner.FindMarker(res.Output, nvimMarkers); ok {
		return u.fail("nvim plugin sync", res.Output, fmt.Errorf("failure marker in output: %s", line))
	}

	changed := runner.FilterLinesFold(res.Output, "updated", "installed", "removed")
	if len(changed) == 0 {
		logger.Info("No plugin updates found.\n")
	} else {
		for _, line := range changed {
			fmt.Println(line)
		}
	}
	logger.Success("Neovim plugins are up to date.\n")
	return nil
}

package updater

import (
	"fmt"
	"strings"

	"github.com/fallrising/dotfiles/internal/logger"
	"github.com/fallrising/dotfiles/internal/runner"
)

// brewMarkers are failure substrings brew is known to print while still
// exiting zero (e.g. a failed tap during `brew update`). Checked only after
// the real exit status.
var brewMarkers = []string{"Error", "fatal", "Failed"}

// Brew refreshes Homebrew's package index and upgrades all outdated
// packages. The two stages share one captured log so the summary and any
// failure diagnostics cover the whole run.
func (u *Updater) Brew() error {
	section("Homebrew")

	brew := u.cfg.Brew.Command

	updateRes, err := runner.Run("", brew, "update")
	if err != nil {
		return u.fail("brew update", updateRes.Output, err)
	}

	upgradeRes, err := runner.Run("", brew, "upgrade")
	combined := updateRes.Output + upgradeRes.Output
	if err != nil {
		return u.fail("brew upgrade", combined, err)
	}

	// Secondary signal: brew exits zero after some partial failures.
	if line, ok := runner.FindMarker(combined, brewMarkers); ok {
		return u.fail("brew upgrade", combined, fmt.Errorf("failure marker in output: %s", line))
	}

	summary := brewSummary(combined)
	if len(summary) == 0 {
		logger.Info("No updates found.\n")
	} else {
		for _, line := range summary {
			fmt.Println(line)
		}
	}
	logger.Success("Homebrew packages are up to date.\n")
	return nil
}

// brewSummary extracts the interesting part of brew's output: every section
// marker line ("==>") plus the line after it, with separator lines
// suppressed.
func brewSummary(output string) []string {
	lines := strings.Split(output, "\n")
	var summary []string
	for i, line := range lines {
		if !strings.Contains(line, "=>") {
			continue
		}
		summary = append(summary, strings.TrimSpace(line))
		if i+1 < len(lines) {
			next := strings.TrimSpace(lines[i+1])
			if next != "" && next != "--" && !strings.Contains(next, "=>") {
				summary = append(summary, next)
			}
		}
	}
	return summary
}

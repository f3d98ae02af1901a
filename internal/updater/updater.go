// Package updater implements the four update routines: Neovim plugins,
// Homebrew packages, zsh plugins, and the dotfiles repository. Each routine
// prints a section header, shells out through the runner with output
// captured to a scoped temp log, filters that output into a short summary,
// and returns an error on failure. No routine ever terminates the process:
// sequencing and exit codes are the dispatcher's job.
package updater

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fallrising/dotfiles/internal/config"
	"github.com/fallrising/dotfiles/internal/format"
	"github.com/fallrising/dotfiles/internal/logger"
)

// diagOut receives the full captured tool output on verbose failure paths.
// Tests replace it to inspect the dump.
var diagOut io.Writer = os.Stdout

// Updater runs the individual update routines against a loaded config.
type Updater struct {
	cfg     *config.Config
	verbose bool
}

// New creates an Updater. With verbose set, failure paths dump the full
// captured tool output instead of just the filtered summary.
func New(cfg *config.Config, verbose bool) *Updater {
	return &Updater{cfg: cfg, verbose: verbose}
}

// fail reports a routine failure: the error itself, and in verbose mode the
// full captured output that led to it.
func (u *Updater) fail(what, output string, err error) error {
	logger.Error("[ERROR] %s failed: %v\n", what, err)
	if u.verbose && strings.TrimSpace(output) != "" {
		fmt.Fprintln(diagOut, strings.TrimSpace(output))
	}
	return fmt.Errorf("%s: %w", what, err)
}

// section prints a routine's title header.
func section(title string) {
	fmt.Println(format.Title(title))
}

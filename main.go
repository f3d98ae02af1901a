package main

import (
	"github.com/fallrising/dotfiles/cmd" // Import the cmd package which contains the CLI commands and execution logic
)

// main is the program entry point.
// It delegates to cmd.Execute() which handles command line argument parsing and execution.
//
// This design cleanly separates the CLI interface (cmd package) from main,
// allowing easier testing, extension, and reuse of the CLI commands.
//
// The dotfiles update tool is a personal-environment maintenance CLI that:
//   - Updates Neovim plugins by running the editor headless and letting its
//     plugin manager synchronize the installed plugin set
//   - Updates Homebrew packages with an update-then-upgrade pass
//   - Updates zsh plugins by pulling each registered plugin checkout
//   - Updates the dotfiles repository with a fast-forward-only pull, after
//     verifying the checkout sits on its primary branch
//
// Error handling strategy:
//   - No single update aborts the whole run: each routine reports its own
//     failure and `update all` continues with the remaining routines
//   - The process exits with a non-zero status when any routine failed,
//     ensuring the user is notified of problems
//
// Integration points:
//   - All real work is delegated to the orchestrated tools (brew, nvim, git);
//     this tool only sequences them, captures their output, and summarizes it
//   - A small JSON state file tracks when each routine last ran and whether
//     it succeeded, surfaced in debug output on subsequent runs
func main() {
	cmd.Execute()
}

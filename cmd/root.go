package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/fallrising/dotfiles/internal/logger"
)

// verbose indicates whether verbose diagnostic output should be enabled.
// It can be toggled via the `-v/--verbose` command-line flag.
var verbose bool

// configPath holds the path to the update.yaml configuration file.
// Empty means the default location under ~/.config/dotfiles.
var configPath string

// statePath holds the path to the JSON state file.
// Empty means the default location under ~/.local/state/dotfiles.
var statePath string

// exitFunc is called with the process exit code when a command fails.
// It is a variable so tests can intercept the exit instead of dying.
var exitFunc = os.Exit

// rootCmd is the base command for the `update` CLI tool.
// Invoked without a subcommand it prints usage and exits zero.
var rootCmd = &cobra.Command{
	Use:   "update",
	Short: "Personal environment update tool",
	Long: `Update refreshes the pieces of a personal development environment:
Neovim plugins, Homebrew packages, zsh plugins, and the dotfiles repository.

Each subcommand shells out to the corresponding tool, captures its output,
and prints a short summary of what changed.`,

	// PersistentPreRun is a hook that runs before any subcommand.
	// Here, we initialize the logger based on the verbose flag.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(verbose)
	},
}

// Execute parses the command line and runs the selected subcommand.
// Any failure (unknown subcommand, flag error, or a routine error) exits
// with status 1; help and a bare invocation exit zero.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		exitFunc(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose diagnostic output on failure paths")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to update.yaml (default ~/.config/dotfiles/update.yaml)")
	rootCmd.PersistentFlags().StringVar(&statePath, "state", "", "Path to the state file (default ~/.local/state/dotfiles/state.json)")
}

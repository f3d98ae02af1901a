package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fallrising/dotfiles/internal/config"
	"github.com/fallrising/dotfiles/internal/logger"
	"github.com/fallrising/dotfiles/internal/state"
	"github.com/fallrising/dotfiles/internal/updater"
)

// nvimCmd updates the Neovim plugin set.
var nvimCmd = &cobra.Command{
	Use:          "nvim",
	Aliases:      []string{"vim"},
	Short:        "Update Neovim plugins",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRoutine("nvim", (*updater.Updater).Nvim)
	},
}

// brewCmd updates Homebrew packages.
var brewCmd = &cobra.Command{
	Use:          "brew",
	Aliases:      []string{"homebrew"},
	Short:        "Update Homebrew packages",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRoutine("brew", (*updater.Updater).Brew)
	},
}

// zshCmd updates the registered zsh plugins.
var zshCmd = &cobra.Command{
	Use:          "zsh",
	Short:        "Update zsh plugins",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRoutine("zsh", (*updater.Updater).Zsh)
	},
}

// dotfilesCmd updates the dotfiles repository.
var dotfilesCmd = &cobra.Command{
	Use:          "dotfiles",
	Short:        "Update the dotfiles repository",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRoutine("dotfiles", (*updater.Updater).Dotfiles)
	},
}

// allCmd runs every routine in a fixed order. A failing routine is reported
// and the remaining routines still run; the command fails if any did.
var allCmd = &cobra.Command{
	Use:          "all",
	Short:        "Run all updates: nvim, brew, zsh, then dotfiles",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		u, st, path, err := setup()
		if err != nil {
			return err
		}

		steps := []struct {
			name string
			fn   func(*updater.Updater) error
		}{
			{"nvim", (*updater.Updater).Nvim},
			{"brew", (*updater.Updater).Brew},
			{"zsh", (*updater.Updater).Zsh},
			{"dotfiles", (*updater.Updater).Dotfiles},
		}

		var failed []string
		for _, step := range steps {
			reportLastRun(st, step.name)
			err := step.fn(u)
			st.Record(step.name, err)
			if err != nil {
				logger.Error("[ERROR] %s update failed: %v\n", step.name, err)
				failed = append(failed, step.name)
			}
			fmt.Println()
		}
		state.Save(path, st)

		if len(failed) > 0 {
			return fmt.Errorf("%d of %d updates failed (%s)", len(failed), len(steps), strings.Join(failed, ", "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(nvimCmd)
	rootCmd.AddCommand(brewCmd)
	rootCmd.AddCommand(zshCmd)
	rootCmd.AddCommand(dotfilesCmd)
	rootCmd.AddCommand(allCmd)
}

// setup loads the config and state shared by every subcommand and builds
// the updater. The resolved state path is returned so the caller can save
// the state back after running.
func setup() (*updater.Updater, *state.State, string, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, "", err
	}
	path := statePath
	if path == "" {
		path = state.DefaultPath()
	}
	st := state.Load(path)
	return updater.New(cfg, verbose), st, path, nil
}

// runRoutine executes a single named routine, records its outcome in the
// state file, and returns the routine's error for Execute to turn into the
// process exit code.
func runRoutine(name string, fn func(*updater.Updater) error) error {
	u, st, path, err := setup()
	if err != nil {
		return err
	}
	reportLastRun(st, name)
	err = fn(u)
	st.Record(name, err)
	state.Save(path, st)
	return err
}

// reportLastRun surfaces the previous run of a routine in debug output.
func reportLastRun(st *state.State, name string) {
	if prev, ok := st.Routines[name]; ok {
		outcome := "succeeded"
		if !prev.Success {
			outcome = "failed"
		}
		logger.Debug("[DEBUG] %s last ran %s (%s)\n", name, prev.LastRun.Format("2006-01-02 15:04"), outcome)
	}
}

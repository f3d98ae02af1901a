package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fallrising/dotfiles/internal/runner"
	"github.com/fallrising/dotfiles/internal/state"
)

// stubCall records one stubbed external invocation: the executable name and
// the working directory it was given.
type stubCall struct {
	name string
	dir  string
	args string
}

// stubExternals replaces runner.Run and runner.Spin with canned responses
// that simulate a fully up-to-date environment, recording the call order.
func stubExternals(t *testing.T) *[]stubCall {
	t.Helper()
	oldRun := runner.Run
	oldSpin := runner.Spin
	calls := &[]stubCall{}

	respond := func(dir, name string, args []string) (runner.Result, error) {
		*calls = append(*calls, stubCall{name: name, dir: dir, args: strings.Join(args, " ")})
		if name == "git" && strings.HasPrefix(strings.Join(args, " "), "rev-parse --abbrev-ref") {
			return runner.Result{Output: "main\n"}, nil
		}
		if name == "git" && args[0] == "rev-parse" {
			return runner.Result{Output: "abc123\n"}, nil
		}
		return runner.Result{}, nil
	}

	runner.Run = func(dir, name string, args ...string) (runner.Result, error) {
		return respond(dir, name, args)
	}
	runner.Spin = func(title, dir, name string, args ...string) ([]byte, error) {
		res, err := respond(dir, name, args)
		return []byte(res.Output), err
	}
	t.Cleanup(func() {
		runner.Run = oldRun
		runner.Spin = oldSpin
	})
	return calls
}

// writeTestConfig writes an update.yaml pointing at temp locations and
// returns its path together with the dotfiles and plugin directories.
func writeTestConfig(t *testing.T) (cfgPath, dotfilesDir, pluginDir string) {
	t.Helper()
	base := t.TempDir()
	dotfilesDir = filepath.Join(base, "dotfiles")
	pluginDir = filepath.Join(base, "plugin-one")

	cfgPath = filepath.Join(base, "update.yaml")
	cfg := fmt.Sprintf(`dotfiles:
  path: %s
  branch: main
  remote: origin
zsh:
  plugins:
    - name: plugin-one
      path: %s
`, dotfilesDir, pluginDir)
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0644))
	return cfgPath, dotfilesDir, pluginDir
}

// TestAllOrder verifies `update all` runs the routines in the fixed order:
// editor plugins, package manager, shell plugins, then the dotfiles
// repository — and records every outcome in the state file.
func TestAllOrder(t *testing.T) {
	calls := stubExternals(t)
	cfgPath, dotfilesDir, pluginDir := writeTestConfig(t)
	statePath := filepath.Join(t.TempDir(), "state.json")

	_, err := execRoot(t, "all", "--config", cfgPath, "--state", statePath)
	require.NoError(t, err)

	firstMatch := func(pred func(stubCall) bool) int {
		for i, c := range *calls {
			if pred(c) {
				return i
			}
		}
		return -1
	}

	nvimIdx := firstMatch(func(c stubCall) bool { return c.name == "nvim" })
	brewIdx := firstMatch(func(c stubCall) bool { return c.name == "brew" })
	zshIdx := firstMatch(func(c stubCall) bool { return c.dir == pluginDir })
	dotIdx := firstMatch(func(c stubCall) bool { return c.dir == dotfilesDir })

	require.NotEqual(t, -1, nvimIdx, "nvim should run")
	require.NotEqual(t, -1, brewIdx, "brew should run")
	require.NotEqual(t, -1, zshIdx, "zsh plugins should run")
	require.NotEqual(t, -1, dotIdx, "dotfiles should run")

	assert.Less(t, nvimIdx, brewIdx, "editor before package manager")
	assert.Less(t, brewIdx, zshIdx, "package manager before shell plugins")
	assert.Less(t, zshIdx, dotIdx, "shell plugins before dotfiles")

	st := state.Load(statePath)
	require.Len(t, st.Routines, 4)
	for _, name := range []string{"nvim", "brew", "zsh", "dotfiles"} {
		assert.True(t, st.Routines[name].Success, "%s should be recorded successful", name)
	}
}

// TestAllContinuesOnFailure verifies a failing routine is reported without
// aborting the rest of the batch, and the command still errors.
func TestAllContinuesOnFailure(t *testing.T) {
	oldRun := runner.Run
	oldSpin := runner.Spin
	t.Cleanup(func() {
		runner.Run = oldRun
		runner.Spin = oldSpin
	})

	var brewRan bool
	runner.Run = func(dir, name string, args ...string) (runner.Result, error) {
		switch name {
		case "nvim":
			return runner.Result{Output: "ERROR: spec invalid"}, nil
		case "brew":
			brewRan = true
			return runner.Result{}, nil
		case "git":
			if strings.Join(args, " ") == "rev-parse --abbrev-ref HEAD" {
				return runner.Result{Output: "main\n"}, nil
			}
			return runner.Result{Output: "abc123\n"}, nil
		}
		return runner.Result{}, nil
	}
	runner.Spin = func(title, dir, name string, args ...string) ([]byte, error) {
		return []byte("Already up to date.\n"), nil
	}

	cfgPath, _, _ := writeTestConfig(t)
	statePath := filepath.Join(t.TempDir(), "state.json")

	_, err := execRoot(t, "all", "--config", cfgPath, "--state", statePath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 4 updates failed")
	assert.Contains(t, err.Error(), "nvim")
	assert.True(t, brewRan, "brew should still run after nvim fails")

	st := state.Load(statePath)
	assert.False(t, st.Routines["nvim"].Success)
	assert.True(t, st.Routines["brew"].Success)
}

// TestSingleRoutineRecordsState verifies a single subcommand run lands in
// the state file.
func TestSingleRoutineRecordsState(t *testing.T) {
	stubExternals(t)
	cfgPath, _, _ := writeTestConfig(t)
	statePath := filepath.Join(t.TempDir(), "state.json")

	_, err := execRoot(t, "brew", "--config", cfgPath, "--state", statePath)
	require.NoError(t, err)

	st := state.Load(statePath)
	require.Contains(t, st.Routines, "brew")
	assert.True(t, st.Routines["brew"].Success)
}

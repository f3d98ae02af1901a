// Package runner executes the external commands the update routines
// orchestrate. Each invocation captures combined stdout/stderr into a scoped
// temporary log file that is guaranteed removed before the call returns,
// whatever the outcome. The command's exit status is the primary failure
// signal; callers may additionally scan the captured output for known
// failure markers, since some of the orchestrated tools exit zero after
// partial failures.
package runner

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/fallrising/dotfiles/internal/logger"
	"github.com/fallrising/dotfiles/internal/spinner"
)

// Result holds the captured outcome of one external command.
type Result struct {
	Output   string // Combined stdout and stderr
	ExitCode int    // Process exit status, 0 on success
}

// RunFunc is the signature for command execution. dir is the working
// directory for the command; an empty dir runs in the current directory.
type RunFunc func(dir, name string, args ...string) (Result, error)

// SpinFunc is the signature for spinner-wrapped command execution: the
// command runs with its own output captured while a titled progress spinner
// animates, and the combined output is returned afterwards.
type SpinFunc func(title, dir, name string, args ...string) ([]byte, error)

// Run is the command execution function used throughout the application.
// It is a variable so tests can replace it with a stub.
var Run RunFunc = run

// Spin runs a command under a progress spinner instead of a captured temp
// log. Also a variable for test stubbing.
var Spin SpinFunc = spinner.WithCommand

// run executes a single external command with its combined output captured
// to a scoped temp log file. The temp file is removed on every return path.
// There is no timeout: the routines block until the wrapped tool completes.
func run(dir, name string, args ...string) (Result, error) {
	tmp, err := os.CreateTemp("", "dotfiles-update-*.log")
	if err != nil {
		return Result{}, fmt.Errorf("failed to create temp log: %w", err)
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	logger.Debug("[DEBUG] Running %s %s (dir=%q, log=%s)\n", name, strings.Join(args, " "), dir, tmp.Name())

	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdout = tmp
	cmd.Stderr = tmp

	runErr := cmd.Run()

	// Read the captured log back before the deferred cleanup removes it.
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return Result{}, fmt.Errorf("failed to rewind temp log: %w", err)
	}
	data, err := io.ReadAll(tmp)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read temp log: %w", err)
	}

	res := Result{Output: string(data)}
	if runErr != nil {
		if exitErr, ok := runErr.(*exec.ExitError); ok {
			res.ExitCode = exitErr.ExitCode()
			return res, fmt.Errorf("%s exited with status %d", name, res.ExitCode)
		}
		// Command never started (not installed, permission denied, ...).
		return res, fmt.Errorf("failed to run %s: %w", name, runErr)
	}
	return res, nil
}

// FindMarker returns the first output line containing any of the given
// marker substrings. Markers are matched case-sensitively: the routines'
// marker lists already spell out the variants they care about.
func FindMarker(output string, markers []string) (string, bool) {
	for _, line := range strings.Split(output, "\n") {
		for _, marker := range markers {
			if strings.Contains(line, marker) {
				return strings.TrimSpace(line), true
			}
		}
	}
	return "", false
}

// FilterLinesFold returns the output lines containing any of the given
// substrings, compared case-insensitively. Used by the routines to pick the
// "updated"/"installed"/"removed" lines out of a captured log.
func FilterLinesFold(output string, subs ...string) []string {
	var matched []string
	for _, line := range strings.Split(output, "\n") {
		lower := strings.ToLower(line)
		for _, sub := range subs {
			if strings.Contains(lower, strings.ToLower(sub)) {
				matched = append(matched, strings.TrimSpace(line))
				break
			}
		}
	}
	return matched
}

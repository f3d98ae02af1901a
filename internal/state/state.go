package state

import (
	"encoding/json" // For JSON encoding and decoding of the state file
	"os"            // For file system operations like reading and writing files
	"path/filepath"
	"time"

	"github.com/fallrising/dotfiles/internal/logger" // Custom logger package for logging errors and debug info
)

// RoutineState records the outcome of the most recent run of one update
// routine (nvim, brew, zsh, or dotfiles).
type RoutineState struct {
	LastRun time.Time `json:"last_run"`         // When the routine last ran
	Success bool      `json:"success"`          // Whether that run succeeded
	Detail  string    `json:"detail,omitempty"` // Error text of a failed run, empty on success
}

// State holds the entire saved state for the update tool: a map from routine
// name to the result of its last run. It exists so subsequent runs can tell
// the user when each routine last succeeded.
type State struct {
	Routines map[string]RoutineState `json:"routines"`
}

// DefaultPath returns the default state file location under the user's state
// directory. Falls back to a relative path if the home directory cannot be
// resolved.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "state.json"
	}
	return filepath.Join(home, ".local", "state", "dotfiles", "state.json")
}

// Load loads the saved state from a JSON file at the given path.
// If the file does not exist or cannot be read, it returns a new empty State.
// It ensures the Routines map is non-nil to prevent nil map writes.
func Load(path string) *State {
	file, err := os.ReadFile(path)
	if err != nil {
		// File missing or unreadable: start from an empty initialized state.
		return &State{Routines: make(map[string]RoutineState)}
	}

	var st State
	_ = json.Unmarshal(file, &st)

	if st.Routines == nil {
		st.Routines = make(map[string]RoutineState)
	}
	return &st
}

// Save writes the given State to a JSON file at the given path, creating
// parent directories as needed. It pretty-prints the JSON with indentation
// for readability. Errors during marshalling or writing are logged but not
// propagated: a broken state file must never fail an otherwise good update.
func Save(path string, st *State) {
	file, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		logger.Error("[ERROR] Failed to marshal state: %v\n", err)
		return
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		logger.Error("[ERROR] Failed to create state directory for %s: %v\n", path, err)
		return
	}

	logger.Debug("[DEBUG] Writing state to %s\n", path)

	if err := os.WriteFile(path, file, 0644); err != nil {
		logger.Error("[ERROR] Failed to write state file %s: %v\n", path, err)
	}
}

// Record stores the outcome of one routine run. A nil err marks success and
// clears any previous failure detail.
func (s *State) Record(routine string, err error) {
	rs := RoutineState{LastRun: time.Now(), Success: err == nil}
	if err != nil {
		rs.Detail = err.Error()
	}
	s.Routines[routine] = rs
}

package spinner

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drainModel replaces runModel with a stub that just waits for the action
// to finish, so tests never start a terminal program.
func drainModel(t *testing.T) {
	t.Helper()
	old := runModel
	runModel = func(m model) error {
		<-m.done
		return nil
	}
	t.Cleanup(func() { runModel = old })
}

// TestModel tests the spinner tea.Model in isolation.
//
// It verifies:
//   - ticks advance and wrap the animation frame
//   - the done message quits the program
//   - ctrl+c interrupts rather than quietly quitting
//   - the view shows the current frame and title
func TestModel(t *testing.T) {
	done := make(chan struct{})
	m := newModel("Updating plugin", done)

	t.Run("tick advances frame", func(t *testing.T) {
		next, cmd := m.Update(tickMsg{})
		assert.NotNil(t, cmd)
		assert.Equal(t, 1, next.(model).frame)

		wrapped := m
		wrapped.frame = len(m.frames) - 1
		next, _ = wrapped.Update(tickMsg{})
		assert.Equal(t, 0, next.(model).frame)
	})

	t.Run("done quits", func(t *testing.T) {
		_, cmd := m.Update(doneMsg{})
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	})

	t.Run("ctrl+c interrupts", func(t *testing.T) {
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		require.NotNil(t, cmd)
		assert.IsType(t, tea.InterruptMsg{}, cmd())
	})

	t.Run("view renders title", func(t *testing.T) {
		assert.Contains(t, m.View(), "Updating plugin")
	})
}

// TestWithAction verifies the action runs to completion before return, even
// when the program exits ahead of it.
func TestWithAction(t *testing.T) {
	t.Run("action runs to completion", func(t *testing.T) {
		drainModel(t)

		ran := false
		err := WithAction("working", func() { ran = true })
		require.NoError(t, err)
		assert.True(t, ran)
	})

	t.Run("waits out a slow action after the program exits", func(t *testing.T) {
		old := runModel
		runModel = func(model) error { return nil }
		t.Cleanup(func() { runModel = old })

		ran := false
		err := WithAction("working", func() {
			time.Sleep(50 * time.Millisecond)
			ran = true
		})
		require.NoError(t, err)
		assert.True(t, ran)
	})
}

// TestWithCommand verifies output and errors of the wrapped command are
// forwarded to the caller.
func TestWithCommand(t *testing.T) {
	drainModel(t)

	t.Run("forwards output", func(t *testing.T) {
		out, err := WithCommand("working", "", "sh", "-c", "echo spun")
		require.NoError(t, err)
		assert.Contains(t, string(out), "spun")
	})

	t.Run("forwards failure", func(t *testing.T) {
		_, err := WithCommand("working", "", "sh", "-c", "exit 7")
		assert.Error(t, err)
	})

	t.Run("runs in dir", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "marker.txt"), []byte("x"), 0644))

		out, err := WithCommand("working", dir, "ls")
		require.NoError(t, err)
		assert.Contains(t, string(out), "marker.txt")
	})
}

// TestWithCommandEarlyExit verifies a program that stops before the command
// finishes kills the command and surfaces an error instead of an empty
// success.
func TestWithCommandEarlyExit(t *testing.T) {
	t.Run("program failure kills the command", func(t *testing.T) {
		old := runModel
		runModel = func(model) error { return errors.New("terminal went away") }
		t.Cleanup(func() { runModel = old })

		out, err := WithCommand("working", "", "sh", "-c", "sleep 5; echo finished")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "terminal went away")
		assert.NotContains(t, string(out), "finished")
	})

	t.Run("quiet program exit is not a command success", func(t *testing.T) {
		old := runModel
		runModel = func(model) error { return nil }
		t.Cleanup(func() { runModel = old })

		out, err := WithCommand("working", "", "sh", "-c", "sleep 5; echo finished")
		require.Error(t, err, "a command cut short must not report success")
		assert.NotContains(t, string(out), "finished")
	})
}

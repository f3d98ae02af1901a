// Package spinner renders a progress spinner while a long-running external
// command executes, forwarding the wrapped command's output and exit error
// to the caller once it completes.
package spinner

import (
	"context"
	"os/exec"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	frameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	titleStyle = lipgloss.NewStyle()
)

// model implements tea.Model: a braille spinner next to a title, quitting
// when the watched channel closes.
type model struct {
	title  string
	frames []string
	frame  int
	done   <-chan struct{}
}

// tickMsg advances the spinner animation.
type tickMsg struct{}

// doneMsg is sent when the wrapped action completes.
type doneMsg struct{}

func newModel(title string, done <-chan struct{}) model {
	return model{
		title:  title,
		frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		done:   done,
	}
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return tea.Batch(m.tick(), waitDone(m.done))
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.frame = (m.frame + 1) % len(m.frames)
		return m, m.tick()
	case doneMsg:
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Interrupt
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m model) View() string {
	return frameStyle.Render(m.frames[m.frame]) + " " + titleStyle.Render(m.title)
}

// tick schedules the next animation frame.
func (m model) tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// waitDone blocks until the action finishes, then stops the program.
func waitDone(done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-done
		return doneMsg{}
	}
}

// runModel runs the bubbletea program for a spinner model. It is a variable
// so tests can replace it without driving a real terminal program.
var runModel = func(m model) error {
	_, err := tea.NewProgram(m).Run()
	return err
}

// WithAction displays a spinner while running an action function. The
// spinner stops when the action returns. The action is always waited for,
// even when the program exits first: returning earlier would leave the
// goroutine writing to state the caller already considers settled.
func WithAction(title string, action func()) error {
	done := make(chan struct{})
	go func() {
		action()
		close(done)
	}()
	err := runModel(newModel(title, done))
	<-done
	return err
}

// WithCommand displays a spinner while running an external command in the
// given working directory. It returns the command's combined output and any
// execution error, exactly as exec reported them. If the program stops
// before the command completes (ctrl+c, terminal failure) the command is
// killed and the stop is reported as the error, never as success.
func WithCommand(title, dir, name string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var output []byte
	var cmdErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		cmd := exec.CommandContext(ctx, name, args...)
		if dir != "" {
			cmd.Dir = dir
		}
		output, cmdErr = cmd.CombinedOutput()
	}()

	err := runModel(newModel(title, done))
	cancel()
	<-done
	if err != nil {
		return output, err
	}
	return output, cmdErr
}

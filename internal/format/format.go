// Package format holds the lipgloss styles shared by the update routines:
// section titles and colored key/value pairs for the per-item summaries.
package format

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	ruleStyle  = lipgloss.NewStyle().Faint(true)
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
)

// Title renders a section header with an underline rule matching its width,
// printed by every routine before it starts shelling out.
func Title(s string) string {
	return titleStyle.Render(s) + "\n" + ruleStyle.Render(strings.Repeat("─", utf8.RuneCountInString(s)))
}

// Key renders the name part of a key/value summary line (e.g. a plugin name).
func Key(s string) string {
	return keyStyle.Render(s)
}

// Value renders the value part of a key/value summary line.
func Value(s string) string {
	return valueStyle.Render(s)
}

// KeyValue renders "key: value" with both parts styled.
func KeyValue(key, value string) string {
	return Key(key) + ": " + Value(value)
}

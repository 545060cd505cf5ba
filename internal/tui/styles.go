package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Colors defines the color palette for the TUI.
var Colors = struct {
	Primary lipgloss.Color
	Muted   lipgloss.Color
	Text    lipgloss.Color
	Warning lipgloss.Color
	Success lipgloss.Color
}{
	Primary: lipgloss.Color("#6C5CE7"), // Purple
	Muted:   lipgloss.Color("#636E72"), // Gray
	Text:    lipgloss.Color("#DFE6E9"), // Light gray
	Warning: lipgloss.Color("#FDCB6E"), // Yellow
	Success: lipgloss.Color("#00B894"), // Green
}

// Styles contains the lipgloss styles for the events browser.
type Styles struct {
	Header      lipgloss.Style
	Detail      lipgloss.Style
	DetailKey   lipgloss.Style
	Violation   lipgloss.Style
	Empty       lipgloss.Style
	Footer      lipgloss.Style
	TableHeader lipgloss.Style
	TableCell   lipgloss.Style
	Selected    lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary).
			MarginBottom(1),
		Detail: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Muted).
			Padding(0, 1).
			MarginTop(1),
		DetailKey: lipgloss.NewStyle().Foreground(Colors.Muted).Width(11),
		Violation: lipgloss.NewStyle().Foreground(Colors.Warning),
		Empty:     lipgloss.NewStyle().Foreground(Colors.Muted).Italic(true),
		Footer:    lipgloss.NewStyle().Foreground(Colors.Muted).MarginTop(1),
		TableHeader: lipgloss.NewStyle().
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(Colors.Muted).
			Padding(0, 1),
		TableCell: lipgloss.NewStyle().Foreground(Colors.Text).Padding(0, 1),
		Selected:  lipgloss.NewStyle().Bold(true).Foreground(Colors.Success),
	}
}

// tableStyles maps Styles onto the table component.
func (s Styles) tableStyles() table.Styles {
	ts := table.DefaultStyles()
	ts.Header = s.TableHeader
	ts.Cell = s.TableCell
	ts.Selected = s.Selected
	return ts
}

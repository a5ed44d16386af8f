// Package tui implements the interactive prompts and the copy status line of bmad-make.
package tui

import (
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

type (
	// Styles are bound to one output writer, so plain writers such as pipes receive no escape codes.
	Styles struct {
		Banner    lipgloss.Style
		Heading   lipgloss.Style
		Welcome   lipgloss.Style
		Info      lipgloss.Style
		Muted     lipgloss.Style
		Command   lipgloss.Style
		Success   lipgloss.Style
		Failure   lipgloss.Style
		Highlight lipgloss.Style
		Cursor    lipgloss.Style
	}

	selectKeyMap struct{}

	confirmKeyMap struct{}
)

var (
	keys = struct {
		up     key.Binding
		down   key.Binding
		choose key.Binding
		toggle key.Binding
		yes    key.Binding
		no     key.Binding
		help   key.Binding
		quit   key.Binding
	}{
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		choose: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "choose"),
		),
		toggle: key.NewBinding(
			key.WithKeys("left", "right", "h", "l", "tab"),
			key.WithHelp("←/→", "toggle"),
		),
		yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "yes"),
		),
		no: key.NewBinding(
			key.WithKeys("n", "N"),
			key.WithHelp("n", "no"),
		),
		help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}

	palette = struct {
		magenta lipgloss.Color
		yellow  lipgloss.Color
		cyan    lipgloss.Color
		blue    lipgloss.Color
		gray    lipgloss.Color
		green   lipgloss.Color
		red     lipgloss.Color
	}{
		magenta: lipgloss.Color("212"),
		yellow:  lipgloss.Color("184"),
		cyan:    lipgloss.Color("86"),
		blue:    lipgloss.Color("39"),
		gray:    lipgloss.Color("245"),
		green:   lipgloss.Color("78"),
		red:     lipgloss.Color("203"),
	}
)

func NewStyles(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)

	return Styles{
		Banner: r.NewStyle().
			Foreground(palette.cyan).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(palette.cyan).
			Padding(0, 4).
			Align(lipgloss.Center),
		Heading:   r.NewStyle().Foreground(palette.cyan),
		Welcome:   r.NewStyle().Foreground(palette.yellow),
		Info:      r.NewStyle().Foreground(palette.blue),
		Muted:     r.NewStyle().Foreground(palette.gray),
		Command:   r.NewStyle().Foreground(palette.yellow),
		Success:   r.NewStyle().Foreground(palette.green),
		Failure:   r.NewStyle().Foreground(palette.red),
		Highlight: r.NewStyle().Foreground(palette.magenta),
		Cursor:    r.NewStyle().Foreground(palette.magenta).Bold(true),
	}
}

func (selectKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.choose, keys.help, keys.quit}
}

func (selectKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{keys.up, keys.down, keys.choose},
		{keys.help, keys.quit},
	}
}

func (confirmKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.yes, keys.no, keys.toggle, keys.choose, keys.quit}
}

func (confirmKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{keys.yes, keys.no, keys.toggle},
		{keys.choose, keys.quit},
	}
}

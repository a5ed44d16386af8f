package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type confirmModel struct {
	styles   Styles
	help     help.Model
	prompt   string
	value    bool
	answered bool
	aborted  bool
}

func newConfirmModel(styles Styles, prompt string, defaultValue bool) confirmModel {
	return confirmModel{
		styles: styles,
		help:   help.New(),
		prompt: prompt,
		value:  defaultValue,
	}
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) option(label string, selected bool) string {
	if selected {
		return m.styles.Cursor.Render("[" + label + "]")
	}

	return m.styles.Muted.Render(" " + label + " ")
}

func (m confirmModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Success.Render("? "))
	b.WriteString(m.prompt)

	switch {
	case m.answered && m.value:
		b.WriteString(" " + m.styles.Info.Render("Yes") + "\n")

		return b.String()
	case m.answered:
		b.WriteString(" " + m.styles.Info.Render("No") + "\n")

		return b.String()
	case m.aborted:
		b.WriteRune('\n')

		return b.String()
	default:
	}

	b.WriteString("  ")
	b.WriteString(m.option("Yes", m.value))
	b.WriteString(" / ")
	b.WriteString(m.option("No", !m.value))
	b.WriteString("\n\n")
	b.WriteString(m.help.View(confirmKeyMap{}))
	b.WriteRune('\n')

	return b.String()
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.quit):
		m.aborted = true

		return m, tea.Quit
	case key.Matches(keyMsg, keys.yes):
		m.value = true
		m.answered = true

		return m, tea.Quit
	case key.Matches(keyMsg, keys.no):
		m.value = false
		m.answered = true

		return m, tea.Quit
	case key.Matches(keyMsg, keys.toggle):
		m.value = !m.value
	case key.Matches(keyMsg, keys.choose):
		m.answered = true

		return m, tea.Quit
	default:
	}

	return m, nil
}

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kxue43/bmad-make/installer"
)

type (
	typeItem struct {
		installer.InstallationType
		highlighted bool
	}

	selectModel struct {
		styles  Styles
		help    help.Model
		title   string
		items   []typeItem
		index   int
		chosen  bool
		aborted bool
	}
)

func newSelectModel(styles Styles, title string, types []installer.InstallationType) selectModel {
	m := selectModel{
		styles: styles,
		help:   help.New(),
		title:  title,
		items:  make([]typeItem, len(types)),
	}

	for i := range types {
		m.items[i] = typeItem{InstallationType: types[i]}
	}

	if len(m.items) > 0 {
		m.items[0].highlighted = true
	}

	return m
}

func (m selectModel) Selected() installer.InstallationType {
	return m.items[m.index].InstallationType
}

func (m selectModel) Init() tea.Cmd {
	return nil
}

func (m selectModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Success.Render("? "))
	b.WriteString(m.title)

	if m.chosen {
		b.WriteRune(' ')
		b.WriteString(m.styles.Info.Render(m.Selected().Name))
		b.WriteRune('\n')

		return b.String()
	}

	if m.aborted {
		b.WriteRune('\n')

		return b.String()
	}

	b.WriteString("\n\n")

	for i := range m.items {
		b.WriteString(m.itemView(m.items[i]))
	}

	b.WriteRune('\n')
	b.WriteString(m.help.View(selectKeyMap{}))
	b.WriteRune('\n')

	return b.String()
}

func (m selectModel) itemView(item typeItem) string {
	var b strings.Builder

	if item.highlighted {
		b.WriteString(m.styles.Cursor.Render("> "))
		b.WriteString(m.styles.Highlight.Render(item.Name))
	} else {
		b.WriteString("  ")
		b.WriteString(item.Name)
	}

	b.WriteString("\n    ")
	b.WriteString(m.styles.Muted.Render(item.Description))
	b.WriteRune('\n')

	return b.String()
}

func (m *selectModel) move(to int) {
	m.items[m.index].highlighted = false
	m.index = to
	m.items[m.index].highlighted = true
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.quit):
			m.aborted = true

			return m, tea.Quit
		case key.Matches(msg, keys.up):
			if m.index > 0 {
				m.move(m.index - 1)
			}
		case key.Matches(msg, keys.down):
			if m.index < len(m.items)-1 {
				m.move(m.index + 1)
			}
		case key.Matches(msg, keys.choose):
			m.chosen = true

			return m, tea.Quit
		case key.Matches(msg, keys.help):
			m.help.ShowAll = !m.help.ShowAll
		default:
		}
	}

	return m, nil
}

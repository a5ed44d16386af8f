package tui

import (
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kxue43/bmad-make/installer"
)

// ErrAborted is returned when the user leaves a prompt with Esc or Ctrl+C.
var ErrAborted = errors.New("prompt aborted by user")

// Prompter asks one question per bubbletea program. A nil In reads from the process's stdin.
type Prompter struct {
	In      io.Reader
	Out     io.Writer
	options []tea.ProgramOption
}

func NewPrompter(in io.Reader, out io.Writer, opts ...tea.ProgramOption) *Prompter {
	return &Prompter{In: in, Out: out, options: opts}
}

func (p *Prompter) run(m tea.Model) (tea.Model, error) {
	opts := make([]tea.ProgramOption, 0, len(p.options)+2)
	opts = append(opts, tea.WithOutput(p.Out))

	if p.In != nil {
		opts = append(opts, tea.WithInput(p.In))
	}

	opts = append(opts, p.options...)

	return tea.NewProgram(m, opts...).Run()
}

func (p *Prompter) SelectInstallationType(types []installer.InstallationType) (installer.InstallationType, error) {
	if len(types) == 0 {
		return installer.InstallationType{}, errors.New("no installation types to choose from")
	}

	final, err := p.run(newSelectModel(NewStyles(p.Out), "Choose the installation type:", types))
	if err != nil {
		return installer.InstallationType{}, fmt.Errorf("failed to run the installation type prompt: %w", err)
	}

	m, ok := final.(selectModel)
	if !ok || m.aborted || !m.chosen {
		return installer.InstallationType{}, ErrAborted
	}

	return m.Selected(), nil
}

func (p *Prompter) Confirm(prompt string, defaultValue bool) (bool, error) {
	final, err := p.run(newConfirmModel(NewStyles(p.Out), prompt, defaultValue))
	if err != nil {
		return false, fmt.Errorf("failed to run the confirmation prompt: %w", err)
	}

	m, ok := final.(confirmModel)
	if !ok || m.aborted || !m.answered {
		return false, ErrAborted
	}

	return m.value, nil
}

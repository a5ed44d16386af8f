// Package workflow drives one guided installation: pick a type, confirm it, copy it, explain what to do next.
package workflow

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/kxue43/bmad-make/installer"
	"github.com/kxue43/bmad-make/tui"
)

const (
	ExitOK      = 0
	ExitFailure = 1
)

type (
	Prompter interface {
		SelectInstallationType(types []installer.InstallationType) (installer.InstallationType, error)
		Confirm(prompt string, defaultValue bool) (bool, error)
	}

	Installer interface {
		Install(t installer.InstallationType, targetDir string) ([]string, error)
	}

	Workflow struct {
		prompter  Prompter
		installer Installer
		types     []installer.InstallationType
		targetDir string
		out       io.Writer
		errOut    io.Writer
		styles    tui.Styles
		errStyles tui.Styles
	}

	// UnexpectedError wraps a panic recovered from the installation.
	UnexpectedError struct {
		Value any
	}
)

var errCancelled = errors.New("installation cancelled by the user")

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("unexpected error: %v", e.Value)
}

func New(p Prompter, i Installer, types []installer.InstallationType, targetDir string, out, errOut io.Writer) *Workflow {
	return &Workflow{
		prompter:  p,
		installer: i,
		types:     types,
		targetDir: targetDir,
		out:       out,
		errOut:    errOut,
		styles:    tui.NewStyles(out),
		errStyles: tui.NewStyles(errOut),
	}
}

// Run performs the installation and returns the process exit status.
// Declining the confirmation is a successful no-op.
func (w *Workflow) Run() int {
	err := w.guard()

	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, errCancelled):
		w.println(w.styles.Failure.Render("❌ Installation cancelled by the user."))

		return ExitOK
	default:
		_, _ = fmt.Fprintln(w.errOut, "\n"+w.errStyles.Failure.Render("❌ Installation failed:")+" "+err.Error())

		return ExitFailure
	}
}

func (w *Workflow) guard() (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = &UnexpectedError{Value: v}
		}
	}()

	return w.run()
}

func (w *Workflow) run() error {
	w.banner()

	chosen, err := w.selectInstallationType()
	if err != nil {
		return err
	}

	s := w.styles

	w.println("\n" + s.Info.Render("📋 Selected type: "+chosen.Name))
	w.println(s.Muted.Render("📝 "+chosen.Description) + "\n")

	ok, err := w.confirm("Confirm the installation of this type?", true)
	if err != nil {
		return err
	}

	if !ok {
		return errCancelled
	}

	manifest, err := w.installer.Install(chosen, w.targetDir)
	if err != nil {
		return err
	}

	w.printManifest(manifest)
	w.printNextSteps(chosen)

	return nil
}

func (w *Workflow) selectInstallationType() (installer.InstallationType, error) {
	t, err := w.prompter.SelectInstallationType(w.types)
	if errors.Is(err, tui.ErrAborted) {
		return t, errCancelled
	}

	return t, err
}

func (w *Workflow) confirm(prompt string, defaultValue bool) (bool, error) {
	ok, err := w.prompter.Confirm(prompt, defaultValue)
	if errors.Is(err, tui.ErrAborted) {
		return false, errCancelled
	}

	return ok, err
}

func (w *Workflow) println(s string) {
	_, _ = fmt.Fprintln(w.out, s)
}

func (w *Workflow) banner() {
	s := w.styles

	w.println(s.Banner.Render("BMAD-Make\nCLI tool for BMAD-Method projects"))
	w.println(s.Welcome.Render("🚀 Welcome to BMAD-Make!"))
	w.println(s.Muted.Render("This tool will set up your project with the BMAD-Method.") + "\n")
	w.println(s.Info.Render("📁 Installing into directory: " + filepath.Base(w.targetDir)))
}

func (w *Workflow) printManifest(files []string) {
	s := w.styles

	w.println("\n" + s.Success.Render("📁 Installed files:"))

	for _, f := range files {
		w.println(s.Muted.Render("   ✓ " + f))
	}
}

func (w *Workflow) printNextSteps(t installer.InstallationType) {
	s := w.styles

	w.println("\n" + s.Success.Render("🎉 Installation completed successfully!"))
	w.println("\n" + s.Heading.Render("📖 Next steps:"))

	var b strings.Builder

	for i, step := range t.NextSteps {
		b.Reset()

		_, _ = fmt.Fprintf(&b, "%d. %s", i+1, step.Label)
		b.WriteString(s.Command.Render(step.Command))

		if step.Hint != "" {
			b.WriteString(s.Muted.Render(" (" + step.Hint + ")"))
		}

		w.println(b.String())
	}

	w.println("\n" + s.Muted.Render("💡 For more information, see README.md"))
}

// Command debug-tui runs the installation prompts without copying anything and dumps
// every message bubbletea delivers to messages.log.
package main

import (
	"errors"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/davecgh/go-spew/spew"

	"github.com/kxue43/bmad-make/installer"
	"github.com/kxue43/bmad-make/tui"
)

func dumpFilter(dump io.Writer) func(tea.Model, tea.Msg) tea.Msg {
	return func(_ tea.Model, msg tea.Msg) tea.Msg {
		spew.Fdump(dump, msg)

		return msg
	}
}

func main() {
	dump, err := os.OpenFile("messages.log", os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		log.Fatal("failed to open log file messages.log")
	}

	defer func() { _ = dump.Close() }()

	types, err := installer.LoadCatalog()
	if err != nil {
		log.Fatal(err)
	}

	p := tui.NewPrompter(os.Stdin, os.Stdout, tea.WithFilter(dumpFilter(dump)))

	chosen, err := p.SelectInstallationType(types)
	if errors.Is(err, tui.ErrAborted) {
		spew.Fdump(dump, "==> aborted")

		return
	} else if err != nil {
		log.Fatal(err)
	}

	spew.Fdump(dump, "==> ", chosen)

	ok, err := p.Confirm("Confirm the installation of this type?", true)
	if err != nil && !errors.Is(err, tui.ErrAborted) {
		log.Fatal(err)
	}

	spew.Fdump(dump, "==> ", ok, err)
}

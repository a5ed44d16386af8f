package main

import (
	"log"
	"os"

	"github.com/alecthomas/kong"

	"github.com/kxue43/bmad-make/installer"
	"github.com/kxue43/bmad-make/tui"
	"github.com/kxue43/bmad-make/version"
	"github.com/kxue43/bmad-make/workflow"
)

var logger = log.New(os.Stderr, "bmad-make: ", 0)

type CLI struct {
	TemplateRoot string           `name:"template-root" env:"BMAD_MAKE_TEMPLATE_ROOT" hidden:"" type:"path" help:"Directory holding one template tree per installation type."`
	Version      kong.VersionFlag `name:"version" help:"Show version information and quit."`
}

func (c *CLI) Run() int {
	types, err := installer.LoadCatalog()
	if err != nil {
		logger.Print(err)

		return workflow.ExitFailure
	}

	root := c.TemplateRoot
	if root == "" {
		root, err = installer.DefaultRoot()
		if err != nil {
			logger.Print(err)

			return workflow.ExitFailure
		}
	}

	cwd, err := os.Getwd()
	if err != nil {
		logger.Printf("failed to get current working directory: %s", err)

		return workflow.ExitFailure
	}

	engine := installer.NewEngine(installer.Store{Root: root}, tui.NewStatusLine(os.Stdout))

	return workflow.New(tui.NewPrompter(os.Stdin, os.Stdout), engine, types, cwd, os.Stdout, os.Stderr).Run()
}

func main() {
	var cli CLI

	exitCode := 0

	defer func() { os.Exit(exitCode) }()

	kong.Parse(
		&cli,
		kong.Name("bmad-make"),
		kong.Description("Install a BMAD-Method project scaffold into the current directory."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": version.FromBuildInfo()},
	)

	exitCode = cli.Run()
}

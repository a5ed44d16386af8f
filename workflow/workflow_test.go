package workflow

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kxue43/bmad-make/installer"
	"github.com/kxue43/bmad-make/tui"
)

type (
	scriptedPrompter struct {
		selectID   string
		selectErr  error
		confirm    bool
		confirmErr error
		prompts    []string
		defaults   []bool
	}

	spyInstaller struct {
		calls int
		panic any
	}
)

func (p *scriptedPrompter) SelectInstallationType(types []installer.InstallationType) (installer.InstallationType, error) {
	if p.selectErr != nil {
		return installer.InstallationType{}, p.selectErr
	}

	t, ok := installer.Lookup(types, p.selectID)
	if !ok {
		// Stand-in for a type whose template directory was never shipped.
		t = installer.InstallationType{ID: p.selectID, Name: p.selectID}
	}

	return t, nil
}

func (p *scriptedPrompter) Confirm(prompt string, defaultValue bool) (bool, error) {
	p.prompts = append(p.prompts, prompt)
	p.defaults = append(p.defaults, defaultValue)

	return p.confirm, p.confirmErr
}

func (s *spyInstaller) Install(installer.InstallationType, string) ([]string, error) {
	s.calls++

	if s.panic != nil {
		panic(s.panic)
	}

	return nil, nil
}

type env struct {
	types  []installer.InstallationType
	store  installer.Store
	tree   map[string]string
	target string
	out    bytes.Buffer
	errOut bytes.Buffer
}

func newEnv(t *testing.T) *env {
	t.Helper()

	types, err := installer.LoadCatalog()
	require.NoError(t, err)

	contents, err := os.ReadFile(filepath.Join("testdata", "template.yaml"))
	require.NoError(t, err)

	e := &env{types: types, target: filepath.Join(t.TempDir(), "my-project")}

	require.NoError(t, yaml.Unmarshal(contents, &e.tree))
	require.NoError(t, os.Mkdir(e.target, 0o750))

	e.store = installer.Store{Root: t.TempDir()}

	for _, typ := range types {
		for name, body := range e.tree {
			path := filepath.Join(e.store.SourceDir(typ), filepath.FromSlash(name))

			require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
			require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
		}
	}

	return e
}

func (e *env) run(p Prompter, i Installer) int {
	return New(p, i, e.types, e.target, &e.out, &e.errOut).Run()
}

func (e *env) engine() *installer.Engine {
	return installer.NewEngine(e.store, tui.NewStatusLine(&e.out))
}

func (e *env) targetFiles(t *testing.T) []string {
	t.Helper()

	files, err := installer.ListCopiedFiles(e.target)
	require.NoError(t, err)

	return files
}

func TestRunInstallsIntoEmptyTarget(t *testing.T) {
	e := newEnv(t)
	p := &scriptedPrompter{selectID: "bmad-brownfield", confirm: true}

	require.Equal(t, ExitOK, e.run(p, e.engine()))

	for name, body := range e.tree {
		got, err := os.ReadFile(filepath.Join(e.target, filepath.FromSlash(name)))
		require.NoError(t, err)
		assert.Equal(t, body, string(got))
	}

	out := e.out.String()

	assert.Contains(t, out, "BMAD-Make")
	assert.Contains(t, out, "Installing into directory: my-project")
	assert.Contains(t, out, "Selected type: BMAD Brownfield")
	assert.Contains(t, out, "Copying: README.md")
	assert.Contains(t, out, "Files copied successfully!")
	assert.Contains(t, out, "1. Read the guide: guia-bmad-method-projetos-existentes.md")
	assert.Contains(t, out, "4. Or run: make brownfield-flow (full flow)")
	assert.NotContains(t, out, "Makefile.greenfield")
	assert.Empty(t, e.errOut.String())

	readme := strings.Index(out, "✓ README.md")
	guide := strings.Index(out, "✓ "+filepath.Join("docs", "guide.md"))

	require.NotEqual(t, -1, readme)
	require.NotEqual(t, -1, guide)
	assert.Less(t, readme, guide)

	assert.Equal(t, []string{"Confirm the installation of this type?"}, p.prompts)
	assert.Equal(t, []bool{true}, p.defaults)
}

func TestRunPrintsTypeSpecificNextSteps(t *testing.T) {
	e := newEnv(t)

	require.Equal(t, ExitOK, e.run(&scriptedPrompter{selectID: "bmad-greenfield", confirm: true}, e.engine()))

	out := e.out.String()

	assert.Contains(t, out, "Selected type: BMAD Greenfield")
	assert.Contains(t, out, "5. To start from ideas: make brainstorm -f Makefile.greenfield (brainstorming session)")
	assert.NotContains(t, out, "make brownfield-flow")
}

func TestRunOverwritesExistingFile(t *testing.T) {
	e := newEnv(t)

	require.NoError(t, os.WriteFile(filepath.Join(e.target, "README.md"), []byte("stale"), 0o600))

	require.Equal(t, ExitOK, e.run(&scriptedPrompter{selectID: "bmad-brownfield", confirm: true}, e.engine()))

	got, err := os.ReadFile(filepath.Join(e.target, "README.md"))
	require.NoError(t, err)
	assert.Equal(t, e.tree["README.md"], string(got))
}

func TestRunMissingTemplate(t *testing.T) {
	e := newEnv(t)

	status := e.run(&scriptedPrompter{selectID: "bmad-redfield", confirm: true}, e.engine())

	assert.Equal(t, ExitFailure, status)
	assert.Empty(t, e.targetFiles(t))
	assert.Contains(t, e.errOut.String(), "Installation failed:")
	assert.Contains(t, e.errOut.String(), `"bmad-redfield"`)
	assert.NotContains(t, e.out.String(), "Next steps")
}

func TestRunDeclined(t *testing.T) {
	e := newEnv(t)
	spy := &spyInstaller{}

	status := e.run(&scriptedPrompter{selectID: "bmad-brownfield", confirm: false}, spy)

	assert.Equal(t, ExitOK, status)
	assert.Zero(t, spy.calls)
	assert.Empty(t, e.targetFiles(t))
	assert.Contains(t, e.out.String(), "Installation cancelled by the user.")
	assert.Empty(t, e.errOut.String())
}

func TestRunPromptAborted(t *testing.T) {
	cases := map[string]*scriptedPrompter{
		"selection":    {selectErr: tui.ErrAborted},
		"confirmation": {selectID: "bmad-greenfield", confirmErr: tui.ErrAborted},
	}

	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			e := newEnv(t)
			spy := &spyInstaller{}

			assert.Equal(t, ExitOK, e.run(p, spy))
			assert.Zero(t, spy.calls)
		})
	}
}

func TestRunPromptFailure(t *testing.T) {
	e := newEnv(t)
	spy := &spyInstaller{}

	status := e.run(&scriptedPrompter{selectErr: errors.New("no terminal")}, spy)

	assert.Equal(t, ExitFailure, status)
	assert.Zero(t, spy.calls)
	assert.Contains(t, e.errOut.String(), "no terminal")
}

func TestRunRecoversPanic(t *testing.T) {
	e := newEnv(t)

	status := e.run(&scriptedPrompter{selectID: "bmad-brownfield", confirm: true}, &spyInstaller{panic: "boom"})

	assert.Equal(t, ExitFailure, status)
	assert.Contains(t, e.errOut.String(), "unexpected error: boom")
}

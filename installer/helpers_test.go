package installer

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	started   []string
	updates   []string
	succeeded []string
	failed    []string
}

func (r *recorder) Start(msg string) { r.started = append(r.started, msg) }
func (r *recorder) Update(relPath string) { r.updates = append(r.updates, relPath) }
func (r *recorder) Succeed(msg string) { r.succeeded = append(r.succeeded, msg) }
func (r *recorder) Fail(msg string) { r.failed = append(r.failed, msg) }

// writeTree materializes a testdata YAML fixture (slash path -> contents) under root.
func writeTree(t *testing.T, root, fixture string) map[string]string {
	t.Helper()

	contents, err := os.ReadFile(filepath.Join("testdata", fixture))
	require.NoError(t, err)

	var tree map[string]string

	require.NoError(t, yaml.Unmarshal(contents, &tree))

	for name, body := range tree {
		path := filepath.Join(root, filepath.FromSlash(name))

		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	}

	return tree
}

// snapshot returns slash path -> contents for every file under root.
func snapshot(t *testing.T, root string) map[string]string {
	t.Helper()

	out := map[string]string{}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		contents, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		out[filepath.ToSlash(rel)] = string(contents)

		return nil
	})
	require.NoError(t, err)

	return out
}

func newFixture(t *testing.T, id, fixture string) (store Store, tree map[string]string, target string) {
	t.Helper()

	root := t.TempDir()
	tree = writeTree(t, filepath.Join(root, id), fixture)

	return Store{Root: root}, tree, t.TempDir()
}

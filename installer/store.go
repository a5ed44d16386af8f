package installer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

type (
	// Store locates template trees under a root directory, one subdirectory per installation type.
	Store struct {
		Root string
	}

	TemplateNotFoundError struct {
		ID  string
		Dir string
	}
)

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("installation type %q not found (no template directory at %q)", e.ID, e.Dir)
}

// DefaultRoot returns the parent of the directory holding the running executable,
// so that <prefix>/bin/bmad-make finds its templates under <prefix>.
func DefaultRoot() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate the running executable: %w", err)
	}

	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("failed to resolve symlinks of executable %q: %w", exe, err)
	}

	return filepath.Dir(filepath.Dir(exe)), nil
}

func (s Store) SourceDir(t InstallationType) string {
	return filepath.Clean(filepath.Join(s.Root, t.ID))
}

// Check fails with *TemplateNotFoundError unless the template tree of t is an existing directory.
func (s Store) Check(t InstallationType) (dir string, err error) {
	dir = s.SourceDir(t)

	stat, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return "", &TemplateNotFoundError{ID: t.ID, Dir: dir}
	}

	if err != nil {
		return "", fmt.Errorf("failed to inspect template directory %q: %w", dir, err)
	}

	if !stat.IsDir() {
		return "", &TemplateNotFoundError{ID: t.ID, Dir: dir}
	}

	return dir, nil
}

package installer

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

type (
	// Reporter receives progress of a copy. Update is called once per copied file or link, after it is written.
	Reporter interface {
		Start(msg string)
		Update(relPath string)
		Succeed(msg string)
		Fail(msg string)
	}

	Engine struct {
		Reporter Reporter
		Store    Store
	}

	WriteHook func(io.Writer) error

	nopReporter struct{}
)

func (nopReporter) Start(string) {}
func (nopReporter) Update(string) {}
func (nopReporter) Succeed(string) {}
func (nopReporter) Fail(string) {}

func NewEngine(store Store, r Reporter) *Engine {
	if r == nil {
		r = nopReporter{}
	}

	return &Engine{Store: store, Reporter: r}
}

// ErrTargetInsideTemplate is returned when the target folder is the template tree or lies inside it.
var ErrTargetInsideTemplate = errors.New("target directory is inside the template directory")

// listCopiedFiles is replaced in tests.
var listCopiedFiles = ListCopiedFiles

// Install copies the template tree of t into targetDir and returns the sorted list of copied files.
// Nothing is written when the template tree is missing or when targetDir lies inside it.
func (e *Engine) Install(t InstallationType, targetDir string) (manifest []string, err error) {
	srcDir, err := e.Store.Check(t)
	if err != nil {
		return nil, err
	}

	if err = checkTarget(srcDir, targetDir); err != nil {
		return nil, err
	}

	r := e.Reporter
	if r == nil {
		r = nopReporter{}
	}

	r.Start("Copying files...")

	if err = copyTree(srcDir, targetDir, r); err != nil {
		r.Fail("Failed to copy files")

		return nil, err
	}

	manifest, err = listCopiedFiles(srcDir)
	if err != nil {
		r.Fail("Failed to list copied files")

		return nil, err
	}

	r.Succeed("Files copied successfully!")

	return manifest, nil
}

// ListCopiedFiles walks sourceDir, which after Install mirrors the target, and returns
// the relative paths of all non-directory entries in ascending order.
// Symlinked directories are followed, so the files under them are listed under the link's path.
func ListCopiedFiles(sourceDir string) ([]string, error) {
	files, err := listTree(sourceDir, "", map[string]struct{}{})
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate copied files under %q: %w", sourceDir, err)
	}

	slices.Sort(files)

	return files, nil
}

// listTree lists dir with every path prefixed by prefix. ancestors holds the resolved
// directories currently being walked, so a link back to one of them is not followed again.
func listTree(dir, prefix string, ancestors map[string]struct{}) ([]string, error) {
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return nil, err
	}

	if _, ok := ancestors[resolved]; ok {
		return nil, nil
	}

	ancestors[resolved] = struct{}{}
	defer delete(ancestors, resolved)

	var files []string

	for entry, err := range Walk(os.DirFS(dir)) {
		if err != nil {
			return nil, err
		}

		if entry.IsDir() {
			continue
		}

		rel := filepath.Join(prefix, filepath.FromSlash(entry.Path))

		if entry.Type()&fs.ModeSymlink != 0 {
			linked := filepath.Join(dir, filepath.FromSlash(entry.Path))

			info, err := os.Stat(linked)
			if err != nil {
				return nil, err
			}

			if info.IsDir() {
				nested, err := listTree(linked, rel, ancestors)
				if err != nil {
					return nil, err
				}

				files = append(files, nested...)

				continue
			}
		}

		files = append(files, rel)
	}

	return files, nil
}

func checkTarget(srcDir, targetDir string) error {
	src, err := resolvePath(srcDir)
	if err != nil {
		return err
	}

	dest, err := resolvePath(targetDir)
	if err != nil {
		return err
	}

	rel, err := filepath.Rel(src, dest)
	if err != nil {
		// Different volumes.
		return nil
	}

	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil
	}

	return fmt.Errorf("cannot copy %q into %q: %w", srcDir, targetDir, ErrTargetInsideTemplate)
}

// resolvePath returns the absolute form of path with symlinks evaluated on its longest existing prefix.
func resolvePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %q: %w", path, err)
	}

	dir, rest := abs, ""

	for {
		if resolved, err := filepath.EvalSymlinks(dir); err == nil {
			return filepath.Join(resolved, rest), nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return abs, nil
		}

		rest = filepath.Join(filepath.Base(dir), rest)
		dir = parent
	}
}

func copyTree(srcDir, dest string, r Reporter) error {
	if err := os.MkdirAll(filepath.Clean(dest), 0750); err != nil {
		return fmt.Errorf("failed to create target directory %q: %w", dest, err)
	}

	src := os.DirFS(srcDir)

	for entry, err := range Walk(src) {
		if err != nil {
			return err
		}

		rel := filepath.FromSlash(entry.Path)
		target := filepath.Clean(filepath.Join(dest, rel))

		switch {
		case entry.IsDir():
			if err = os.MkdirAll(target, 0750); err != nil {
				return fmt.Errorf("failed to create directory %q in target folder: %w", rel, err)
			}

			continue
		case entry.Type()&fs.ModeSymlink != 0:
			err = copySymlink(filepath.Join(srcDir, rel), target)
		default:
			err = copyFile(src, entry.Path, target)
		}

		if err != nil {
			return fmt.Errorf("failed to copy %q: %w", rel, err)
		}

		r.Update(rel)
	}

	return nil
}

// copySymlink recreates the link at target with the same, unresolved destination.
func copySymlink(link, target string) error {
	dest, err := os.Readlink(link)
	if err != nil {
		return err
	}

	if err = removeExisting(target); err != nil {
		return err
	}

	return os.Symlink(dest, target)
}

func copyFile(src fs.FS, name, target string) (err error) {
	info, err := fs.Stat(src, name)
	if err != nil {
		return err
	}

	in, err := src.Open(name)
	if err != nil {
		return err
	}

	defer func() { _ = in.Close() }()

	if err = removeExisting(target); err != nil {
		return err
	}

	err = WriteToFile(target, info.Mode().Perm(), func(w io.Writer) error {
		_, err1 := io.Copy(w, in)

		return err1
	})
	if err != nil {
		return err
	}

	return os.Chmod(target, info.Mode().Perm())
}

// removeExisting makes the last write win: read-only files and links are replaced too.
func removeExisting(target string) error {
	if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to replace existing file: %w", err)
	}

	return nil
}

func WriteToFile(path string, perm fs.FileMode, hook WriteHook) (err error) {
	fd, err := os.OpenFile(filepath.Clean(path), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("failed to create %q file: %w", path, err)
	}

	defer func() {
		if err1 := fd.Close(); err == nil && err1 != nil {
			err = fmt.Errorf("failed to close %q after writing: %w", path, err1)
		}
	}()

	err = hook(fd)
	if err != nil {
		return fmt.Errorf("failed to write to %q: %w", path, err)
	}

	return nil
}

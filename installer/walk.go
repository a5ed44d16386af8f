package installer

import (
	"fmt"
	"io/fs"
	"iter"
)

type Entry struct {
	fs.DirEntry
	// Path is slash-separated and relative to the walked root.
	Path string
}

// Walk lazily yields every entry below the root of fsys in lexical depth-first order, the root itself excluded.
// A walk error is yielded once, as the last element.
func Walk(fsys fs.FS) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return fmt.Errorf("failed to access path at %q: %w", path, err)
			}

			if path == "." {
				return nil
			}

			if !yield(Entry{DirEntry: d, Path: path}, nil) {
				return fs.SkipAll
			}

			return nil
		})
		if err != nil {
			yield(Entry{}, err)
		}
	}
}

// Package jsonfile stores every collection as <dir>/<name>.json, a
// pretty-printed JSON array. The files are the source of truth and are
// re-read on every operation.
package jsonfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Xurramov-Ogabek/42-lesson-Homework/internal/storage"
)

// Dir is a storage.Backend rooted at a directory.
type Dir struct {
	root string
}

// New creates root if needed and seeds an empty "[]" file for every listed
// collection that does not exist yet. Existing files are left untouched.
//
// After startup a file that disappears is reported as unavailable, never
// recreated.
func New(root string, collections ...string) (*Dir, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("jsonfile.New: create dir: %w", err)
	}

	d := &Dir{root: root}
	for _, name := range collections {
		_, err := os.Stat(d.path(name))
		if err == nil {
			continue
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("jsonfile.New: stat %s: %w", name, err)
		}
		if err := writeFileAtomic(d.path(name), []byte("[]\n"), 0o644); err != nil {
			return nil, fmt.Errorf("jsonfile.New: seed %s: %w", name, err)
		}
	}

	return d, nil
}

// Path returns the file that holds the named collection.
func (d *Dir) Path(name string) string {
	return d.path(name)
}

// Read returns the raw file contents.
func (d *Dir) Read(name string) ([]byte, error) {
	data, err := os.ReadFile(d.path(name))
	if err != nil {
		return nil, fmt.Errorf("jsonfile: read %s: %w: %v", name, storage.ErrUnavailable, err)
	}
	return data, nil
}

// Write replaces the file in one rename so readers never see a partial
// document.
func (d *Dir) Write(name string, data []byte) error {
	if err := writeFileAtomic(d.path(name), data, 0o644); err != nil {
		return fmt.Errorf("jsonfile: write %s: %w: %v", name, storage.ErrUnavailable, err)
	}
	return nil
}

func (d *Dir) path(name string) string {
	return filepath.Join(d.root, name+".json")
}

// writeFileAtomic writes data to a temporary file in the target directory,
// syncs it, then renames it over filename.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)

	tmp, err := os.CreateTemp(dir, filepath.Base(filename)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	closed := false
	defer func() {
		if !closed {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	closed = true

	if err := os.Rename(tmpPath, filename); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

// Package file writes files so that readers never observe a partial payload.
package file

import (
	"fmt"
	"os"
	"path/filepath"
)

// Perm is the mode of the files written by WriteAtomic.
const Perm os.FileMode = 0644

// WriteAtomic writes bb to a temporary file next to path and renames it into place.
// A reader sees either the previous or the new content. The parent directory must exist.
func WriteAtomic(path string, bb []byte) error {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	f, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return fmt.Errorf("could not create temp file for '%s': %w", path, err)
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	if _, err = f.Write(bb); err != nil {
		f.Close()
		return fmt.Errorf("could not write bytes to file '%s': %w", tmp, err)
	}
	if err = f.Chmod(Perm); err != nil {
		f.Close()
		return fmt.Errorf("could not chmod file '%s': %w", tmp, err)
	}
	if err = f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("could not sync file '%s': %w", tmp, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("could not close file '%s': %w", tmp, err)
	}
	if err = os.Rename(tmp, path); err != nil {
		return fmt.Errorf("could not replace '%s': %w", path, err)
	}
	return nil
}

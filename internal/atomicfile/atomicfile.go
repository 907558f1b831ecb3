// Package atomicfile replaces files through a temporary sibling and a
// rename, so readers see either the old content or the complete new one.
package atomicfile

import (
	"io"
	"os"
	"path/filepath"
)

// Write calls write with a temp file in path's directory, sets mode on it
// and renames it over path. The temp file is removed on any failure. An
// error returned by write is passed through unchanged.
func Write(path string, mode os.FileMode, write func(io.Writer) error) error {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	// Best-effort cleanup if anything fails before rename.
	defer func() { _ = os.Remove(tmp) }()

	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	// CreateTemp always uses 0600.
	if err := f.Chmod(mode); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// WriteFile is Write for content already in memory.
func WriteFile(path string, b []byte, mode os.FileMode) error {
	return Write(path, mode, func(w io.Writer) error {
		_, err := w.Write(b)
		return err
	})
}

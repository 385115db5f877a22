// Package scan is the traversal collaborator: it yields every file under a
// root, skipping ignored and dot-prefixed entries, and tolerates unreadable
// subdirectories. The pipeline sees only the resulting sequence, not the
// recursion.
package scan

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrStop can be returned from a walk callback to end the traversal early
// without reporting an error to the caller.
var ErrStop = errors.New("walk stopped")

// WalkFunc receives each discovered file path.
type WalkFunc func(path string) error

// Walk recursively visits every file under root. Directory names present
// in ignore and any entry starting with a dot are skipped. Unreadable
// directories are silently skipped. Symlinks to regular files are
// visited; symlinks to directories and broken links are not. The callback
// may return ErrStop to terminate the walk cleanly; any other error
// aborts and is returned.
func Walk(root string, ignore map[string]bool, fn WalkFunc) error {
	err := walk(root, ignore, fn)
	if errors.Is(err, ErrStop) {
		return nil
	}
	return err
}

func walk(dir string, ignore map[string]bool, fn WalkFunc) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil // unreadable directory, keep going
	}
	for _, entry := range entries {
		name := entry.Name()
		if ignore[name] || strings.HasPrefix(name, ".") {
			continue
		}
		path := filepath.Join(dir, name)
		if entry.IsDir() {
			if err := walk(path, ignore, fn); err != nil {
				return err
			}
			continue
		}
		if entry.Type()&fs.ModeSymlink != 0 {
			// Symlinks to regular files are followed; symlinks to
			// directories are not, so a link cycle cannot recurse.
			fi, err := os.Stat(path)
			if err != nil || !fi.Mode().IsRegular() {
				continue
			}
			if err := fn(path); err != nil {
				return err
			}
			continue
		}
		if entry.Type().IsRegular() {
			if err := fn(path); err != nil {
				return err
			}
		}
	}
	return nil
}

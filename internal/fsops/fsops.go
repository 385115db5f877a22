// Package fsops holds the relocation primitives: copy, move with a
// cross-volume fallback, forced delete, and collision-free target naming.
package fsops

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CopyFile copies a file from srcPath to destPath, creating the
// destination directory if needed and preserving the source modification
// time so date fallbacks stay stable after relocation.
func CopyFile(srcPath, destPath string) error {
	destDir := filepath.Dir(destPath)
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("failed to create destination directory %s: %w", destDir, err)
	}

	sourceFile, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("failed to open source file %s: %w", srcPath, err)
	}
	defer sourceFile.Close()

	srcInfo, err := sourceFile.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat source file %s: %w", srcPath, err)
	}

	destinationFile, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create destination file %s: %w", destPath, err)
	}
	defer destinationFile.Close()

	if _, err := io.Copy(destinationFile, sourceFile); err != nil {
		return fmt.Errorf("failed to copy content from %s to %s: %w", srcPath, destPath, err)
	}

	if err := destinationFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync destination file %s: %w", destPath, err)
	}

	// Best-effort: keep the source mtime on the copy.
	mtime := srcInfo.ModTime()
	_ = os.Chtimes(destPath, mtime, mtime)

	return nil
}

// MoveFile relocates srcPath to destPath. It first attempts an atomic
// rename; on failure (cross-volume, permissions) it falls back to
// copy-then-verify-then-delete. If the copied file cannot be verified the
// source is left in place and an error is returned.
func MoveFile(srcPath, destPath string) error {
	destDir := filepath.Dir(destPath)
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("failed to create destination directory %s: %w", destDir, err)
	}

	if err := os.Rename(srcPath, destPath); err == nil {
		return nil
	}

	if err := CopyFile(srcPath, destPath); err != nil {
		return fmt.Errorf("fallback copy failed moving %s to %s: %w", srcPath, destPath, err)
	}
	if _, err := os.Stat(destPath); err != nil {
		return fmt.Errorf("copy verification failed for %s: %w", destPath, err)
	}
	if err := ForceDelete(srcPath); err != nil {
		return fmt.Errorf("failed to remove source %s after copy: %w", srcPath, err)
	}
	return nil
}

// ForceDelete removes a file, clearing a read-only bit first if necessary.
func ForceDelete(path string) error {
	if err := os.Remove(path); err == nil {
		return nil
	}
	if err := os.Chmod(path, 0600); err != nil {
		return fmt.Errorf("failed to make %s writable: %w", path, err)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}
	return nil
}

// UniquePath returns dir/base+ext, appending _1, _2, ... before the
// extension until the name does not exist yet.
func UniquePath(dir, base, ext string) string {
	target := filepath.Join(dir, base+ext)
	for counter := 1; ; counter++ {
		if _, err := os.Stat(target); os.IsNotExist(err) {
			return target
		}
		target = filepath.Join(dir, fmt.Sprintf("%s_%d%s", base, counter, ext))
	}
}

// Package fileutil provides the file operations used to rewrite chapters in place.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrSuffixEmpty         = errors.New("backup suffix cannot be empty")
	ErrSuffixPathTraversal = errors.New("backup suffix contains path separator or null byte")
)

// DefaultFilePermissions applies to files that did not exist before.
const DefaultFilePermissions = 0o644 // rw-r--r--

// ValidateSuffix checks that a backup suffix only extends the file name.
func ValidateSuffix(suffix string) error {
	if suffix == "" {
		return ErrSuffixEmpty
	}
	if strings.ContainsAny(suffix, "/\\\x00") {
		return ErrSuffixPathTraversal
	}
	return nil
}

// BackupPath returns the path of the backup copy of path.
func BackupPath(path, suffix string) string {
	return path + suffix
}

// WriteBackup writes data to path+suffix with the permissions of path.
// Returns the backup path.
func WriteBackup(path, suffix string, data []byte) (string, error) {
	if err := ValidateSuffix(suffix); err != nil {
		return "", err
	}

	backup := BackupPath(path, suffix)
	if err := WriteFileAtomic(backup, data, permissionsOf(path)); err != nil {
		return "", fmt.Errorf("writing backup: %w", err)
	}
	return backup, nil
}

// WriteFileAtomic replaces path with data. The content goes to a temporary
// file in the same directory first and is renamed over path, so readers see
// either the old or the new file, never a partial one.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	tmpFile, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	tmpPath := tmpFile.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, writeErr := tmpFile.Write(data); writeErr != nil {
		_ = tmpFile.Close()
		cleanup()
		return fmt.Errorf("writing temp file: %w", writeErr)
	}

	if closeErr := tmpFile.Close(); closeErr != nil {
		cleanup()
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if chmodErr := os.Chmod(tmpPath, perm); chmodErr != nil {
		cleanup()
		return fmt.Errorf("setting permissions: %w", chmodErr)
	}

	if renameErr := os.Rename(tmpPath, path); renameErr != nil {
		cleanup()
		return fmt.Errorf("replacing %s: %w", path, renameErr)
	}

	return nil
}

// ReplaceFile rewrites an existing file atomically, keeping its permissions.
func ReplaceFile(path string, data []byte) error {
	return WriteFileAtomic(path, data, permissionsOf(path))
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// permissionsOf returns the permission bits of path, or the default for
// files that cannot be inspected.
func permissionsOf(path string) os.FileMode {
	info, err := os.Stat(path)
	if err != nil {
		return DefaultFilePermissions
	}
	return info.Mode().Perm()
}

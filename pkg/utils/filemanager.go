// =============================================================================
// CSV to GeoJSON Converter - File Manager Utility
// =============================================================================
//
// This module provides the file operations of the converter:
//   - Atomic replacement of the output file
//   - Output directory creation
//   - Existence checks
//
// WRITE STRATEGY:
//   The output is first written to a temporary file next to the target
//   (".<name>.<uuid>.tmp"), flushed to disk, and then renamed over the
//   target. Readers see either the previous file or the complete new one.
//   On any failure the temporary file is removed and the target is left
//   untouched.
//
// =============================================================================

package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureParentDir creates the directory that will contain path.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// =============================================================================
// ATOMIC WRITE
// =============================================================================

// WriteFileAtomic writes data to path by way of a temporary file in the same
// directory.
//
// PARAMETERS:
//   - path: The destination file. An existing file is replaced.
//   - data: The complete file contents.
//   - perm: The permission bits of the new file.
//
// RETURNS:
//   - An error if any step fails. The destination is then unchanged.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
		return fmt.Errorf("output path %s is a directory", path)
	}

	tmpPath := TempPath(path)

	tmp, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	return nil
}

// TempPath returns a unique temporary file name next to path.
func TempPath(path string) string {
	dir, base := filepath.Split(path)
	return filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", base, uuid.NewString()))
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}

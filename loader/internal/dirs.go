package internal

import (
	"fmt"
	"os"
	"path/filepath"
)

// CreateDirectories makes sure the loader's working directories exist.
func CreateDirectories(dirs ...string) error {
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// MoveFile relocates a processed source file into destDir, keeping its base
// name.
func MoveFile(path, destDir string) error {
	dest := filepath.Join(destDir, filepath.Base(path))
	if err := os.Rename(path, dest); err != nil {
		return fmt.Errorf("failed to move %s to %s: %w", path, destDir, err)
	}
	return nil
}

// Package project locates the repository root the hook operates on.
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/stefanodallapalma/java-starter/internal/constants"
)

// FindRoot finds the project root directory starting from the current
// working directory. Git runs pre-commit hooks from the top of the work tree,
// so in practice this returns the working directory unchanged.
func FindRoot(fs afero.Fs) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}

	if root, found := FindRootFrom(fs, cwd); found {
		return root, nil
	}

	// Fall back to current working directory
	return cwd, nil
}

// FindRootFrom walks up from startDir looking for a .git entry. Both a
// directory and a file (linked worktrees, submodules) count as a marker.
func FindRootFrom(fs afero.Fs, startDir string) (string, bool) {
	currentDir := filepath.Clean(startDir)

	for {
		if _, err := fs.Stat(filepath.Join(currentDir, constants.GitDir)); err == nil {
			return currentDir, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", false
		}
		currentDir = parentDir
	}
}

package utils

import (
	"os"
	"path/filepath"
)

// GetProjectRoot returns the absolute path to the project root directory.
func GetProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return "." // fallback
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached root
		}
		dir = parent
	}
	return "." // fallback
}

// GetDataDir returns ~/.tododemo, falling back to the project root when the
// home directory cannot be resolved.
func GetDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(GetProjectRoot(), ".tododemo")
	}
	return filepath.Join(home, ".tododemo")
}

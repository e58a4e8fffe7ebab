package util

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExpandTilde replaces a leading ~ with the user's home directory. The
// path comes back unchanged when the home directory cannot be
// determined.
func ExpandTilde(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

// ResolveSeriesDir validates and canonicalizes a user-supplied series
// folder path. It must name an existing directory.
func ResolveSeriesDir(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", errors.New("folder path is empty")
	}

	resolved, err := filepath.Abs(ExpandTilde(trimmed))
	if err != nil {
		return "", fmt.Errorf("failed to resolve path %s: %w", trimmed, err)
	}
	if real, err := filepath.EvalSymlinks(resolved); err == nil {
		resolved = real
	}

	info, err := os.Stat(resolved)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("not a valid folder: %s", resolved)
	}
	return resolved, nil
}

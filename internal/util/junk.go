// This file identifies filesystem noise that must never be treated as
// manga content: hidden files, macOS resource forks and the __MACOSX
// folders that zip tools add to archives.

package util

import "strings"

// IsJunkName reports whether a bare file name is filesystem noise
// (dotfiles and AppleDouble "._" resource forks).
func IsJunkName(name string) bool {
	if name == "" {
		return true
	}
	if strings.HasPrefix(name, "._") {
		return true
	}
	return strings.HasPrefix(name, ".")
}

// HasJunkPathComponent reports whether any component of a slash- or
// backslash-separated archive entry path is junk or a __MACOSX folder.
// Zip entries use forward slashes but some packers emit backslashes.
func HasJunkPathComponent(entryPath string) bool {
	normalized := strings.ReplaceAll(entryPath, "\\", "/")
	for _, part := range strings.Split(normalized, "/") {
		if part == "" {
			continue
		}
		if part == "__MACOSX" || IsJunkName(part) {
			return true
		}
	}
	return false
}

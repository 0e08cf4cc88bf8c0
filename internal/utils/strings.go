package utils

import (
	"path/filepath"
	"strings"
)

// StripComment removes everything from the first '#' onward and trims
// surrounding whitespace. Returns "" for blank and comment-only lines.
func StripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}

// Stem returns the base name of a path with its extension removed.
// Dotfiles without a separate extension keep their full base name.
func Stem(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == base {
		return base
	}
	return strings.TrimSuffix(base, ext)
}

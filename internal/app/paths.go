package app

import (
	"path/filepath"
	"strconv"
	"strings"
)

// stemOf returns the input file's base name without its extension; output
// artifact names derive from it.
func stemOf(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// zeroPadWidth returns the page-folder pad width: the digit count of the
// total page count, never less than 3.
func zeroPadWidth(numPages int) int {
	w := len(strconv.Itoa(numPages))
	if w < 3 {
		w = 3
	}
	return w
}

// absPath resolves path to an absolute form, falling back to the input
// when resolution fails so manifests never carry an empty path.
func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

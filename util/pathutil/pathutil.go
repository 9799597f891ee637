// Package pathutil provides the path normalization used to derive project
// keys and to compare mark values against the current file.
package pathutil

import (
	"path/filepath"
	"runtime"
	"strings"
)

// NormalizeForLookup creates a canonical, case-normalized path suitable for
// use as a map key or in comparisons. It makes the path absolute, evaluates
// symbolic links, and lowercases on case-insensitive OSes (macOS, Windows).
func NormalizeForLookup(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	canonicalPath, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		// If symlink evaluation fails (e.g., path doesn't exist yet),
		// fall back to the absolute path.
		canonicalPath = absPath
	}

	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		return strings.ToLower(canonicalPath), nil
	}

	return canonicalPath, nil
}

// RelativeTo returns path relative to root, normalized with forward slashes.
// Paths outside root (or not absolute) are returned normalized but unchanged
// in meaning, so marks can reference files beyond the project root.
func RelativeTo(root, path string) (string, error) {
	normRoot, err := NormalizeForLookup(root)
	if err != nil {
		return "", err
	}
	normPath, err := NormalizeForLookup(path)
	if err != nil {
		return "", err
	}

	rel, err := filepath.Rel(normRoot, normPath)
	if err != nil {
		return filepath.ToSlash(normPath), nil
	}
	if strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(normPath), nil
	}
	return filepath.ToSlash(rel), nil
}

// SamePath checks if two paths refer to the same location, respecting OS case
// sensitivity.
func SamePath(path1, path2 string) (bool, error) {
	norm1, err := NormalizeForLookup(path1)
	if err != nil {
		return false, err
	}
	norm2, err := NormalizeForLookup(path2)
	if err != nil {
		return false, err
	}
	return norm1 == norm2, nil
}

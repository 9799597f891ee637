package pathutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeForLookupAbsolute(t *testing.T) {
	dir := t.TempDir()
	norm, err := NormalizeForLookup(dir)
	require.NoError(t, err)
	require.True(t, filepath.IsAbs(norm))
}

func TestNormalizeForLookupResolvesSymlinks(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	require.NoError(t, os.Mkdir(target, 0755))
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(target, link))

	normTarget, err := NormalizeForLookup(target)
	require.NoError(t, err)
	normLink, err := NormalizeForLookup(link)
	require.NoError(t, err)
	require.Equal(t, normTarget, normLink)
}

func TestRelativeTo(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0755))
	file := filepath.Join(root, "src", "main.go")
	require.NoError(t, os.WriteFile(file, []byte("package main\n"), 0644))

	rel, err := RelativeTo(root, file)
	require.NoError(t, err)
	require.Equal(t, "src/main.go", rel)
}

func TestRelativeToOutsideRoot(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	file := filepath.Join(outside, "notes.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	rel, err := RelativeTo(root, file)
	require.NoError(t, err)
	// Outside the root the full normalized path is kept.
	require.True(t, filepath.IsAbs(rel))
}

func TestSamePath(t *testing.T) {
	dir := t.TempDir()
	same, err := SamePath(dir, dir+string(filepath.Separator))
	require.NoError(t, err)
	require.True(t, same)
}

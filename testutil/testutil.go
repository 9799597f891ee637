// Package testutil holds shared helpers for moor tests.
package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TempProject creates a temporary project root with a .moor directory and
// returns its path.
func TempProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".moor"), 0755))
	return root
}

// WriteState writes a pre-baked state document into a project root.
func WriteState(t *testing.T, root string, doc map[string][]json.RawMessage) {
	t.Helper()
	data, err := json.MarshalIndent(doc, "", "  ")
	require.NoError(t, err)
	path := filepath.Join(root, ".moor", "state.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, data, 0644))
}

// ReadState reads a project's state document back.
func ReadState(t *testing.T, root string) map[string][]json.RawMessage {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, ".moor", "state.json"))
	require.NoError(t, err)
	var doc map[string][]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc
}

// TouchFile creates an empty file under root at the given relative path.
func TouchFile(t *testing.T, root, rel string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte{}, 0644))
	return path
}

// RandomString generates a random string of the specified length
func RandomString(length int) string {
	bytes := make([]byte, length/2+1)
	if _, err := rand.Read(bytes); err != nil {
		panic(err)
	}
	return hex.EncodeToString(bytes)[:length]
}

package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/grovetools/moor/errors"
)

func raw(values ...string) []json.RawMessage {
	out := make([]json.RawMessage, 0, len(values))
	for _, v := range values {
		out = append(out, json.RawMessage(fmt.Sprintf("%q", v)))
	}
	return out
}

func TestDataAbsentIsEmpty(t *testing.T) {
	s := New(FileMedium{})
	entries := s.Data(ProjectKey(t.TempDir()), "marks")
	require.Empty(t, entries)
}

func TestUpdateThenData(t *testing.T) {
	s := New(FileMedium{})
	key := ProjectKey(t.TempDir())

	s.Update(key, "marks", raw("a", "b"))
	got := s.Data(key, "marks")
	require.Len(t, got, 2)
	require.JSONEq(t, `"a"`, string(got[0]))
	require.JSONEq(t, `"b"`, string(got[1]))
}

func TestUpdateReplacesWholesale(t *testing.T) {
	s := New(FileMedium{})
	key := ProjectKey(t.TempDir())

	s.Update(key, "marks", raw("a", "b"))
	s.Update(key, "marks", raw("c"))
	got := s.Data(key, "marks")
	require.Len(t, got, 1)
	require.JSONEq(t, `"c"`, string(got[0]))
}

func TestSyncRoundTrip(t *testing.T) {
	root := t.TempDir()
	key := ProjectKey(root)

	s := New(FileMedium{})
	s.Update(key, "marks", raw("src/main.go"))
	require.NoError(t, s.Sync())

	// A fresh store over the same medium sees the flushed data.
	fresh := New(FileMedium{})
	got := fresh.Data(key, "marks")
	require.Len(t, got, 1)
	require.JSONEq(t, `"src/main.go"`, string(got[0]))
}

func TestSyncOnlyWritesDirtyProjects(t *testing.T) {
	rootA := t.TempDir()
	rootB := t.TempDir()

	s := New(FileMedium{})
	s.Update(ProjectKey(rootA), "marks", raw("a"))
	// rootB is only read, never written.
	_ = s.Data(ProjectKey(rootB), "marks")
	require.NoError(t, s.Sync())

	_, err := os.Stat(filepath.Join(rootA, ".moor", "state.json"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(rootB, ".moor", "state.json"))
	require.True(t, os.IsNotExist(err))
}

// failingMedium fails writes for one key and accepts the rest.
type failingMedium struct {
	inner Medium
	fail  ProjectKey
}

func (m failingMedium) Read(key ProjectKey) ([]byte, bool, error) {
	return m.inner.Read(key)
}

func (m failingMedium) Write(key ProjectKey, data []byte) error {
	if key == m.fail {
		return fmt.Errorf("disk full")
	}
	return m.inner.Write(key, data)
}

func TestSyncIsBestEffortPerProject(t *testing.T) {
	good := ProjectKey(t.TempDir())
	bad := ProjectKey(t.TempDir())

	s := New(failingMedium{inner: FileMedium{}, fail: bad})
	s.Update(good, "marks", raw("a"))
	s.Update(bad, "marks", raw("b"))

	err := s.Sync()
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.ErrCodeStoreWrite))

	// The good project was still flushed.
	_, statErr := os.Stat(filepath.Join(string(good), ".moor", "state.json"))
	require.NoError(t, statErr)

	// In-memory state survives the failure.
	require.Len(t, s.Data(bad, "marks"), 1)
}

func TestCorruptStateFileDegradesToEmpty(t *testing.T) {
	root := t.TempDir()
	key := ProjectKey(root)
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".moor"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".moor", "state.json"), []byte("{not json"), 0644))

	s := New(FileMedium{})
	require.Empty(t, s.Data(key, "marks"))
}

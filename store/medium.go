package store

import (
	"os"
	"path/filepath"
)

// Medium is the backing storage for a Store. Implementations own the format
// and location of the durable state; the Store only ever hands them opaque
// bytes keyed by project.
type Medium interface {
	// Read returns the stored bytes for a project key. ok is false when
	// nothing has been stored yet; that is not an error.
	Read(key ProjectKey) (data []byte, ok bool, err error)
	// Write durably stores the bytes for a project key.
	Write(key ProjectKey, data []byte) error
}

// FileMedium persists each project's state as a JSON document at
// <project root>/.moor/state.json. The project key doubles as the root path,
// which keeps every project's marks inside the project itself.
type FileMedium struct{}

func (FileMedium) path(key ProjectKey) string {
	return filepath.Join(string(key), ".moor", "state.json")
}

// Read implements Medium.
func (m FileMedium) Read(key ProjectKey) ([]byte, bool, error) {
	data, err := os.ReadFile(m.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

// Write implements Medium.
func (m FileMedium) Write(key ProjectKey, data []byte) error {
	path := m.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

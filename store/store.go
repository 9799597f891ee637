// Package store maps (project, list name) pairs to sequences of encoded list
// entries and flushes them to a backing medium on demand.
package store

import (
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/moor/errors"
	"github.com/grovetools/moor/logging"
)

// ProjectKey partitions all stored state by project root.
type ProjectKey string

// document is the on-medium shape: list name to encoded entries.
type document map[string][]json.RawMessage

// Store holds the encoded list data for every project touched during the
// session. Reads are lazy: a project's document is loaded from the medium on
// first access and kept in memory afterwards. Writes stay in memory until
// Sync flushes the dirty projects.
type Store struct {
	mu     sync.RWMutex
	medium Medium
	data   map[ProjectKey]document
	dirty  map[ProjectKey]bool
	log    *logrus.Entry
}

// New creates a Store over the given medium.
func New(medium Medium) *Store {
	return &Store{
		medium: medium,
		data:   make(map[ProjectKey]document),
		dirty:  make(map[ProjectKey]bool),
		log:    logging.NewLogger("store"),
	}
}

// load fetches the document for key from the medium on first access.
// Must be called with the write lock held.
func (s *Store) load(key ProjectKey) document {
	if doc, ok := s.data[key]; ok {
		return doc
	}

	doc := make(document)
	raw, ok, err := s.medium.Read(key)
	if err != nil {
		// Absent or unreadable state degrades to an empty document; it will
		// be rewritten on the next sync.
		s.log.WithError(err).WithField("project", key).Warn("failed to read stored state")
	} else if ok {
		if err := json.Unmarshal(raw, &doc); err != nil {
			s.log.WithError(err).WithField("project", key).Warn("stored state is not valid JSON, starting empty")
			doc = make(document)
		}
	}

	s.data[key] = doc
	return doc
}

// Data returns the stored encoded sequence for the given project and list
// name, or an empty sequence if absent. It never fails and never creates an
// entry.
func (s *Store) Data(key ProjectKey, name string) []json.RawMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load(key)
	entries := doc[name]
	out := make([]json.RawMessage, len(entries))
	copy(out, entries)
	return out
}

// Update replaces the full stored sequence for the given project and list
// name. Last writer wins; there is no merge.
func (s *Store) Update(key ProjectKey, name string, entries []json.RawMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load(key)
	stored := make([]json.RawMessage, len(entries))
	copy(stored, entries)
	doc[name] = stored
	s.dirty[key] = true
}

// Sync flushes every dirty project to the medium. A failing project does not
// prevent the others from being attempted; all failures are reported in the
// returned error. In-memory state is kept as-is either way.
func (s *Store) Sync() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var firstErr error
	for key := range s.dirty {
		raw, err := json.MarshalIndent(s.data[key], "", "  ")
		if err != nil {
			err = errors.StoreWriteFailed(string(key), err)
			s.log.WithError(err).Error("failed to marshal state")
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if err := s.medium.Write(key, raw); err != nil {
			err = errors.StoreWriteFailed(string(key), err)
			s.log.WithError(err).Error("failed to flush state")
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		delete(s.dirty, key)
	}
	return firstErr
}

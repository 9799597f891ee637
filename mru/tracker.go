// Package mru maintains the most-recently-used view of selected marks. The
// tracker is a pure listener: it reacts to selection and list-change events on
// the bus and keeps its bounded history in the store under a reserved name.
package mru

import (
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/moor/events"
	"github.com/grovetools/moor/list"
	"github.com/grovetools/moor/logging"
	"github.com/grovetools/moor/mark"
	"github.com/grovetools/moor/store"
)

const (
	// Capacity bounds the history kept per project.
	Capacity = 20
	// ListName is the name of the virtual list presented to the user.
	ListName = "MRU"
	// StoreName is the reserved store entry backing the MRU history. It is
	// deliberately not a valid user-facing list name.
	StoreName = "__mru"
)

// Tracker derives the MRU history from bus events. It never owns a
// materialized list; the stored encoded entries are the single source of
// truth.
type Tracker struct {
	bus     *events.Bus
	store   *store.Store
	codec   list.Codec
	key     func() store.ProjectKey
	current func() string
	sync    func() error
	log     *logrus.Entry
	token   string
}

// NewTracker wires a tracker to the bus. key resolves the active project,
// current resolves the value of the file the user is in (empty when none),
// and sync flushes the session after each history update.
func NewTracker(bus *events.Bus, st *store.Store, codec list.Codec, key func() store.ProjectKey, current func() string, sync func() error) *Tracker {
	t := &Tracker{
		bus:     bus,
		store:   st,
		codec:   codec,
		key:     key,
		current: current,
		sync:    sync,
		log:     logging.NewLogger("mru"),
	}
	t.token = bus.AddListener(events.Listeners{
		events.Select:     t.handleSelect,
		events.ListChange: t.handleListChange,
	})
	return t
}

// Close detaches the tracker from the bus.
func (t *Tracker) Close() {
	t.bus.RemoveListener(t.token)
}

// handleSelect moves the selected item to the front of the history,
// deduplicating by value and truncating to capacity.
func (t *Tracker) handleSelect(ev events.Event) {
	if ev.Item == nil || ev.Item.Value() == "" {
		t.log.Debug("ignoring selection without a value")
		return
	}

	key := t.key()
	entries := t.store.Data(key, StoreName)

	kept := make([]json.RawMessage, 0, len(entries)+1)
	removed := false
	for i, raw := range entries {
		item, err := t.codec.Decode(raw)
		if err != nil {
			t.log.WithError(err).WithField("index", i).Warn("dropping malformed history entry")
			continue
		}
		if !removed && item.Value() == ev.Item.Value() {
			removed = true
			continue
		}
		kept = append(kept, raw)
	}

	encoded, err := t.codec.Encode(ev.Item)
	if err != nil {
		t.log.WithError(err).Warn("failed to encode selected item, history unchanged")
		return
	}

	entries = append([]json.RawMessage{encoded}, kept...)
	if len(entries) > Capacity {
		entries = entries[:Capacity]
	}

	t.store.Update(key, StoreName, entries)
	if err := t.sync(); err != nil {
		t.log.WithError(err).Error("failed to sync after selection")
	}
}

// handleListChange writes back manual edits made in the MRU view itself:
// deletions and reorderings in the presented list replace the history. The
// current file, excluded from the view, keeps its front position if it was
// already present. Capacity is not re-enforced on this path; the edited view
// is itself derived from a bounded history.
func (t *Tracker) handleListChange(ev events.Event) {
	if ev.List != ListName {
		return
	}

	key := t.key()
	old := t.store.Data(key, StoreName)

	var rebuilt []json.RawMessage
	if cur := t.current(); cur != "" {
		for _, raw := range old {
			item, err := t.codec.Decode(raw)
			if err != nil {
				continue
			}
			if item.Value() == cur {
				rebuilt = append(rebuilt, raw)
				break
			}
		}
	}

	for i, item := range ev.Items {
		if item == nil || item.Value() == "" {
			continue
		}
		raw, err := t.codec.Encode(item)
		if err != nil {
			t.log.WithError(err).WithField("index", i).Warn("skipping unencodable item")
			continue
		}
		rebuilt = append(rebuilt, raw)
	}

	t.store.Update(key, StoreName, rebuilt)
	if err := t.sync(); err != nil {
		t.log.WithError(err).Error("failed to sync after history edit")
	}
}

// Entries decodes the stored history for the given project, most recent
// first. Malformed entries are skipped.
func (t *Tracker) Entries(key store.ProjectKey) []mark.Item {
	stored := t.store.Data(key, StoreName)
	items := make([]mark.Item, 0, len(stored))
	for i, raw := range stored {
		item, err := t.codec.Decode(raw)
		if err != nil {
			t.log.WithError(err).WithField("index", i).Warn("skipping malformed history entry")
			continue
		}
		items = append(items, item)
	}
	return items
}

// Menu builds the presentation-only list for the MRU history, excluding the
// current file so the menu never offers a jump to where the user already is.
// It returns nil when nothing would be shown; the caller then skips the UI
// entirely. The returned list is never persisted.
func (t *Tracker) Menu(key store.ProjectKey) *list.List {
	cur := t.current()
	var filtered []json.RawMessage
	for _, raw := range t.store.Data(key, StoreName) {
		item, err := t.codec.Decode(raw)
		if err != nil {
			continue
		}
		if cur != "" && item.Value() == cur {
			continue
		}
		filtered = append(filtered, raw)
	}
	if len(filtered) == 0 {
		return nil
	}
	return list.New(ListName, list.Config{Codec: t.codec, Persist: false}, t.bus, filtered)
}

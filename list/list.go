// Package list implements the named, ordered mark collections at the center
// of moor. A list owns its item sequence, emits an event for every mutation,
// and encodes itself through its codec for persistence.
package list

import (
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/moor/errors"
	"github.com/grovetools/moor/events"
	"github.com/grovetools/moor/logging"
	"github.com/grovetools/moor/mark"
)

// Callbacks are optional lifecycle hooks invoked by the session.
type Callbacks struct {
	// OnCreate runs after a list is first materialized from the store.
	OnCreate func(*List)
}

// Config carries the per-list settings.
type Config struct {
	// Codec encodes and decodes items for this list.
	Codec Codec
	// Persist controls whether the list is written back during a sync.
	// Virtual lists (the MRU menu view) set this to false.
	Persist bool
	// Callbacks are the lifecycle hooks for the list.
	Callbacks Callbacks
}

// List is a named, ordered collection of marks. Order is caller-significant:
// items stay where they were inserted or explicitly moved to.
type List struct {
	name  string
	cfg   Config
	bus   *events.Bus
	items []mark.Item
	log   *logrus.Entry
}

// New builds a list from stored entries by decoding each through the codec.
// Entries that fail to decode are skipped with a warning so one malformed
// entry cannot take the whole list down.
func New(name string, cfg Config, bus *events.Bus, stored []json.RawMessage) *List {
	log := logging.NewLogger("list")
	items := make([]mark.Item, 0, len(stored))
	for i, raw := range stored {
		item, err := cfg.Codec.Decode(raw)
		if err != nil {
			log.WithError(errors.DecodeFailed(name, i, err)).Warn("skipping malformed entry")
			continue
		}
		items = append(items, item)
	}
	l := &List{
		name:  name,
		cfg:   cfg,
		bus:   bus,
		items: items,
		log:   log,
	}
	if cfg.Callbacks.OnCreate != nil {
		cfg.Callbacks.OnCreate(l)
	}
	return l
}

// Name returns the list name.
func (l *List) Name() string {
	return l.name
}

// Persist reports whether the list should be written back during a sync.
func (l *List) Persist() bool {
	return l.cfg.Persist
}

// Len returns the number of items.
func (l *List) Len() int {
	return len(l.items)
}

// Items returns a copy of the ordered item sequence.
func (l *List) Items() []mark.Item {
	out := make([]mark.Item, len(l.items))
	copy(out, l.items)
	return out
}

// At returns the item at index i.
func (l *List) At(i int) (mark.Item, error) {
	if i < 0 || i >= len(l.items) {
		return nil, errors.IndexRange(l.name, i, len(l.items))
	}
	return l.items[i], nil
}

// snapshot is the item slice attached to ListChange events.
func (l *List) snapshot() []mark.Item {
	return l.Items()
}

func (l *List) emitChange() {
	l.bus.Emit(events.Event{Kind: events.ListChange, List: l.name, Items: l.snapshot()})
}

// Add appends an item to the end of the list.
func (l *List) Add(item mark.Item) {
	l.items = append(l.items, item)
	l.bus.Emit(events.Event{Kind: events.Add, List: l.name, Item: item, Index: len(l.items) - 1})
	l.emitChange()
}

// Insert places an item at index i, shifting later items right. i may equal
// Len to append.
func (l *List) Insert(i int, item mark.Item) error {
	if i < 0 || i > len(l.items) {
		return errors.IndexRange(l.name, i, len(l.items))
	}
	l.items = append(l.items, nil)
	copy(l.items[i+1:], l.items[i:])
	l.items[i] = item
	l.bus.Emit(events.Event{Kind: events.Add, List: l.name, Item: item, Index: i})
	l.emitChange()
	return nil
}

// Remove deletes the item at index i and returns it.
func (l *List) Remove(i int) (mark.Item, error) {
	if i < 0 || i >= len(l.items) {
		return nil, errors.IndexRange(l.name, i, len(l.items))
	}
	item := l.items[i]
	l.items = append(l.items[:i], l.items[i+1:]...)
	l.bus.Emit(events.Event{Kind: events.Remove, List: l.name, Item: item, Index: i})
	l.emitChange()
	return item, nil
}

// RemoveValue deletes the first item whose value matches. It reports whether
// anything was removed.
func (l *List) RemoveValue(value string) bool {
	for i, item := range l.items {
		if item.Value() == value {
			_, _ = l.Remove(i)
			return true
		}
	}
	return false
}

// Reorder applies a permutation: the item currently at perm[i] moves to
// position i. The permutation must cover every index exactly once.
func (l *List) Reorder(perm []int) error {
	if len(perm) != len(l.items) {
		return errors.BadPermutation(l.name, "length mismatch")
	}
	seen := make([]bool, len(perm))
	reordered := make([]mark.Item, len(perm))
	for i, from := range perm {
		if from < 0 || from >= len(l.items) {
			return errors.BadPermutation(l.name, "index out of range")
		}
		if seen[from] {
			return errors.BadPermutation(l.name, "duplicate index")
		}
		seen[from] = true
		reordered[i] = l.items[from]
	}
	l.items = reordered
	l.bus.Emit(events.Event{Kind: events.Reorder, List: l.name, Items: l.snapshot()})
	l.emitChange()
	return nil
}

// UpdatePosition replaces the first item matching value with the given item,
// keeping its position. Used when the host reports that a mark's cursor
// position moved. Unknown values are ignored.
func (l *List) UpdatePosition(value string, item mark.Item) {
	for i, existing := range l.items {
		if existing.Value() == value {
			l.items[i] = item
			l.bus.Emit(events.Event{Kind: events.PositionUpdated, List: l.name, Item: item, Index: i})
			return
		}
	}
}

// Encode maps the item sequence through the codec, producing the stored form.
func (l *List) Encode() ([]json.RawMessage, error) {
	out := make([]json.RawMessage, 0, len(l.items))
	for i, item := range l.items {
		raw, err := l.cfg.Codec.Encode(item)
		if err != nil {
			return nil, errors.EncodeFailed(l.name, i, err)
		}
		out = append(out, raw)
	}
	return out, nil
}

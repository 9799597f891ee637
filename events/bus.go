// Package events provides the in-process event bus that decouples list
// mutations from their side effects. Dispatch is synchronous and handlers for
// one event run in registration order; panics in handlers are not recovered.
package events

import (
	"sync"

	"github.com/google/uuid"

	"github.com/grovetools/moor/mark"
)

// Kind identifies an event category.
type Kind int

const (
	Add Kind = iota
	Remove
	Reorder
	ListChange
	PositionUpdated
	Select
	ListRead
	ListCreated
	SetupCalled
)

var kindNames = map[Kind]string{
	Add:             "add",
	Remove:          "remove",
	Reorder:         "reorder",
	ListChange:      "list_change",
	PositionUpdated: "position_updated",
	Select:          "select",
	ListRead:        "list_read",
	ListCreated:     "list_created",
	SetupCalled:     "setup_called",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Event is the payload delivered to handlers. Fields are populated as far as
// they apply to the kind: List carries the list name, Item the item involved,
// Index its position, and Items a snapshot of the list after the mutation
// (ListChange only).
type Event struct {
	Kind  Kind
	List  string
	Item  mark.Item
	Index int
	Items []mark.Item
}

// Handler consumes a single event.
type Handler func(Event)

// Listeners maps event kinds to handlers for bulk registration.
type Listeners map[Kind]Handler

type subscription struct {
	token   string
	handler Handler
}

// Bus is the listener registry. Multiple registrations for the same kind
// accumulate; none overwrite.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Kind][]subscription
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[Kind][]subscription)}
}

// AddListener registers every handler in the map and returns a token that
// removes all of them at once.
func (b *Bus) AddListener(listeners Listeners) string {
	token := uuid.NewString()
	b.mu.Lock()
	defer b.mu.Unlock()
	for kind, handler := range listeners {
		if handler == nil {
			continue
		}
		b.handlers[kind] = append(b.handlers[kind], subscription{token: token, handler: handler})
	}
	return token
}

// RemoveListener unregisters every handler added under the given token.
// Unknown tokens are ignored.
func (b *Bus) RemoveListener(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for kind, subs := range b.handlers {
		kept := subs[:0]
		for _, sub := range subs {
			if sub.token != token {
				kept = append(kept, sub)
			}
		}
		b.handlers[kind] = kept
	}
}

// Emit invokes every handler registered for the event's kind, synchronously,
// in registration order. Handler panics propagate to the caller.
func (b *Bus) Emit(ev Event) {
	b.mu.RLock()
	subs := make([]subscription, len(b.handlers[ev.Kind]))
	copy(subs, b.handlers[ev.Kind])
	b.mu.RUnlock()

	for _, sub := range subs {
		sub.handler(ev)
	}
}

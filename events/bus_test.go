package events

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmitInvokesHandlersInRegistrationOrder(t *testing.T) {
	bus := NewBus()
	var order []string

	bus.AddListener(Listeners{
		ListChange: func(Event) { order = append(order, "first") },
	})
	bus.AddListener(Listeners{
		ListChange: func(Event) { order = append(order, "second") },
	})

	bus.Emit(Event{Kind: ListChange, List: "marks"})
	require.Equal(t, []string{"first", "second"}, order)
}

func TestListenersAccumulateAcrossRegistrations(t *testing.T) {
	bus := NewBus()
	count := 0

	bus.AddListener(Listeners{Add: func(Event) { count++ }})
	bus.AddListener(Listeners{Add: func(Event) { count++ }})
	bus.AddListener(Listeners{Add: func(Event) { count++ }})

	bus.Emit(Event{Kind: Add})
	require.Equal(t, 3, count)
}

func TestEmitOnlyMatchingKind(t *testing.T) {
	bus := NewBus()
	var got []Kind

	bus.AddListener(Listeners{
		Add:    func(ev Event) { got = append(got, ev.Kind) },
		Remove: func(ev Event) { got = append(got, ev.Kind) },
	})

	bus.Emit(Event{Kind: Add})
	bus.Emit(Event{Kind: Select})
	require.Equal(t, []Kind{Add}, got)
}

func TestRemoveListener(t *testing.T) {
	bus := NewBus()
	var order []string

	first := bus.AddListener(Listeners{
		ListChange: func(Event) { order = append(order, "first") },
	})
	bus.AddListener(Listeners{
		ListChange: func(Event) { order = append(order, "second") },
	})

	bus.RemoveListener(first)
	bus.Emit(Event{Kind: ListChange})
	require.Equal(t, []string{"second"}, order)

	// Removing an unknown token is a no-op.
	bus.RemoveListener("nope")
	bus.Emit(Event{Kind: ListChange})
	require.Equal(t, []string{"second", "second"}, order)
}

func TestHandlerPanicPropagates(t *testing.T) {
	bus := NewBus()
	bus.AddListener(Listeners{Add: func(Event) { panic("boom") }})

	require.Panics(t, func() {
		bus.Emit(Event{Kind: Add})
	})
}

func TestKindString(t *testing.T) {
	require.Equal(t, "list_change", ListChange.String())
	require.Equal(t, "setup_called", SetupCalled.String())
	require.Equal(t, "unknown", Kind(99).String())
}

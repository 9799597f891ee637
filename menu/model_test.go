package menu

import (
	"encoding/json"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/moor/events"
	"github.com/grovetools/moor/list"
)

func newMenuList(t *testing.T, paths ...string) (*list.List, *events.Bus) {
	t.Helper()
	bus := events.NewBus()
	raws := make([]json.RawMessage, 0, len(paths))
	for _, p := range paths {
		raw, err := json.Marshal(map[string]interface{}{"value": p})
		require.NoError(t, err)
		raws = append(raws, raw)
	}
	return list.New("marks", list.Config{Codec: list.FileCodec{}, Persist: true}, bus, raws), bus
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestNavigateAndSelect(t *testing.T) {
	l, _ := newMenuList(t, "a.go", "b.go", "c.go")
	m := NewModel(l, Options{})

	m = press(m, "j", "j", "enter")
	require.NotNil(t, m.Selected())
	require.Equal(t, "c.go", m.Selected().Value())
}

func TestCursorStopsAtBounds(t *testing.T) {
	l, _ := newMenuList(t, "a.go", "b.go")
	m := NewModel(l, Options{})

	m = press(m, "k", "k", "enter")
	require.Equal(t, "a.go", m.Selected().Value())

	m2 := NewModel(l, Options{})
	m2 = press(m2, "j", "j", "j", "enter")
	require.Equal(t, "b.go", m2.Selected().Value())
}

func TestQuitSelectsNothing(t *testing.T) {
	l, _ := newMenuList(t, "a.go")
	m := NewModel(l, Options{})
	m = press(m, "q")
	require.Nil(t, m.Selected())
}

func TestDeleteMutatesList(t *testing.T) {
	l, bus := newMenuList(t, "a.go", "b.go")
	changes := 0
	bus.AddListener(events.Listeners{
		events.ListChange: func(events.Event) { changes++ },
	})

	m := NewModel(l, Options{})
	m = press(m, "d")
	require.Equal(t, 1, l.Len())
	require.Equal(t, 1, changes)

	item, err := l.At(0)
	require.NoError(t, err)
	require.Equal(t, "b.go", item.Value())
}

func TestMoveReordersList(t *testing.T) {
	l, _ := newMenuList(t, "a.go", "b.go", "c.go")
	m := NewModel(l, Options{})

	// Move the first item down one slot.
	_ = press(m, "J")
	items := l.Items()
	require.Equal(t, "b.go", items[0].Value())
	require.Equal(t, "a.go", items[1].Value())
}

func TestViewShowsItemsAndCursor(t *testing.T) {
	l, _ := newMenuList(t, "a.go", "b.go")
	m := NewModel(l, Options{Title: "marks"})
	out := m.View()
	require.Contains(t, out, "a.go")
	require.Contains(t, out, "b.go")
	require.Contains(t, out, "marks")
}

func TestViewport(t *testing.T) {
	start, end := viewport(5, 0, 10)
	require.Equal(t, 0, start)
	require.Equal(t, 5, end)

	start, end = viewport(30, 29, 10)
	require.Equal(t, 20, start)
	require.Equal(t, 30, end)

	start, end = viewport(30, 15, 10)
	require.Equal(t, end-start, 10)
}

func TestToggleEmptyListIsNoop(t *testing.T) {
	require.NoError(t, Toggle(nil, Options{}))

	l, _ := newMenuList(t)
	require.NoError(t, Toggle(l, Options{}))
}

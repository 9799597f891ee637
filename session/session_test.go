package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/grovetools/moor/config"
	"github.com/grovetools/moor/events"
	"github.com/grovetools/moor/list"
	"github.com/grovetools/moor/mark"
	"github.com/grovetools/moor/mru"
	"github.com/grovetools/moor/store"
)

// memMedium is an in-memory Medium for session tests.
type memMedium struct {
	mu     sync.Mutex
	data   map[store.ProjectKey][]byte
	writes int
	fail   bool
}

func newMemMedium() *memMedium {
	return &memMedium{data: make(map[store.ProjectKey][]byte)}
}

func (m *memMedium) Read(key store.ProjectKey) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.data[key]
	return data, ok, nil
}

func (m *memMedium) Write(key store.ProjectKey, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return fmt.Errorf("write refused")
	}
	m.data[key] = data
	m.writes++
	return nil
}

func newTestSession(medium store.Medium) *Session {
	return New(config.Config{
		Key:    func() (store.ProjectKey, error) { return "proj", nil },
		Root:   func() (string, error) { return "/proj", nil },
		Medium: medium,
	})
}

func TestListCreatesOnFirstAccess(t *testing.T) {
	s := newTestSession(newMemMedium())
	var kinds []events.Kind
	s.Extend(events.Listeners{
		events.ListCreated: func(ev events.Event) { kinds = append(kinds, ev.Kind) },
		events.ListRead:    func(ev events.Event) { kinds = append(kinds, ev.Kind) },
	})

	first, err := s.List("marks")
	require.NoError(t, err)
	second, err := s.List("marks")
	require.NoError(t, err)

	// Same materialized list both times, created exactly once, read on every
	// access.
	require.Same(t, first, second)
	require.Equal(t, []events.Kind{events.ListCreated, events.ListRead, events.ListRead}, kinds)
}

func TestListOnCreateCallback(t *testing.T) {
	created := 0
	s := New(config.Config{
		Key:    func() (store.ProjectKey, error) { return "proj", nil },
		Medium: newMemMedium(),
		Lists: map[string]config.ListOptions{
			"marks": {OnCreate: func(l *list.List) { created++ }},
		},
	})

	_, err := s.List("marks")
	require.NoError(t, err)
	_, err = s.List("marks")
	require.NoError(t, err)
	require.Equal(t, 1, created)
}

func TestSyncPersistsCachedLists(t *testing.T) {
	medium := newMemMedium()
	s := newTestSession(medium)

	l, err := s.List("marks")
	require.NoError(t, err)
	l.Add(mark.File{Path: "a.go", Row: 1})
	l.Add(mark.File{Path: "b.go"})
	require.NoError(t, s.Sync())

	// A fresh session over the same medium rebuilds the list.
	fresh := newTestSession(medium)
	rebuilt, err := fresh.List("marks")
	require.NoError(t, err)
	require.Equal(t, 2, rebuilt.Len())
	item, err := rebuilt.At(0)
	require.NoError(t, err)
	require.Equal(t, mark.File{Path: "a.go", Row: 1}, item)
}

func TestSyncSkipsNonPersistedLists(t *testing.T) {
	persist := false
	medium := newMemMedium()
	s := New(config.Config{
		Key:    func() (store.ProjectKey, error) { return "proj", nil },
		Medium: medium,
		Lists: map[string]config.ListOptions{
			"scratch": {Persist: &persist},
		},
	})

	l, err := s.List("scratch")
	require.NoError(t, err)
	l.Add(mark.File{Path: "tmp.go"})
	require.NoError(t, s.Sync())
	require.Zero(t, medium.writes)
}

func TestSyncSurfacesWriteFailure(t *testing.T) {
	medium := newMemMedium()
	s := newTestSession(medium)
	l, err := s.List("marks")
	require.NoError(t, err)
	l.Add(mark.File{Path: "a.go"})

	medium.fail = true
	require.Error(t, s.Sync())

	// In-memory state is still valid after the failure.
	require.Equal(t, 1, l.Len())
	medium.fail = false
	require.NoError(t, s.Sync())
}

func TestSelectFeedsMRU(t *testing.T) {
	s := newTestSession(newMemMedium())
	s.Select(mark.File{Path: "a.go"})
	s.Select(mark.File{Path: "b.go"})

	entries := s.MRUEntries()
	require.Len(t, entries, 2)
	require.Equal(t, "b.go", entries[0].Value())
}

func TestSelectWithoutValueIsNoop(t *testing.T) {
	s := newTestSession(newMemMedium())
	s.Select(nil)
	s.Select(mark.File{})
	require.Empty(t, s.MRUEntries())
}

func TestMRUMenuSelfExclusion(t *testing.T) {
	current := ""
	s := New(config.Config{
		Key:     func() (store.ProjectKey, error) { return "proj", nil },
		Current: func() string { return current },
		Medium:  newMemMedium(),
	})

	s.Select(mark.File{Path: "only.go"})
	current = "only.go"
	require.Nil(t, s.MRUMenu())

	current = "elsewhere.go"
	menu := s.MRUMenu()
	require.NotNil(t, menu)
	require.Equal(t, 1, menu.Len())
}

func TestMRUListIsNeverPersistedAsOrdinaryList(t *testing.T) {
	s := newTestSession(newMemMedium())
	l, err := s.List(mru.ListName)
	require.NoError(t, err)
	require.False(t, l.Persist())
}

func TestEditingMRUListWritesBackHistory(t *testing.T) {
	s := newTestSession(newMemMedium())
	s.Select(mark.File{Path: "a.go"})
	s.Select(mark.File{Path: "b.go"})

	view, err := s.List(mru.ListName)
	require.NoError(t, err)
	require.Equal(t, 2, view.Len())

	// Deleting an entry in the view rewrites the stored history.
	_, err = view.Remove(0)
	require.NoError(t, err)

	entries := s.MRUEntries()
	require.Len(t, entries, 1)
	require.Equal(t, "a.go", entries[0].Value())
}

func TestExtendListenersFireInOrder(t *testing.T) {
	s := newTestSession(newMemMedium())
	var order []string
	s.Extend(events.Listeners{
		events.ListChange: func(events.Event) { order = append(order, "first") },
	})
	s.Extend(events.Listeners{
		events.ListChange: func(events.Event) { order = append(order, "second") },
	})

	l, err := s.List("marks")
	require.NoError(t, err)
	l.Add(mark.File{Path: "a.go"})
	require.Equal(t, []string{"first", "second"}, order)
}

func TestUnextend(t *testing.T) {
	s := newTestSession(newMemMedium())
	fired := 0
	token := s.Extend(events.Listeners{
		events.Select: func(events.Event) { fired++ },
	})
	s.Select(mark.File{Path: "a.go"})
	s.Unextend(token)
	s.Select(mark.File{Path: "b.go"})
	require.Equal(t, 1, fired)
}

// recordingHost counts lifecycle hook registrations.
type recordingHost struct {
	viewLeft int
	exit     int
	onExit   func()
}

func (h *recordingHost) OnViewLeft(fn func()) error {
	h.viewLeft++
	return nil
}

func (h *recordingHost) OnExit(fn func()) error {
	h.exit++
	h.onExit = fn
	return nil
}

func TestSetupInstallsHooksOnce(t *testing.T) {
	h := &recordingHost{}
	s := newTestSession(newMemMedium())

	require.NoError(t, s.Setup(config.Config{Host: h}))
	require.NoError(t, s.Setup(config.Config{}))
	require.NoError(t, s.Setup(config.Config{Host: h}))

	require.Equal(t, 1, h.viewLeft)
	require.Equal(t, 1, h.exit)
}

func TestSetupEmitsSetupCalled(t *testing.T) {
	s := newTestSession(newMemMedium())
	fired := 0
	s.Extend(events.Listeners{
		events.SetupCalled: func(events.Event) { fired++ },
	})
	require.NoError(t, s.Setup(config.Config{}))
	require.Equal(t, 1, fired)
}

func TestSetupDropsListCache(t *testing.T) {
	medium := newMemMedium()
	s := newTestSession(medium)

	before, err := s.List("marks")
	require.NoError(t, err)
	require.NoError(t, s.Setup(config.Config{}))

	after, err := s.List("marks")
	require.NoError(t, err)
	require.NotSame(t, before, after)
}

func TestExitHookFlushesState(t *testing.T) {
	medium := newMemMedium()
	h := &recordingHost{}
	s := newTestSession(medium)
	require.NoError(t, s.Setup(config.Config{Host: h}))

	l, err := s.List("marks")
	require.NoError(t, err)
	l.Add(mark.File{Path: "a.go"})

	require.NotNil(t, h.onExit)
	h.onExit()
	require.Equal(t, 1, medium.writes)
}

// Package session wires the moor core together: one store, one event bus, a
// cache of materialized lists keyed by project and name, and the MRU tracker.
// A Session is constructed once at process start and passed to call sites;
// there is no package-level singleton.
package session

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/moor/config"
	"github.com/grovetools/moor/errors"
	"github.com/grovetools/moor/events"
	"github.com/grovetools/moor/list"
	"github.com/grovetools/moor/logging"
	"github.com/grovetools/moor/mark"
	"github.com/grovetools/moor/mru"
	"github.com/grovetools/moor/store"
)

// Session owns the store and the list cache. Cache entries are created on
// first access and live for the process lifetime; Setup rebuilds everything.
type Session struct {
	mu      sync.Mutex
	cfg     config.Config
	bus     *events.Bus
	store   *store.Store
	lists   map[store.ProjectKey]map[string]*list.List
	tracker *mru.Tracker
	hooks   bool
	log     *logrus.Entry
}

// New creates a session from the given configuration, merged over the
// defaults.
func New(cfg config.Config) *Session {
	s := &Session{
		bus: events.NewBus(),
		log: logging.NewLogger("session"),
	}
	s.cfg = config.Merge(config.Default(), cfg)
	s.rebind()
	return s
}

// rebind points the store and tracker at the current configuration and drops
// the list cache. Must be called with the lock held (or before the session is
// shared).
func (s *Session) rebind() {
	s.store = store.New(s.cfg.Medium)
	s.lists = make(map[store.ProjectKey]map[string]*list.List)
	if s.tracker != nil {
		s.tracker.Close()
	}
	s.tracker = mru.NewTracker(s.bus, s.store, s.mruCodec(), s.keyOrEmpty, s.cfg.Current, s.Sync)
}

func (s *Session) mruCodec() list.Codec {
	return s.cfg.Options(mru.ListName).Codec
}

// keyOrEmpty resolves the active project key, degrading to the empty key when
// derivation fails.
func (s *Session) keyOrEmpty() store.ProjectKey {
	key, err := s.cfg.Key()
	if err != nil {
		s.log.WithError(err).Warn("failed to derive project key")
		return ""
	}
	return key
}

// Bus exposes the event bus for composition with the menu and host adapters.
func (s *Session) Bus() *events.Bus {
	return s.bus
}

// Root resolves the active project root.
func (s *Session) Root() (string, error) {
	return s.cfg.Root()
}

// storeName maps a list name to its store entry. The MRU view is backed by a
// reserved name so it can never collide with a user list.
func storeName(name string) string {
	if name == mru.ListName {
		return mru.StoreName
	}
	return name
}

// List returns the cached list for (current project, name), materializing it
// from the store on first access. ListCreated fires once per materialization,
// ListRead on every access.
func (s *Session) List(name string) (*list.List, error) {
	key, err := s.cfg.Key()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to derive project key")
	}

	s.mu.Lock()
	byName, ok := s.lists[key]
	if !ok {
		byName = make(map[string]*list.List)
		s.lists[key] = byName
	}
	l, cached := byName[name]
	opts := s.cfg.Options(name)
	st := s.store
	s.mu.Unlock()

	var created *list.List
	if !cached {
		persist := *opts.Persist
		if name == mru.ListName {
			// The MRU view is never persisted as an ordinary list; the
			// tracker owns its reserved store entry.
			persist = false
		}
		cfg := list.Config{
			Codec:     opts.Codec,
			Persist:   persist,
			Callbacks: list.Callbacks{OnCreate: opts.OnCreate},
		}
		// Materialized outside the lock: OnCreate may call back into the
		// session.
		l = list.New(name, cfg, s.bus, st.Data(key, storeName(name)))
		s.mu.Lock()
		byName[name] = l
		s.mu.Unlock()
		created = l
	}

	// Emit outside the lock: handlers may call back into the session.
	if created != nil {
		s.bus.Emit(events.Event{Kind: events.ListCreated, List: name, Items: created.Items()})
	}
	s.bus.Emit(events.Event{Kind: events.ListRead, List: name})
	return l, nil
}

// Sync encodes every persistable cached list for the current project into the
// store and flushes the store. One list failing to encode does not stop the
// others.
func (s *Session) Sync() error {
	key, err := s.cfg.Key()
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to derive project key")
	}

	s.mu.Lock()
	var firstErr error
	for name, l := range s.lists[key] {
		if !l.Persist() {
			continue
		}
		encoded, err := l.Encode()
		if err != nil {
			s.log.WithError(err).WithField("list", name).Error("failed to encode list")
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		s.store.Update(key, storeName(name), encoded)
	}
	st := s.store
	s.mu.Unlock()

	if err := st.Sync(); err != nil {
		if firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Select records a user selection. Items without a value are ignored by the
// MRU tracker; the Select event still fires for extensions.
func (s *Session) Select(item mark.Item) {
	s.bus.Emit(events.Event{Kind: events.Select, Item: item})
}

// MRUMenu builds the presentation-only MRU list, excluding the current file.
// It returns nil when nothing would be shown.
func (s *Session) MRUMenu() *list.List {
	return s.tracker.Menu(s.keyOrEmpty())
}

// MRUEntries returns the decoded MRU history for the current project.
func (s *Session) MRUEntries() []mark.Item {
	return s.tracker.Entries(s.keyOrEmpty())
}

// Extend subscribes external listeners to the bus and returns a removal
// token. This is the plugin surface.
func (s *Session) Extend(listeners events.Listeners) string {
	return s.bus.AddListener(listeners)
}

// Unextend removes listeners previously added with Extend.
func (s *Session) Unextend(token string) {
	s.bus.RemoveListener(token)
}

// Setup merges a partial configuration into the active one, rebinds the store
// and tracker, drops the list cache, and installs host lifecycle hooks
// exactly once across all Setup calls. Both hooks flush pending state via
// Sync.
func (s *Session) Setup(partial config.Config) error {
	s.mu.Lock()
	s.cfg = config.Merge(s.cfg, partial)
	s.rebind()
	installHooks := s.cfg.Host != nil && !s.hooks
	if installHooks {
		s.hooks = true
	}
	h := s.cfg.Host
	s.mu.Unlock()

	if installHooks {
		flush := func() {
			if err := s.Sync(); err != nil {
				s.log.WithError(err).Error("failed to sync on host signal")
			}
		}
		if err := h.OnViewLeft(flush); err != nil {
			return errors.HostAttach(err)
		}
		if err := h.OnExit(flush); err != nil {
			return errors.HostAttach(err)
		}
	}

	s.bus.Emit(events.Event{Kind: events.SetupCalled})
	return nil
}

// Package config defines the moor session configuration: project key
// derivation, root resolution, the store medium, and per-list overrides.
package config

import (
	"os"

	"github.com/grovetools/moor/host"
	"github.com/grovetools/moor/list"
	"github.com/grovetools/moor/store"
	"github.com/grovetools/moor/util/pathutil"
)

// ListOptions are the per-list settings an embedder can override.
type ListOptions struct {
	// Codec encodes and decodes this list's items. Defaults to the file
	// codec.
	Codec list.Codec
	// Persist controls whether the list survives a sync. Defaults to true;
	// nil means "inherit".
	Persist *bool
	// OnCreate runs after the list is first materialized.
	OnCreate func(*list.List)
}

// MenuSettings configure the quick-menu presentation.
type MenuSettings struct {
	Title     string
	MaxHeight int
}

// Config is the full session configuration. Zero-value fields fall back to
// the defaults from Default when merged.
type Config struct {
	// Key derives the project key partitioning all stored state.
	Key func() (store.ProjectKey, error)
	// Root resolves the project root directory for the current session.
	Root func() (string, error)
	// Current resolves the value of the file the user is currently in,
	// relative to the project root. Empty when there is none.
	Current func() string
	// Medium is the backing storage for the store.
	Medium store.Medium
	// Host is the editor adapter used for lifecycle hooks. Optional.
	Host host.Host
	// Lists holds per-list overrides keyed by list name.
	Lists map[string]ListOptions
	// Menu configures the quick-menu presentation.
	Menu MenuSettings
}

// Default returns the baseline configuration: the project root is the current
// working directory and the key is its normalized path.
func Default() Config {
	root := func() (string, error) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		return pathutil.NormalizeForLookup(cwd)
	}
	return Config{
		Root: root,
		Key: func() (store.ProjectKey, error) {
			r, err := root()
			if err != nil {
				return "", err
			}
			return store.ProjectKey(r), nil
		},
		Current: func() string { return "" },
		Medium:  store.FileMedium{},
		Menu:    MenuSettings{Title: "moor", MaxHeight: 12},
	}
}

// Options resolves the effective options for a named list, applying defaults
// for anything the configuration leaves unset.
func (c Config) Options(name string) ListOptions {
	opts := c.Lists[name]
	if opts.Codec == nil {
		opts.Codec = list.FileCodec{}
	}
	if opts.Persist == nil {
		persist := true
		opts.Persist = &persist
	}
	return opts
}

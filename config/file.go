package config

import (
	"os"
	"path/filepath"

	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/grovetools/moor/errors"
	"github.com/grovetools/moor/store"
	"github.com/grovetools/moor/util/pathutil"
)

// FileConfig is the on-disk configuration read from .moor/moor.yml or
// .moor/moor.toml inside the project root. It carries only data settings;
// codecs and callbacks stay in code.
type FileConfig struct {
	// Root overrides the project root directory.
	Root string `yaml:"root,omitempty" toml:"root,omitempty"`
	// Menu overrides the quick-menu presentation.
	Menu struct {
		Title     string `yaml:"title,omitempty" toml:"title,omitempty"`
		MaxHeight int    `yaml:"max_height,omitempty" toml:"max_height,omitempty"`
	} `yaml:"menu,omitempty" toml:"menu,omitempty"`
	// Lists holds raw per-list options, decoded on demand via
	// DecodeListOptions.
	Lists map[string]map[string]interface{} `yaml:"lists,omitempty" toml:"lists,omitempty"`
}

// ListFileOptions are the recognized per-list keys in a config file.
type ListFileOptions struct {
	Persist *bool `mapstructure:"persist"`
}

// LoadFile reads the project's config file, preferring YAML over TOML when
// both exist. A missing file yields an empty config, not an error.
func LoadFile(root string) (*FileConfig, error) {
	yamlPath := filepath.Join(root, ".moor", "moor.yml")
	if data, err := os.ReadFile(yamlPath); err == nil {
		var cfg FileConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse "+yamlPath)
		}
		return &cfg, nil
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrap(err, errors.ErrCodeConfigNotFound, "failed to read "+yamlPath)
	}

	tomlPath := filepath.Join(root, ".moor", "moor.toml")
	if data, err := os.ReadFile(tomlPath); err == nil {
		var cfg FileConfig
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse "+tomlPath)
		}
		return &cfg, nil
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrap(err, errors.ErrCodeConfigNotFound, "failed to read "+tomlPath)
	}

	return &FileConfig{}, nil
}

// DecodeListOptions decodes the raw options of a named list into out.
// Unknown lists decode into the zero value.
func (f *FileConfig) DecodeListOptions(name string, out interface{}) error {
	raw, ok := f.Lists[name]
	if !ok {
		return nil
	}
	if err := mapstructure.Decode(raw, out); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigValidation, "invalid options for list '"+name+"'")
	}
	return nil
}

// Apply folds the file settings into a runtime configuration.
func (f *FileConfig) Apply(base Config) (Config, error) {
	partial := Config{}

	if f.Root != "" {
		root, err := pathutil.NormalizeForLookup(f.Root)
		if err != nil {
			return Config{}, errors.Wrap(err, errors.ErrCodeConfigInvalid, "invalid root '"+f.Root+"'")
		}
		partial.Root = func() (string, error) { return root, nil }
		partial.Key = func() (store.ProjectKey, error) { return store.ProjectKey(root), nil }
	}
	partial.Menu.Title = f.Menu.Title
	partial.Menu.MaxHeight = f.Menu.MaxHeight

	if len(f.Lists) > 0 {
		partial.Lists = make(map[string]ListOptions, len(f.Lists))
		for name := range f.Lists {
			var opts ListFileOptions
			if err := f.DecodeListOptions(name, &opts); err != nil {
				return Config{}, err
			}
			partial.Lists[name] = ListOptions{Persist: opts.Persist}
		}
	}

	return Merge(base, partial), nil
}

// Package cmd implements the moor command line interface.
package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/grovetools/moor/cli"
	"github.com/grovetools/moor/config"
	"github.com/grovetools/moor/mark"
	"github.com/grovetools/moor/session"
	"github.com/grovetools/moor/util/pathutil"
	"github.com/grovetools/moor/version"
)

// NewRootCmd assembles the moor command tree.
func NewRootCmd() *cobra.Command {
	root := cli.NewStandardCommand("moor", "Per-project file marks with an MRU history")
	root.Long = `moor keeps named, ordered lists of file marks per project and tracks the
most recently used ones. Marks live with the project under .moor/.`

	root.AddCommand(
		NewAddCmd(),
		NewListCmd(),
		NewRmCmd(),
		NewJumpCmd(),
		NewMRUCmd(),
		NewSyncCmd(),
		NewVersionCmd(),
	)
	return root
}

// NewVersionCmd reports the build version.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the moor version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Version)
		},
	}
}

// newSession builds a session rooted at the current working directory,
// folding in the project's config file when present.
func newSession() (*session.Session, string, error) {
	cfg := config.Default()
	root, err := cfg.Root()
	if err != nil {
		return nil, "", err
	}

	fileCfg, err := config.LoadFile(root)
	if err != nil {
		return nil, "", err
	}
	cfg, err = fileCfg.Apply(cfg)
	if err != nil {
		return nil, "", err
	}

	return session.New(cfg), root, nil
}

// markValue converts a user-supplied path into a mark value relative to the
// project root.
func markValue(root, path string) (string, error) {
	return pathutil.RelativeTo(root, path)
}

// resolveItem interprets arg as a 1-based index into the list, falling back
// to a value match.
func resolveItem(items []mark.Item, root, arg string) (int, error) {
	if idx, err := strconv.Atoi(arg); err == nil {
		if idx < 1 || idx > len(items) {
			return 0, fmt.Errorf("index %d out of range (list has %d entries)", idx, len(items))
		}
		return idx - 1, nil
	}

	value, err := markValue(root, arg)
	if err != nil {
		return 0, err
	}
	for i, item := range items {
		if item.Value() == value {
			return i, nil
		}
	}
	return 0, fmt.Errorf("no mark for %s", value)
}

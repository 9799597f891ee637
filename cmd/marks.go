package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grovetools/moor/cli"
	"github.com/grovetools/moor/mark"
)

// NewAddCmd appends a mark for a file to a list.
func NewAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <file>",
		Short: "Add a file mark to a list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := cli.GetLogger(cmd)
			opts := cli.GetOptions(cmd)

			s, root, err := newSession()
			if err != nil {
				return err
			}

			value, err := markValue(root, args[0])
			if err != nil {
				return err
			}
			row, _ := cmd.Flags().GetInt("row")
			col, _ := cmd.Flags().GetInt("col")

			l, err := s.List(opts.ListName)
			if err != nil {
				return err
			}

			item := mark.File{Path: value, Row: row, Col: col}
			// Re-adding a known file refreshes its position instead of
			// growing the list.
			replaced := false
			for _, existing := range l.Items() {
				if existing.Value() == value {
					l.UpdatePosition(value, item)
					replaced = true
					break
				}
			}
			if !replaced {
				l.Add(item)
			}

			if err := s.Sync(); err != nil {
				return err
			}
			log.WithField("list", opts.ListName).WithField("value", value).Debug("mark added")
			fmt.Fprintf(cmd.OutOrStdout(), "added %s to %s\n", value, opts.ListName)
			return nil
		},
	}
	cli.AddListFlag(cmd.Flags())
	cmd.Flags().Int("row", 0, "Line number of the mark")
	cmd.Flags().Int("col", 0, "Column of the mark")
	return cmd
}

// NewListCmd prints the marks of a list in order.
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the marks of a list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)

			s, _, err := newSession()
			if err != nil {
				return err
			}
			l, err := s.List(opts.ListName)
			if err != nil {
				return err
			}

			if opts.JSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(l.Items())
			}

			for i, item := range l.Items() {
				fmt.Fprintf(cmd.OutOrStdout(), "%d  %s\n", i+1, item.Value())
			}
			return nil
		},
	}
	cli.AddListFlag(cmd.Flags())
	return cmd
}

// NewRmCmd removes a mark by index or path.
func NewRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <index|file>",
		Short: "Remove a mark from a list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)

			s, root, err := newSession()
			if err != nil {
				return err
			}
			l, err := s.List(opts.ListName)
			if err != nil {
				return err
			}

			idx, err := resolveItem(l.Items(), root, args[0])
			if err != nil {
				return err
			}
			removed, err := l.Remove(idx)
			if err != nil {
				return err
			}
			if err := s.Sync(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s from %s\n", removed.Value(), opts.ListName)
			return nil
		},
	}
	cli.AddListFlag(cmd.Flags())
	return cmd
}

// NewJumpCmd selects a mark, feeding the MRU history, and prints its path so
// shells and editors can act on it.
func NewJumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jump <index|file>",
		Short: "Select a mark and print its path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)

			s, root, err := newSession()
			if err != nil {
				return err
			}
			l, err := s.List(opts.ListName)
			if err != nil {
				return err
			}

			idx, err := resolveItem(l.Items(), root, args[0])
			if err != nil {
				return err
			}
			item, err := l.At(idx)
			if err != nil {
				return err
			}

			s.Select(item)
			fmt.Fprintln(cmd.OutOrStdout(), item.Value())
			return nil
		},
	}
	cli.AddListFlag(cmd.Flags())
	return cmd
}

// NewSyncCmd flushes all pending list state to disk.
func NewSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Flush pending mark state to disk",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := newSession()
			if err != nil {
				return err
			}
			return s.Sync()
		},
	}
}

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grovetools/moor/cli"
	"github.com/grovetools/moor/config"
	"github.com/grovetools/moor/mark"
	"github.com/grovetools/moor/menu"
	"github.com/grovetools/moor/session"
	"github.com/grovetools/moor/util/pathutil"
)

// NewMRUCmd shows the most-recently-used marks, either as an interactive
// quick menu or as plain output.
func NewMRUCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mru",
		Short: "Browse the most recently used marks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := cli.GetLogger(cmd)
			opts := cli.GetOptions(cmd)
			currentArg, _ := cmd.Flags().GetString("current")
			plain, _ := cmd.Flags().GetBool("plain")

			cfg := config.Default()
			root, err := cfg.Root()
			if err != nil {
				return err
			}
			fileCfg, err := config.LoadFile(root)
			if err != nil {
				return err
			}
			cfg, err = fileCfg.Apply(cfg)
			if err != nil {
				return err
			}

			// The current file drives self-exclusion: the menu never offers
			// a jump to where the user already is.
			current := ""
			if currentArg != "" {
				current, err = pathutil.RelativeTo(root, currentArg)
				if err != nil {
					return err
				}
			}
			cur := current
			cfg = config.Merge(cfg, config.Config{
				Current: func() string { return cur },
			})

			s := session.New(cfg)

			if plain || opts.JSON {
				return printMRU(cmd, s, opts.JSON)
			}

			l := s.MRUMenu()
			if l == nil {
				log.Debug("MRU history empty or only holds the current file")
				return nil
			}

			return menu.Toggle(l, menu.Options{
				Title:     cfg.Menu.Title + " · recent",
				MaxHeight: cfg.Menu.MaxHeight,
				OnSelect: func(item mark.Item) {
					s.Select(item)
					fmt.Fprintln(cmd.OutOrStdout(), item.Value())
				},
			})
		},
	}
	cmd.Flags().String("current", "", "Path of the file the editor is currently in")
	cmd.Flags().Bool("plain", false, "Print the history instead of opening the menu")
	return cmd
}

func printMRU(cmd *cobra.Command, s *session.Session, asJSON bool) error {
	entries := s.MRUEntries()
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}
	for i, item := range entries {
		fmt.Fprintf(cmd.OutOrStdout(), "%d  %s\n", i+1, item.Value())
	}
	return nil
}

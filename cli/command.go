// Package cli provides shared cobra plumbing for the moor commands.
package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/grovetools/moor/logging"
)

// CommandOptions holds common options for moor commands
type CommandOptions struct {
	ListName string
	Verbose  bool
	JSON     bool
}

// NewStandardCommand creates a new command with standard moor flags
func NewStandardCommand(use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")

	return cmd
}

// AddListFlag registers the --list flag on a flag set. Most commands operate
// on the default "marks" list unless told otherwise.
func AddListFlag(flags *pflag.FlagSet) {
	flags.StringP("list", "l", "marks", "Name of the list to operate on")
}

// GetLogger creates a logger based on command flags
func GetLogger(cmd *cobra.Command) *logrus.Entry {
	entry := logging.NewLogger("cli")

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		entry.Logger.SetLevel(logrus.DebugLevel)
	}
	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		entry.Logger.SetFormatter(&logrus.JSONFormatter{})
	}

	return entry
}

// GetOptions extracts common options from a command
func GetOptions(cmd *cobra.Command) CommandOptions {
	listName, _ := cmd.Flags().GetString("list")
	verbose, _ := cmd.Flags().GetBool("verbose")
	jsonOut, _ := cmd.Flags().GetBool("json")

	return CommandOptions{
		ListName: listName,
		Verbose:  verbose,
		JSON:     jsonOut,
	}
}

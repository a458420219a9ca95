package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ena-dev/ena/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "ena",
		Short:   "Parse financial institution statements into bookkeeping CSVs",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newParseCommand())
	rootCmd.AddCommand(newPrefsCommand())
	rootCmd.AddCommand(newInstitutionsCommand())

	return rootCmd
}

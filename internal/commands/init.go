package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ena-dev/ena/internal/categorize"
	"github.com/ena-dev/ena/internal/preferences"
	"github.com/ena-dev/ena/internal/profile"
)

func newInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Scaffold a statements workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runInit(absDir)
		},
	}
	return cmd
}

func runInit(dir string) error {
	// One drop directory per builtin institution, plus output and logs.
	dirs := []string{"output", "logs"}
	for _, name := range profile.DefaultRegistry().Names() {
		dirs = append(dirs, filepath.Join("statements", name))
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	if err := preferences.Save(filepath.Join(dir, preferences.FileName), preferences.Default()); err != nil {
		return err
	}

	if err := categorize.SaveRules(filepath.Join(dir, rulesFile), categorize.DefaultRules()); err != nil {
		return err
	}

	if err := profile.SaveSpecs(filepath.Join(dir, profilesFile), nil); err != nil {
		return err
	}

	fmt.Printf("Initialized statements workspace at %s\n", dir)
	return nil
}

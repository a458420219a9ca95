package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ena-dev/ena/internal/categorize"
	"github.com/ena-dev/ena/internal/extract"
	"github.com/ena-dev/ena/internal/logger"
	"github.com/ena-dev/ena/internal/preferences"
	"github.com/ena-dev/ena/internal/profile"
	"github.com/ena-dev/ena/internal/statements"
)

// profilesFile holds optional user-defined institution profiles.
const profilesFile = "profiles.yaml"

// rulesFile holds the keyword categorization rules.
const rulesFile = "categories.yaml"

func newParseCommand() *cobra.Command {
	var dir string
	var out string
	var strict bool
	var verbose bool

	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse all statements into one CSV per institution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := zerolog.InfoLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			return runParse(dir, out, strict, logger.New(level))
		},
	}

	cmd.Flags().StringVarP(&dir, "directory", "d", "statements", "directory where statements are")
	cmd.Flags().StringVarP(&out, "out", "o", "output", "directory to write CSVs to")
	cmd.Flags().BoolVar(&strict, "strict", false, "treat reconciliation discrepancies as fatal")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log per-transaction detail")

	return cmd
}

func runParse(dir, out string, strict bool, log zerolog.Logger) error {
	prefs, err := loadPreferences()
	if err != nil {
		return err
	}

	registry := profile.DefaultRegistry()
	if _, err := os.Stat(profilesFile); err == nil {
		specs, err := profile.LoadSpecs(profilesFile)
		if err != nil {
			return err
		}
		if err := registry.RegisterSpecs(specs); err != nil {
			return err
		}
	}

	var categorizer categorize.Categorizer
	if prefs.UseInference {
		categorizer, err = categorize.LoadRules(rulesFile)
		if err != nil {
			return fmt.Errorf("use_inference is on: %w", err)
		}
	}

	svc := &statements.Service{
		Registry:    registry,
		Extractor:   extract.PDF{},
		Prefs:       prefs,
		Categorizer: categorizer,
		Log:         log,
		Strict:      strict,
	}
	return svc.Run(dir, out)
}

// loadPreferences reads preferences.ini from the working directory, falling
// back to defaults when the file does not exist.
func loadPreferences() (preferences.Preferences, error) {
	if _, err := os.Stat(preferences.FileName); err != nil {
		if os.IsNotExist(err) {
			return preferences.Default(), nil
		}
		return preferences.Preferences{}, fmt.Errorf("reading %s: %w", preferences.FileName, err)
	}

	abs, err := filepath.Abs(preferences.FileName)
	if err != nil {
		return preferences.Preferences{}, fmt.Errorf("resolving path: %w", err)
	}
	return preferences.Load(abs)
}

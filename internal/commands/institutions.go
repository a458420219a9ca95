package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ena-dev/ena/internal/profile"
)

func newInstitutionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "institutions",
		Short: "List institutions with a registered profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
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
			for _, name := range registry.Names() {
				fmt.Println(name)
			}
			return nil
		},
	}
}

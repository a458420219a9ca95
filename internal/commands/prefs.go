package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ena-dev/ena/internal/export"
	"github.com/ena-dev/ena/internal/model"
	"github.com/ena-dev/ena/internal/preferences"
)

func newPrefsCommand() *cobra.Command {
	var order string
	var useInference bool
	var keepPayments bool
	var positiveExpenses bool

	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Write the preferences.ini behaviour file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrefs(order, useInference, keepPayments, positiveExpenses)
		},
	}

	cmd.Flags().StringVarP(&order, "order", "o", string(export.OrderSimple),
		"CSV order: simple (Date, Amount, Note) or full (adds Category)")
	cmd.Flags().BoolVarP(&useInference, "use-inference", "u", false,
		"categorize expenses with the local rules engine")
	cmd.Flags().BoolVarP(&keepPayments, "keep-payments", "k", false,
		"keep credit card bill payments in the export")
	cmd.Flags().BoolVarP(&positiveExpenses, "positive-expenses", "p", false,
		"represent expenses as positive values and incomes as negative")

	return cmd
}

func runPrefs(order string, useInference, keepPayments, positiveExpenses bool) error {
	columnOrder, err := export.ParseColumnOrder(order)
	if err != nil {
		return err
	}

	p := preferences.Preferences{
		Order:        columnOrder,
		UseInference: useInference,
		KeepPayments: keepPayments,
		Convention:   model.ExpensesNegative,
	}
	if positiveExpenses {
		p.Convention = model.ExpensesPositive
	}

	if err := preferences.Save(preferences.FileName, p); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", preferences.FileName)
	return nil
}

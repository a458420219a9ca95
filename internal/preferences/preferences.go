// Package preferences reads and writes the preferences.ini file that
// controls export layout, inference and sign convention. The core consumes
// it read-only as an explicit struct, never as ambient state.
package preferences

import (
	"fmt"

	"gopkg.in/ini.v1"

	"github.com/ena-dev/ena/internal/export"
	"github.com/ena-dev/ena/internal/model"
)

// FileName is the preferences file name, resolved against the working
// directory unless overridden on the command line.
const FileName = "preferences.ini"

const section = "Preferences"

const (
	keyOrder        = "csv_order"
	keyUseInference = "use_inference"
	keyKeepPayments = "keep_payments"
	keyPositive     = "positive_expenses"
)

// Preferences holds the user-tunable knobs threaded through the pipeline.
type Preferences struct {
	Order        export.ColumnOrder
	UseInference bool
	KeepPayments bool
	Convention   model.SignConvention
}

// Default returns the out-of-the-box preferences: simple CSV order, no
// inference, bill payments dropped from export, expenses negative.
func Default() Preferences {
	return Preferences{
		Order:        export.OrderSimple,
		UseInference: false,
		KeepPayments: false,
		Convention:   model.ExpensesNegative,
	}
}

// Load reads preferences from an ini file. Missing keys fall back to
// defaults; a missing file is an error.
func Load(path string) (Preferences, error) {
	f, err := ini.Load(path)
	if err != nil {
		return Preferences{}, fmt.Errorf("reading preferences: %w", err)
	}

	p := Default()
	sec := f.Section(section)

	if k := sec.Key(keyOrder).String(); k != "" {
		p.Order, err = export.ParseColumnOrder(k)
		if err != nil {
			return Preferences{}, fmt.Errorf("parsing preferences: %w", err)
		}
	}
	p.UseInference = sec.Key(keyUseInference).MustBool(p.UseInference)
	p.KeepPayments = sec.Key(keyKeepPayments).MustBool(p.KeepPayments)
	if sec.Key(keyPositive).MustBool(false) {
		p.Convention = model.ExpensesPositive
	} else {
		p.Convention = model.ExpensesNegative
	}

	return p, nil
}

// Save writes preferences to an ini file.
func Save(path string, p Preferences) error {
	f := ini.Empty()
	sec, err := f.NewSection(section)
	if err != nil {
		return fmt.Errorf("writing preferences: %w", err)
	}

	sec.Key(keyOrder).SetValue(string(p.Order))
	sec.Key(keyUseInference).SetValue(formatBool(p.UseInference))
	sec.Key(keyKeepPayments).SetValue(formatBool(p.KeepPayments))
	sec.Key(keyPositive).SetValue(formatBool(p.Convention == model.ExpensesPositive))

	if err := f.SaveTo(path); err != nil {
		return fmt.Errorf("writing preferences: %w", err)
	}
	return nil
}

func formatBool(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

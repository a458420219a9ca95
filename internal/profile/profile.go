package profile

import (
	"regexp"

	"github.com/ena-dev/ena/internal/model"
)

// IncomeClassifier decides whether a parsed transaction represents incoming
// funds (payments, refunds, cashback) rather than an expense, given the
// sign convention its amount is stored under.
type IncomeClassifier func(model.Transaction, model.SignConvention) bool

// Profile holds the fixed-format knowledge needed to parse one financial
// institution's statements. New institutions are supported by registering a
// new Profile, never by changing parser logic.
type Profile struct {
	Name string

	// Txn matches one transaction line and must capture the named groups
	// "dates" (two date tokens), "description", "amount" and optionally
	// "cr" (credit marker). Compiled with (?m): one transaction per
	// logical line inside the full statement blob.
	Txn *regexp.Regexp

	// Year captures the named group "year" from the statement period
	// header. Compiled with (?i).
	Year *regexp.Regexp

	// OpeningBal and ClosingBal each capture the named groups "balance"
	// and optionally "cr".
	OpeningBal *regexp.Regexp
	ClosingBal *regexp.Regexp

	// AmountInDescription enables the embedded-amount override: when a
	// second dollar figure leaks into the description capture, it replaces
	// the amount column and the description is truncated at the first "$".
	AmountInDescription bool

	// Payment matches notes that are credit-card bill payments; used by
	// the keep_payments preference to drop them from export.
	Payment *regexp.Regexp

	income IncomeClassifier
}

// ClassifyIncome applies the profile's income classifier. Profiles without
// documented statement samples carry no classifier; reaching one fails with
// NotImplementedError rather than silently defaulting.
func (p *Profile) ClassifyIncome(t model.Transaction, conv model.SignConvention) (bool, error) {
	if p.income == nil {
		return false, &NotImplementedError{Institution: p.Name}
	}
	return p.income(t, conv), nil
}

// IsPayment reports whether the note looks like a bill payment.
func (p *Profile) IsPayment(note string) bool {
	return p.Payment != nil && p.Payment.MatchString(note)
}

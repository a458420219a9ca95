// Package reconcile validates that parsed transactions fully account for a
// statement's declared balance change.
package reconcile

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ena-dev/ena/internal/model"
)

// DiscrepancyError carries everything a human needs to locate the regex
// match that dropped or mangled a transaction.
type DiscrepancyError struct {
	Opening  decimal.Decimal
	Closing  decimal.Decimal
	Expected decimal.Decimal // sign-adjusted opening minus closing
	Net      decimal.Decimal
	Inflow   decimal.Decimal
	Outflow  decimal.Decimal
	Diff     decimal.Decimal // expected minus net
	// Transactions sorted by date; scan order is kept for equal dates.
	Transactions []model.Transaction
}

func (e *DiscrepancyError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "discrepancy of %s: expected %s, transactions net to %s\n",
		e.Diff.StringFixed(2), e.Expected.StringFixed(2), e.Net.StringFixed(2))
	fmt.Fprintf(&b, "  opening reported at %s\n", e.Opening.StringFixed(2))
	fmt.Fprintf(&b, "  closing reported at %s\n", e.Closing.StringFixed(2))
	fmt.Fprintf(&b, "  net / inflow / outflow: %s / %s / %s\n",
		e.Net.StringFixed(2), e.Inflow.StringFixed(2), e.Outflow.StringFixed(2))
	b.WriteString("  parsed transactions:")
	for _, t := range e.Transactions {
		fmt.Fprintf(&b, "\n    %s  %10s  %s", t.Date.Format("2006-01-02"), t.Amount.StringFixed(2), t.Note)
	}
	return b.String()
}

// Validate checks that the transaction net matches opening minus closing,
// both rounded to 2 places. Under expenses-positive the expected delta is
// negated so it lives in the same convention as the stored amounts. A
// mismatch returns *DiscrepancyError; the caller decides whether that
// aborts the statement or is only warned about.
func Validate(opening, closing decimal.Decimal, txns []model.Transaction, conv model.SignConvention) error {
	net := decimal.Zero
	inflow := decimal.Zero
	outflow := decimal.Zero
	for _, t := range txns {
		net = net.Add(t.Amount)
		if t.Amount.IsPositive() {
			inflow = inflow.Add(t.Amount)
		}
		if t.Amount.IsNegative() {
			outflow = outflow.Add(t.Amount)
		}
	}
	net = net.Round(2)
	inflow = inflow.Round(2)
	outflow = outflow.Round(2)

	expected := opening.Sub(closing).Round(2)
	if conv == model.ExpensesPositive {
		expected = expected.Neg()
	}

	if expected.Equal(net) {
		return nil
	}

	sorted := make([]model.Transaction, len(txns))
	copy(sorted, txns)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	return &DiscrepancyError{
		Opening:      opening,
		Closing:      closing,
		Expected:     expected,
		Net:          net,
		Inflow:       inflow,
		Outflow:      outflow,
		Diff:         expected.Sub(net),
		Transactions: sorted,
	}
}

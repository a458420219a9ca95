package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one parsed statement line.
type Transaction struct {
	Date     time.Time // calendar date, no time component
	Amount   decimal.Decimal
	Note     string
	Category Category
}

// Equal reports structural equality: same calendar date, amount, note and
// category. Identical repeat purchases are legitimate, so equality drives
// note disambiguation in the parser, never deduplication.
func (t Transaction) Equal(o Transaction) bool {
	return t.Date.Equal(o.Date) &&
		t.Amount.Equal(o.Amount) &&
		t.Note == o.Note &&
		t.Category == o.Category
}

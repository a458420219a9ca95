package model

// SignConvention controls how expenses are represented in stored amounts.
// The internal convention is ExpensesNegative: spending reduces balance, so
// a purchase is a negative amount and a credit (payment, refund, cashback)
// is positive. ExpensesPositive inverts every stored amount.
type SignConvention int

const (
	ExpensesNegative SignConvention = iota
	ExpensesPositive
)

func (s SignConvention) String() string {
	if s == ExpensesPositive {
		return "expenses-positive"
	}
	return "expenses-negative"
}

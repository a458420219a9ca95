package export

import "fmt"

// ColumnOrder names a fixed column layout for exported CSVs.
type ColumnOrder string

const (
	// OrderSimple is Date, Amount, Note, the layout budgeting apps that
	// do their own categorization expect.
	OrderSimple ColumnOrder = "simple"
	// OrderFull adds the Category column.
	OrderFull ColumnOrder = "full"
)

// ParseColumnOrder maps a preferences value to its ColumnOrder.
func ParseColumnOrder(s string) (ColumnOrder, error) {
	switch ColumnOrder(s) {
	case OrderSimple, OrderFull:
		return ColumnOrder(s), nil
	}
	return "", fmt.Errorf("unknown csv order %q", s)
}

// Columns returns the header row for the order.
func (o ColumnOrder) Columns() []string {
	if o == OrderFull {
		return []string{"Date", "Amount", "Note", "Category"}
	}
	return []string{"Date", "Amount", "Note"}
}

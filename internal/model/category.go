package model

import "fmt"

// Category tags a transaction for downstream budgeting tools. The display
// strings are a fixed vocabulary; consumers match on them exactly.
type Category string

const (
	CategoryIncome    Category = "Income"
	CategoryExpense   Category = "Expense"
	CategoryRecurring Category = "Recurring"
	CategoryGroceries Category = "Groceries"
	CategoryHousehold Category = "Household"
	CategoryFood      Category = "Food"
	CategoryFun       Category = "Fun"
	CategoryFashion   Category = "Fashion"
	CategoryGames     Category = "Games"
	CategoryTravel    Category = "Travel"
	CategoryGifts     Category = "Gifts"
)

// Categories lists every valid category, in display order.
var Categories = []Category{
	CategoryIncome,
	CategoryExpense,
	CategoryRecurring,
	CategoryGroceries,
	CategoryHousehold,
	CategoryFood,
	CategoryFun,
	CategoryFashion,
	CategoryGames,
	CategoryTravel,
	CategoryGifts,
}

// String returns the display string written to CSV output.
func (c Category) String() string { return string(c) }

// ParseCategory maps a display string to its Category.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

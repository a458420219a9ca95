package parser

import "fmt"

// YearNotFoundError means the statement period header never matched, so no
// base year exists to date transactions with.
type YearNotFoundError struct {
	Institution string
}

func (e *YearNotFoundError) Error() string {
	return fmt.Sprintf("%s: statement year pattern matched nothing", e.Institution)
}

// BalanceNotFoundError means a mandatory balance pattern never matched.
// Kind is "opening" or "closing".
type BalanceNotFoundError struct {
	Institution string
	Kind        string
}

func (e *BalanceNotFoundError) Error() string {
	return fmt.Sprintf("%s: %s balance pattern matched nothing", e.Institution, e.Kind)
}

// DateParseError means a matched transaction line carried a date token that
// parsed under neither the month-name nor the numeric format. Raw is the
// normalized token, kept for pattern debugging.
type DateParseError struct {
	Institution string
	Raw         string
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("%s: cannot parse transaction date %q", e.Institution, e.Raw)
}

package profile

import "fmt"

// UnsupportedInstitutionError is returned when no profile is registered for
// an institution name.
type UnsupportedInstitutionError struct {
	Name string
}

func (e *UnsupportedInstitutionError) Error() string {
	return fmt.Sprintf("no profile registered for institution %q; register a builtin name or add one to profiles.yaml", e.Name)
}

// NotImplementedError is returned when a profile without an income
// classifier is asked to classify a transaction.
type NotImplementedError struct {
	Institution string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("institution %s has no income classifier", e.Institution)
}

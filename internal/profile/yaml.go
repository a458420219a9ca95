package profile

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Spec is the profiles.yaml representation of a user-defined profile. All
// four patterns are required; the named capture groups must match what the
// builtin patterns use. User-defined profiles have no income classifier.
type Spec struct {
	Name                string `yaml:"name"`
	Transaction         string `yaml:"transaction"`
	Year                string `yaml:"year"`
	OpeningBalance      string `yaml:"opening_balance"`
	ClosingBalance      string `yaml:"closing_balance"`
	AmountInDescription bool   `yaml:"amount_in_description"`
	Payment             string `yaml:"payment,omitempty"`
	// Income selects the income classification variant: "sign" classifies
	// by the stored amount's sign, "" leaves the profile without a
	// classifier (classification then fails with NotImplementedError).
	Income string `yaml:"income,omitempty"`
}

type specFile struct {
	Profiles []Spec `yaml:"profiles"`
}

// Compile turns a Spec into a Profile, enforcing the required capture groups.
func (s Spec) Compile() (*Profile, error) {
	if s.Name == "" {
		return nil, fmt.Errorf("profile missing name")
	}

	txn, err := compileWith(s.Transaction, "(?m)", "dates", "description", "amount")
	if err != nil {
		return nil, fmt.Errorf("profile %s: transaction pattern: %w", s.Name, err)
	}
	year, err := compileWith(s.Year, "(?i)", "year")
	if err != nil {
		return nil, fmt.Errorf("profile %s: year pattern: %w", s.Name, err)
	}
	opening, err := compileWith(s.OpeningBalance, "", "balance")
	if err != nil {
		return nil, fmt.Errorf("profile %s: opening balance pattern: %w", s.Name, err)
	}
	closing, err := compileWith(s.ClosingBalance, "", "balance")
	if err != nil {
		return nil, fmt.Errorf("profile %s: closing balance pattern: %w", s.Name, err)
	}

	var payment *regexp.Regexp
	if s.Payment != "" {
		payment, err = regexp.Compile(s.Payment)
		if err != nil {
			return nil, fmt.Errorf("profile %s: payment pattern: %w", s.Name, err)
		}
	}

	var income IncomeClassifier
	switch s.Income {
	case "":
	case "sign":
		income = signIncome
	default:
		return nil, fmt.Errorf("profile %s: unknown income variant %q", s.Name, s.Income)
	}

	return &Profile{
		Name:                s.Name,
		Txn:                 txn,
		Year:                year,
		OpeningBal:          opening,
		ClosingBal:          closing,
		AmountInDescription: s.AmountInDescription,
		Payment:             payment,
		income:              income,
	}, nil
}

func compileWith(pattern, flags string, groups ...string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, fmt.Errorf("pattern is empty")
	}
	re, err := regexp.Compile(flags + pattern)
	if err != nil {
		return nil, err
	}
	for _, g := range groups {
		if re.SubexpIndex(g) < 0 {
			return nil, fmt.Errorf("missing capture group %q", g)
		}
	}
	return re, nil
}

// LoadSpecs reads user-defined profiles from a profiles.yaml file.
func LoadSpecs(path string) ([]Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profiles: %w", err)
	}
	var f specFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing profiles: %w", err)
	}
	return f.Profiles, nil
}

// SaveSpecs writes user-defined profiles to a profiles.yaml file.
func SaveSpecs(path string, specs []Spec) error {
	data, err := yaml.Marshal(specFile{Profiles: specs})
	if err != nil {
		return fmt.Errorf("marshaling profiles: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing profiles: %w", err)
	}
	return nil
}

// RegisterSpecs compiles and registers user-defined profiles. A spec whose
// name collides with an already-registered profile errors rather than
// shadowing it.
func (r *Registry) RegisterSpecs(specs []Spec) error {
	for _, s := range specs {
		p, err := s.Compile()
		if err != nil {
			return err
		}
		if _, err := r.Resolve(p.Name); err == nil {
			return fmt.Errorf("profile %s is already registered", p.Name)
		}
		r.Register(p)
	}
	return nil
}

// Package categorize assigns finer-grained categories to parsed
// transactions. The Categorizer interface is the pluggable hook the parser
// calls when inference is enabled; the only implementation shipped here is a
// local keyword rule engine.
package categorize

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ena-dev/ena/internal/model"
)

// Categorizer assigns a category to a transaction.
type Categorizer interface {
	Categorize(model.Transaction) (model.Category, error)
}

// Rule maps a category to note keywords.
type Rule struct {
	Category string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

type rulesFile struct {
	Rules []Rule `yaml:"rules"`
}

type compiledRule struct {
	category model.Category
	keywords []string // lower-cased
}

// RuleCategorizer matches note keywords case-insensitively, first rule wins.
// Notes matching no rule stay Expense.
type RuleCategorizer struct {
	rules []compiledRule
}

// NewRuleCategorizer validates rule categories against the closed enum.
func NewRuleCategorizer(rules []Rule) (*RuleCategorizer, error) {
	c := &RuleCategorizer{}
	for _, r := range rules {
		cat, err := model.ParseCategory(r.Category)
		if err != nil {
			return nil, fmt.Errorf("categorization rule: %w", err)
		}
		cr := compiledRule{category: cat}
		for _, kw := range r.Keywords {
			cr.keywords = append(cr.keywords, strings.ToLower(kw))
		}
		c.rules = append(c.rules, cr)
	}
	return c, nil
}

// LoadRules reads a categories.yaml rules file into a RuleCategorizer.
func LoadRules(path string) (*RuleCategorizer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules: %w", err)
	}
	var f rulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing rules: %w", err)
	}
	return NewRuleCategorizer(f.Rules)
}

// SaveRules writes rules to a categories.yaml file.
func SaveRules(path string, rules []Rule) error {
	data, err := yaml.Marshal(rulesFile{Rules: rules})
	if err != nil {
		return fmt.Errorf("marshaling rules: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing rules: %w", err)
	}
	return nil
}

// Categorize returns the first rule whose keyword appears in the note.
func (c *RuleCategorizer) Categorize(t model.Transaction) (model.Category, error) {
	note := strings.ToLower(t.Note)
	for _, r := range c.rules {
		for _, kw := range r.keywords {
			if strings.Contains(note, kw) {
				return r.category, nil
			}
		}
	}
	return model.CategoryExpense, nil
}

// DefaultRules seeds a new project's categories.yaml.
func DefaultRules() []Rule {
	return []Rule{
		{Category: "Groceries", Keywords: []string{"grocery", "supermarket", "market", "foods"}},
		{Category: "Food", Keywords: []string{"restaurant", "cafe", "coffee", "pizza", "doordash", "uber eats"}},
		{Category: "Recurring", Keywords: []string{"subscription", "netflix", "spotify", "insurance"}},
		{Category: "Travel", Keywords: []string{"airline", "hotel", "airbnb", "transit"}},
		{Category: "Games", Keywords: []string{"steam", "nintendo", "playstation", "xbox"}},
	}
}

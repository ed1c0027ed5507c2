// Package categorize assigns a category to an expense description using an
// ordered keyword table. The first rule with a keyword contained in the
// lower-cased description wins; unmatched descriptions fall back to Other.
package categorize

import (
	"strings"

	"fintrack/internal/core"
)

// Rule maps a keyword group to a category.
type Rule struct {
	Keywords []string
	Category core.Category
}

// Categorizer evaluates its rules top to bottom.
type Categorizer struct {
	rules    []Rule
	fallback core.Category
}

// Match is the outcome of a categorization, with the keyword that decided it.
type Match struct {
	Category core.Category
	Keyword  string // empty when the fallback was used
}

// DefaultRules is the built-in rule table. Shopping and Health & Fitness have no
// rule and are never produced automatically.
func DefaultRules() []Rule {
	return []Rule{
		{Keywords: []string{"food", "restaurant", "coffee", "lunch"}, Category: core.FoodDining},
		{Keywords: []string{"bus", "uber", "gas", "transport"}, Category: core.Transportation},
		{Keywords: []string{"book", "tuition", "course", "school"}, Category: core.Education},
		{Keywords: []string{"movie", "game", "concert"}, Category: core.Entertainment},
		{Keywords: []string{"rent", "electric", "internet", "phone"}, Category: core.BillsUtilities},
	}
}

var defaultCategorizer = New(DefaultRules())

// New creates a categorizer over rules, in the given order.
func New(rules []Rule) *Categorizer {
	normalized := make([]Rule, len(rules))
	for i, r := range rules {
		kws := make([]string, 0, len(r.Keywords))
		for _, kw := range r.Keywords {
			if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
				kws = append(kws, kw)
			}
		}
		normalized[i] = Rule{Keywords: kws, Category: r.Category}
	}
	return &Categorizer{rules: normalized, fallback: core.Other}
}

// Categorize uses the default rule table.
func Categorize(description string) core.Category {
	return defaultCategorizer.Categorize(description)
}

// Explain uses the default rule table.
func Explain(description string) Match {
	return defaultCategorizer.Explain(description)
}

// Categorize returns the category of the first matching rule, or Other.
func (c *Categorizer) Categorize(description string) core.Category {
	return c.Explain(description).Category
}

// Explain is Categorize that also reports the keyword that decided the match.
func (c *Categorizer) Explain(description string) Match {
	desc := strings.ToLower(description)
	for _, rule := range c.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(desc, kw) {
				return Match{Category: rule.Category, Keyword: kw}
			}
		}
	}
	return Match{Category: c.fallback}
}

// Rules returns a copy of the rule table.
func (c *Categorizer) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	for i, r := range c.rules {
		out[i] = Rule{Keywords: append([]string(nil), r.Keywords...), Category: r.Category}
	}
	return out
}

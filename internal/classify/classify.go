// Package classify provides deterministic rule-based transaction
// categorization: an ordered table of category keywords matched as
// case-insensitive substrings of the description. No statistics, no
// confidence scoring; the first matching rule in table order wins and the
// absence of a match falls through to the default category.
package classify

import (
	"strings"

	"fintrack/internal/core"
)

// Rule maps one category to the keyword substrings that select it.
type Rule struct {
	Category string
	Keywords []string
}

// Classifier assigns categories to free-text transaction descriptions.
type Classifier struct {
	rules []Rule
}

// New creates a classifier with the default rule table.
func New() *Classifier {
	return &Classifier{rules: defaultRules()}
}

// NewWithRules creates a classifier with a custom ordered rule table.
func NewWithRules(rules []Rule) *Classifier {
	return &Classifier{rules: rules}
}

// Classify returns the category for a description. It never fails: when no
// keyword matches it returns core.DefaultCategory, which is the normal path
// for unknown vendors rather than an error.
func (c *Classifier) Classify(description string) string {
	desc := strings.ToLower(strings.TrimSpace(description))
	if desc == "" {
		return core.DefaultCategory
	}
	for _, rule := range c.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(desc, kw) {
				return rule.Category
			}
		}
	}
	return core.DefaultCategory
}

// Categories returns the category labels of the rule table, in order.
func (c *Classifier) Categories() []string {
	out := make([]string, 0, len(c.rules))
	for _, r := range c.rules {
		out = append(out, r.Category)
	}
	return out
}

// defaultRules is the built-in keyword table. Order matters: earlier rules
// win ties, so e.g. "restaurant bill" is Food, not Bills.
func defaultRules() []Rule {
	return []Rule{
		{Category: "Food", Keywords: []string{
			"restaurant", "groceries", "grocery", "cafe", "food", "eat",
			"dining", "dinner", "lunch", "supermarket", "coffee", "starbucks",
		}},
		{Category: "Transport", Keywords: []string{
			"uber", "taxi", "bus", "train", "fuel", "petrol", "metro",
			"transport", "gas",
		}},
		{Category: "Entertainment", Keywords: []string{
			"movie", "netflix", "spotify", "concert", "game", "entertainment",
			"cinema", "theater", "streaming",
		}},
		{Category: "Shopping", Keywords: []string{
			"mall", "clothes", "clothing", "amazon", "shopping", "store", "fashion",
		}},
		{Category: "Bills", Keywords: []string{
			"electricity", "water", "internet", "bill", "utility", "rent",
			"mortgage",
		}},
		{Category: "Healthcare", Keywords: []string{
			"hospital", "doctor", "dentist", "pharmacy", "prescription",
			"medical", "health",
		}},
		{Category: "Education", Keywords: []string{
			"course", "book", "tuition", "school", "university",
		}},
		{Category: "Miscellaneous", Keywords: []string{
			"misc", "miscellaneous", "gift", "donation",
		}},
	}
}

package finbook

import (
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
)

// DefaultCategories are the built-in transaction categories. User-defined
// ones persist in the ledger's customCategories list.
var DefaultCategories = []string{
	"Salary",
	"Groceries",
	"Rent",
	"Utilities",
	"Transport",
	"Dining",
	"Health",
	"Entertainment",
	"Shopping",
	"Travel",
	"Subscriptions",
	"Other",
}

// Categories returns the built-in categories followed by the custom ones.
func (l *Ledger) Categories() []string {
	out := slices.Clone(DefaultCategories)
	return append(out, l.customCategories...)
}

// HasCategory reports whether name is a known category, ignoring case.
func (l *Ledger) HasCategory(name string) bool {
	for _, c := range l.Categories() {
		if strings.EqualFold(c, name) {
			return true
		}
	}
	return false
}

// AddCategory adds a custom category to the ledger.
func (l *Ledger) AddCategory(name string) error {
	if strings.TrimSpace(name) == "" {
		return newValidationError("category name must not be empty")
	}
	if l.HasCategory(name) {
		return newValidationError("category %q already exists", name)
	}
	l.customCategories = append(l.customCategories, name)
	return nil
}

// SuggestCategory returns the known category closest to input, when close
// enough to be a plausible typo. The cutoff scales with the input length so
// short names don't match everything.
func SuggestCategory(input string, categories []string) (string, bool) {
	input = strings.ToUpper(strings.TrimSpace(input))
	if input == "" {
		return "", false
	}
	best, bestDist := "", -1
	for _, c := range categories {
		dist := levenshtein.ComputeDistance(input, strings.ToUpper(c))
		if bestDist < 0 || dist < bestDist {
			best, bestDist = c, dist
		}
	}
	if bestDist < 0 || bestDist > max(1, len(input)/3) {
		return "", false
	}
	return best, true
}

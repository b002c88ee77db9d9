// Package categories is the static registry of income and expense category
// names and their chart colors.
package categories

import (
	"slices"

	"expensetracker/internal/core"
)

var (
	income = []string{
		"Salary",
		"Freelance",
		"Business",
		"Investment",
		"Gift",
		"Other Income",
	}

	expense = []string{
		"Food & Dining",
		"Transportation",
		"Shopping",
		"Entertainment",
		"Bills & Utilities",
		"Healthcare",
		"Education",
		"Travel",
		"Insurance",
		"Other Expenses",
	}

	palette = []string{
		"#3B82F6", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
		"#06B6D4", "#84CC16", "#F97316", "#EC4899", "#6B7280",
	}

	// master is income followed by expense; colors are assigned by position here.
	master = append(slices.Clone(income), expense...)
)

// Income returns the income category names in display order.
func Income() []string { return slices.Clone(income) }

// Expense returns the expense category names in display order.
func Expense() []string { return slices.Clone(expense) }

// All returns income then expense categories.
func All() []string { return slices.Clone(master) }

// For returns the categories allowed for t, or nil for an unknown type.
func For(t core.TransactionType) []string {
	switch t {
	case core.Income:
		return Income()
	case core.Expense:
		return Expense()
	default:
		return nil
	}
}

// IsValid reports whether category belongs to the list for t.
func IsValid(t core.TransactionType, category string) bool {
	switch t {
	case core.Income:
		return slices.Contains(income, category)
	case core.Expense:
		return slices.Contains(expense, category)
	default:
		return false
	}
}

// Fallback is the color returned for names outside the registry.
func Fallback() string { return palette[0] }

// ColorOf returns the palette entry at the category's position in the master
// list, wrapping around the palette. Unknown categories get Fallback().
func ColorOf(category string) string {
	i := slices.Index(master, category)
	if i < 0 {
		return Fallback()
	}
	return palette[i%len(palette)]
}

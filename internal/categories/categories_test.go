package categories

import (
	"testing"

	"expensetracker/internal/core"
)

func TestListsAreDisjoint(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range Income() {
		seen[c] = true
	}
	for _, c := range Expense() {
		if seen[c] {
			t.Fatalf("%q is both income and expense", c)
		}
	}
	if got := len(All()); got != len(Income())+len(Expense()) {
		t.Fatalf("master list has %d entries", got)
	}
}

func TestListsAreCopies(t *testing.T) {
	l := Income()
	l[0] = "Hacked"
	if Income()[0] != "Salary" {
		t.Fatalf("registry mutated through returned slice")
	}
}

func TestColorOf(t *testing.T) {
	cases := []struct {
		category string
		want     string
	}{
		{"Salary", "#3B82F6"},            // index 0
		{"Other Income", "#06B6D4"},      // index 5
		{"Food & Dining", "#84CC16"},     // index 6
		{"Bills & Utilities", "#3B82F6"}, // index 10 wraps
		{"Other Expenses", "#06B6D4"},    // index 15
		{"Not A Category", Fallback()},
		{"", Fallback()},
	}
	for _, tc := range cases {
		if got := ColorOf(tc.category); got != tc.want {
			t.Errorf("ColorOf(%q) = %s, want %s", tc.category, got, tc.want)
		}
	}
}

func TestColorOfIsPure(t *testing.T) {
	for _, c := range append(All(), "unknown") {
		first := ColorOf(c)
		for i := 0; i < 5; i++ {
			if ColorOf(c) != first {
				t.Fatalf("ColorOf(%q) not stable", c)
			}
		}
	}
}

func TestIsValid(t *testing.T) {
	if !IsValid(core.Income, "Salary") || !IsValid(core.Expense, "Travel") {
		t.Fatal("expected valid")
	}
	if IsValid(core.Income, "Travel") || IsValid(core.Expense, "Salary") {
		t.Fatal("category accepted for wrong type")
	}
	if IsValid("transfer", "Salary") || For("transfer") != nil {
		t.Fatal("unknown type accepted")
	}
}

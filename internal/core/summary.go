package core

import "sort"

// Summary holds the income/expense totals over a set of transactions.
type Summary struct {
	TotalIncome   Money `json:"totalIncome"`
	TotalExpenses Money `json:"totalExpenses"`
	NetIncome     Money `json:"netIncome"`
}

// CategoryBreakdownEntry is one category's share of total expenses.
type CategoryBreakdownEntry struct {
	Category   string  `json:"category"`
	Amount     Money   `json:"amount"`
	Percentage float64 `json:"percentage"`
	Color      string  `json:"color"`
}

// Summarize totals income and expenses. An empty input yields a zero Summary.
func Summarize(txs []Transaction) Summary {
	var s Summary
	for _, t := range txs {
		switch t.Type {
		case Income:
			s.TotalIncome = s.TotalIncome.Add(t.Amount)
		case Expense:
			s.TotalExpenses = s.TotalExpenses.Add(t.Amount)
		}
	}
	s.NetIncome = s.TotalIncome.Sub(s.TotalExpenses)
	return s
}

// BreakdownByCategory groups expense transactions by category and returns
// them ordered by amount, largest first. Categories with equal amounts keep
// the order in which they first appear in txs. colorOf assigns each entry its
// display color.
//
// When total expenses are zero the result is empty and non-nil.
func BreakdownByCategory(txs []Transaction, colorOf func(string) string) []CategoryBreakdownEntry {
	var (
		total  Money
		order  []string
		totals = make(map[string]Money)
	)
	for _, t := range txs {
		if t.Type != Expense {
			continue
		}
		if _, seen := totals[t.Category]; !seen {
			order = append(order, t.Category)
		}
		totals[t.Category] = totals[t.Category].Add(t.Amount)
		total = total.Add(t.Amount)
	}

	out := make([]CategoryBreakdownEntry, 0, len(order))
	if total.Cents == 0 {
		return out
	}

	for _, cat := range order {
		amount := totals[cat]
		entry := CategoryBreakdownEntry{
			Category:   cat,
			Amount:     amount,
			Percentage: float64(amount.Cents) / float64(total.Cents) * 100,
		}
		if colorOf != nil {
			entry.Color = colorOf(cat)
		}
		out = append(out, entry)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.Cents > out[j].Amount.Cents
	})
	return out
}

// SortByDateDesc returns a copy of txs ordered newest date first. Same-day
// transactions are ordered by creation time, newest first.
func SortByDateDesc(txs []Transaction) []Transaction {
	out := make([]Transaction, len(txs))
	copy(out, txs)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date.Time) {
			return out[i].Date.After(out[j].Date.Time)
		}
		return out[i].CreatedAt > out[j].CreatedAt
	})
	return out
}

// FilterByCategory returns the transactions in the given category. An empty
// category returns a copy of txs.
func FilterByCategory(txs []Transaction, category string) []Transaction {
	if category == "" {
		out := make([]Transaction, len(txs))
		copy(out, txs)
		return out
	}
	out := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}

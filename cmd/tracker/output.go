package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"expensetracker/internal/core"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func signed(tx core.Transaction) string {
	if tx.Type == core.Expense {
		return "-" + tx.Amount.String()
	}
	return "+" + tx.Amount.String()
}

func printTransaction(w io.Writer, tx core.Transaction) error {
	if jsonOutput {
		return printJSON(w, tx)
	}
	return printTransactions(w, []core.Transaction{tx})
}

func printTransactions(w io.Writer, txs []core.Transaction) error {
	if jsonOutput {
		return printJSON(w, txs)
	}
	if len(txs) == 0 {
		_, err := fmt.Fprintln(w, "No transactions.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tAMOUNT\tCATEGORY\tDESCRIPTION\tID")
	for _, tx := range txs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", tx.Date, signed(tx), tx.Category, tx.Description, tx.ID)
	}
	return tw.Flush()
}

func printSummary(w io.Writer, s core.Summary) error {
	if jsonOutput {
		return printJSON(w, s)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Income\t%s\n", s.TotalIncome)
	fmt.Fprintf(tw, "Expenses\t%s\n", s.TotalExpenses)
	fmt.Fprintf(tw, "Net\t%s\n", s.NetIncome)
	return tw.Flush()
}

func printBreakdown(w io.Writer, entries []core.CategoryBreakdownEntry) error {
	if jsonOutput {
		return printJSON(w, entries)
	}
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No expenses.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tAMOUNT\tSHARE\tCOLOR")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%.1f%%\t%s\n", e.Category, e.Amount, e.Percentage, e.Color)
	}
	return tw.Flush()
}

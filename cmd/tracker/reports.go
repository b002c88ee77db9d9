package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"expensetracker/internal/categories"
	"expensetracker/internal/cli"
	"expensetracker/internal/core"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show total income, expenses and net",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, app *cli.App) error {
			return printSummary(cmd.OutOrStdout(), app.Reporter.Summary())
		})
	},
}

var breakdownCmd = &cobra.Command{
	Use:   "breakdown",
	Short: "Show expenses per category, largest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, app *cli.App) error {
			return printBreakdown(cmd.OutOrStdout(), app.Reporter.Breakdown())
		})
	},
}

var categoriesType string

// categoriesCmd needs no store.
var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the income and expense categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if categoriesType != "" {
			t, err := core.ParseTransactionType(categoriesType)
			if err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(out, categories.For(t))
			}
			for _, c := range categories.For(t) {
				fmt.Fprintln(out, c)
			}
			return nil
		}

		if jsonOutput {
			return printJSON(out, map[string][]string{
				"income":  categories.Income(),
				"expense": categories.Expense(),
			})
		}
		fmt.Fprintln(out, "Income:")
		for _, c := range categories.Income() {
			fmt.Fprintln(out, "  "+c)
		}
		fmt.Fprintln(out, "Expense:")
		for _, c := range categories.Expense() {
			fmt.Fprintf(out, "  %s (%s)\n", c, categories.ColorOf(c))
		}
		return nil
	},
}

func init() {
	categoriesCmd.Flags().StringVarP(&categoriesType, "type", "t", "", "Only list income or expense categories")
	rootCmd.AddCommand(summaryCmd, breakdownCmd, categoriesCmd)
}

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"expensetracker/internal/cli"
	"expensetracker/internal/core"
	"expensetracker/internal/store"
)

type draftFlags struct {
	typ         string
	amount      string
	description string
	category    string
	date        string
}

func (f *draftFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.typ, "type", "t", "", "Transaction type: income or expense")
	cmd.Flags().StringVarP(&f.amount, "amount", "a", "", "Amount, e.g. 12.50 or 12,50")
	cmd.Flags().StringVarP(&f.description, "description", "d", "", "Description (max 200 characters)")
	cmd.Flags().StringVarP(&f.category, "category", "c", "", "Category; see 'tracker categories'")
	cmd.Flags().StringVar(&f.date, "date", "", "Date as YYYY-MM-DD (default today)")
}

// apply overlays the flags the user set onto base.
func (f *draftFlags) apply(cmd *cobra.Command, base core.Draft) (core.Draft, error) {
	d := base
	if cmd.Flags().Changed("type") {
		t, err := core.ParseTransactionType(f.typ)
		if err != nil {
			return d, err
		}
		d.Type = t
	}
	if cmd.Flags().Changed("amount") {
		m, err := core.ParseAmount(f.amount)
		if err != nil {
			return d, fmt.Errorf("amount %q: %w", f.amount, err)
		}
		d.Amount = m
	}
	if cmd.Flags().Changed("description") {
		d.Description = f.description
	}
	if cmd.Flags().Changed("category") {
		d.Category = f.category
	}
	if cmd.Flags().Changed("date") {
		date, err := core.ParseDate(f.date)
		if err != nil {
			return d, fmt.Errorf("date %q: %w", f.date, err)
		}
		d.Date = date
	}
	return d, nil
}

var addFlags draftFlags

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a transaction",
	Example: `  tracker add -t expense -a 12,50 -d "Lunch" -c "Food & Dining"
  tracker add -t income -a 2500 -d "March salary" -c Salary --date 2025-03-01`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range []string{"type", "amount", "description", "category"} {
			if !cmd.Flags().Changed(name) {
				return fmt.Errorf("--%s is required", name)
			}
		}
		now := time.Now()
		draft, err := addFlags.apply(cmd, core.Draft{Date: core.NewDate(now.Year(), int(now.Month()), now.Day())})
		if err != nil {
			return err
		}
		return withApp(cmd.Context(), func(ctx context.Context, app *cli.App) error {
			tx, err := app.Store.Add(ctx, draft)
			if err != nil {
				return err
			}
			return printTransaction(cmd.OutOrStdout(), tx)
		})
	},
}

var updateFlags draftFlags

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change fields of a transaction",
	Long:  `Change the given fields of a transaction. Fields without a flag keep their current value.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, app *cli.App) error {
			existing, ok := app.Store.Get(args[0])
			if !ok {
				return fmt.Errorf("%w: %s", store.ErrNotFound, args[0])
			}
			draft, err := updateFlags.apply(cmd, existing.Draft())
			if err != nil {
				return err
			}
			tx, err := app.Store.Update(ctx, existing.WithDraft(draft))
			if err != nil {
				return err
			}
			return printTransaction(cmd.OutOrStdout(), tx)
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a transaction",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, app *cli.App) error {
			if !app.Store.Delete(ctx, args[0]) {
				return fmt.Errorf("%w: %s", store.ErrNotFound, args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deleted", args[0])
			return nil
		})
	},
}

var listCategory string

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List transactions, newest first",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, app *cli.App) error {
			txs := core.SortByDateDesc(app.Store.FilterByCategory(listCategory))
			return printTransactions(cmd.OutOrStdout(), txs)
		})
	},
}

func init() {
	addFlags.register(addCmd)
	updateFlags.register(updateCmd)
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "Only show this category")

	rootCmd.AddCommand(addCmd, updateCmd, deleteCmd, listCmd)
}


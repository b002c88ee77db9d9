// Command tracker records income and expenses and reports on them, either
// from the command line or as a JSON API.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"expensetracker/internal/cli"
	"expensetracker/internal/config"
	"expensetracker/internal/log"
)

var jsonOutput bool

var rootCmd = &cobra.Command{
	Use:           "tracker",
	Short:         "Personal income and expense tracker",
	Long:          `Record income and expenses, see totals and a per-category expense breakdown, and move data in and out as JSON files.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print results as JSON")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// withApp bootstraps configuration, logging and the store, runs fn and
// releases the backend.
func withApp(ctx context.Context, fn func(ctx context.Context, app *cli.App) error) error {
	cfg, logger, err := cli.Bootstrap()
	if err != nil {
		return err
	}
	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.LogError(ctx, logger, "Failed to close backend", err, log.OpShutdown, nil)
		}
	}()
	return fn(ctx, app)
}

// withConfig bootstraps without opening the store.
func withConfig(fn func(cfg *config.Config, logger *log.Logger) error) error {
	cfg, logger, err := cli.Bootstrap()
	if err != nil {
		return err
	}
	return fn(cfg, logger)
}

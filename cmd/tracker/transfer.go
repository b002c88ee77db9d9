package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"expensetracker/internal/cli"
)

var exportDir string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write all transactions to expense-tracker-YYYY-MM-DD.json",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, app *cli.App) error {
			dir := exportDir
			if dir == "" {
				dir = app.Config.ExportDir
			}
			path, err := app.Gateway.ExportToFile(dir, app.Store.All())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Merge transactions from an export file",
	Long: `Merge transactions from a file written by 'tracker export'. The file is
rejected as a whole if any record is malformed. Records whose id is already
present are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, app *cli.App) error {
			txs, err := app.Gateway.ImportFile(ctx, args[0])
			if err != nil {
				return err
			}
			added := app.Store.Merge(ctx, txs)
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d of %d transactions (%d already present)\n",
				added, len(txs), len(txs)-added)
			return nil
		})
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportDir, "dir", "", "Directory to write into (default EXPORT_DIR)")
	rootCmd.AddCommand(exportCmd, importCmd)
}

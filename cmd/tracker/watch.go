package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"expensetracker/internal/amqp"
	"expensetracker/internal/cli"
	"expensetracker/internal/config"
	"expensetracker/internal/log"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print change notifications from the broker",
	Long:  `Consume the change notifications other tracker processes publish to AMQP_URL and print one line per change.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withConfig(func(cfg *config.Config, logger *log.Logger) error {
			if cfg.AMQPURL == "" {
				return errors.New("AMQP_URL is not set")
			}
			ctx, stop := cli.GracefulShutdown(cmd.Context(), logger)
			defer stop()

			client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
			if err != nil {
				return err
			}
			defer client.Close()

			out := cmd.OutOrStdout()
			err = client.ConsumeChanges(ctx, func(msg *amqp.ChangeMessage) error {
				if jsonOutput {
					return printJSON(out, msg)
				}
				_, err := fmt.Fprintf(out, "%s rev=%d %s %s\n",
					msg.Timestamp.Format("2006-01-02 15:04:05"), msg.Revision, msg.Op, strings.Join(msg.TransactionIDs, ","))
				return err
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

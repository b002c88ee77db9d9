package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"expensetracker/internal/cache"
	"expensetracker/internal/cli"
	apphttp "expensetracker/internal/http"
	"expensetracker/internal/log"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), serve)
	},
}

func serve(parent context.Context, app *cli.App) error {
	logger := app.Logger
	ctx, stop := cli.GracefulShutdown(parent, logger)
	defer stop()

	caches := cache.NewManager(logger)
	caches.Register(app.Reporter.Cache())
	caches.StartCleanup(app.Config.CacheCleanupInterval)
	defer caches.Stop()

	srv := apphttp.NewServer(app.Config.Addr(), app.Store, app.Reporter, app.Gateway, logger)
	srv.SetReady(true)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.InfoContext(gctx, "Starting tracker server",
			"addr", srv.Addr,
			"backend", app.Config.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), app.Config.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.LogError(shutdownCtx, logger, "Server shutdown error", err, log.OpShutdown, nil)
			return err
		}
		logger.Info("Server stopped gracefully")
		return nil
	})
	return g.Wait()
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

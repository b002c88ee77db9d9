package cli

import (
	"context"
	"fmt"

	"expensetracker/internal/backend"
	"expensetracker/internal/config"
	"expensetracker/internal/log"
	"expensetracker/internal/persistence"
	"expensetracker/internal/report"
	"expensetracker/internal/store"
)

// App is the assembled tracker: a hydrated store over the configured
// backend plus the persistence gateway and report cache.
type App struct {
	Config   *config.Config
	Logger   *log.Logger
	Gateway  *persistence.Gateway
	Store    *store.Store
	Reporter *report.Reporter

	backend *backend.BackendResult
}

// NewApp opens the backend, hydrates the store from it and wires change
// notifications when a broker is configured.
func NewApp(ctx context.Context, cfg *config.Config, logger *log.Logger) (*App, error) {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	res, err := backend.NewFactory(logger).CreateBackend(ctx, bcfg)
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	gw := persistence.NewGateway(res.KV, persistence.WithLogger(logger))
	st := store.New(gw,
		store.WithLogger(logger),
		store.WithNotifier(res.Notifier),
	)
	n := st.Hydrate(ctx)

	logger.InfoContext(ctx, "Tracker ready",
		"backend", cfg.DataBackend,
		log.FieldCount, n,
		"notifications", res.Notifier != nil)

	return &App{
		Config:   cfg,
		Logger:   logger,
		Gateway:  gw,
		Store:    st,
		Reporter: report.NewReporter(st, cfg.ReportCacheSize, cfg.ReportCacheTTL),
		backend:  res,
	}, nil
}

// Close releases the backend.
func (a *App) Close() error {
	return a.backend.Close()
}

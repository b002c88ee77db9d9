// Package cli provides the initialization shared by the tracker's commands:
// environment, configuration, logging, and assembling the application.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"expensetracker/internal/config"
	"expensetracker/internal/log"
)

// SetupLogger builds the process logger at level and makes it the default.
// Logs go to stderr so command output on stdout stays machine-readable.
func SetupLogger(level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := log.DefaultConfig()
	cfg.Level = lvl
	cfg.Output = os.Stderr
	logger := log.New(cfg)
	log.SetDefault(logger)
	return logger, nil
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// GracefulShutdown returns a context cancelled on SIGINT or SIGTERM. The
// received signal is logged; stop releases the signal handler.
func GracefulShutdown(parent context.Context, logger *log.Logger) (ctx context.Context, stop context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		cancel()
	}
}

// Bootstrap runs the startup sequence every command shares.
func Bootstrap() (*config.Config, *log.Logger, error) {
	LoadEnvFile()
	cfg, err := LoadAndValidateConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("configuration: %w", err)
	}
	logger, err := SetupLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

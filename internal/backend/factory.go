package backend

import (
	"context"
	"errors"
	"fmt"

	"expensetracker/internal/amqp"
	"expensetracker/internal/log"
	"expensetracker/internal/storage"
	"expensetracker/internal/storage/file"
	"expensetracker/internal/storage/memory"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.Default()
	}
	return &DefaultFactory{
		logger: logger.WithComponent(log.ComponentBackend),
	}
}

// CreateBackend opens the configured store. A broker that cannot be reached
// is logged and skipped; the tracker works without notifications.
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var (
		result *BackendResult
		err    error
	)
	switch config.Type {
	case SQLiteBackend:
		result, err = f.createSQLiteBackend(ctx, config)
	case FileBackend:
		result, err = f.createFileBackend(ctx, config)
	case MemoryBackend:
		result, err = f.createMemoryBackend(ctx)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
	if err != nil {
		return nil, err
	}

	if config.AMQPURL != "" {
		client, err := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue, f.logger)
		if err != nil {
			f.logger.WarnContext(ctx, "Failed to initialize AMQP client, continuing without notifications", log.FieldError, err)
		} else {
			f.logger.InfoContext(ctx, "Initialized AMQP client",
				"exchange", config.AMQPExchange,
				"queue", config.AMQPQueue)
			result.Notifier = NewAMQPNotifier(client, f.logger)
			result.Cleanup = chain(result.Cleanup, client.Close)
		}
	}
	return result, nil
}

func (f *DefaultFactory) createSQLiteBackend(ctx context.Context, config Config) (*BackendResult, error) {
	kv, err := storage.NewSQLiteStore(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite store: %w", err)
	}

	f.logger.InfoContext(ctx, "Initialized SQLite backend", "db_path", config.SQLiteDBPath)

	return &BackendResult{KV: kv, Cleanup: kv.Close}, nil
}

func (f *DefaultFactory) createFileBackend(ctx context.Context, config Config) (*BackendResult, error) {
	kv, err := file.New(config.DataDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file store: %w", err)
	}

	f.logger.InfoContext(ctx, "Initialized file backend", "data_directory", config.DataDirectory)

	return &BackendResult{KV: kv}, nil
}

func (f *DefaultFactory) createMemoryBackend(ctx context.Context) (*BackendResult, error) {
	f.logger.InfoContext(ctx, "Initialized memory backend; data is lost on exit")
	return &BackendResult{KV: memory.New()}, nil
}

// Close runs the cleanup function if there is one.
func (r *BackendResult) Close() error {
	if r == nil || r.Cleanup == nil {
		return nil
	}
	return r.Cleanup()
}

func chain(fns ...CleanupFunc) CleanupFunc {
	return func() error {
		var errs []error
		for i := len(fns) - 1; i >= 0; i-- {
			if fns[i] != nil {
				errs = append(errs, fns[i]())
			}
		}
		return errors.Join(errs...)
	}
}

package log

import "context"

type contextKey struct{}

// NewContext returns ctx carrying logger.
func NewContext(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the logger stored by NewContext, or the default logger
// tagged with an "unknown" component.
func FromContext(ctx context.Context) *Logger {
	if logger, ok := ctx.Value(contextKey{}).(*Logger); ok {
		return logger
	}
	return Default().WithComponent("unknown")
}

// LogError logs err at error level together with the operation that failed.
func LogError(ctx context.Context, logger *Logger, msg string, err error, operation string, fields LogFields) {
	if fields == nil {
		fields = NewFields()
	}
	logger.ErrorContext(ctx, msg, fields.WithError(err).WithOperation(operation).ToSlice()...)
}

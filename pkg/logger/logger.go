// Package logger provides the structured logging contract used across the service.
// Concrete implementations live in the monitoring package; this package stays free
// of any backend so domain code can depend on it.
package logger

import (
	"context"
)

// ================================================================================
// Logger Interface
// ================================================================================

// Fields is a set of key-value pairs attached to a log entry
type Fields map[string]interface{}

// Logger defines the interface for structured logging
type Logger interface {
	// Debug logs a debug message
	Debug(ctx context.Context, msg string, fields ...Fields)

	// Info logs an informational message
	Info(ctx context.Context, msg string, fields ...Fields)

	// Warn logs a warning message
	Warn(ctx context.Context, msg string, fields ...Fields)

	// Error logs an error message
	Error(ctx context.Context, msg string, err error, fields ...Fields)

	// Fatal logs a fatal message and exits the application
	Fatal(ctx context.Context, msg string, err error, fields ...Fields)

	// WithFields creates a new logger with additional fields
	WithFields(fields Fields) Logger

	// WithComponent creates a new logger tagged with a component name
	WithComponent(component string) Logger

	// ForContext returns a request-scoped logger if one is stored in ctx
	ForContext(ctx context.Context) Logger
}

// Merge flattens several field sets into one. Later keys win.
func Merge(fields ...Fields) Fields {
	out := make(Fields)
	for _, f := range fields {
		for k, v := range f {
			out[k] = v
		}
	}
	return out
}

//Personal.AI order the ending

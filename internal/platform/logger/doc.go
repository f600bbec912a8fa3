// Package logger provides structured logging for the application.
//
// It configures log/slog with a JSON or text handler at the configured level
// and carries request-scoped loggers through context.Context so that every
// log line emitted while serving a request shares the request's trace_id.
package logger

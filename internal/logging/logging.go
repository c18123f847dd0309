// Package logging provides utilities for structured logging across the system.
//
// Logging is dependency-injected, never global. Each component owns its own
// scoped logger, attached once at construction time with slog.With(). Global
// configuration (output format, level, destination) belongs only in main().
//
// Logging is intentionally sparse: mutation and lifecycle boundaries are the
// intended log points. Nothing logs inside the query filter loop.
package logging

import (
	"context"
	"log/slog"
)

// discardHandler is a handler that discards all log records.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }

// Discard returns a logger that discards all output.
// Use this as a default when no logger is provided.
func Discard() *slog.Logger {
	return slog.New(discardHandler{})
}

// Default returns the provided logger if non-nil, otherwise a discard logger.
// This is the standard pattern for optional logger parameters:
//
//	func NewService(logger *slog.Logger) *Service {
//	    logger = logging.Default(logger)
//	    return &Service{logger: logger.With("component", "session")}
//	}
func Default(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return Discard()
}

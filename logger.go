package nexovera

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// silentHandler drops every record and reports every level disabled.
type silentHandler struct{}

func (silentHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (silentHandler) Handle(context.Context, slog.Record) error { return nil }
func (h silentHandler) WithAttrs([]slog.Attr) slog.Handler     { return h }
func (h silentHandler) WithGroup(string) slog.Handler          { return h }

var (
	silent = slog.New(silentHandler{})
	logger atomic.Pointer[slog.Logger] // nil means silent
)

// SetLogger routes the motion core's diagnostics to l. Skipped targets,
// trigger transitions and frame stats go out at debug level; animations
// stopped by a failing target write go out at warn. A nil l silences the
// core again, which is also the default.
func SetLogger(l *slog.Logger) {
	logger.Store(l)
}

// Logger returns the logger set with SetLogger, or a silent one.
func Logger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return silent
}

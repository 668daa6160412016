package capture

import (
	"context"
	"log/slog"
	"sync/atomic"
)

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger configures the logger used by the capture package. Capture is
// silent by default; pass nil to silence it again.
//
// Levels:
//   - [slog.LevelDebug]: points accepted, strokes discarded
//   - [slog.LevelInfo]: commits, pool wrap, clears, input toggles
//   - [slog.LevelError]: failed validation, cursor out of range
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the current capture logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

package nativehost

import (
	"log/slog"

	"github.com/gogpu/nativehost/internal/logging"
)

// SetLogger configures the logger for nativehost and all its
// sub-packages. By default nothing is logged.
//
// SetLogger is safe for concurrent use. Pass nil to restore silence.
//
// Log levels used:
//   - [slog.LevelDebug]: per-event traces (window events, IME, clipboard)
//   - [slog.LevelInfo]: lifecycle transitions (resume, suspend, surface configured)
//   - [slog.LevelWarn]: skipped frames and other transient failures
//   - [slog.LevelError]: swallowed bridge failures and fatal diagnostics
//
// Example:
//
//	nativehost.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the current logger. Safe for concurrent use.
func Logger() *slog.Logger {
	return logging.L()
}

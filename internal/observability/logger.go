// Package observability provides logging, metrics, and tracing.
package observability

import (
	"log/slog"
	"os"

	"github.com/learnovatex/platform/internal/config"
)

// SetupLogger builds the process logger. Dev gets a human-readable text
// handler at debug level; everything else logs JSON at info so the log
// pipeline can index the service and env fields.
func SetupLogger(cfg config.Config) *slog.Logger {
	var h slog.Handler
	if cfg.IsDev() {
		h = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		h = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	return slog.New(h).With(
		slog.String("service", cfg.OTELServiceName),
		slog.String("env", cfg.AppEnv),
	)
}

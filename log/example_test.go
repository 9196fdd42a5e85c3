package log_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/cmortab/log"
)

func Example_basic() {
	logger := log.Make(os.Stdout)
	logger.Info("table loaded", slog.String("table", "cfMon"))
}

func Example_configuration() {
	logger := log.Make(os.Stdout,
		log.WithLevel(log.LevelTrace),
		log.WithTimeLayout("RFC3339Nano"),
		log.WithCaller(true))

	logger.Trace("scanner line", slog.Int("line", 42))
}

func Example_levels() {
	logger := log.Make(os.Stdout, log.WithLevel(log.LevelWarn))

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warning message", slog.String("key", "value"))
	logger.Error("error message", slog.String("error", "something failed"))
}

func Example_withAttributes() {
	// Create a logger with persistent attributes
	logger := log.Make(os.Stdout)
	logger = logger.With(slog.String("table", "Amon"))

	logger.Info("validating entries")
	logger.Debug("entry details", slog.String("entry", "ta"))
}

func Example_withContext() {
	type sourceKey struct{}

	ctx := context.WithValue(context.Background(), sourceKey{}, "Tables/CMIP5_Amon")

	logger := log.Make(os.Stdout)

	logger.InfoContext(ctx, "parsing table")
	logger.DebugContext(ctx, "header complete", slog.Int("axes", 7))
}

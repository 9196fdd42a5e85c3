// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// A zero-configuration package-level logger writes to standard error and
// can be reconfigured at any time with [Config]:
//
//	log.Config(log.WithLevel(log.LevelDebug), log.WithFormat(log.FormatText))
//	log.Info("table loaded", slog.String("table", "cfMon"))
//
// Independent [Logger] values are created with [Make] and configured with
// the same functional options. Loggers are immutable; [Logger.Wrap] and
// [Logger.With] return derived loggers.
//
// Five levels are supported: trace, debug, info, warn, and error. The
// trace level extends slog's range downward for high-volume parser
// diagnostics. Output is JSON or logfmt-style text, optionally colorized
// when the text format is pretty-printed.
package log

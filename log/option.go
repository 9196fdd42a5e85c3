package log

import "io"

// Option applies a configuration option to config.
type Option func(config) config

// apply applies multiple options to a config.
func apply(cfg config, opts ...Option) config {
	for _, opt := range opts {
		cfg = opt(cfg)
	}

	return cfg
}

// WithOutput sets the output writer for log messages.
// A nil writer discards all output.
func WithOutput(w io.Writer) Option {
	return func(c config) config {
		if w == nil {
			w = io.Discard
		}

		c.output = w

		return c
	}
}

// WithLevel sets the minimum log level. Messages below this level are
// discarded.
func WithLevel(level Level) Option {
	return func(c config) config {
		c.level = level

		return c
	}
}

// WithFormat sets the output format for log messages.
func WithFormat(format Format) Option {
	return func(c config) config {
		c.format = format

		return c
	}
}

// WithTimeLayout sets the layout used to format log timestamps.
//
// The layout can be one of the named layouts from the [time] package
// (for example, "RFC3339" or "Kitchen"); any other value is passed
// verbatim to [time.Time.Format]. An empty layout disables timestamps.
func WithTimeLayout(layout string) Option {
	return func(c config) config {
		c.layout = resolveLayout(layout)

		return c
	}
}

// WithCaller includes source file and line information in log output.
func WithCaller(caller bool) Option {
	return func(c config) config {
		c.caller = caller

		return c
	}
}

// WithPretty enables colorized pretty printing for text output.
// It has no effect on the JSON format.
func WithPretty(pretty bool) Option {
	return func(c config) config {
		c.pretty = pretty

		return c
	}
}

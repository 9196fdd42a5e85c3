package cmd

import (
	"bufio"
	"context"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/cmortab/log"
	"github.com/ardnew/cmortab/table"
)

// Identifiers of the kong.Vars shared between the cli and cmd packages.
const (
	ConfigIdentifier = "configFile"
	CacheIdentifier  = "cacheDir"
)

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// parseSource parses the table at path, reading stdin when path is "-".
func parseSource(ctx context.Context, path string) (*table.Table, error) {
	if path == stdinSource {
		tbl, err := table.Parse(bufio.NewReader(os.Stdin))
		if err != nil {
			return nil, ErrReadTable.Wrap(err).
				With(slog.String("source", "stdin"))
		}

		log.TraceContext(ctx, "parsed table",
			slog.String("source", "stdin"),
			slog.String("table", tbl.Name()),
		)

		return tbl, nil
	}

	tbl, err := table.ParseFile(path)
	if err != nil {
		return nil, ErrReadTable.Wrap(err).
			With(slog.String("source", path))
	}

	log.TraceContext(ctx, "parsed table",
		slog.String("source", path),
		slog.String("table", tbl.Name()),
		slog.Int("axes", len(tbl.Axes)),
		slog.Int("variables", len(tbl.Variables)),
	)

	return tbl, nil
}

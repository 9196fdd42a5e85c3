package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ardnew/cmortab/log"
	"github.com/ardnew/cmortab/ncgen"
)

// Export writes a NetCDF skeleton file containing the coordinate
// variables and fill-value data variables declared by a table.
type Export struct {
	Output    string   `help:"Output file path (default: <table>.nc)" short:"o" type:"path"`
	Variables []string `help:"Export only the named variables" short:"x"`

	Source string `arg:"" default:"-" help:"Table file or '-' for stdin." name:"source"`
}

// Run executes the export command.
func (e *Export) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	tbl, err := parseSource(ctx, e.Source)
	if err != nil {
		return err
	}

	// Exported files must come from valid tables so every dimension
	// token resolves to a real coordinate.
	if err := tbl.Validate(); err != nil {
		return err
	}

	output := e.Output
	if output == "" {
		output = tbl.Name() + ".nc"
	}

	err = ncgen.Write(output, tbl, e.Variables...)
	if err != nil {
		return ErrExportTable.Wrap(err).
			With(
				slog.String("table", tbl.Name()),
				slog.String("output", output),
			)
	}

	log.InfoContext(ctx, "exported table",
		slog.String("table", tbl.Name()),
		slog.String("output", output),
		slog.Int("variables", len(tbl.Variables)),
	)

	fmt.Fprintf(os.Stdout, "wrote %s\n", output)

	return nil
}

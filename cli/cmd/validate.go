package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/ardnew/cmortab/log"
	"github.com/ardnew/cmortab/table"
)

// Validate parses one or more table files and checks them against the
// format invariants. Every problem found is reported; the command fails
// if any table is invalid.
type Validate struct {
	Quiet bool `help:"Report only the pass/fail status, not each problem" short:"q"`

	Source []string `arg:"" help:"Table file(s) or '-' for stdin" name:"source" optional:""`
}

// Run executes the validate command.
func (v *Validate) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	sources := v.Source
	if len(sources) == 0 {
		sources = []string{stdinSource}
	}

	invalid := 0

	for _, src := range sources {
		tbl, err := parseSource(ctx, src)
		if err != nil {
			return err
		}

		verr := tbl.Validate()
		if verr == nil {
			fmt.Fprintf(os.Stdout, "%s: ok\n", tbl.Name())

			log.DebugContext(ctx, "table valid",
				slog.String("source", src),
				slog.String("table", tbl.Name()),
			)

			continue
		}

		invalid++

		var vdetail *table.ValidationError
		if !errors.As(verr, &vdetail) {
			return verr
		}

		fmt.Fprintf(os.Stdout, "%s: %d problem(s)\n",
			tbl.Name(), len(vdetail.Problems))

		if !v.Quiet {
			for _, p := range vdetail.Problems {
				fmt.Fprintf(os.Stdout, "  %s\n", p.String())
			}
		}

		log.DebugContext(ctx, "table invalid", slog.Any("error", vdetail))
	}

	if invalid > 0 {
		return NewError("validation failed").
			With(slog.Int("invalid", invalid))
	}

	return nil
}

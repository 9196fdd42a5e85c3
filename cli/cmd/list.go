package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/ardnew/cmortab/log"
	"github.com/ardnew/cmortab/table"
)

// List prints the table entries matching a filter expression.
type List struct {
	Kind  string `default:"" enum:",axis,variable" help:"List only entries of this kind" short:"k"`
	Where string `default:""                       help:"Filter expression, e.g. 'axis == \"Z\"'" short:"w"`
	Long  bool   `help:"Include standard name, units, and dimensions" short:"l"`

	Source string `arg:"" default:"-" help:"Table file or '-' for stdin." name:"source"`
}

// Run executes the list command.
func (l *List) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	tbl, err := parseSource(ctx, l.Source)
	if err != nil {
		return err
	}

	entries, err := tbl.Filter(l.Where)
	if err != nil {
		return err
	}

	matched := 0

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)

	for _, e := range entries {
		if l.Kind != "" && e.EntryKind().String() != l.Kind {
			continue
		}

		matched++

		if !l.Long {
			fmt.Fprintf(w, "%s\t%s\n", e.EntryKind(), e.EntryName())

			continue
		}

		switch entry := e.(type) {
		case *table.AxisEntry:
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				e.EntryKind(), e.EntryName(), entry.StandardName, entry.Units)
		case *table.VariableEntry:
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%v\n",
				e.EntryKind(), e.EntryName(),
				entry.StandardName, entry.Units, entry.Dimensions)
		}
	}

	if err := w.Flush(); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	log.DebugContext(ctx, "listed entries",
		slog.String("table", tbl.Name()),
		slog.String("where", l.Where),
		slog.Int("matched", matched),
	)

	return nil
}

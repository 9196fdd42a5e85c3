package cmd

import (
	"context"

	"github.com/ardnew/cmortab/cli/cmd/browse"
)

// Browse opens an interactive terminal browser over the table entries.
type Browse struct {
	Source string `arg:"" default:"-" help:"Table file or '-' for stdin." name:"source"`
}

// Run executes the browse command.
func (b *Browse) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	tbl, err := parseSource(ctx, b.Source)
	if err != nil {
		return err
	}

	return browse.Run(tbl)
}

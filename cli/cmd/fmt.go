package cmd

import (
	"context"
	"log/slog"
	"os"
)

// Fmt parses a table and rewrites it in the chosen format.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Format as native table syntax (default)."`
	JSON   JSON   `cmd:""                    help:"Format as JSON."`
	YAML   YAML   `cmd:""                    help:"Format as YAML."`
}

// Native formats input as native table syntax.
type Native struct {
	Source string `arg:"" default:"-" help:"Table file or '-' for stdin." name:"source"`
}

// Run executes the fmt native command.
func (f *Native) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	tbl, err := parseSource(ctx, f.Source)
	if err != nil {
		return err
	}

	err = tbl.Format(os.Stdout)
	if err != nil {
		return ErrWriteOutput.Wrap(err).
			With(slog.String("format", "native"))
	}

	return nil
}

// JSON parses a table and outputs it as JSON.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output" short:"i"`

	Source string `arg:"" default:"-" help:"Table file or '-' for stdin." name:"source"`
}

// Run executes the fmt json command.
func (j *JSON) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	tbl, err := parseSource(ctx, j.Source)
	if err != nil {
		return err
	}

	err = tbl.FormatJSON(os.Stdout, j.Indent)
	if err != nil {
		return ErrWriteOutput.Wrap(err).
			With(slog.String("format", "json"))
	}

	return nil
}

// YAML parses a table and outputs it as YAML.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output" short:"i"`

	Source string `arg:"" default:"-" help:"Table file or '-' for stdin." name:"source"`
}

// Run executes the fmt yaml command.
func (y *YAML) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	tbl, err := parseSource(ctx, y.Source)
	if err != nil {
		return err
	}

	err = tbl.FormatYAML(ctx, os.Stdout, y.Indent)
	if err != nil {
		return ErrWriteOutput.Wrap(err).
			With(slog.String("format", "yaml"))
	}

	return nil
}

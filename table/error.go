package table

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
var (
	ErrEmptyTable       = NewError("no table content")
	ErrMissingAttribute = NewError("missing required global attribute")
	ErrMissingField     = NewError("missing required field")
	ErrUnknownDimension = NewError("unresolved dimension reference")
	ErrInvalidNumber    = NewError("invalid numeric value")
	ErrInvalidKeyword   = NewError("invalid keyword value")
	ErrBoundsArity      = NewError("requested_bounds must hold two values per requested value")
	ErrEntryNotFound    = NewError("entry not found")
	ErrReadInput        = NewError("failed to read input")
	ErrFilterCompile    = NewError("filter compilation failed")
	ErrFilterEvaluate   = NewError("filter evaluation failed")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg>: <err>" // base and wrapped error both set
	//   2. "<msg>"        // wrapped error is nil
	//   3. "<err>"        // base error message is empty
	//   4. ""             // no fields are set
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is matches errors derived from the same sentinel: Wrap and With keep
// the base message, so derived errors compare equal to their sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e.msg != "" && e.msg == t.msg
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs, // Share attrs
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// ParseError reports a malformed line in the table source.
// The whole file is rejected on the first ParseError.
type ParseError struct {
	Line   int    // 1-based line number of the offending line
	Column int    // 1-based column of the first offending rune
	Reason string // short description of the defect
	Text   string // raw source line, used for the caret snippet
}

// Error implements the error interface. When the offending source line is
// available, the message includes it with a caret marking the column.
func (e *ParseError) Error() string {
	var buf strings.Builder

	buf.WriteString("parse error at line ")
	buf.WriteString(strconv.Itoa(e.Line))
	buf.WriteString(", column ")
	buf.WriteString(strconv.Itoa(e.Column))
	buf.WriteString(": ")
	buf.WriteString(e.Reason)

	if e.Text != "" {
		buf.WriteString("\n  ")
		buf.WriteString(strconv.Itoa(e.Line))
		buf.WriteString(" | ")
		buf.WriteString(e.Text)
		buf.WriteRune('\n')

		// Pad to the caret column.
		// +5 accounts for: 2 leading spaces + " | " (3 chars)
		lineNumWidth := len(strconv.Itoa(e.Line))
		padding := strings.Repeat(" ", lineNumWidth+5)

		if e.Column > 0 {
			padding += strings.Repeat(" ", e.Column-1)
		}

		buf.WriteString(padding + "^")
	}

	return buf.String()
}

// LogValue implements slog.LogValuer for structured logging.
func (e *ParseError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", e.Reason),
		slog.Int("line", e.Line),
		slog.Int("column", e.Column),
	)
}

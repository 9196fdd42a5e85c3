package table

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// Problem describes a single validation failure. Entry is empty for
// table-level (header) problems.
type Problem struct {
	Entry string // offending entry name
	Kind  string // "table", "axis", or "variable"
	Line  int    // source line of the offending entry, 0 for the header
	Err   error
}

// String formats the problem with its entry name and line number.
func (p Problem) String() string {
	var buf strings.Builder

	buf.WriteString(p.Kind)

	if p.Entry != "" {
		buf.WriteRune(' ')
		buf.WriteString(strconv.Quote(p.Entry))
	}

	if p.Line > 0 {
		buf.WriteString(" (line ")
		buf.WriteString(strconv.Itoa(p.Line))
		buf.WriteString(")")
	}

	buf.WriteString(": ")
	buf.WriteString(p.Err.Error())

	return buf.String()
}

// ValidationError collects every validation problem found in one table.
type ValidationError struct {
	Table    string
	Problems []Problem
}

// Error implements the error interface, listing each problem on its own
// line.
func (e *ValidationError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "table %q: %d validation problem", e.Table, len(e.Problems))

	if len(e.Problems) != 1 {
		buf.WriteRune('s')
	}

	for _, p := range e.Problems {
		buf.WriteString("\n  ")
		buf.WriteString(p.String())
	}

	return buf.String()
}

// LogValue implements slog.LogValuer for structured logging.
func (e *ValidationError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("table", e.Table),
		slog.Int("problems", len(e.Problems)),
	)
}

// storedDirections and axisDirections are the keyword values accepted for
// the corresponding axis fields.
var (
	storedDirections = map[string]struct{}{
		"increasing": {}, "decreasing": {},
	}
	axisDirections = map[string]struct{}{
		"X": {}, "Y": {}, "Z": {}, "T": {},
	}
	boundsKeywords = map[string]struct{}{
		"yes": {}, "no": {},
	}
)

// Validate checks the parsed table against the format invariants:
//
//   - required header attributes (table_id, frequency, project_id) present
//   - numeric header fields (missing_value, approx_interval) parse as floats
//   - every axis declares out_name and type, and its keyword fields hold
//     legal values
//   - numeric axis fields (value, bounds_values, tolerance, valid_min,
//     valid_max, requested, requested_bounds) parse as floats
//   - requested_bounds holds exactly two values per requested value
//   - every variable declares out_name, type, and units
//   - every dimension token of every variable resolves to a declared axis,
//     a generic level, or an implicit longitude/latitude/time dimension
//
// All problems are collected; the returned error is nil only when the
// table is entirely valid.
func (t *Table) Validate() error {
	var problems []Problem

	problems = append(problems, t.validateHeader()...)

	for _, a := range t.Axes {
		problems = append(problems, validateAxis(a)...)
	}

	for _, v := range t.Variables {
		problems = append(problems, t.validateVariable(v)...)
	}

	if len(problems) == 0 {
		return nil
	}

	return &ValidationError{Table: t.Name(), Problems: problems}
}

func (t *Table) validateHeader() []Problem {
	var problems []Problem

	header := func(err error) {
		problems = append(problems, Problem{Kind: "table", Err: err})
	}

	for _, req := range []struct{ key, value string }{
		{"table_id", t.ID},
		{"frequency", t.Frequency},
		{"project_id", t.ProjectID},
	} {
		if req.value == "" {
			header(ErrMissingAttribute.With(slog.String("attribute", req.key)))
		}
	}

	for _, num := range []struct{ key, value string }{
		{"missing_value", t.MissingValue},
		{"approx_interval", t.ApproxInterval},
	} {
		if num.value == "" {
			continue
		}

		if _, err := strconv.ParseFloat(num.value, 64); err != nil {
			header(ErrInvalidNumber.Wrap(err).
				With(slog.String("attribute", num.key)))
		}
	}

	return problems
}

func validateAxis(a *AxisEntry) []Problem {
	var problems []Problem

	axis := func(err error) {
		problems = append(problems, Problem{
			Entry: a.Name,
			Kind:  "axis",
			Line:  a.Line,
			Err:   err,
		})
	}

	if a.OutName == "" {
		axis(ErrMissingField.With(slog.String("field", "out_name")))
	}

	if a.Type == "" {
		axis(ErrMissingField.With(slog.String("field", "type")))
	}

	if a.IsNumeric() && a.Units == "" {
		axis(ErrMissingField.With(slog.String("field", "units")))
	}

	for _, kw := range []struct {
		key, value string
		legal      map[string]struct{}
	}{
		{"axis", a.Axis, axisDirections},
		{"stored_direction", a.StoredDirection, storedDirections},
		{"must_have_bounds", a.MustHaveBounds, boundsKeywords},
	} {
		if kw.value == "" {
			continue
		}

		if _, ok := kw.legal[kw.value]; !ok {
			axis(ErrInvalidKeyword.With(
				slog.String("field", kw.key),
				slog.String("value", kw.value),
			))
		}
	}

	if a.IsNumeric() {
		problems = append(problems, validateAxisNumbers(a)...)
	}

	if len(a.Requested) > 0 && len(a.RequestedBounds) > 0 &&
		len(a.RequestedBounds) != 2*len(a.Requested) {
		axis(ErrBoundsArity.With(
			slog.Int("requested", len(a.Requested)),
			slog.Int("requested_bounds", len(a.RequestedBounds)),
		))
	}

	return problems
}

// validateAxisNumbers checks that every numeric field of a numeric-typed
// axis parses as a float.
func validateAxisNumbers(a *AxisEntry) []Problem {
	var problems []Problem

	axis := func(err error) {
		problems = append(problems, Problem{
			Entry: a.Name,
			Kind:  "axis",
			Line:  a.Line,
			Err:   err,
		})
	}

	for _, num := range []struct{ key, value string }{
		{"tolerance", a.Tolerance},
		{"valid_min", a.ValidMin},
		{"valid_max", a.ValidMax},
		{"value", a.Value},
	} {
		if num.value == "" {
			continue
		}

		if _, err := strconv.ParseFloat(num.value, 64); err != nil {
			axis(ErrInvalidNumber.Wrap(err).
				With(slog.String("field", num.key)))
		}
	}

	// bounds_values holds a whitespace-separated pair on a single line.
	if a.BoundsValues != "" {
		if _, err := parseFloats(strings.Fields(a.BoundsValues)); err != nil {
			axis(WrapError(err).With(slog.String("field", "bounds_values")))
		}
	}

	for _, list := range []struct {
		key    string
		tokens []string
	}{
		{"requested", a.Requested},
		{"requested_bounds", a.RequestedBounds},
	} {
		if _, err := parseFloats(list.tokens); err != nil {
			axis(WrapError(err).With(slog.String("field", list.key)))
		}
	}

	return problems
}

func (t *Table) validateVariable(v *VariableEntry) []Problem {
	var problems []Problem

	variable := func(err error) {
		problems = append(problems, Problem{
			Entry: v.Name,
			Kind:  "variable",
			Line:  v.Line,
			Err:   err,
		})
	}

	for _, req := range []struct{ key, value string }{
		{"out_name", v.OutName},
		{"type", v.Type},
		{"units", v.Units},
	} {
		if req.value == "" {
			variable(ErrMissingField.With(slog.String("field", req.key)))
		}
	}

	for _, dim := range v.Dimensions {
		if !t.ResolveDimension(dim) {
			variable(ErrUnknownDimension.With(slog.String("dimension", dim)))
		}
	}

	return problems
}

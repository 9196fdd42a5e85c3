package table

import (
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Predicate is a compiled boolean expression evaluated against table
// entries. Expressions use the expr language and see the environment
// documented on [Table.FilterEnv].
type Predicate struct {
	source  string
	program *vm.Program
}

// CompilePredicate compiles a where expression once for reuse across
// entries. Unknown identifiers evaluate to nil rather than failing
// compilation so one expression can mix axis-only and variable-only
// fields.
func CompilePredicate(where string) (*Predicate, error) {
	program, err := expr.Compile(where,
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, ErrFilterCompile.Wrap(err).
			With(slog.String("expression", where))
	}

	return &Predicate{source: where, program: program}, nil
}

// Match evaluates the predicate against one entry of the table.
func (p *Predicate) Match(t *Table, e Entry) (bool, error) {
	out, err := expr.Run(p.program, t.FilterEnv(e))
	if err != nil {
		return false, ErrFilterEvaluate.Wrap(err).
			With(
				slog.String("expression", p.source),
				slog.String("entry", e.EntryName()),
			)
	}

	ok, isBool := out.(bool)

	return ok && isBool, nil
}

// Filter returns the entries matching the where expression, in source
// order. An empty expression matches everything.
func (t *Table) Filter(where string) ([]Entry, error) {
	entries := t.Entries()

	if where == "" {
		return entries, nil
	}

	pred, err := CompilePredicate(where)
	if err != nil {
		return nil, err
	}

	matched := make([]Entry, 0, len(entries))

	for _, e := range entries {
		ok, err := pred.Match(t, e)
		if err != nil {
			return nil, err
		}

		if ok {
			matched = append(matched, e)
		}
	}

	return matched, nil
}

// FilterEnv builds the expression environment for one entry. Axis-only
// fields are absent for variables and vice versa; expressions reference
// them through [expr.AllowUndefinedVariables].
//
// Common fields: name, kind, standard_name, out_name, units, long_name,
// type, comment, plus the header fields table, frequency, project, realm.
// Axis fields: axis, positive, stored_direction, must_have_bounds,
// requested (list length). Variable fields: cell_methods, cell_measures,
// dimensions (token list), positive.
func (t *Table) FilterEnv(e Entry) map[string]any {
	env := map[string]any{
		"name":      e.EntryName(),
		"kind":      e.EntryKind().String(),
		"table":     t.Name(),
		"frequency": t.Frequency,
		"project":   t.ProjectID,
	}

	switch entry := e.(type) {
	case *AxisEntry:
		env["standard_name"] = entry.StandardName
		env["out_name"] = entry.OutName
		env["units"] = entry.Units
		env["long_name"] = entry.LongName
		env["type"] = entry.Type
		env["comment"] = entry.Comment
		env["realm"] = t.ModelingRealm
		env["axis"] = entry.Axis
		env["positive"] = entry.Positive
		env["stored_direction"] = entry.StoredDirection
		env["must_have_bounds"] = entry.MustHaveBounds
		env["requested"] = len(entry.Requested)

	case *VariableEntry:
		env["standard_name"] = entry.StandardName
		env["out_name"] = entry.OutName
		env["units"] = entry.Units
		env["long_name"] = entry.LongName
		env["type"] = entry.Type
		env["comment"] = entry.Comment
		env["realm"] = entry.ModelingRealm
		if entry.ModelingRealm == "" {
			env["realm"] = t.ModelingRealm
		}

		env["positive"] = entry.Positive
		env["cell_methods"] = entry.CellMethods
		env["cell_measures"] = entry.CellMeasures
		env["dimensions"] = entry.Dimensions
	}

	return env
}

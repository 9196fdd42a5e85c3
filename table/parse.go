package table

import (
	"io"
	"os"
	"strings"
)

// Block marker keys opening a new entry.
const (
	axisMarker     = "axis_entry"
	variableMarker = "variable_entry"
)

// Parse reads table source from r and builds the in-memory records.
// It performs no validation beyond line syntax; see [Table.Validate].
func Parse(r io.Reader) (*Table, error) {
	lines, err := scan(r)
	if err != nil {
		return nil, err
	}

	return build(lines)
}

// ParseString parses table source from a string.
func ParseString(src string) (*Table, error) {
	return Parse(strings.NewReader(src))
}

// ParseFile parses the table file at path.
func ParseFile(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, ErrReadInput.Wrap(err)
	}
	defer file.Close()

	return Parse(file)
}

// Load parses and validates the table file at path. The whole file is
// rejected on the first fatal parse error or any validation problem.
func Load(path string) (*Table, error) {
	tbl, err := ParseFile(path)
	if err != nil {
		return nil, err
	}

	if err := tbl.Validate(); err != nil {
		return nil, err
	}

	return tbl, nil
}

// build groups the scanned lines into the header block and entry blocks,
// dispatching each key-value pair onto the record under construction.
// Blank and decorative comment lines carry no content and are dropped.
func build(lines []line) (*Table, error) {
	tbl := &Table{}

	var (
		axis     *AxisEntry
		variable *VariableEntry
	)

	sawContent := false

	for _, ln := range lines {
		if ln.key == "" {
			continue
		}

		sawContent = true

		switch ln.key {
		case axisMarker:
			finishEntry(tbl, axis, variable)

			axis, variable = &AxisEntry{Name: ln.value, Line: ln.num}, nil
			tbl.Axes = append(tbl.Axes, axis)

		case variableMarker:
			finishEntry(tbl, axis, variable)

			axis, variable = nil, &VariableEntry{Name: ln.value, Line: ln.num}
			tbl.Variables = append(tbl.Variables, variable)

		default:
			switch {
			case axis != nil:
				setAxisField(axis, ln.key, ln.value)
			case variable != nil:
				setVariableField(variable, ln.key, ln.value)
			default:
				tbl.setHeaderField(ln.key, ln.value)
			}
		}
	}

	finishEntry(tbl, axis, variable)

	if !sawContent {
		return nil, ErrEmptyTable
	}

	return tbl, nil
}

// finishEntry indexes the entry whose block just ended, after its out_name
// (if any) is known.
func finishEntry(tbl *Table, axis *AxisEntry, variable *VariableEntry) {
	if axis != nil {
		tbl.indexAxis(axis)
	}

	if variable != nil {
		tbl.indexVariable(variable)
	}
}

// setAxisField assigns one key-value pair of an axis_entry block.
// Coordinate lists accumulate across repeated keys so long lists may be
// split over multiple lines. Unrecognized keys are preserved in Extra.
func setAxisField(a *AxisEntry, key, value string) {
	switch key {
	case "standard_name":
		a.StandardName = value
	case "units":
		a.Units = value
	case "axis":
		a.Axis = value
	case "positive":
		a.Positive = value
	case "long_name":
		a.LongName = value
	case "out_name":
		a.OutName = value
	case "type":
		a.Type = value
	case "stored_direction":
		a.StoredDirection = value
	case "must_have_bounds":
		a.MustHaveBounds = value
	case "tolerance":
		a.Tolerance = value
	case "valid_min":
		a.ValidMin = value
	case "valid_max":
		a.ValidMax = value
	case "value":
		a.Value = value
	case "bounds_values":
		a.BoundsValues = value
	case "requested":
		a.Requested = append(a.Requested, axisTokens(a, value)...)
	case "requested_bounds":
		a.RequestedBounds = append(a.RequestedBounds, axisTokens(a, value)...)
	case "comment":
		a.Comment = joinComment(a.Comment, value)
	default:
		a.Extra = append(a.Extra, Field{Key: key, Value: value})
	}
}

// axisTokens splits a coordinate list value. Character axes (e.g. region
// or basin names) use quoted tokens that may contain spaces; numeric axes
// are whitespace-separated.
func axisTokens(a *AxisEntry, value string) []string {
	if !a.IsNumeric() || strings.ContainsRune(value, '\'') {
		return splitQuoted(value)
	}

	return strings.Fields(value)
}

// setVariableField assigns one key-value pair of a variable_entry block.
// Unrecognized keys are preserved in Extra.
func setVariableField(v *VariableEntry, key, value string) {
	switch key {
	case "modeling_realm":
		v.ModelingRealm = value
	case "standard_name":
		v.StandardName = value
	case "units":
		v.Units = value
	case "cell_methods":
		v.CellMethods = value
	case "cell_measures":
		v.CellMeasures = value
	case "long_name":
		v.LongName = value
	case "comment":
		v.Comment = joinComment(v.Comment, value)
	case "dimensions":
		v.Dimensions = append(v.Dimensions, strings.Fields(value)...)
	case "out_name":
		v.OutName = value
	case "type":
		v.Type = value
	case "positive":
		v.Positive = value
	case "valid_min":
		v.ValidMin = value
	case "valid_max":
		v.ValidMax = value
	default:
		v.Extra = append(v.Extra, Field{Key: key, Value: value})
	}
}

// joinComment concatenates repeated comment keys with a single space.
func joinComment(existing, value string) string {
	if existing == "" {
		return value
	}

	return existing + " " + value
}

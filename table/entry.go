package table

import (
	"strconv"
	"strings"
)

// Kind discriminates the two entry block types of a table.
type Kind int

const (
	// KindAxis identifies axis_entry blocks.
	KindAxis Kind = iota

	// KindVariable identifies variable_entry blocks.
	KindVariable
)

// String returns the block marker spelling without the "_entry" suffix.
func (k Kind) String() string {
	switch k {
	case KindAxis:
		return "axis"
	case KindVariable:
		return "variable"
	default:
		return "unknown"
	}
}

// Field is a single key-value pair preserved verbatim from the source.
// Entries keep unrecognized keys here so serialization can reproduce them.
type Field struct {
	Key   string
	Value string
}

// Entry is implemented by both axis and variable entries.
type Entry interface {
	// EntryName returns the name declared on the block marker line.
	EntryName() string
	// EntryKind returns the block type.
	EntryKind() Kind
	// EntryLine returns the source line of the block marker.
	EntryLine() int
}

// AxisEntry defines one coordinate dimension: spatial, vertical, temporal,
// or categorical. Numeric fields are kept as source text; accessor methods
// parse on demand so serialization reproduces the original notation.
type AxisEntry struct {
	Name string // block marker name, referenced by variable dimensions
	Line int    // source line of the block marker

	StandardName    string
	Units           string
	Axis            string // X, Y, Z, T, or empty for categorical axes
	Positive        string // up or down, vertical axes only
	LongName        string
	OutName         string // name of the axis in output files
	Type            string // real, double, integer, or character
	StoredDirection string // increasing or decreasing
	MustHaveBounds  string // yes or no
	Tolerance       string
	ValidMin        string
	ValidMax        string
	Value           string   // fixed coordinate value, scalar axes only
	BoundsValues    string   // fixed coordinate bounds, scalar axes only
	Requested       []string // coordinate list, discretized axes only
	RequestedBounds []string // coordinate bounds, two per requested value
	Comment         string
	Extra           []Field // unrecognized keys in source order
}

// EntryName implements [Entry].
func (a *AxisEntry) EntryName() string { return a.Name }

// EntryKind implements [Entry].
func (a *AxisEntry) EntryKind() Kind { return KindAxis }

// EntryLine implements [Entry].
func (a *AxisEntry) EntryLine() int { return a.Line }

// IsScalar reports whether the axis declares a fixed coordinate value
// instead of a requested coordinate list.
func (a *AxisEntry) IsScalar() bool { return a.Value != "" }

// IsNumeric reports whether the axis coordinate values are numeric.
func (a *AxisEntry) IsNumeric() bool { return a.Type != "character" }

// RequestedValues parses the requested coordinate list as floats.
func (a *AxisEntry) RequestedValues() ([]float64, error) {
	return parseFloats(a.Requested)
}

// RequestedBoundsValues parses the requested coordinate bounds as floats.
func (a *AxisEntry) RequestedBoundsValues() ([]float64, error) {
	return parseFloats(a.RequestedBounds)
}

// ScalarValue parses the fixed coordinate value of a scalar axis.
func (a *AxisEntry) ScalarValue() (float64, error) {
	v, err := strconv.ParseFloat(a.Value, 64)
	if err != nil {
		return 0, ErrInvalidNumber.Wrap(err)
	}

	return v, nil
}

// VariableEntry defines one output quantity and the axes it varies over.
type VariableEntry struct {
	Name string // block marker name
	Line int    // source line of the block marker

	ModelingRealm string
	StandardName  string
	Units         string
	CellMethods   string
	CellMeasures  string
	LongName      string
	Comment       string
	Dimensions    []string // ordered dimension tokens, e.g. longitude latitude alt40 time
	OutName       string   // name of the variable in output files
	Type          string   // real, double, or integer
	Positive      string   // up or down, flux variables only
	ValidMin      string
	ValidMax      string
	Extra         []Field // unrecognized keys in source order
}

// EntryName implements [Entry].
func (v *VariableEntry) EntryName() string { return v.Name }

// EntryKind implements [Entry].
func (v *VariableEntry) EntryKind() Kind { return KindVariable }

// EntryLine implements [Entry].
func (v *VariableEntry) EntryLine() int { return v.Line }

// parseFloats parses each token as a float64, wrapping the first failure
// in [ErrInvalidNumber] with the offending token in the message.
func parseFloats(tokens []string) ([]float64, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	values := make([]float64, len(tokens))

	for i, tok := range tokens {
		v, err := strconv.ParseFloat(strings.TrimSuffix(tok, ","), 64)
		if err != nil {
			return nil, ErrInvalidNumber.Wrap(err)
		}

		values[i] = v
	}

	return values, nil
}

package table

import (
	"strings"
)

// Experiment is one entry of the experiment-id whitelist (expt_id_ok).
type Experiment struct {
	Description string // human-readable experiment description
	ID          string // short identifier, possibly with XXXX placeholders
}

// Table is the parsed form of one CMOR table file: the global header
// attributes plus all axis and variable entries in source order.
// A Table is immutable after parsing.
type Table struct {
	ID             string // table_id value, e.g. "Table cfMon"
	ModelingRealm  string
	Frequency      string
	CMORVersion    string // minimum CMOR version able to read the table
	CFVersion      string // CF conventions version the output conforms to
	ProjectID      string
	TableDate      string
	Product        string
	BaseURL        string
	MissingValue   string
	ApproxInterval string // approximate interval between time samples, days
	MagicNumber    string

	GenericLevels            []string // dimension tokens standing for model levels
	RequiredGlobalAttributes []string
	Forcings                 []string
	Experiments              []Experiment
	Extra                    []Field // unrecognized header keys in source order

	Axes      []*AxisEntry
	Variables []*VariableEntry

	axisIndex map[string]*AxisEntry
	varIndex  map[string]*VariableEntry
	generic   map[string]struct{}
}

// implicitDimensions are always resolvable even when the table does not
// declare matching axis entries.
var implicitDimensions = map[string]struct{}{
	"longitude": {},
	"latitude":  {},
	"time":      {},
}

// Name returns the short table name, stripping the customary "Table "
// prefix from the table_id value: "Table cfMon" yields "cfMon".
func (t *Table) Name() string {
	return strings.TrimPrefix(t.ID, "Table ")
}

// Axis returns the axis entry declared under name or out_name.
func (t *Table) Axis(name string) (*AxisEntry, bool) {
	a, ok := t.axisIndex[name]

	return a, ok
}

// Variable returns the variable entry declared under name or out_name.
func (t *Table) Variable(name string) (*VariableEntry, bool) {
	v, ok := t.varIndex[name]

	return v, ok
}

// Entries returns all axis and variable entries in source order,
// axes first.
func (t *Table) Entries() []Entry {
	entries := make([]Entry, 0, len(t.Axes)+len(t.Variables))

	for _, a := range t.Axes {
		entries = append(entries, a)
	}

	for _, v := range t.Variables {
		entries = append(entries, v)
	}

	return entries
}

// ResolveDimension reports whether a dimension token of a variable entry
// refers to a declared axis (by entry name or out_name), a declared
// generic level, or one of the implicit longitude/latitude/time axes.
func (t *Table) ResolveDimension(token string) bool {
	if _, ok := t.axisIndex[token]; ok {
		return true
	}

	if _, ok := t.generic[token]; ok {
		return true
	}

	_, ok := implicitDimensions[token]

	return ok
}

// indexAxis registers an axis under its entry name and, once known, its
// out_name. Called during parsing only.
func (t *Table) indexAxis(a *AxisEntry) {
	if t.axisIndex == nil {
		t.axisIndex = make(map[string]*AxisEntry)
	}

	t.axisIndex[a.Name] = a

	if a.OutName != "" && a.OutName != a.Name {
		t.axisIndex[a.OutName] = a
	}
}

// indexVariable registers a variable under its entry name and, once known,
// its out_name. Called during parsing only.
func (t *Table) indexVariable(v *VariableEntry) {
	if t.varIndex == nil {
		t.varIndex = make(map[string]*VariableEntry)
	}

	t.varIndex[v.Name] = v

	if v.OutName != "" && v.OutName != v.Name {
		t.varIndex[v.OutName] = v
	}
}

// setHeaderField assigns one header key-value pair. Repeatable keys
// (expt_id_ok, forcings, required_global_attributes, generic_levels)
// accumulate; all other recognized keys keep the last value seen, which
// matches the behavior of CMOR's own table reader. Unrecognized keys are
// preserved in Extra.
func (t *Table) setHeaderField(key, value string) {
	switch key {
	case "table_id":
		t.ID = value
	case "modeling_realm":
		t.ModelingRealm = value
	case "frequency":
		t.Frequency = value
	case "cmor_version":
		t.CMORVersion = value
	case "cf_version":
		t.CFVersion = value
	case "project_id":
		t.ProjectID = value
	case "table_date":
		t.TableDate = value
	case "product":
		t.Product = value
	case "baseURL":
		t.BaseURL = value
	case "missing_value":
		t.MissingValue = value
	case "approx_interval":
		t.ApproxInterval = value
	case "magic_number":
		t.MagicNumber = value
	case "generic_levels":
		t.GenericLevels = append(t.GenericLevels, strings.Fields(value)...)

		if t.generic == nil {
			t.generic = make(map[string]struct{})
		}

		for _, lvl := range strings.Fields(value) {
			t.generic[lvl] = struct{}{}
		}
	case "required_global_attributes":
		t.RequiredGlobalAttributes = append(
			t.RequiredGlobalAttributes, strings.Fields(value)...,
		)
	case "forcings":
		t.Forcings = append(t.Forcings, strings.Fields(value)...)
	case "expt_id_ok":
		t.Experiments = append(t.Experiments, parseExperiment(value))
	default:
		t.Extra = append(t.Extra, Field{Key: key, Value: value})
	}
}

// parseExperiment splits an expt_id_ok value into its quoted description
// and identifier. A value with a single quoted string (or none) uses it
// for both.
func parseExperiment(value string) Experiment {
	parts := splitQuoted(value)

	switch len(parts) {
	case 0:
		return Experiment{}
	case 1:
		return Experiment{Description: parts[0], ID: parts[0]}
	default:
		return Experiment{Description: parts[0], ID: parts[1]}
	}
}

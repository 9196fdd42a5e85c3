package table

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// separator delimits entry blocks in native output.
const separator = "!============"

// keyWidth pads keys in native output so values align in a column.
const keyWidth = 18

// Format writes the table in native CMOR syntax. Reparsing the output
// yields records semantically equivalent to the receiver; decorative
// comments from the original source are not reproduced.
func (t *Table) Format(w io.Writer) error {
	if err := t.formatHeader(w); err != nil {
		return err
	}

	for _, a := range t.Axes {
		if err := formatAxis(w, a); err != nil {
			return err
		}
	}

	for _, v := range t.Variables {
		if err := formatVariable(w, v); err != nil {
			return err
		}
	}

	return nil
}

// FormatJSON writes the table as JSON.
func (t *Table) FormatJSON(w io.Writer, indent int) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(t.ToMap(), "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(t.ToMap())
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// FormatYAML writes the table as YAML.
func (t *Table) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, t.ToMap(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(data))

	return err
}

// ToMap returns a plain map representation of the table suitable for
// structured serialization.
func (t *Table) ToMap() map[string]any {
	header := map[string]any{}

	for _, f := range []Field{
		{"table_id", t.ID},
		{"modeling_realm", t.ModelingRealm},
		{"frequency", t.Frequency},
		{"cmor_version", t.CMORVersion},
		{"cf_version", t.CFVersion},
		{"project_id", t.ProjectID},
		{"table_date", t.TableDate},
		{"product", t.Product},
		{"baseURL", t.BaseURL},
		{"missing_value", t.MissingValue},
		{"approx_interval", t.ApproxInterval},
		{"magic_number", t.MagicNumber},
	} {
		if f.Value != "" {
			header[f.Key] = f.Value
		}
	}

	if len(t.GenericLevels) > 0 {
		header["generic_levels"] = t.GenericLevels
	}

	if len(t.RequiredGlobalAttributes) > 0 {
		header["required_global_attributes"] = t.RequiredGlobalAttributes
	}

	if len(t.Forcings) > 0 {
		header["forcings"] = t.Forcings
	}

	if len(t.Experiments) > 0 {
		experiments := make([]map[string]string, 0, len(t.Experiments))
		for _, e := range t.Experiments {
			experiments = append(experiments, map[string]string{
				"description": e.Description,
				"id":          e.ID,
			})
		}

		header["expt_id_ok"] = experiments
	}

	for _, f := range t.Extra {
		header[f.Key] = f.Value
	}

	axes := map[string]any{}
	for _, a := range t.Axes {
		axes[a.Name] = axisMap(a)
	}

	variables := map[string]any{}
	for _, v := range t.Variables {
		variables[v.Name] = variableMap(v)
	}

	return map[string]any{
		"header":    header,
		"axes":      axes,
		"variables": variables,
	}
}

func axisMap(a *AxisEntry) map[string]any {
	m := map[string]any{}

	for _, f := range []Field{
		{"standard_name", a.StandardName},
		{"units", a.Units},
		{"axis", a.Axis},
		{"positive", a.Positive},
		{"long_name", a.LongName},
		{"out_name", a.OutName},
		{"type", a.Type},
		{"stored_direction", a.StoredDirection},
		{"must_have_bounds", a.MustHaveBounds},
		{"tolerance", a.Tolerance},
		{"valid_min", a.ValidMin},
		{"valid_max", a.ValidMax},
		{"value", a.Value},
		{"bounds_values", a.BoundsValues},
		{"comment", a.Comment},
	} {
		if f.Value != "" {
			m[f.Key] = f.Value
		}
	}

	if len(a.Requested) > 0 {
		m["requested"] = a.Requested
	}

	if len(a.RequestedBounds) > 0 {
		m["requested_bounds"] = a.RequestedBounds
	}

	for _, f := range a.Extra {
		m[f.Key] = f.Value
	}

	return m
}

func variableMap(v *VariableEntry) map[string]any {
	m := map[string]any{}

	for _, f := range []Field{
		{"modeling_realm", v.ModelingRealm},
		{"standard_name", v.StandardName},
		{"units", v.Units},
		{"cell_methods", v.CellMethods},
		{"cell_measures", v.CellMeasures},
		{"long_name", v.LongName},
		{"comment", v.Comment},
		{"out_name", v.OutName},
		{"type", v.Type},
		{"positive", v.Positive},
		{"valid_min", v.ValidMin},
		{"valid_max", v.ValidMax},
	} {
		if f.Value != "" {
			m[f.Key] = f.Value
		}
	}

	if len(v.Dimensions) > 0 {
		m["dimensions"] = v.Dimensions
	}

	for _, f := range v.Extra {
		m[f.Key] = f.Value
	}

	return m
}

// put writes one "key: value" line with the key padded to the value
// column. Empty values are skipped entirely so reparsing does not see
// fields the source never declared.
func put(w io.Writer, key, value string) error {
	if value == "" {
		return nil
	}

	label := key + ":"
	if len(label) < keyWidth {
		label += strings.Repeat(" ", keyWidth-len(label))
	} else {
		label += " "
	}

	_, err := fmt.Fprintf(w, "%s%s\n", label, value)

	return err
}

func (t *Table) formatHeader(w io.Writer) error {
	for _, f := range []Field{
		{"table_id", t.ID},
		{"modeling_realm", t.ModelingRealm},
		{"frequency", t.Frequency},
		{"cmor_version", t.CMORVersion},
		{"cf_version", t.CFVersion},
		{"project_id", t.ProjectID},
		{"table_date", t.TableDate},
		{"missing_value", t.MissingValue},
		{"baseURL", t.BaseURL},
		{"product", t.Product},
		{"magic_number", t.MagicNumber},
		{"required_global_attributes", strings.Join(t.RequiredGlobalAttributes, " ")},
		{"forcings", strings.Join(t.Forcings, " ")},
	} {
		if err := put(w, f.Key, f.Value); err != nil {
			return err
		}
	}

	for _, e := range t.Experiments {
		value := fmt.Sprintf("'%s'", e.Description)
		if e.ID != e.Description {
			value += fmt.Sprintf(" '%s'", e.ID)
		}

		if err := put(w, "expt_id_ok", value); err != nil {
			return err
		}
	}

	for _, f := range []Field{
		{"approx_interval", t.ApproxInterval},
		{"generic_levels", strings.Join(t.GenericLevels, " ")},
	} {
		if err := put(w, f.Key, f.Value); err != nil {
			return err
		}
	}

	for _, f := range t.Extra {
		if err := put(w, f.Key, f.Value); err != nil {
			return err
		}
	}

	return nil
}

// formatMarker writes the separator-delimited block marker opening an
// entry.
func formatMarker(w io.Writer, marker, name string) error {
	_, err := fmt.Fprintf(w, "\n%s\n%s%s\n%s\n",
		separator,
		fmt.Sprintf("%-*s", keyWidth, marker+":"), name,
		separator,
	)

	return err
}

func formatAxis(w io.Writer, a *AxisEntry) error {
	if err := formatMarker(w, axisMarker, a.Name); err != nil {
		return err
	}

	requested := strings.Join(a.Requested, " ")
	requestedBounds := strings.Join(a.RequestedBounds, " ")

	if !a.IsNumeric() {
		requested = quoteJoin(a.Requested)
		requestedBounds = quoteJoin(a.RequestedBounds)
	}

	for _, f := range []Field{
		{"standard_name", a.StandardName},
		{"units", a.Units},
		{"axis", a.Axis},
		{"positive", a.Positive},
		{"long_name", a.LongName},
		{"comment", a.Comment},
		{"out_name", a.OutName},
		{"stored_direction", a.StoredDirection},
		{"tolerance", a.Tolerance},
		{"valid_min", a.ValidMin},
		{"valid_max", a.ValidMax},
		{"type", a.Type},
		{"value", a.Value},
		{"bounds_values", a.BoundsValues},
		{"requested", requested},
		{"requested_bounds", requestedBounds},
		{"must_have_bounds", a.MustHaveBounds},
	} {
		if err := put(w, f.Key, f.Value); err != nil {
			return err
		}
	}

	for _, f := range a.Extra {
		if err := put(w, f.Key, f.Value); err != nil {
			return err
		}
	}

	return nil
}

func formatVariable(w io.Writer, v *VariableEntry) error {
	if err := formatMarker(w, variableMarker, v.Name); err != nil {
		return err
	}

	for _, f := range []Field{
		{"modeling_realm", v.ModelingRealm},
		{"standard_name", v.StandardName},
		{"units", v.Units},
		{"cell_methods", v.CellMethods},
		{"cell_measures", v.CellMeasures},
		{"long_name", v.LongName},
		{"comment", v.Comment},
		{"dimensions", strings.Join(v.Dimensions, " ")},
		{"out_name", v.OutName},
		{"type", v.Type},
		{"positive", v.Positive},
		{"valid_min", v.ValidMin},
		{"valid_max", v.ValidMax},
	} {
		if err := put(w, f.Key, f.Value); err != nil {
			return err
		}
	}

	for _, f := range v.Extra {
		if err := put(w, f.Key, f.Value); err != nil {
			return err
		}
	}

	return nil
}

// quoteJoin renders character-axis coordinate tokens as quoted strings.
func quoteJoin(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}

	quoted := make([]string, len(tokens))
	for i, tok := range tokens {
		quoted[i] = "'" + tok + "'"
	}

	return strings.Join(quoted, " ")
}

package ncgen

import (
	"log/slog"
	"reflect"
	"strconv"
	"strings"

	"github.com/batchatco/go-native-netcdf/netcdf/api"
	"github.com/batchatco/go-native-netcdf/netcdf/cdf"
	"github.com/batchatco/go-native-netcdf/netcdf/util"

	"github.com/ardnew/cmortab/table"
)

// defaultMissing is the fill value used when the table header does not
// declare missing_value.
const defaultMissing = 1.0e20

// dimension describes one resolved dimension of the output file.
type dimension struct {
	name   string // NetCDF dimension and coordinate variable name
	length int
	axis   *table.AxisEntry // nil for implicit and generic-level dimensions
}

// Write creates a NetCDF skeleton file at path from the given table.
// When varNames is non-empty, only the named variables (and the
// dimensions they use) are exported; otherwise every variable of the
// table is. The table must be valid so each dimension token resolves.
func Write(path string, tbl *table.Table, varNames ...string) error {
	variables, err := selectVariables(tbl, varNames)
	if err != nil {
		return err
	}

	order, dims, err := resolveDimensions(tbl, variables)
	if err != nil {
		return err
	}

	cw, err := cdf.OpenWriter(path)
	if err != nil {
		return table.WrapError(err).With(slog.String("path", path))
	}

	attrs, err := headerAttributes(tbl)
	if err != nil {
		cw.Close()

		return err
	}

	cw.AddGlobalAttrs(attrs)

	// Coordinate variables precede data variables so readers see the
	// grid before the fields defined on it.
	for _, token := range order {
		if err := addCoordinate(cw, dims[token]); err != nil {
			cw.Close()

			return err
		}
	}

	missing := missingValue(tbl)

	for _, v := range variables {
		if err := addVariable(cw, tbl, v, dims, missing); err != nil {
			cw.Close()

			return err
		}
	}

	return cw.Close()
}

// selectVariables returns the variables to export in source order.
func selectVariables(
	tbl *table.Table,
	names []string,
) ([]*table.VariableEntry, error) {
	if len(names) == 0 {
		return tbl.Variables, nil
	}

	variables := make([]*table.VariableEntry, 0, len(names))

	for _, name := range names {
		v, ok := tbl.Variable(name)
		if !ok {
			return nil, table.ErrEntryNotFound.
				With(slog.String("variable", name))
		}

		variables = append(variables, v)
	}

	return variables, nil
}

// resolveDimensions maps every dimension token used by the selected
// variables to a concrete output dimension, in first-use order.
func resolveDimensions(
	tbl *table.Table,
	variables []*table.VariableEntry,
) ([]string, map[string]dimension, error) {
	var order []string

	dims := make(map[string]dimension)

	for _, v := range variables {
		for _, token := range v.Dimensions {
			if _, ok := dims[token]; ok {
				continue
			}

			d, err := resolveDimension(tbl, token)
			if err != nil {
				return nil, nil, err
			}

			order = append(order, token)
			dims[token] = d
		}
	}

	return order, dims, nil
}

// resolveDimension builds the output dimension for one token. Axis
// entries size the dimension from their coordinate list; generic levels
// and implicit axes without a declared entry default to length 1.
func resolveDimension(tbl *table.Table, token string) (dimension, error) {
	a, ok := tbl.Axis(token)
	if !ok {
		if !tbl.ResolveDimension(token) {
			return dimension{}, table.ErrUnknownDimension.
				With(slog.String("dimension", token))
		}

		return dimension{name: token, length: 1}, nil
	}

	name := a.OutName
	if name == "" {
		name = a.Name
	}

	length := 1
	if len(a.Requested) > 0 {
		length = len(a.Requested)
	}

	return dimension{name: name, length: length, axis: a}, nil
}

// addCoordinate writes the coordinate variable of one dimension and, for
// axes declaring them, its cell bounds. Implicit dimensions without axis
// entries get no coordinate variable; their extent alone is declared by
// the data variables using them.
func addCoordinate(cw *cdf.CDFWriter, d dimension) error {
	if d.axis == nil {
		return nil
	}

	values, err := coordinateValues(d)
	if err != nil {
		return err
	}

	attrs, err := axisAttributes(d.axis)
	if err != nil {
		return err
	}

	err = cw.AddVar(d.name, api.Variable{
		Values:     values,
		Dimensions: []string{d.name},
		Attributes: attrs,
	})
	if err != nil {
		return table.WrapError(err).With(slog.String("coordinate", d.name))
	}

	return addBounds(cw, d)
}

// addBounds writes the "<name>_bnds" variable for an axis declaring
// coordinate bounds, two per coordinate value along a shared "bnds"
// dimension.
func addBounds(cw *cdf.CDFWriter, d dimension) error {
	a := d.axis
	if !a.IsNumeric() {
		return nil
	}

	var flat []float64

	switch {
	case len(a.RequestedBounds) > 0:
		values, err := a.RequestedBoundsValues()
		if err != nil {
			return err
		}

		flat = values

	case a.BoundsValues != "":
		for _, tok := range strings.Fields(a.BoundsValues) {
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return table.ErrInvalidNumber.Wrap(err).
					With(slog.String("field", "bounds_values"))
			}

			flat = append(flat, v)
		}

	default:
		return nil
	}

	if len(flat) != 2*d.length {
		return table.ErrBoundsArity.With(
			slog.String("axis", a.Name),
			slog.Int("bounds", len(flat)),
		)
	}

	var values any

	switch a.Type {
	case "double":
		pairs := make([][]float64, d.length)
		for i := range pairs {
			pairs[i] = []float64{flat[2*i], flat[2*i+1]}
		}

		values = pairs

	case "integer":
		pairs := make([][]int32, d.length)
		for i := range pairs {
			pairs[i] = []int32{int32(flat[2*i]), int32(flat[2*i+1])}
		}

		values = pairs

	default: // real
		pairs := make([][]float32, d.length)
		for i := range pairs {
			pairs[i] = []float32{float32(flat[2*i]), float32(flat[2*i+1])}
		}

		values = pairs
	}

	name := d.name + "_bnds"

	err := cw.AddVar(name, api.Variable{
		Values:     values,
		Dimensions: []string{d.name, "bnds"},
	})
	if err != nil {
		return table.WrapError(err).With(slog.String("coordinate", name))
	}

	return nil
}

// coordinateValues builds the coordinate value slice for an axis-backed
// dimension in the axis's declared storage type.
func coordinateValues(d dimension) (any, error) {
	a := d.axis

	if !a.IsNumeric() {
		if len(a.Requested) > 0 {
			return a.Requested, nil
		}

		return []string{a.Name}, nil
	}

	var coords []float64

	switch {
	case len(a.Requested) > 0:
		values, err := a.RequestedValues()
		if err != nil {
			return nil, err
		}

		coords = values

	case a.IsScalar():
		value, err := a.ScalarValue()
		if err != nil {
			return nil, err
		}

		coords = []float64{value}

	default:
		// Unlimited axes (e.g. time) get a single placeholder sample.
		coords = []float64{0}
	}

	return convertCoords(a.Type, coords), nil
}

// convertCoords narrows float64 coordinates to the declared axis type.
func convertCoords(typ string, coords []float64) any {
	switch typ {
	case "double":
		return coords

	case "integer":
		values := make([]int32, len(coords))
		for i, c := range coords {
			values[i] = int32(c)
		}

		return values

	default: // real
		values := make([]float32, len(coords))
		for i, c := range coords {
			values[i] = float32(c)
		}

		return values
	}
}

// addVariable writes one data variable filled with the missing value.
func addVariable(
	cw *cdf.CDFWriter,
	tbl *table.Table,
	v *table.VariableEntry,
	dims map[string]dimension,
	missing float64,
) error {
	name := v.OutName
	if name == "" {
		name = v.Name
	}

	dimNames := make([]string, len(v.Dimensions))
	lengths := make([]int, len(v.Dimensions))

	for i, token := range v.Dimensions {
		d, ok := dims[token]
		if !ok {
			return table.ErrUnknownDimension.
				With(slog.String("dimension", token))
		}

		dimNames[i] = d.name
		lengths[i] = d.length
	}

	attrs, err := variableAttributes(tbl, v, missing)
	if err != nil {
		return err
	}

	err = cw.AddVar(name, api.Variable{
		Values:     fillValues(v.Type, lengths, missing),
		Dimensions: dimNames,
		Attributes: attrs,
	})
	if err != nil {
		return table.WrapError(err).With(slog.String("variable", name))
	}

	return nil
}

// fillValues builds a nested slice of the variable's storage type with
// every element set to the missing value. A dimensionless variable
// yields a single scalar.
func fillValues(typ string, lengths []int, missing float64) any {
	var fill reflect.Value

	switch typ {
	case "double":
		fill = reflect.ValueOf(missing)
	case "integer":
		fill = reflect.ValueOf(int32(missing))
	default: // real
		fill = reflect.ValueOf(float32(missing))
	}

	if len(lengths) == 0 {
		return fill.Interface()
	}

	return nestedSlice(fill, lengths).Interface()
}

// nestedSlice recursively builds the filled value array, innermost
// dimension first.
func nestedSlice(fill reflect.Value, lengths []int) reflect.Value {
	if len(lengths) == 0 {
		return fill
	}

	inner := nestedSlice(fill, lengths[1:])

	slice := reflect.MakeSlice(
		reflect.SliceOf(inner.Type()), lengths[0], lengths[0],
	)

	for i := 0; i < lengths[0]; i++ {
		slice.Index(i).Set(inner)
	}

	return slice
}

// headerAttributes builds the global attribute map from the table header.
func headerAttributes(tbl *table.Table) (api.AttributeMap, error) {
	return orderedAttrs([]table.Field{
		{Key: "table_id", Value: tbl.ID},
		{Key: "project_id", Value: tbl.ProjectID},
		{Key: "modeling_realm", Value: tbl.ModelingRealm},
		{Key: "frequency", Value: tbl.Frequency},
		{Key: "cmor_version", Value: tbl.CMORVersion},
		{Key: "cf_version", Value: tbl.CFVersion},
		{Key: "table_date", Value: tbl.TableDate},
		{Key: "product", Value: tbl.Product},
	})
}

// axisAttributes builds the attribute map of a coordinate variable.
func axisAttributes(a *table.AxisEntry) (api.AttributeMap, error) {
	return orderedAttrs([]table.Field{
		{Key: "standard_name", Value: a.StandardName},
		{Key: "long_name", Value: a.LongName},
		{Key: "units", Value: a.Units},
		{Key: "axis", Value: a.Axis},
		{Key: "positive", Value: a.Positive},
	})
}

// variableAttributes builds the attribute map of a data variable.
func variableAttributes(
	tbl *table.Table,
	v *table.VariableEntry,
	missing float64,
) (api.AttributeMap, error) {
	fields := []table.Field{
		{Key: "standard_name", Value: v.StandardName},
		{Key: "long_name", Value: v.LongName},
		{Key: "units", Value: v.Units},
		{Key: "cell_methods", Value: v.CellMethods},
		{Key: "cell_measures", Value: v.CellMeasures},
		{Key: "positive", Value: v.Positive},
	}

	realm := v.ModelingRealm
	if realm == "" {
		realm = tbl.ModelingRealm
	}

	fields = append(fields, table.Field{Key: "modeling_realm", Value: realm})

	keys := make([]string, 0, len(fields)+1)
	values := make(map[string]any, len(fields)+1)

	for _, f := range fields {
		if f.Value == "" {
			continue
		}

		keys = append(keys, f.Key)
		values[f.Key] = f.Value
	}

	keys = append(keys, "missing_value")

	switch v.Type {
	case "double":
		values["missing_value"] = missing
	case "integer":
		values["missing_value"] = int32(missing)
	default:
		values["missing_value"] = float32(missing)
	}

	return util.NewOrderedMap(keys, values)
}

// orderedAttrs builds an attribute map preserving field order, skipping
// empty values.
func orderedAttrs(fields []table.Field) (api.AttributeMap, error) {
	keys := make([]string, 0, len(fields))
	values := make(map[string]any, len(fields))

	for _, f := range fields {
		if f.Value == "" {
			continue
		}

		keys = append(keys, f.Key)
		values[f.Key] = f.Value
	}

	return util.NewOrderedMap(keys, values)
}

// missingValue parses the table's missing_value header attribute,
// defaulting when absent or malformed.
func missingValue(tbl *table.Table) float64 {
	if tbl.MissingValue == "" {
		return defaultMissing
	}

	v, err := strconv.ParseFloat(tbl.MissingValue, 64)
	if err != nil {
		return defaultMissing
	}

	return v
}

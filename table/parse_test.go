package table

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
)

const fixturePath = "testdata/CMIP5_cfMon"

func loadFixture(t *testing.T) *Table {
	t.Helper()

	tbl, err := ParseFile(filepath.FromSlash(fixturePath))
	if err != nil {
		t.Fatalf("parse %s: %v", fixturePath, err)
	}

	return tbl
}

func TestParseFile_Header(t *testing.T) {
	tbl := loadFixture(t)

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"table_id", tbl.ID, "Table cfMon"},
		{"short name", tbl.Name(), "cfMon"},
		{"modeling_realm", tbl.ModelingRealm, "atmos"},
		{"frequency", tbl.Frequency, "mon"},
		{"cmor_version", tbl.CMORVersion, "2.6"},
		{"cf_version", tbl.CFVersion, "1.4"},
		{"project_id", tbl.ProjectID, "CMIP5"},
		{"table_date", tbl.TableDate, "12 November 2010"},
		{"missing_value", tbl.MissingValue, "1.e20"},
		{"product", tbl.Product, "output"},
		{"approx_interval", tbl.ApproxInterval, "30.000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, tt.got)
			}
		})
	}

	if len(tbl.RequiredGlobalAttributes) != 4 {
		t.Errorf("expected 4 required global attributes, got %d",
			len(tbl.RequiredGlobalAttributes))
	}

	if len(tbl.Forcings) != 19 {
		t.Errorf("expected 19 forcings, got %d", len(tbl.Forcings))
	}

	wantLevels := []string{"alevel", "alevhalf"}
	if !reflect.DeepEqual(tbl.GenericLevels, wantLevels) {
		t.Errorf("expected generic levels %v, got %v", wantLevels, tbl.GenericLevels)
	}
}

func TestParseFile_Experiments(t *testing.T) {
	tbl := loadFixture(t)

	want := []Experiment{
		{Description: "pre-industrial control", ID: "piControl"},
		{Description: "historical", ID: "historical"},
		{Description: "abrupt 4XCO2", ID: "abrupt4xco2"},
	}

	if !reflect.DeepEqual(tbl.Experiments, want) {
		t.Errorf("expected experiments %v, got %v", want, tbl.Experiments)
	}
}

func TestParseFile_Axes(t *testing.T) {
	tbl := loadFixture(t)

	if len(tbl.Axes) != 5 {
		t.Fatalf("expected 5 axes, got %d", len(tbl.Axes))
	}

	alt40, ok := tbl.Axis("alt40")
	if !ok {
		t.Fatal("expected alt40 axis entry")
	}

	if alt40.StandardName != "altitude" {
		t.Errorf("expected standard_name altitude, got %q", alt40.StandardName)
	}

	if alt40.Units != "m" {
		t.Errorf("expected units m, got %q", alt40.Units)
	}

	if alt40.Axis != "Z" || alt40.Positive != "up" {
		t.Errorf("expected Z/up axis, got %q/%q", alt40.Axis, alt40.Positive)
	}

	if len(alt40.Requested) != 40 {
		t.Errorf("expected 40 requested values, got %d", len(alt40.Requested))
	}

	if len(alt40.RequestedBounds) != 80 {
		t.Errorf("expected 80 requested bound values, got %d",
			len(alt40.RequestedBounds))
	}

	values, err := alt40.RequestedValues()
	if err != nil {
		t.Fatalf("requested values: %v", err)
	}

	if values[0] != 240 || values[39] != 18960 {
		t.Errorf("unexpected requested endpoints: %v, %v", values[0], values[39])
	}

	// Scalar axis with fixed value and bounds.
	p560, ok := tbl.Axis("p560")
	if !ok {
		t.Fatal("expected p560 axis entry")
	}

	if !p560.IsScalar() {
		t.Error("expected p560 to be scalar")
	}

	if v, err := p560.ScalarValue(); err != nil || v != 56000 {
		t.Errorf("expected scalar value 56000, got %v (err %v)", v, err)
	}

	// Axes are also indexed by out_name.
	if _, ok := tbl.Axis("lon"); !ok {
		t.Error("expected longitude axis to be indexed by out_name lon")
	}
}

func TestParseFile_Clcalipso(t *testing.T) {
	tbl := loadFixture(t)

	v, ok := tbl.Variable("clcalipso")
	if !ok {
		t.Fatal("expected clcalipso variable entry")
	}

	wantDims := []string{"longitude", "latitude", "alt40", "time"}
	if !reflect.DeepEqual(v.Dimensions, wantDims) {
		t.Errorf("expected dimensions %v, got %v", wantDims, v.Dimensions)
	}

	if v.Units != "%" {
		t.Errorf("expected units %%, got %q", v.Units)
	}

	if v.Type != "real" {
		t.Errorf("expected type real, got %q", v.Type)
	}

	if v.CellMethods != "time: mean" {
		t.Errorf("expected cell_methods %q, got %q", "time: mean", v.CellMethods)
	}

	if v.EntryKind() != KindVariable {
		t.Errorf("expected variable kind, got %v", v.EntryKind())
	}
}

func TestParseString_UnknownKeysPreserved(t *testing.T) {
	input := `table_id: Table test
frequency: mon
project_id: CMIP5

!============
variable_entry: tas
!============
standard_name: air_temperature
units: K
dimensions: longitude latitude time
out_name: tas
type: real
flag_values: 0 1
flag_meanings: clear cloudy
`

	tbl, err := ParseString(input)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	v, ok := tbl.Variable("tas")
	if !ok {
		t.Fatal("expected tas variable entry")
	}

	want := []Field{
		{Key: "flag_values", Value: "0 1"},
		{Key: "flag_meanings", Value: "clear cloudy"},
	}

	if !reflect.DeepEqual(v.Extra, want) {
		t.Errorf("expected extras %v, got %v", want, v.Extra)
	}
}

func TestParseString_Empty(t *testing.T) {
	for _, input := range []string{"", "\n\n", "! only a comment\n!====\n"} {
		_, err := ParseString(input)
		if !errors.Is(err, ErrEmptyTable) {
			t.Errorf("input %q: expected ErrEmptyTable, got %v", input, err)
		}
	}
}

func TestParseString_EntryLineNumbers(t *testing.T) {
	input := "table_id: Table t\n!============\naxis_entry: site\n!============\nout_name: site\ntype: integer\nunits: 1\n"

	tbl, err := ParseString(input)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	site, ok := tbl.Axis("site")
	if !ok {
		t.Fatal("expected site axis entry")
	}

	if site.EntryLine() != 3 {
		t.Errorf("expected marker at line 3, got %d", site.EntryLine())
	}
}

func TestLoad_ValidFixture(t *testing.T) {
	if _, err := Load(filepath.FromSlash(fixturePath)); err != nil {
		t.Fatalf("expected fixture to load cleanly: %v", err)
	}
}

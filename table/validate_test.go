package table

import (
	"errors"
	"strings"
	"testing"
)

// minimalHeader is a valid header prefix for validation tests.
const minimalHeader = `table_id: Table test
modeling_realm: atmos
frequency: mon
project_id: CMIP5
`

func parseAndValidate(t *testing.T, src string) *ValidationError {
	t.Helper()

	tbl, err := ParseString(src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	err = tbl.Validate()
	if err == nil {
		return nil
	}

	ve := &ValidationError{}
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}

	return ve
}

func TestValidate_MissingGlobalAttributes(t *testing.T) {
	ve := parseAndValidate(t, "modeling_realm: atmos\n")
	if ve == nil {
		t.Fatal("expected validation error")
	}

	if len(ve.Problems) != 3 {
		t.Fatalf("expected 3 problems, got %d: %v", len(ve.Problems), ve)
	}

	for _, p := range ve.Problems {
		if !errors.Is(p.Err, ErrMissingAttribute) {
			t.Errorf("expected ErrMissingAttribute, got %v", p.Err)
		}

		if p.Kind != "table" {
			t.Errorf("expected table-level problem, got %q", p.Kind)
		}
	}
}

func TestValidate_UnresolvedDimension(t *testing.T) {
	src := minimalHeader + `
!============
variable_entry: hus
!============
standard_name: specific_humidity
units: 1
dimensions: longitude latitude plev17 time
out_name: hus
type: real
`

	ve := parseAndValidate(t, src)
	if ve == nil {
		t.Fatal("expected validation error")
	}

	if len(ve.Problems) != 1 {
		t.Fatalf("expected 1 problem, got %d: %v", len(ve.Problems), ve)
	}

	p := ve.Problems[0]
	if !errors.Is(p.Err, ErrUnknownDimension) {
		t.Errorf("expected ErrUnknownDimension, got %v", p.Err)
	}

	if p.Entry != "hus" {
		t.Errorf("expected offending entry hus, got %q", p.Entry)
	}

	msg := ve.Error()
	for _, want := range []string{`"hus"`, "plev17", "line"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected message to contain %q:\n%s", want, msg)
		}
	}
}

func TestValidate_GenericLevelResolves(t *testing.T) {
	src := minimalHeader + "generic_levels: alevel\n" + `
!============
variable_entry: cl
!============
standard_name: cloud_area_fraction_in_atmosphere_layer
units: %
dimensions: longitude latitude alevel time
out_name: cl
type: real
`

	if ve := parseAndValidate(t, src); ve != nil {
		t.Fatalf("expected generic level to resolve: %v", ve)
	}
}

func TestValidate_BoundsArity(t *testing.T) {
	src := minimalHeader + `
!============
axis_entry: plev3
!============
standard_name: air_pressure
units: Pa
axis: Z
out_name: plev
type: double
requested: 85000. 50000. 25000.
requested_bounds: 100000. 70000. 70000. 35000.
`

	ve := parseAndValidate(t, src)
	if ve == nil {
		t.Fatal("expected validation error")
	}

	found := false

	for _, p := range ve.Problems {
		if errors.Is(p.Err, ErrBoundsArity) {
			found = true

			if p.Entry != "plev3" {
				t.Errorf("expected offending entry plev3, got %q", p.Entry)
			}
		}
	}

	if !found {
		t.Errorf("expected ErrBoundsArity, got %v", ve)
	}
}

func TestValidate_MalformedNumbers(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "bad tolerance",
			body: "tolerance: narrow\n",
		},
		{
			name: "bad requested list",
			body: "requested: 1000. mid 500.\n",
		},
		{
			name: "bad scalar value",
			body: "value: surface\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := minimalHeader + `
!============
axis_entry: depth
!============
standard_name: depth
units: m
axis: Z
out_name: depth
type: double
` + tt.body

			ve := parseAndValidate(t, src)
			if ve == nil {
				t.Fatal("expected validation error")
			}

			found := false

			for _, p := range ve.Problems {
				if errors.Is(p.Err, ErrInvalidNumber) {
					found = true
				}
			}

			if !found {
				t.Errorf("expected ErrInvalidNumber, got %v", ve)
			}
		})
	}
}

func TestValidate_CharacterAxisSkipsNumericChecks(t *testing.T) {
	src := minimalHeader + `
!============
axis_entry: region
!============
standard_name: region
long_name: ocean basin
out_name: basin
type: character
requested: 'atlantic_arctic_ocean' 'indian_pacific_ocean' 'global_ocean'
`

	if ve := parseAndValidate(t, src); ve != nil {
		t.Fatalf("expected character axis to validate: %v", ve)
	}
}

func TestValidate_InvalidKeywords(t *testing.T) {
	src := minimalHeader + `
!============
axis_entry: height
!============
standard_name: height
units: m
axis: up
out_name: height
type: double
stored_direction: sideways
must_have_bounds: maybe
`

	ve := parseAndValidate(t, src)
	if ve == nil {
		t.Fatal("expected validation error")
	}

	if len(ve.Problems) != 3 {
		t.Fatalf("expected 3 problems, got %d: %v", len(ve.Problems), ve)
	}

	for _, p := range ve.Problems {
		if !errors.Is(p.Err, ErrInvalidKeyword) {
			t.Errorf("expected ErrInvalidKeyword, got %v", p.Err)
		}
	}
}

func TestValidate_MissingEntryFields(t *testing.T) {
	src := minimalHeader + `
!============
variable_entry: tas
!============
standard_name: air_temperature
dimensions: longitude latitude time
`

	ve := parseAndValidate(t, src)
	if ve == nil {
		t.Fatal("expected validation error")
	}

	// out_name, type, and units are all absent.
	if len(ve.Problems) != 3 {
		t.Fatalf("expected 3 problems, got %d: %v", len(ve.Problems), ve)
	}

	for _, p := range ve.Problems {
		if !errors.Is(p.Err, ErrMissingField) {
			t.Errorf("expected ErrMissingField, got %v", p.Err)
		}
	}
}

func TestValidate_BadHeaderNumber(t *testing.T) {
	src := "table_id: Table test\nfrequency: mon\nproject_id: CMIP5\nmissing_value: lots\n"

	ve := parseAndValidate(t, src)
	if ve == nil {
		t.Fatal("expected validation error")
	}

	if len(ve.Problems) != 1 || !errors.Is(ve.Problems[0].Err, ErrInvalidNumber) {
		t.Fatalf("expected single ErrInvalidNumber, got %v", ve)
	}
}

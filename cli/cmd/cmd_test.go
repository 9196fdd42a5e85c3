package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
)

const validSource = `
table_id:          Table Amon
modeling_realm:    atmos
frequency:         mon
project_id:        CMIP5
missing_value:     1.e20
approx_interval:   30.

!============
axis_entry:        plev3
!============
standard_name:     air_pressure
units:             Pa
axis:              Z
long_name:         pressure
out_name:          plev
type:              double
requested:         85000. 50000. 25000.
must_have_bounds:  no

!============
variable_entry:    ta
!============
standard_name:     air_temperature
units:             K
long_name:         Air Temperature
dimensions:        longitude latitude plev3 time
out_name:          ta
type:              real
`

const invalidSource = `
table_id:          Table Amon
frequency:         mon
project_id:        CMIP5

!============
variable_entry:    ta
!============
standard_name:     air_temperature
units:             K
dimensions:        plev17
out_name:          ta
type:              real
`

// writeSource writes table text to a temp file and returns its path.
func writeSource(t *testing.T, text string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "table")

	if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestWithContext(t *testing.T) {
	ktx := &kong.Context{}

	ctx := WithContext(context.Background(), ktx)
	if kongContextFrom(ctx) != ktx {
		t.Error("expected stored kong.Context to round-trip")
	}

	if kongContextFrom(context.Background()) != nil {
		t.Error("expected nil kong.Context from empty context")
	}
}

func TestParseSource(t *testing.T) {
	path := writeSource(t, validSource)

	tbl, err := parseSource(context.Background(), path)
	if err != nil {
		t.Fatalf("parseSource() error = %v", err)
	}

	if tbl.Name() != "Amon" {
		t.Errorf("expected table Amon, got %q", tbl.Name())
	}
}

func TestParseSource_MissingFile(t *testing.T) {
	_, err := parseSource(
		context.Background(),
		filepath.Join(t.TempDir(), "nonexistent"),
	)
	if err == nil {
		t.Fatal("expected error for missing file")
	}

	var cerr *Error
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *Error, got %T", err)
	}
}

func TestValidateRun(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		wantErr bool
	}{
		{name: "valid table", source: validSource, wantErr: false},
		{name: "unresolved dimension", source: invalidSource, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validate := &Validate{
				Source: []string{writeSource(t, tt.source)},
			}

			err := validate.Run(context.Background())

			if (err != nil) != tt.wantErr {
				t.Errorf("Validate.Run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFmtRun(t *testing.T) {
	path := writeSource(t, validSource)

	native := &Native{Source: path}
	if err := native.Run(context.Background()); err != nil {
		t.Errorf("Native.Run() error = %v", err)
	}

	jsonCmd := &JSON{Indent: 2, Source: path}
	if err := jsonCmd.Run(context.Background()); err != nil {
		t.Errorf("JSON.Run() error = %v", err)
	}

	yamlCmd := &YAML{Indent: 2, Source: path}
	if err := yamlCmd.Run(context.Background()); err != nil {
		t.Errorf("YAML.Run() error = %v", err)
	}
}

func TestListRun(t *testing.T) {
	tests := []struct {
		name    string
		where   string
		wantErr bool
	}{
		{name: "no filter", where: "", wantErr: false},
		{name: "axis filter", where: `axis == "Z"`, wantErr: false},
		{name: "bad expression", where: `axis == `, wantErr: true},
	}

	path := writeSource(t, validSource)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := &List{Where: tt.where, Source: path}

			err := list.Run(context.Background())

			if (err != nil) != tt.wantErr {
				t.Errorf("List.Run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFindRun(t *testing.T) {
	path := writeSource(t, validSource)

	find := &Find{Limit: 10, Plain: true, Query: "ta", Source: path}
	if err := find.Run(context.Background()); err != nil {
		t.Errorf("Find.Run() error = %v", err)
	}

	find = &Find{Limit: 10, Plain: true, Query: "zzzzzz", Source: path}

	err := find.Run(context.Background())
	if !errors.Is(err, ErrNoEntries) {
		t.Errorf("expected ErrNoEntries, got %v", err)
	}
}

func TestExportRun(t *testing.T) {
	path := writeSource(t, validSource)
	output := filepath.Join(t.TempDir(), "out.nc")

	export := &Export{Output: output, Source: path}
	if err := export.Run(context.Background()); err != nil {
		t.Fatalf("Export.Run() error = %v", err)
	}

	if _, err := os.Stat(output); err != nil {
		t.Errorf("expected output file: %v", err)
	}
}

func TestExportRun_InvalidTable(t *testing.T) {
	path := writeSource(t, invalidSource)

	export := &Export{
		Output: filepath.Join(t.TempDir(), "out.nc"),
		Source: path,
	}

	if err := export.Run(context.Background()); err == nil {
		t.Fatal("expected validation error")
	}
}

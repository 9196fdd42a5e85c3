package table

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestScan_KeyValue(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		key     string
		value   string
		comment string
	}{
		{
			name:  "plain pair",
			input: "frequency: mon",
			key:   "frequency",
			value: "mon",
		},
		{
			name:    "trailing comment stripped",
			input:   "cf_version:   1.4         ! version of CF",
			key:     "cf_version",
			value:   "1.4",
			comment: "version of CF",
		},
		{
			name:  "value keeps embedded colon",
			input: "cell_methods: time: mean",
			key:   "cell_methods",
			value: "time: mean",
		},
		{
			name:  "table_id keeps multiword value",
			input: "table_id: Table cfMon",
			key:   "table_id",
			value: "Table cfMon",
		},
		{
			name:  "whitespace trimmed",
			input: "  out_name  :   alt40  ",
			key:   "out_name",
			value: "alt40",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, err := scan(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("scan error: %v", err)
			}

			if len(lines) != 1 {
				t.Fatalf("expected 1 line, got %d", len(lines))
			}

			ln := lines[0]
			if ln.key != tt.key {
				t.Errorf("key: expected %q, got %q", tt.key, ln.key)
			}

			if ln.value != tt.value {
				t.Errorf("value: expected %q, got %q", tt.value, ln.value)
			}

			if ln.comment != tt.comment {
				t.Errorf("comment: expected %q, got %q", tt.comment, ln.comment)
			}
		})
	}
}

func TestScan_SeparatorsAndBlanks(t *testing.T) {
	input := "!============\naxis_entry: alt40\n!============\n\n!----------\n! Axis attributes:\n"

	lines, err := scan(strings.NewReader(input))
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}

	if len(lines) != 6 {
		t.Fatalf("expected 6 lines, got %d", len(lines))
	}

	for i, wantSep := range []bool{true, false, true, false, true, false} {
		if lines[i].sep != wantSep {
			t.Errorf("line %d: expected sep=%v, got %v", i+1, wantSep, lines[i].sep)
		}
	}

	if lines[1].key != "axis_entry" || lines[1].value != "alt40" {
		t.Errorf("expected marker line, got %+v", lines[1])
	}

	// "! Axis attributes:" is comment-only: the colon inside the comment
	// must not be mistaken for a key-value separator.
	if lines[5].key != "" {
		t.Errorf("expected comment-only line, got key %q", lines[5].key)
	}
}

func TestScan_MissingColon(t *testing.T) {
	input := "frequency: mon\n  this line has no colon\n"

	_, err := scan(strings.NewReader(input))
	if err == nil {
		t.Fatal("expected parse error")
	}

	pe := &ParseError{}
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T", err)
	}

	if pe.Line != 2 {
		t.Errorf("expected line 2, got %d", pe.Line)
	}

	if pe.Column != 3 {
		t.Errorf("expected column 3, got %d", pe.Column)
	}

	msg := pe.Error()
	for _, want := range []string{"line 2", "this line has no colon", "^"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected message to contain %q:\n%s", want, msg)
		}
	}
}

func TestSplitQuoted(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "description and id",
			input: "'abrupt 4XCO2' 'abrupt4xco2'",
			want:  []string{"abrupt 4XCO2", "abrupt4xco2"},
		},
		{
			name:  "single quoted",
			input: "'piControl'",
			want:  []string{"piControl"},
		},
		{
			name:  "unquoted passthrough",
			input: "historical",
			want:  []string{"historical"},
		},
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
		{
			name:  "region names with spaces",
			input: "'atlantic_arctic_ocean' 'indian_pacific_ocean' 'global_ocean'",
			want: []string{
				"atlantic_arctic_ocean", "indian_pacific_ocean", "global_ocean",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitQuoted(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

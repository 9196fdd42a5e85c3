package table

import (
	"errors"
	"testing"
)

func entryNames(entries []Entry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.EntryName()
	}

	return names
}

func TestFilter(t *testing.T) {
	tbl := loadFixture(t)

	tests := []struct {
		name  string
		where string
		want  []string
	}{
		{
			name:  "empty expression matches everything",
			where: "",
			want: []string{
				"longitude", "latitude", "time", "alt40", "p560",
				"clcalipso", "cltcalipso", "cl",
			},
		},
		{
			name:  "variables only",
			where: `kind == "variable"`,
			want:  []string{"clcalipso", "cltcalipso", "cl"},
		},
		{
			name:  "vertical axes",
			where: `kind == "axis" && axis == "Z"`,
			want:  []string{"alt40", "p560"},
		},
		{
			name:  "dimension membership",
			where: `kind == "variable" && "alt40" in dimensions`,
			want:  []string{"clcalipso"},
		},
		{
			name:  "name prefix",
			where: `hasPrefix(name, "cl")`,
			want:  []string{"clcalipso", "cltcalipso", "cl"},
		},
		{
			name:  "units match",
			where: `units == "%"`,
			want:  []string{"clcalipso", "cltcalipso", "cl"},
		},
		{
			name:  "nothing matches",
			where: `standard_name == "sea_water_salinity"`,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := tbl.Filter(tt.where)
			if err != nil {
				t.Fatalf("filter error: %v", err)
			}

			got := entryNames(entries)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}

			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("entry %d: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestFilter_CompileError(t *testing.T) {
	tbl := loadFixture(t)

	_, err := tbl.Filter(`kind == `)
	if !errors.Is(err, ErrFilterCompile) {
		t.Fatalf("expected ErrFilterCompile, got %v", err)
	}
}

func TestFilterEnv_HeaderFields(t *testing.T) {
	tbl := loadFixture(t)

	v, ok := tbl.Variable("cltcalipso")
	if !ok {
		t.Fatal("expected cltcalipso variable entry")
	}

	env := tbl.FilterEnv(v)

	for key, want := range map[string]any{
		"table":     "cfMon",
		"frequency": "mon",
		"project":   "CMIP5",
		"realm":     "atmos",
		"kind":      "variable",
	} {
		if env[key] != want {
			t.Errorf("env[%q]: expected %v, got %v", key, want, env[key])
		}
	}
}

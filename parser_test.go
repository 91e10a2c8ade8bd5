package goplugdep

import (
	"reflect"
	"testing"
)

func TestParseDependency(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Dependency
	}{
		{
			name: "bare name",
			raw:  "simple_dep",
			want: Dependency{Name: "simple_dep", VersionSpec: "*"},
		},
		{
			name: "versioned",
			raw:  "versioned_dep>=1.0.0",
			want: Dependency{Name: "versioned_dep", VersionSpec: ">=1.0.0"},
		},
		{
			name: "exact",
			raw:  "exact_dep==2.3.4",
			want: Dependency{Name: "exact_dep", VersionSpec: "==2.3.4"},
		},
		{
			name: "wildcard suffix",
			raw:  "wildcard_dep*",
			want: Dependency{Name: "wildcard_dep", VersionSpec: "*"},
		},
		{
			name: "compatible release",
			raw:  "compat_dep~=1.2.0",
			want: Dependency{Name: "compat_dep", VersionSpec: "~=1.2.0"},
		},
		{
			name: "features",
			raw:  "feature_dep[extra1,extra2]",
			want: Dependency{Name: "feature_dep", VersionSpec: "*", Features: []string{"extra1", "extra2"}},
		},
		{
			name: "empty feature brackets",
			raw:  "feature_dep[]",
			want: Dependency{Name: "feature_dep", VersionSpec: "*"},
		},
		{
			name: "optional",
			raw:  "opt_dep (optional)",
			want: Dependency{Name: "opt_dep", VersionSpec: "*", Optional: true},
		},
		{
			name: "optional with version",
			raw:  "opt_dep>=1.0.0 (optional)",
			want: Dependency{Name: "opt_dep", VersionSpec: ">=1.0.0", Optional: true},
		},
		{
			name: "everything combined",
			raw:  "complex_dep[feature]>=1.0.0 (optional)",
			want: Dependency{Name: "complex_dep", VersionSpec: ">=1.0.0", Optional: true, Features: []string{"feature"}},
		},
		{
			name: "case-sensitive optional marker is not special",
			raw:  "dep (Optional)",
			want: Dependency{Name: "dep (Optional)", VersionSpec: "*"},
		},
		{
			name: "malformed degrades to bare name",
			raw:  "weird]][spec",
			want: Dependency{Name: "weird]][spec", VersionSpec: "*"},
		},
		{
			name: "prerelease version",
			raw:  "rc_dep>=1.0.0-rc.1",
			want: Dependency{Name: "rc_dep", VersionSpec: ">=1.0.0-rc.1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDependency(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseDependency(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseDependency_Idempotent(t *testing.T) {
	raws := []string{
		"simple_dep",
		"complex_dep[feature]>=1.0.0 (optional)",
		"wildcard_dep*",
	}
	for _, raw := range raws {
		first := ParseDependency(raw)
		second := ParseDependency(raw)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("parsing %q twice differed: %+v vs %+v", raw, first, second)
		}
	}
}

func TestParseDependencies_PreservesOrder(t *testing.T) {
	deps := ParseDependencies([]string{"zeta", "alpha>=1.0.0", "mid (optional)"})

	wantNames := []string{"zeta", "alpha", "mid"}
	if len(deps) != len(wantNames) {
		t.Fatalf("got %d deps, want %d", len(deps), len(wantNames))
	}
	for i, name := range wantNames {
		if deps[i].Name != name {
			t.Errorf("deps[%d].Name = %q, want %q", i, deps[i].Name, name)
		}
	}
}

// Package constraint implements version constraint parsing and evaluation
// for plugin dependency specs.
//
// A constraint is an operator followed by a version, for example ">=1.2.0",
// "==2.3.4" or "~=1.4.0". The bare wildcard "*" matches every version, and a
// bare version with no operator is treated as an exact match.
//
// Supported operators:
//
//	*    any version
//	>=   at or above
//	>    strictly above
//	<=   at or below
//	<    strictly below
//	==   exactly
//	!=   anything but
//	~=   compatible release: same major.minor, at or above the given version
//
// Version parsing and ordering are delegated to
// github.com/Masterminds/semver/v3, which handles pre-release suffixes and
// short forms like "2.0".
package constraint

import (
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Op is a constraint operator.
type Op string

// Constraint operators, longest first so Parse can scan prefixes in order.
const (
	OpAny        Op = "*"
	OpGTE        Op = ">="
	OpLTE        Op = "<="
	OpEQ         Op = "=="
	OpNE         Op = "!="
	OpCompatible Op = "~="
	OpGT         Op = ">"
	OpLT         Op = "<"
)

// twoCharOps are checked before the single-character operators; ">=1.0"
// must not parse as ">" with version "=1.0".
var twoCharOps = []Op{OpGTE, OpLTE, OpEQ, OpNE, OpCompatible}

// Spec is a parsed version constraint.
type Spec struct {
	// Op is the comparison operator. A bare version parses to OpEQ.
	Op Op

	// Version is the version the operator compares against.
	// Empty when Op is OpAny.
	Version string
}

// Parse splits a raw constraint string into operator and version.
//
// Parse never fails: empty strings and "*" become the wildcard spec, and a
// string with no recognized operator prefix is an exact-match constraint on
// that literal version.
func Parse(raw string) Spec {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == string(OpAny) {
		return Spec{Op: OpAny}
	}

	for _, op := range twoCharOps {
		if strings.HasPrefix(raw, string(op)) {
			return Spec{Op: op, Version: strings.TrimSpace(raw[2:])}
		}
	}
	if strings.HasPrefix(raw, string(OpGT)) {
		return Spec{Op: OpGT, Version: strings.TrimSpace(raw[1:])}
	}
	if strings.HasPrefix(raw, string(OpLT)) {
		return Spec{Op: OpLT, Version: strings.TrimSpace(raw[1:])}
	}

	// No operator: exact match on the literal version.
	return Spec{Op: OpEQ, Version: raw}
}

// String returns the canonical form of the spec.
func (s Spec) String() string {
	if s.Op == OpAny {
		return string(OpAny)
	}
	return string(s.Op) + s.Version
}

// Matches reports whether an installed version satisfies a constraint.
//
// Malformed versions or constraints never cause an error; they fail closed
// and report false. The wildcard constraint matches everything, including
// versions that do not parse.
func Matches(installed, raw string) bool {
	spec := Parse(raw)
	if spec.Op == OpAny {
		return true
	}

	iv, err := semver.NewVersion(installed)
	if err != nil {
		return false
	}
	rv, err := semver.NewVersion(spec.Version)
	if err != nil {
		return false
	}

	switch spec.Op {
	case OpGTE:
		return iv.Compare(rv) >= 0
	case OpGT:
		return iv.Compare(rv) > 0
	case OpLTE:
		return iv.Compare(rv) <= 0
	case OpLT:
		return iv.Compare(rv) < 0
	case OpEQ:
		return iv.Compare(rv) == 0
	case OpNE:
		return iv.Compare(rv) != 0
	case OpCompatible:
		return iv.Major() == rv.Major() && iv.Minor() == rv.Minor() && iv.Compare(rv) >= 0
	}
	return false
}

// Compare compares two version strings.
// Returns -1 if a < b, 0 if a == b, 1 if a > b.
//
// When either side is not a parseable version, both are compared as plain
// strings so that ordering stays total and deterministic.
func Compare(a, b string) int {
	va, errA := semver.NewVersion(a)
	vb, errB := semver.NewVersion(b)
	if errA != nil || errB != nil {
		return strings.Compare(a, b)
	}
	return va.Compare(vb)
}

// Sort sorts a slice of version strings in ascending order.
func Sort(versions []string) {
	slices.SortFunc(versions, Compare)
}

// Max returns the higher of two versions.
func Max(a, b string) string {
	if Compare(a, b) >= 0 {
		return a
	}
	return b
}

// MaxSatisfying returns the highest version in candidates that satisfies the
// constraint. The second return value is false when no candidate matches.
func MaxSatisfying(candidates []string, raw string) (string, bool) {
	var best string
	found := false
	for _, candidate := range candidates {
		if !Matches(candidate, raw) {
			continue
		}
		if !found || Compare(candidate, best) > 0 {
			best = candidate
			found = true
		}
	}
	return best, found
}

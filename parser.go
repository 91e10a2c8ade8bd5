package goplugdep

import (
	"regexp"
	"strings"
)

// dependencySpecPattern matches a raw dependency spec: a plugin name,
// an optional bracketed feature list, an optional version constraint and an
// optional exact-case " (optional)" suffix.
//
// Examples:
//
//	"simple_dep"
//	"versioned_dep>=1.0.0"
//	"wildcard_dep*"
//	"feature_dep[extra1,extra2]"
//	"complex_dep[feature]>=1.0.0 (optional)"
var dependencySpecPattern = regexp.MustCompile(
	`^\s*(?P<name>[A-Za-z0-9_.-]+)` +
		`(?:\[(?P<features>[^\]]*)\])?` +
		`(?P<spec>(?:>=|<=|==|!=|~=|>|<)[0-9][0-9A-Za-z.\-]*|\*)?` +
		`(?P<optional> \(optional\))?\s*$`,
)

var (
	specIdxName     = dependencySpecPattern.SubexpIndex("name")
	specIdxFeatures = dependencySpecPattern.SubexpIndex("features")
	specIdxSpec     = dependencySpecPattern.SubexpIndex("spec")
	specIdxOptional = dependencySpecPattern.SubexpIndex("optional")
)

// ParseDependency converts one raw dependency spec string into a Dependency.
//
// Parsing never fails: when the pattern does not match, the whole string
// degrades to a permissive bare dependency (any version, not optional, no
// features) rather than failing the caller's parse.
func ParseDependency(raw string) Dependency {
	match := dependencySpecPattern.FindStringSubmatch(raw)
	if match == nil {
		return Dependency{Name: strings.TrimSpace(raw), VersionSpec: "*"}
	}

	spec := match[specIdxSpec]
	if spec == "" {
		spec = "*"
	}

	var features []string
	for _, feature := range strings.Split(match[specIdxFeatures], ",") {
		if feature = strings.TrimSpace(feature); feature != "" {
			features = append(features, feature)
		}
	}

	return Dependency{
		Name:        match[specIdxName],
		VersionSpec: spec,
		Optional:    match[specIdxOptional] != "",
		Features:    features,
	}
}

// ParseDependencies parses a list of raw dependency specs, preserving
// input order. One Dependency is produced per input string.
func ParseDependencies(raw []string) []Dependency {
	deps := make([]Dependency, 0, len(raw))
	for _, r := range raw {
		deps = append(deps, ParseDependency(r))
	}
	return deps
}

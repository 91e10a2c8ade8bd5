package goplugdep

import (
	"github.com/plugforge/go-plugdep/graph"
)

// Dependency is a parsed plugin dependency requirement.
//
// It is an alias for graph.Dependency so the resolver and the graph layer
// share one type without an import cycle, the same way the graph package
// would otherwise re-export it.
type Dependency = graph.Dependency

// PluginMetadata describes a plugin as known to a registry: its identity,
// version, raw dependency spec strings, and descriptive fields the resolver
// does not interpret.
type PluginMetadata struct {
	// Name is the plugin identifier.
	Name string `json:"name" yaml:"name"`

	// Version is the plugin's own version.
	Version string `json:"version" yaml:"version"`

	// Dependencies lists raw dependency spec strings, e.g.
	// "cache>=1.2.0", "metrics (optional)", "auth[oauth,ldap]".
	Dependencies []string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`

	// CoreVersion constrains the host/core version this plugin supports,
	// e.g. ">=0.5.0". Checked by CheckCompatibility when the resolver is
	// configured with a core version; empty means no constraint.
	CoreVersion string `json:"core_version,omitempty" yaml:"core_version,omitempty"`

	// Author, Description and Type are descriptive only.
	Author      string `json:"author,omitempty" yaml:"author,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`

	// Config carries plugin-defined configuration, passed through untouched.
	Config map[string]any `json:"config,omitempty" yaml:"config,omitempty"`
}

// ParsedDependencies parses the metadata's raw dependency specs,
// preserving declaration order.
func (m *PluginMetadata) ParsedDependencies() []Dependency {
	return ParseDependencies(m.Dependencies)
}

// InstallAction is one entry of an install plan: a dependency name and the
// version chosen for it. The same actions are returned for dry runs.
type InstallAction struct {
	// Name is the plugin to install.
	Name string `json:"name"`

	// Version is the highest available version satisfying the constraint.
	Version string `json:"version"`
}

// InstallFunc performs the installation side effect for one plugin version.
// The resolver calls it from InstallDependencies for plugins that are not
// already installed at the chosen version, unless the run is a dry run.
type InstallFunc func(name, version string) error

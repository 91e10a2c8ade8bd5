// Package goplugdep provides a Go library for plugin dependency resolution:
// version-constrained dependency specs, graph construction with cycle
// detection, and a deterministic dependencies-first install order.
//
// # Overview
//
// The package provides three main components:
//
//   - Parser: Parses raw dependency spec strings ("cache>=1.2.0",
//     "metrics (optional)", "auth[oauth,ldap]") into Dependency values
//   - Registry: Supplies plugin metadata; in-memory, local-directory and
//     chained implementations are included
//   - Resolver: Builds the dependency graph, rejects cycles, and computes
//     the install order
//
// # Quick Start
//
//	reg := goplugdep.NewMemoryRegistry()
//	reg.Register(&goplugdep.PluginMetadata{Name: "cache", Version: "1.2.0"})
//
//	order, err := goplugdep.Resolve(&goplugdep.PluginMetadata{
//	    Name:         "my_plugin",
//	    Version:      "0.1.0",
//	    Dependencies: []string{"cache>=1.0.0"},
//	}, reg)
//
// For repeated resolutions, construct a Resolver directly:
//
//	resolver, err := goplugdep.NewResolver(reg,
//	    goplugdep.WithMaxDepth(10),
//	    goplugdep.WithCoreVersion("1.4.0"),
//	)
//	order, err := resolver.Resolve(meta)
//
// # Error Handling
//
// Resolve and InstallDependencies fail with typed errors that all match
// ErrDependency via errors.Is; cycles match ErrCircularDependency and
// unsatisfiable constraints match ErrIncompatibleVersion.
// CheckCompatibility and DependencyTree are safe queries and never fail.
//
// # Thread Safety
//
// Registries are safe for concurrent use. A Resolver is not: it owns a
// mutable dependency graph and needs external locking to be shared.
package goplugdep

// Resolve resolves a plugin's dependencies against a registry and returns
// them in install order. This is the recommended entry point for one-shot
// resolution; each call uses a fresh resolver and a fresh graph.
func Resolve(meta *PluginMetadata, registry Registry, opts ...Option) ([]Dependency, error) {
	resolver, err := NewResolver(registry, opts...)
	if err != nil {
		return nil, err
	}
	return resolver.Resolve(meta)
}

// CheckCompatibility reports whether a candidate plugin's non-optional
// dependencies and core-version constraint can be satisfied by the
// registry. It never fails; configuration errors report false.
func CheckCompatibility(meta *PluginMetadata, registry Registry, opts ...Option) bool {
	resolver, err := NewResolver(registry, opts...)
	if err != nil {
		return false
	}
	return resolver.CheckCompatibility(meta)
}

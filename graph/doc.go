// Package graph provides the dependency graph used by plugin resolution:
// nodes keyed by plugin name, reverse-edge bookkeeping, cycle detection and
// a deterministic topological install order.
//
// A Graph is populated by the resolver during graph construction and
// supports the queries the public API is built on:
//
//	// Detect cycles, including self-dependencies
//	cycles := g.FindCycles()
//
//	// Deterministic install order (dependencies first)
//	order, err := g.TopoSort()
//
//	// Everything reachable from a plugin
//	deps := g.TransitiveDeps("my_plugin")
//
// # Output Formats
//
// The graph can be rendered in several formats:
//
//	// Nested JSON-serializable tree (circular references marked inline)
//	tree := g.Tree("my_plugin")
//
//	// Graphviz DOT format for visualization
//	dotString := g.ToDOT()
//
//	// Human-readable text
//	textString := g.ToText()
package graph

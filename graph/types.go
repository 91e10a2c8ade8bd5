package graph

import "strings"

// Version sentinels recorded on nodes whose metadata could not be resolved.
const (
	// VersionNotFound marks a dependency that no registry knows about.
	// Placeholder nodes with this version terminate graph expansion.
	VersionNotFound = "not_found"

	// VersionUnknown marks a plugin whose metadata lookup failed while the
	// plugin itself was being expanded as a root.
	VersionUnknown = "unknown"
)

// Dependency is a parsed dependency requirement: a plugin name with an
// optional version constraint, optionality marker and feature flags.
type Dependency struct {
	// Name is the required plugin. Immutable after construction.
	Name string `json:"name"`

	// VersionSpec is the version constraint. "*" means any version.
	VersionSpec string `json:"version_spec"`

	// Optional marks a dependency that is only included in resolution
	// when the named plugin is already installed.
	Optional bool `json:"optional,omitempty"`

	// Features are requested sub-feature flags. Informational only; they
	// are carried through resolution but do not affect it.
	Features []string `json:"features,omitempty"`
}

// String renders the dependency back in spec form:
// name, bracketed features, constraint when not "*", " (optional)" marker.
func (d Dependency) String() string {
	var sb strings.Builder
	sb.WriteString(d.Name)
	if len(d.Features) > 0 {
		sb.WriteByte('[')
		sb.WriteString(strings.Join(d.Features, ","))
		sb.WriteByte(']')
	}
	if d.VersionSpec != "" && d.VersionSpec != "*" {
		sb.WriteString(d.VersionSpec)
	}
	if d.Optional {
		sb.WriteString(" (optional)")
	}
	return sb.String()
}

// Node is a vertex in the dependency graph, one per distinct plugin name.
type Node struct {
	// PluginID is the plugin name and the node's key in the graph.
	PluginID string

	// Version is the resolved version, or one of the sentinels above.
	Version string

	// Dependencies are the parsed requirements this plugin keeps after
	// optional filtering. Edges point from dependent to dependency.
	Dependencies []Dependency

	// Dependents holds the names of plugins that depend on this node
	// (reverse-edge bookkeeping for traversal).
	Dependents map[string]struct{}

	// Depth is the distance from the root in the current build pass.
	// When a node is reached by several paths, the deepest one wins.
	Depth int
}

// AddDependent records a reverse edge from the named plugin.
func (n *Node) AddDependent(name string) {
	if n.Dependents == nil {
		n.Dependents = make(map[string]struct{})
	}
	n.Dependents[name] = struct{}{}
}

// Graph is a directed dependency graph keyed by plugin name.
// A Graph is owned by a single resolver and is not safe for concurrent use.
type Graph struct {
	// Root is the plugin the graph was built from.
	Root string

	// Nodes contains every plugin encountered during construction,
	// including not-found placeholders.
	Nodes map[string]*Node
}

// New returns an empty graph rooted at the given plugin.
func New(root string) *Graph {
	return &Graph{
		Root:  root,
		Nodes: make(map[string]*Node),
	}
}

// TreeNode is a JSON-serializable rendering of a dependency subtree.
// A node revisited within its own path is emitted with Circular set and
// no children, so rendering terminates even on cyclic graphs.
type TreeNode struct {
	Name         string      `json:"name"`
	Version      string      `json:"version,omitempty"`
	Dependencies []*TreeNode `json:"dependencies,omitempty"`
	Circular     bool        `json:"circular,omitempty"`
}

// Stats summarizes a built graph.
type Stats struct {
	// TotalPlugins is the number of nodes, placeholders included.
	TotalPlugins int

	// DirectDependencies is the number of edges out of the root.
	DirectDependencies int

	// TransitiveDependencies counts everything below the direct layer.
	TransitiveDependencies int

	// MaxDepth is the deepest recorded node depth.
	MaxDepth int

	// MissingPlugins counts not-found placeholder nodes.
	MissingPlugins int
}

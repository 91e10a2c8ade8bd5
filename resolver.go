package goplugdep

import (
	"errors"
	"fmt"
	"strings"

	"github.com/plugforge/go-plugdep/graph"
)

// Resolver resolves plugin dependencies against an injected Registry.
//
// Resolution proceeds in three phases:
//  1. Graph construction: dependency specs are parsed and the graph is
//     expanded recursively, depth-tracked, with optional dependencies
//     dropped when not installed and unknown plugins recorded as
//     not-found placeholders.
//  2. Cycle detection: depth-first search over every node, so cycles
//     entirely among transitive dependencies are caught too.
//  3. Topological sort: a deterministic Kahn ordering, reversed so that
//     dependencies come before their dependents.
//
// A Resolver is single-threaded: it owns a mutable dependency graph and
// must not be used concurrently without external locking. By default the
// graph is reset at the start of every Resolve call; WithGraphRetention
// keeps it across calls instead.
type Resolver struct {
	registry Registry
	cfg      *resolverConfig

	graph *graph.Graph

	// parsed maps each plugin name kept in the graph to the Dependency it
	// was first parsed as, so Resolve can hand back the original parsed
	// values in install order.
	parsed map[string]Dependency
}

// NewResolver creates a resolver over the given registry.
func NewResolver(registry Registry, opts ...Option) (*Resolver, error) {
	if registry == nil {
		return nil, errors.New("registry is nil")
	}
	cfg, err := newResolverConfig(opts...)
	if err != nil {
		return nil, err
	}
	return &Resolver{registry: registry, cfg: cfg}, nil
}

// Resolve computes the install order for a plugin's dependencies.
//
// The returned list contains the plugin's direct and transitive
// dependencies (never the plugin itself), ordered so that every dependency
// precedes its dependents, with alphabetical tie-breaking between
// independent plugins. Optional dependencies that are not installed are
// absent; unknown plugins resolve to placeholder nodes without error.
//
// Resolve fails with *CircularDependencyError on any cycle (including a
// self-dependency) and with *DependencyError when the depth limit is
// exceeded or the sort leaves unresolved nodes.
func (r *Resolver) Resolve(meta *PluginMetadata) ([]Dependency, error) {
	if meta == nil {
		return nil, errors.New("plugin metadata is nil")
	}

	if r.graph == nil || !r.cfg.retainGraph {
		r.graph = graph.New(meta.Name)
		r.parsed = make(map[string]Dependency)
	}

	log := r.cfg.log()
	log.Debug("resolving plugin dependencies", "plugin", meta.Name, "version", meta.Version)

	if err := r.buildGraph(meta.Name, meta.ParsedDependencies(), 0); err != nil {
		return nil, err
	}

	if cycles := r.graph.FindCycles(); len(cycles) > 0 {
		return nil, &CircularDependencyError{Plugin: meta.Name, Cycle: cycles[0]}
	}

	order, err := r.graph.TopoSort()
	if err != nil {
		var sortErr *graph.SortError
		if errors.As(err, &sortErr) {
			return nil, &DependencyError{
				Plugin: meta.Name,
				Reason: "unresolved plugins after sort: " + strings.Join(sortErr.Unresolved, ", "),
			}
		}
		return nil, &DependencyError{Plugin: meta.Name, Reason: err.Error()}
	}

	result := make([]Dependency, 0, len(order))
	for _, name := range order {
		if name == meta.Name {
			continue
		}
		if dep, ok := r.parsed[name]; ok {
			result = append(result, dep)
		} else {
			// Reachable only with a retained graph whose earlier roots are
			// now plain nodes.
			result = append(result, Dependency{Name: name, VersionSpec: "*"})
		}
	}

	log.Debug("resolution complete", "plugin", meta.Name, "dependencies", len(result))
	return result, nil
}

// buildGraph recursively expands one plugin and its dependency subtree.
func (r *Resolver) buildGraph(name string, deps []Dependency, depth int) error {
	if depth > r.cfg.maxDepth {
		return &DependencyError{
			Plugin: name,
			Reason: fmt.Sprintf("maximum dependency depth %d exceeded", r.cfg.maxDepth),
		}
	}

	// The plugin being expanded gets its registered version, or the
	// "unknown" sentinel when the registry has never heard of it. The
	// "not_found" sentinel is reserved for dependencies that terminate
	// expansion below.
	version := graph.VersionUnknown
	if meta, ok := r.registry.GetPlugin(name); ok {
		version = meta.Version
	}
	node := r.graph.Ensure(name, version, depth)

	// Optional dependencies that are not installed contribute nothing:
	// no edge, no node.
	kept := make([]Dependency, 0, len(deps))
	for _, dep := range deps {
		if dep.Optional && !r.registry.IsInstalled(dep.Name, "") {
			r.cfg.log().Debug("skipping optional dependency", "plugin", name, "dependency", dep.Name)
			continue
		}
		kept = append(kept, dep)
		if _, ok := r.parsed[dep.Name]; !ok {
			r.parsed[dep.Name] = dep
		}
	}
	node.Dependencies = kept

	for _, dep := range kept {
		if existing := r.graph.Get(dep.Name); existing != nil {
			existing.AddDependent(name)
			continue
		}

		depMeta, ok := r.registry.GetPlugin(dep.Name)
		if !ok {
			// Unknown plugin: placeholder node, no recursion, no error.
			placeholder := r.graph.Ensure(dep.Name, graph.VersionNotFound, depth+1)
			placeholder.AddDependent(name)
			continue
		}

		if err := r.buildGraph(dep.Name, ParseDependencies(depMeta.Dependencies), depth+1); err != nil {
			return err
		}
		r.graph.Get(dep.Name).AddDependent(name)
	}

	return nil
}

// Graph exposes the dependency graph built by the most recent Resolve call
// (or the accumulated graph under WithGraphRetention). Nil before the
// first resolution.
func (r *Resolver) Graph() *graph.Graph {
	return r.graph
}

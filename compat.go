package goplugdep

import (
	"fmt"

	"github.com/plugforge/go-plugdep/constraint"
	"github.com/plugforge/go-plugdep/graph"
)

// CheckCompatibility reports whether a candidate plugin can be satisfied by
// the current registry: every non-optional dependency must have at least
// one registered version matching its constraint, and the plugin's
// CoreVersion constraint (when both it and the resolver's core version are
// set) must hold.
//
// CheckCompatibility is a safe query: it never returns an error and never
// panics; anything questionable reports false.
func (r *Resolver) CheckCompatibility(meta *PluginMetadata) bool {
	if meta == nil {
		return false
	}
	log := r.cfg.log()

	if meta.CoreVersion != "" && r.cfg.coreVersion != "" {
		if !constraint.Matches(r.cfg.coreVersion, meta.CoreVersion) {
			log.Debug("core version incompatible",
				"plugin", meta.Name, "required", meta.CoreVersion, "core", r.cfg.coreVersion)
			return false
		}
	}

	for _, dep := range meta.ParsedDependencies() {
		if dep.Optional {
			continue
		}
		available := r.registry.AvailableVersions(dep.Name)
		if _, ok := constraint.MaxSatisfying(available, dep.VersionSpec); !ok {
			log.Debug("dependency unsatisfiable",
				"plugin", meta.Name, "dependency", dep.Name, "spec", dep.VersionSpec)
			return false
		}
	}
	return true
}

// InstallDependencies plans (and unless dryRun, performs) installation of
// the given dependencies. Optional dependencies that are not installed are
// skipped. For each remaining dependency the highest available version
// satisfying its constraint is chosen; when none matches, planning fails
// with *IncompatibleVersionError naming the dependency and its spec.
//
// The install side effect runs through the configured InstallFunc, only for
// plugins not already installed at the chosen version and only when dryRun
// is false. The returned actions list every (name, version) pair either way.
func (r *Resolver) InstallDependencies(deps []Dependency, dryRun bool) ([]InstallAction, error) {
	actions := make([]InstallAction, 0, len(deps))

	for _, dep := range deps {
		if dep.Optional && !r.registry.IsInstalled(dep.Name, "") {
			continue
		}

		available := r.registry.AvailableVersions(dep.Name)
		chosen, ok := constraint.MaxSatisfying(available, dep.VersionSpec)
		if !ok {
			return nil, &IncompatibleVersionError{
				Dependency: dep.Name,
				Spec:       dep.VersionSpec,
				Available:  available,
			}
		}

		if !dryRun && r.cfg.installFunc != nil && !r.registry.IsInstalled(dep.Name, chosen) {
			r.cfg.log().Info("installing plugin", "plugin", dep.Name, "version", chosen)
			if err := r.cfg.installFunc(dep.Name, chosen); err != nil {
				return nil, fmt.Errorf("install %s@%s: %w", dep.Name, chosen, err)
			}
		}

		actions = append(actions, InstallAction{Name: dep.Name, Version: chosen})
	}

	return actions, nil
}

// DependencyTree renders the dependency subtree below a plugin from the
// already-built graph as a nested, JSON-serializable structure. Plugins
// revisited within the current path are marked circular instead of being
// expanded, so the walk terminates even on an abnormal cyclic graph.
//
// DependencyTree is a safe query: it never returns an error. Before any
// resolution, or for a plugin absent from the graph, it yields a bare
// not-found node.
func (r *Resolver) DependencyTree(pluginID string) *graph.TreeNode {
	if r.graph == nil {
		return &graph.TreeNode{Name: pluginID, Version: graph.VersionNotFound}
	}
	return r.graph.Tree(pluginID)
}

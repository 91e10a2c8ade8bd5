package graph

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Get returns the node for a plugin name, or nil if not present.
func (g *Graph) Get(name string) *Node {
	return g.Nodes[name]
}

// Contains reports whether the graph has a node for the plugin name.
func (g *Graph) Contains(name string) bool {
	_, ok := g.Nodes[name]
	return ok
}

// Ensure returns the node for a plugin name, creating it when absent.
// An existing node keeps its version; its depth is raised to the deeper of
// the recorded and the given depth.
func (g *Graph) Ensure(name, version string, depth int) *Node {
	if node, ok := g.Nodes[name]; ok {
		if depth > node.Depth {
			node.Depth = depth
		}
		return node
	}
	node := &Node{
		PluginID:   name,
		Version:    version,
		Dependents: make(map[string]struct{}),
		Depth:      depth,
	}
	g.Nodes[name] = node
	return node
}

// TransitiveDeps returns every plugin reachable from the given name,
// excluding the name itself, in breadth-first order.
func (g *Graph) TransitiveDeps(name string) []string {
	var result []string
	visited := map[string]bool{name: true}

	queue := []string{name}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		node := g.Nodes[current]
		if node == nil {
			continue
		}
		for _, dep := range node.Dependencies {
			if !visited[dep.Name] {
				visited[dep.Name] = true
				result = append(result, dep.Name)
				queue = append(queue, dep.Name)
			}
		}
	}
	return result
}

// HasCycles reports whether the graph contains any cycle, including a
// plugin that lists itself as a dependency.
func (g *Graph) HasCycles() bool {
	return len(g.FindCycles()) > 0
}

// FindCycles returns all cycles found by depth-first search. Every node is
// tried as a DFS root so cycles among transitive dependencies are caught
// even when the graph root is not part of them.
func (g *Graph) FindCycles() [][]string {
	var cycles [][]string
	visited := make(map[string]bool)
	recStack := make(map[string]bool)
	path := make([]string, 0)

	var dfs func(name string)
	dfs = func(name string) {
		visited[name] = true
		recStack[name] = true
		path = append(path, name)

		if node := g.Nodes[name]; node != nil {
			for _, dep := range node.Dependencies {
				if !g.Contains(dep.Name) {
					continue
				}
				if !visited[dep.Name] {
					dfs(dep.Name)
				} else if recStack[dep.Name] {
					// Found a back-edge; extract the cycle from the path.
					start := slices.Index(path, dep.Name)
					if start >= 0 {
						cycle := make([]string, len(path)-start)
						copy(cycle, path[start:])
						cycles = append(cycles, cycle)
					}
				}
			}
		}

		path = path[:len(path)-1]
		recStack[name] = false
	}

	keys := make([]string, 0, len(g.Nodes))
	for name := range g.Nodes {
		keys = append(keys, name)
	}
	sort.Strings(keys)
	for _, name := range keys {
		if !visited[name] {
			dfs(name)
		}
	}
	return cycles
}

// SortError is returned by TopoSort when the node count and the sorted
// output disagree, which means a cycle survived into the sort.
type SortError struct {
	// Unresolved are the plugins left out of the order, sorted by name.
	Unresolved []string
}

func (e *SortError) Error() string {
	return fmt.Sprintf("topological sort left %d unresolved plugins: %s",
		len(e.Unresolved), strings.Join(e.Unresolved, ", "))
}

// TopoSort returns a deterministic installation order: every dependency
// appears before its dependents, and ties between independent plugins break
// alphabetically.
//
// The sort is Kahn's algorithm over the dependent-to-dependency edges, with
// the ready queue kept sorted so equal candidates pop in lexicographic
// order. Since edges point at dependencies, the raw Kahn output lists
// dependents first; the result is reversed before returning so that
// dependencies come first.
func (g *Graph) TopoSort() ([]string, error) {
	inDegree := make(map[string]int, len(g.Nodes))
	for name := range g.Nodes {
		inDegree[name] = 0
	}
	for _, node := range g.Nodes {
		for _, dep := range node.Dependencies {
			if _, ok := g.Nodes[dep.Name]; ok {
				inDegree[dep.Name]++
			}
		}
	}

	queue := make([]string, 0, len(g.Nodes))
	for name, degree := range inDegree {
		if degree == 0 {
			queue = append(queue, name)
		}
	}

	order := make([]string, 0, len(g.Nodes))
	done := make(map[string]bool, len(g.Nodes))
	for len(queue) > 0 {
		sort.Strings(queue)
		current := queue[0]
		queue = queue[1:]
		order = append(order, current)
		done[current] = true

		for _, dep := range g.Nodes[current].Dependencies {
			if _, ok := g.Nodes[dep.Name]; !ok {
				continue
			}
			inDegree[dep.Name]--
			if inDegree[dep.Name] == 0 {
				queue = append(queue, dep.Name)
			}
		}
	}

	if len(order) != len(g.Nodes) {
		var unresolved []string
		for name := range g.Nodes {
			if !done[name] {
				unresolved = append(unresolved, name)
			}
		}
		sort.Strings(unresolved)
		return nil, &SortError{Unresolved: unresolved}
	}

	slices.Reverse(order)
	return order, nil
}

// Stats returns summary statistics for the graph.
func (g *Graph) Stats() Stats {
	stats := Stats{TotalPlugins: len(g.Nodes)}

	if root := g.Nodes[g.Root]; root != nil {
		stats.DirectDependencies = len(root.Dependencies)
	}
	stats.TransitiveDependencies = stats.TotalPlugins - stats.DirectDependencies - 1
	if stats.TransitiveDependencies < 0 {
		stats.TransitiveDependencies = 0
	}

	for _, node := range g.Nodes {
		if node.Depth > stats.MaxDepth {
			stats.MaxDepth = node.Depth
		}
		if node.Version == VersionNotFound {
			stats.MissingPlugins++
		}
	}
	return stats
}

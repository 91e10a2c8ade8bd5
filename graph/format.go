package graph

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
)

const separatorWidth = 60 // Width of separator lines in text output

// Tree renders the subtree rooted at the given plugin as a nested,
// JSON-serializable structure. Names revisited within the current path are
// emitted as circular markers instead of being expanded, so the walk
// terminates even when the graph still contains a cycle.
func (g *Graph) Tree(name string) *TreeNode {
	return g.treeNode(name, make(map[string]bool))
}

func (g *Graph) treeNode(name string, onPath map[string]bool) *TreeNode {
	if onPath[name] {
		return &TreeNode{Name: name, Circular: true}
	}

	node := g.Nodes[name]
	if node == nil {
		return &TreeNode{Name: name, Version: VersionNotFound}
	}

	tree := &TreeNode{Name: name, Version: node.Version}
	onPath[name] = true
	defer delete(onPath, name)

	for _, dep := range node.Dependencies {
		tree.Dependencies = append(tree.Dependencies, g.treeNode(dep.Name, onPath))
	}
	return tree
}

// ToDOT outputs the graph in Graphviz DOT format.
func (g *Graph) ToDOT() string {
	var buf bytes.Buffer

	buf.WriteString("digraph dependencies {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box];\n\n")

	names := g.sortedNames()
	for _, name := range names {
		node := g.Nodes[name]
		label := fmt.Sprintf("%s\\n%s", node.PluginID, node.Version)
		attrs := fmt.Sprintf(`label="%s"`, label)
		if name == g.Root {
			attrs += ", style=bold"
		}
		if node.Version == VersionNotFound {
			attrs += ", style=dashed"
		}
		buf.WriteString(fmt.Sprintf("  %q [%s];\n", name, attrs))
	}

	buf.WriteString("\n")

	for _, name := range names {
		for _, dep := range g.Nodes[name].Dependencies {
			buf.WriteString(fmt.Sprintf("  %q -> %q;\n", name, dep.Name))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// ToText outputs a human-readable text representation of the graph.
func (g *Graph) ToText() string {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Dependency Graph (root: %s)\n", g.Root))
	buf.WriteString(strings.Repeat("=", separatorWidth) + "\n\n")

	stats := g.Stats()
	buf.WriteString(fmt.Sprintf("Total plugins: %d\n", stats.TotalPlugins))
	buf.WriteString(fmt.Sprintf("Direct dependencies: %d\n", stats.DirectDependencies))
	buf.WriteString(fmt.Sprintf("Transitive dependencies: %d\n", stats.TransitiveDependencies))
	buf.WriteString(fmt.Sprintf("Max depth: %d\n", stats.MaxDepth))
	if stats.MissingPlugins > 0 {
		buf.WriteString(fmt.Sprintf("Missing plugins: %d\n", stats.MissingPlugins))
	}
	buf.WriteString("\n")

	buf.WriteString("Dependency Tree:\n")
	buf.WriteString(g.nodeLabel(g.Root) + "\n")
	onPath := map[string]bool{g.Root: true}
	if root := g.Nodes[g.Root]; root != nil {
		for i, dep := range root.Dependencies {
			g.printTree(&buf, dep.Name, "", i == len(root.Dependencies)-1, onPath)
		}
	}

	return buf.String()
}

func (g *Graph) printTree(buf *bytes.Buffer, name, prefix string, isLast bool, onPath map[string]bool) {
	connector := "├── "
	childIndent := "│   "
	if isLast {
		connector = "└── "
		childIndent = "    "
	}

	buf.WriteString(prefix + connector + g.nodeLabel(name))
	if onPath[name] {
		buf.WriteString(" (circular)\n")
		return
	}
	buf.WriteString("\n")

	node := g.Nodes[name]
	if node == nil {
		return
	}

	onPath[name] = true
	defer delete(onPath, name)

	for i, dep := range node.Dependencies {
		g.printTree(buf, dep.Name, prefix+childIndent, i == len(node.Dependencies)-1, onPath)
	}
}

func (g *Graph) nodeLabel(name string) string {
	if node := g.Nodes[name]; node != nil && node.Version != "" {
		return name + "@" + node.Version
	}
	return name
}

func (g *Graph) sortedNames() []string {
	names := make([]string, 0, len(g.Nodes))
	for name := range g.Nodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

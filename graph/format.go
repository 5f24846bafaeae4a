package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

const separatorWidth = 60 // Width of separator lines in text output

// JSONGraph is the JSON form of a Graph: a forest of Consumes trees
// starting at the roots. Frameworks reachable only through a cycle are
// appended as extra trees.
type JSONGraph struct {
	Frameworks int        `json:"frameworks"`
	Trees      []JSONNode `json:"trees"`
}

// JSONNode is a framework in a JSONGraph tree.
type JSONNode struct {
	Key        string     `json:"key"`
	LongName   string     `json:"longName,omitempty"`
	Consumes   []JSONNode `json:"consumes,omitempty"`
	Cycles     []JSONNode `json:"cycles,omitempty"`
	Unexpanded bool       `json:"unexpanded,omitempty"`
}

// ToJSON outputs the graph as indented JSON.
func (g *Graph) ToJSON() ([]byte, error) {
	return json.MarshalIndent(g.toJSONGraph(), "", "  ")
}

func (g *Graph) toJSONGraph() *JSONGraph {
	out := &JSONGraph{Frameworks: len(g.Nodes), Trees: make([]JSONNode, 0)}

	cycleKeys := make(map[string]bool)
	for _, cycle := range g.FindCycles() {
		for _, name := range cycle {
			cycleKeys[name] = true
		}
	}

	visited := make(map[string]bool)
	tops := g.Roots()
	for _, name := range g.order {
		if !g.reachedFrom(tops, name) {
			tops = append(tops, name)
		}
	}
	for _, name := range tops {
		if visited[name] {
			continue
		}
		visited[name] = true
		node := g.Nodes[name]
		out.Trees = append(out.Trees, JSONNode{
			Key:      name,
			LongName: node.Framework.CanonicalLongName(),
			Consumes: g.buildJSONConsumes(node, visited, cycleKeys),
		})
	}
	return out
}

// reachedFrom reports whether name is one of tops or below one of them.
func (g *Graph) reachedFrom(tops []string, name string) bool {
	for _, top := range tops {
		if top == name || g.Path(top, name) != nil {
			return true
		}
	}
	return false
}

// buildJSONConsumes recursively builds the Consumes subtrees of node.
func (g *Graph) buildJSONConsumes(node *Node, visited, cycleKeys map[string]bool) []JSONNode {
	deps := make([]JSONNode, 0, len(node.Consumes))

	for _, dep := range node.Consumes {
		if visited[dep] {
			deps = append(deps, JSONNode{Key: dep, Unexpanded: true})
			continue
		}

		visited[dep] = true
		depNode := g.Nodes[dep]
		jsonDep := JSONNode{
			Key:      dep,
			LongName: depNode.Framework.CanonicalLongName(),
		}
		if cycleKeys[dep] && cycleKeys[node.Name] {
			jsonDep.Cycles = []JSONNode{{Key: node.Name}}
		} else {
			jsonDep.Consumes = g.buildJSONConsumes(depNode, visited, cycleKeys)
		}
		deps = append(deps, jsonDep)
	}

	return deps
}

// ToDOT outputs the graph in Graphviz DOT format.
func (g *Graph) ToDOT() string {
	var buf bytes.Buffer

	buf.WriteString("digraph compatibility {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box];\n\n")

	for _, name := range g.order {
		node := g.Nodes[name]
		label := fmt.Sprintf("%s\\n%s", name, node.Framework.CanonicalLongName())
		attrs := fmt.Sprintf(`label="%s"`, label) //nolint:gocritic // DOT format requires this quote style
		if len(node.ConsumedBy) == 0 {
			attrs += ", style=bold"
		}
		if node.Framework.IsPCL() {
			attrs += ", style=dashed"
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", name, attrs)
	}

	buf.WriteString("\n")

	for _, name := range g.order {
		for _, dep := range g.Nodes[name].Consumes {
			fmt.Fprintf(&buf, "  %q -> %q;\n", name, dep)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// ToText outputs a human-readable text representation of the graph.
func (g *Graph) ToText() string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Compatibility Graph (%d frameworks)\n", len(g.Nodes))
	buf.WriteString(strings.Repeat("=", separatorWidth) + "\n\n")

	stats := g.Stats()
	fmt.Fprintf(&buf, "Edges: %d\n", stats.Edges)
	fmt.Fprintf(&buf, "Roots: %d\n", stats.Roots)
	fmt.Fprintf(&buf, "Leaves: %d\n", stats.Leaves)
	fmt.Fprintf(&buf, "Max depth: %d\n", stats.MaxDepth)
	if stats.Cycles > 0 {
		fmt.Fprintf(&buf, "Cycles: %d\n", stats.Cycles)
	}
	buf.WriteString("\n")

	buf.WriteString("Compatibility Tree:\n")
	printed := make(map[string]bool)
	for _, root := range g.Roots() {
		g.printTree(&buf, root, "", true, true, make(map[string]bool), printed)
	}
	for _, name := range g.order {
		if !printed[name] {
			g.printTree(&buf, name, "", true, true, make(map[string]bool), printed)
		}
	}

	return buf.String()
}

func (g *Graph) printTree(buf *bytes.Buffer, name, prefix string, isLast, top bool, visited, printed map[string]bool) {
	connector := "├── "
	if isLast {
		connector = "└── "
	}
	if top {
		buf.WriteString(name)
	} else {
		buf.WriteString(prefix + connector + name)
	}
	printed[name] = true

	if visited[name] {
		buf.WriteString(" (circular)\n")
		return
	}
	buf.WriteString("\n")

	visited[name] = true
	defer func() { visited[name] = false }()

	node := g.Nodes[name]
	childPrefix := prefix
	if !top {
		if isLast {
			childPrefix += "    "
		} else {
			childPrefix += "│   "
		}
	}
	for i, dep := range node.Consumes {
		g.printTree(buf, dep, childPrefix, i == len(node.Consumes)-1, false, visited, printed)
	}
}

// ToExplainText outputs a human-readable explanation for a framework.
func (g *Graph) ToExplainText(name string) (string, error) {
	explanation, err := g.Explain(name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Explanation for: %s (%s)\n", explanation.Framework, explanation.LongName)
	buf.WriteString(strings.Repeat("=", separatorWidth) + "\n\n")

	writeList := func(title string, names []string) {
		if len(names) == 0 {
			return
		}
		fmt.Fprintf(&buf, "%s:\n  %s\n\n", title, strings.Join(names, ", "))
	}
	writeList("Expands to", explanation.Expansion)
	writeList("Consumes", explanation.Compatible)
	writeList("Consumed by", explanation.Consumers)

	if len(explanation.Chains) > 0 {
		buf.WriteString("Chains (paths from roots):\n")
		for i, chain := range explanation.Chains {
			fmt.Fprintf(&buf, "  %d. %s\n", i+1, chain)
		}
	}

	return buf.String(), nil
}

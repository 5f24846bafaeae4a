package graph

import (
	"fmt"
	"strings"
)

// Get returns the node for a framework name, or nil if not found. Names are
// matched case-insensitively.
func (g *Graph) Get(name string) *Node {
	return g.Nodes[strings.ToLower(name)]
}

// Contains returns true if the graph contains the given framework.
func (g *Graph) Contains(name string) bool {
	return g.Get(name) != nil
}

// Names returns all framework names in canonical order.
func (g *Graph) Names() []string {
	return append([]string(nil), g.order...)
}

// DirectConsumes returns the nearest frameworks name can consume.
func (g *Graph) DirectConsumes(name string) []string {
	if node := g.Get(name); node != nil {
		return node.Consumes
	}
	return nil
}

// DirectConsumers returns the frameworks that directly consume name.
func (g *Graph) DirectConsumers(name string) []string {
	if node := g.Get(name); node != nil {
		return node.ConsumedBy
	}
	return nil
}

// TransitiveConsumes returns every framework name can consume.
// The result is in breadth-first order.
func (g *Graph) TransitiveConsumes(name string) []string {
	return g.bfs(name, func(n *Node) []string { return n.Consumes })
}

// TransitiveConsumers returns every framework that can consume name.
// The result is in breadth-first order (closest consumers first).
func (g *Graph) TransitiveConsumers(name string) []string {
	return g.bfs(name, func(n *Node) []string { return n.ConsumedBy })
}

func (g *Graph) bfs(name string, next func(*Node) []string) []string {
	result := make([]string, 0)
	start := strings.ToLower(name)
	visited := map[string]bool{start: true}

	queue := []string{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		node := g.Nodes[current]
		if node == nil {
			continue
		}

		for _, n := range next(node) {
			if !visited[n] {
				visited[n] = true
				result = append(result, n)
				queue = append(queue, n)
			}
		}
	}

	return result
}

// Path finds the shortest chain of Consumes edges from one framework to
// another. Returns nil if no path exists.
func (g *Graph) Path(from, to string) []string {
	from, to = strings.ToLower(from), strings.ToLower(to)
	if g.Nodes[from] == nil {
		return nil
	}
	if from == to {
		return []string{from}
	}

	type queueItem struct {
		name string
		path []string
	}

	visited := map[string]bool{from: true}
	queue := []queueItem{{name: from, path: []string{from}}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, dep := range g.Nodes[current.name].Consumes {
			if dep == to {
				return append(current.path, dep)
			}
			if !visited[dep] {
				visited[dep] = true
				newPath := make([]string, len(current.path)+1)
				copy(newPath, current.path)
				newPath[len(current.path)] = dep
				queue = append(queue, queueItem{name: dep, path: newPath})
			}
		}
	}

	return nil
}

// AllPaths finds all chains from one framework to another.
// This can be expensive for large graphs with many paths.
func (g *Graph) AllPaths(from, to string) [][]string {
	var result [][]string
	from, to = strings.ToLower(from), strings.ToLower(to)
	g.findAllPaths(from, to, []string{from}, make(map[string]bool), &result)
	return result
}

func (g *Graph) findAllPaths(current, target string, path []string, visited map[string]bool, result *[][]string) {
	node := g.Nodes[current]
	if node == nil {
		return
	}
	if current == target {
		*result = append(*result, append([]string(nil), path...))
		return
	}

	visited[current] = true
	defer func() { visited[current] = false }()

	for _, dep := range node.Consumes {
		if !visited[dep] {
			g.findAllPaths(dep, target, append(path, dep), visited, result)
		}
	}
}

// Explain reports what a framework reaches through the name tables and how
// it sits in the graph.
func (g *Graph) Explain(name string) (*Explanation, error) {
	node := g.Get(name)
	if node == nil {
		return nil, fmt.Errorf("framework %q not found in graph", name)
	}

	explanation := &Explanation{
		Framework:  node.Name,
		LongName:   node.Framework.CanonicalLongName(),
		Expansion:  make([]string, 0),
		Compatible: g.TransitiveConsumes(node.Name),
		Consumers:  g.TransitiveConsumers(node.Name),
	}
	for f := range g.expander.Expand(node.Framework) {
		explanation.Expansion = append(explanation.Expansion, g.nameOf(f))
	}

	for _, root := range g.Roots() {
		for _, path := range g.AllPaths(root, node.Name) {
			explanation.Chains = append(explanation.Chains, Chain(path))
		}
	}

	return explanation, nil
}

// Stats returns statistics about the graph.
func (g *Graph) Stats() Stats {
	stats := Stats{
		Frameworks: len(g.Nodes),
		Roots:      len(g.Roots()),
		Leaves:     len(g.Leaves()),
		Cycles:     len(g.FindCycles()),
	}
	for _, node := range g.Nodes {
		stats.Edges += len(node.Consumes)
	}
	stats.MaxDepth = g.calculateMaxDepth()
	return stats
}

func (g *Graph) calculateMaxDepth() int {
	depths := make(map[string]int)
	onPath := make(map[string]bool)
	var maxDepth int

	var dfs func(name string, depth int)
	dfs = func(name string, depth int) {
		// A node already on the current path closes a cycle.
		if onPath[name] {
			return
		}
		if existingDepth, ok := depths[name]; ok && existingDepth >= depth {
			return
		}
		depths[name] = depth
		if depth > maxDepth {
			maxDepth = depth
		}

		onPath[name] = true
		for _, dep := range g.Nodes[name].Consumes {
			dfs(dep, depth+1)
		}
		delete(onPath, name)
	}

	for _, root := range g.Roots() {
		dfs(root, 0)
	}
	return maxDepth
}

// Roots returns the frameworks nothing else in the graph consumes, in
// canonical order.
func (g *Graph) Roots() []string {
	var roots []string
	for _, name := range g.order {
		if len(g.Nodes[name].ConsumedBy) == 0 {
			roots = append(roots, name)
		}
	}
	return roots
}

// Leaves returns the frameworks that consume nothing else in the graph, in
// canonical order.
func (g *Graph) Leaves() []string {
	var leaves []string
	for _, name := range g.order {
		if len(g.Nodes[name].Consumes) == 0 {
			leaves = append(leaves, name)
		}
	}
	return leaves
}

// HasCycles returns true if the graph contains cycles.
func (g *Graph) HasCycles() bool {
	return len(g.FindCycles()) > 0
}

// FindCycles returns all cycles in the graph.
func (g *Graph) FindCycles() [][]string {
	var cycles [][]string
	visited := make(map[string]bool)
	recStack := make(map[string]bool)
	path := make([]string, 0)

	var findCycles func(name string)
	findCycles = func(name string) {
		visited[name] = true
		recStack[name] = true
		path = append(path, name)

		for _, dep := range g.Nodes[name].Consumes {
			if !visited[dep] {
				findCycles(dep)
			} else if recStack[dep] {
				// Found a cycle, extract it
				for i, k := range path {
					if k == dep {
						cycles = append(cycles, append([]string(nil), path[i:]...))
						break
					}
				}
			}
		}

		path = path[:len(path)-1]
		recStack[name] = false
	}

	for _, name := range g.order {
		if !visited[name] {
			findCycles(name)
		}
	}

	return cycles
}

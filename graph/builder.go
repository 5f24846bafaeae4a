package graph

import (
	"slices"
	"strings"

	"github.com/albertocavalcante/go-tfm/compat"
	"github.com/albertocavalcante/go-tfm/framework"
)

// Build constructs the compatibility graph of frameworks. Sentinels and
// duplicates are dropped.
func Build(r *compat.Reducer, frameworks []framework.Framework) *Graph {
	p := r.Provider()
	g := &Graph{
		Nodes:    make(map[string]*Node),
		keys:     make(map[string]string),
		expander: p.Expander(),
		names:    p.Mappings(),
	}

	var members []framework.Framework
	seen := make(map[string]bool)
	for _, f := range frameworks {
		if !f.IsSpecific() || seen[f.Key()] {
			continue
		}
		seen[f.Key()] = true
		members = append(members, f)
	}
	slices.SortFunc(members, framework.Compare)

	// First pass: create all nodes
	for _, f := range members {
		name := g.nameOf(f)
		if g.Nodes[name] != nil {
			// Distinct frameworks can share a short name, e.g. dotnet5.0.
			name = strings.ToLower(f.CanonicalLongName())
		}
		g.keys[f.Key()] = name
		g.Nodes[name] = &Node{
			Name:       name,
			Framework:  f,
			Consumes:   make([]string, 0),
			ConsumedBy: make([]string, 0),
		}
		g.order = append(g.order, name)
	}

	// Second pass: nearest compatible frameworks
	for _, f := range members {
		var compatible []framework.Framework
		for _, c := range members {
			if !c.Equal(f) && p.IsCompatible(f, c) {
				compatible = append(compatible, c)
			}
		}
		node := g.Nodes[g.nameOf(f)]
		for _, c := range r.ReduceUpwards(compatible) {
			node.Consumes = append(node.Consumes, g.nameOf(c))
		}
	}

	// Third pass: reverse edges
	for _, name := range g.order {
		for _, dep := range g.Nodes[name].Consumes {
			g.Nodes[dep].ConsumedBy = append(g.Nodes[dep].ConsumedBy, name)
		}
	}

	return g
}

// nameOf returns the node name of a member, or the short folder name of any
// other framework.
func (g *Graph) nameOf(f framework.Framework) string {
	if name, ok := g.keys[f.Key()]; ok {
		return name
	}
	return f.ShortFolderName(g.names)
}

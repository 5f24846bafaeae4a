package graph

import (
	"strings"

	"github.com/albertocavalcante/go-tfm/compat"
	"github.com/albertocavalcante/go-tfm/framework"
)

// Graph is the compatibility graph of a framework set. Nodes are keyed by
// lowercase short folder name; a framework whose short name is already taken
// is keyed by its lowercase canonical long name.
type Graph struct {
	// Nodes contains all nodes in the graph.
	Nodes map[string]*Node

	order    []string          // keys in framework.Compare order
	keys     map[string]string // framework.Key -> node name
	expander *compat.Expander
	names    framework.NameProvider
}

// Node represents a framework in the graph.
type Node struct {
	// Name is the short folder name, e.g. "net45".
	Name string

	// Framework is the parsed descriptor.
	Framework framework.Framework

	// Consumes are the nearest frameworks this one can consume.
	Consumes []string

	// ConsumedBy are the frameworks that list this one in Consumes.
	ConsumedBy []string
}

// Explanation describes what a framework reaches.
type Explanation struct {
	// Framework is the framework being explained.
	Framework string

	// LongName is its canonical long name.
	LongName string

	// Expansion is everything reachable from it through the name tables,
	// whether or not it is in the graph.
	Expansion []string

	// Compatible lists the graph members it can consume.
	Compatible []string

	// Consumers lists the graph members that can consume it.
	Consumers []string

	// Chains are the paths from graph roots down to it.
	Chains []Chain
}

// Chain is a path of Consumes edges.
type Chain []string

// String returns the chain joined by arrows.
func (c Chain) String() string {
	return strings.Join(c, " -> ")
}

// Stats provides statistics about the graph.
type Stats struct {
	// Frameworks is the number of nodes.
	Frameworks int

	// Edges is the number of Consumes edges.
	Edges int

	// Roots is the number of frameworks nothing else consumes.
	Roots int

	// Leaves is the number of frameworks that consume nothing else.
	Leaves int

	// MaxDepth is the longest chain from a root, ignoring cycles.
	MaxDepth int

	// Cycles is the number of cycles, typically equivalent frameworks.
	Cycles int
}

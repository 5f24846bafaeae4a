// Package graph provides a compatibility graph over a set of target
// frameworks and query capabilities for it.
//
// An edge from x to y means x can consume assets built for y and nothing
// else in the set sits between them, so the graph is the covering relation
// of the compatibility predicate restricted to the set. Equivalent
// frameworks (win8 and netcore45) consume each other and show up as cycles.
//
// # Building a Graph
//
//	p, _ := compat.NewProvider(registry.Default())
//	g := graph.Build(compat.NewReducer(p), frameworks)
//
// # Querying the Graph
//
//	// What net461 consumes directly
//	next := g.DirectConsumes("net461")
//
//	// Explain what a framework reaches
//	explanation, _ := g.Explain("net45")
//
//	// Find a chain between two frameworks
//	path := g.Path("net461", "netstandard1.0")
//
// # Output Formats
//
//	jsonBytes, _ := g.ToJSON()
//	dotString := g.ToDOT()
//	textString := g.ToText()
package graph

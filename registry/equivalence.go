package registry

import "github.com/albertocavalcante/go-tfm/framework"

// equivalence is a union-find over framework keys that remembers the order
// in which frameworks were first seen.
type equivalence struct {
	parent map[string]string
	items  map[string]framework.Framework
	order  []string
}

func newEquivalence() *equivalence {
	return &equivalence{
		parent: make(map[string]string),
		items:  make(map[string]framework.Framework),
	}
}

func (e *equivalence) add(f framework.Framework) string {
	k := f.Key()
	if _, ok := e.parent[k]; !ok {
		e.parent[k] = k
		e.items[k] = f
		e.order = append(e.order, k)
	}
	return k
}

func (e *equivalence) find(k string) string {
	root := k
	for e.parent[root] != root {
		root = e.parent[root]
	}
	for e.parent[k] != root {
		e.parent[k], k = root, e.parent[k]
	}
	return root
}

func (e *equivalence) union(a, b string) {
	ra, rb := e.find(a), e.find(b)
	if ra != rb {
		e.parent[rb] = ra
	}
}

// classes maps every key to the members of its class. All members of a class
// share one slice.
func (e *equivalence) classes() map[string][]framework.Framework {
	byRoot := make(map[string][]framework.Framework)
	for _, k := range e.order {
		root := e.find(k)
		byRoot[root] = append(byRoot[root], e.items[k])
	}
	out := make(map[string][]framework.Framework, len(e.order))
	for _, k := range e.order {
		out[k] = byRoot[e.find(k)]
	}
	return out
}

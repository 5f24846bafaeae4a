package compat

import (
	"iter"
	"slices"

	"github.com/albertocavalcante/go-tfm/framework"
)

// Expander enumerates the frameworks reachable from a framework.
type Expander struct {
	mappings Mappings
}

// NewExpander creates an Expander over m.
func NewExpander(m Mappings) *Expander {
	return &Expander{mappings: m}
}

// Expand lazily yields the transitive closure of f under equivalence,
// subset identifiers, one-way compatibility (the upper end of each range,
// plus a point of every entry target the range overlaps), platform removal and portable profile decomposition. f itself is never
// yielded and each framework is yielded once.
func (e *Expander) Expand(f framework.Framework) iter.Seq[framework.Framework] {
	return e.walk(f, true)
}

// ExpandAll collects Expand(f) in breadth-first order.
func (e *Expander) ExpandAll(f framework.Framework) []framework.Framework {
	return slices.Collect(e.Expand(f))
}

func (e *Expander) walk(f framework.Framework, decompose bool) iter.Seq[framework.Framework] {
	return func(yield func(framework.Framework) bool) {
		seen := map[string]bool{f.Key(): true}
		queue := []framework.Framework{f}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, next := range e.step(cur, decompose) {
				k := next.Key()
				if seen[k] {
					continue
				}
				seen[k] = true
				if !yield(next) {
					return
				}
				queue = append(queue, next)
			}
		}
	}
}

// step returns the frameworks one hop away from f.
func (e *Expander) step(f framework.Framework, decompose bool) []framework.Framework {
	var out []framework.Framework
	if eqs, ok := e.mappings.TryGetEquivalentFrameworks(f); ok {
		out = append(out, eqs...)
	}
	if subsets, ok := e.mappings.TryGetSubsetFrameworks(f.Identifier()); ok {
		for _, id := range subsets {
			out = append(out, framework.NewWithProfile(id, f.Version(), f.Profile()))
		}
	}
	if ranges, ok := e.mappings.TryGetCompatibilityRanges(f); ok {
		targets := e.mappings.CompatibilityTargets()
		for _, r := range ranges {
			out = append(out, r.Max())
			for _, t := range targets {
				if p, ok := overlapPoint(r, t); ok {
					out = append(out, p)
				}
			}
		}
	}
	if f.HasPlatform() {
		out = append(out, framework.NewWithProfile(f.Identifier(), f.Version(), f.Profile()))
	}
	if decompose && f.IsPCL() {
		if fs, ok := e.mappings.TryGetPortableFrameworks(f.Profile(), false); ok {
			out = append(out, fs...)
		}
	}
	return out
}

// overlapPoint returns a framework inside both a and b: the lower of the two
// upper endpoints, else the higher of the two lower endpoints.
func overlapPoint(a, b framework.Range) (framework.Framework, bool) {
	hi := a.Max()
	if b.Max().Version().Compare(hi.Version()) < 0 {
		hi = b.Max()
	}
	if a.Satisfies(hi) && b.Satisfies(hi) {
		return hi, true
	}
	lo := a.Min()
	if b.Min().Version().Compare(lo.Version()) > 0 {
		lo = b.Min()
	}
	if a.Satisfies(lo) && b.Satisfies(lo) {
		return lo, true
	}
	return framework.Framework{}, false
}

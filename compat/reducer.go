package compat

import (
	"cmp"
	"log/slog"
	"math"
	"slices"
	"strings"

	"github.com/albertocavalcante/go-tfm/framework"
)

// Reducer selects and prunes candidate frameworks using a Provider.
type Reducer struct {
	provider *Provider
	mappings Mappings
	log      *slog.Logger
}

// NewReducer creates a Reducer over p.
func NewReducer(p *Provider) *Reducer {
	return &Reducer{provider: p, mappings: p.mappings, log: p.log}
}

// Provider returns the underlying Provider.
func (r *Reducer) Provider() *Provider { return r.provider }

// GetNearest returns the candidate that best matches project, or false when
// no candidate is compatible.
//
// An exact match wins. Otherwise the compatible candidates are reduced to
// the most specific ones and ties are broken by, in turn: the project's own
// identifier, non-portable over portable (or the smallest portable profile),
// non-package-based for non-package-based projects, no profile over a
// profile (then the project's own profile among profiled survivors), and the
// project's platform. Anything still tied is
// decided by a fixed fallback order and logged.
func (r *Reducer) GetNearest(project framework.Framework, candidates []framework.Framework) (framework.Framework, bool) {
	set := dedupe(candidates)
	if len(set) == 0 {
		return framework.Framework{}, false
	}
	set = preferIfAny(set, func(c framework.Framework) bool { return !c.IsUnsupported() })

	for _, c := range set {
		if c.Equal(project) {
			return c, true
		}
	}

	var compatible []framework.Framework
	for _, c := range set {
		if r.provider.IsCompatible(project, c) {
			compatible = append(compatible, c)
		}
	}
	if len(compatible) == 0 {
		return framework.Framework{}, false
	}

	reduced := r.ReduceUpwards(compatible)
	for _, step := range []func([]framework.Framework) []framework.Framework{
		func(s []framework.Framework) []framework.Framework {
			return preferIfAny(s, func(c framework.Framework) bool {
				return strings.EqualFold(c.Identifier(), project.Identifier())
			})
		},
		r.reducePortable,
		func(s []framework.Framework) []framework.Framework {
			if r.mappings.IsPackageBased(project) {
				return s
			}
			return preferIfAny(s, func(c framework.Framework) bool { return !r.mappings.IsPackageBased(c) })
		},
		func(s []framework.Framework) []framework.Framework {
			return preferIfAny(s, func(c framework.Framework) bool { return !c.HasProfile() })
		},
		// Only reached with profiled survivors when none lacks a profile.
		func(s []framework.Framework) []framework.Framework {
			if !project.HasProfile() {
				return s
			}
			return preferIfAny(s, func(c framework.Framework) bool {
				return strings.EqualFold(c.Profile(), project.Profile())
			})
		},
		func(s []framework.Framework) []framework.Framework {
			if !project.HasPlatform() {
				return s
			}
			return preferIfAny(s, func(c framework.Framework) bool {
				return strings.EqualFold(c.Platform(), project.Platform())
			})
		},
	} {
		if len(reduced) == 1 {
			return reduced[0], true
		}
		reduced = step(reduced)
	}
	if len(reduced) == 1 {
		return reduced[0], true
	}

	ordered := slices.Clone(reduced)
	slices.SortFunc(ordered, fallbackOrder)
	r.provider.metrics.fallback()
	r.log.Warn("nearest framework decided by fallback order",
		"project", project.ShortFolderName(r.mappings),
		"candidates", r.names(ordered),
		"selected", ordered[0].ShortFolderName(r.mappings))
	return ordered[0], true
}

// fallbackOrder sorts by identifier descending, then structural hash and key
// ascending.
func fallbackOrder(a, b framework.Framework) int {
	if c := cmp.Compare(strings.ToLower(b.Identifier()), strings.ToLower(a.Identifier())); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Hash(), b.Hash()); c != 0 {
		return c
	}
	return cmp.Compare(a.Key(), b.Key())
}

// reducePortable drops portable frameworks from a mixed set. A set of only
// portable frameworks keeps those with the fewest required frameworks, then
// the shortest profile name.
func (r *Reducer) reducePortable(set []framework.Framework) []framework.Framework {
	nonPortable := filter(set, func(c framework.Framework) bool { return !c.IsPCL() })
	if len(nonPortable) > 0 {
		return nonPortable
	}

	type rank struct{ required, profileLen int }
	rankOf := func(c framework.Framework) rank {
		fs, ok := r.mappings.TryGetPortableFrameworks(c.Profile(), false)
		if !ok {
			return rank{math.MaxInt, len(c.Profile())}
		}
		return rank{len(fs), len(c.Profile())}
	}
	best := rankOf(set[0])
	for _, c := range set[1:] {
		if rk := rankOf(c); rk.required < best.required ||
			(rk.required == best.required && rk.profileLen < best.profileLen) {
			best = rk
		}
	}
	return filter(set, func(c framework.Framework) bool { return rankOf(c) == best })
}

// ReduceUpwards keeps the most capable frameworks: x is dropped when some y
// can consume x but x cannot consume y. Any is dropped unless it is alone.
func (r *Reducer) ReduceUpwards(fs []framework.Framework) []framework.Framework {
	set := dedupe(fs)
	set = preferIfAny(set, func(c framework.Framework) bool { return !c.IsAny() })
	return filter(set, func(x framework.Framework) bool {
		for _, y := range set {
			if !y.Equal(x) && r.provider.IsCompatible(y, x) && !r.provider.IsCompatible(x, y) {
				return false
			}
		}
		return true
	})
}

// ReduceDownwards keeps the least demanding frameworks: x is dropped when x
// can consume some y that cannot consume x.
func (r *Reducer) ReduceDownwards(fs []framework.Framework) []framework.Framework {
	set := dedupe(fs)
	return filter(set, func(x framework.Framework) bool {
		for _, y := range set {
			if !y.Equal(x) && r.provider.IsCompatible(x, y) && !r.provider.IsCompatible(y, x) {
				return false
			}
		}
		return true
	})
}

// Reduce removes equivalent duplicates. Frameworks are ordered by canonical
// long name, ignoring case, and the last member of each equivalence class in
// that order is kept.
func (r *Reducer) Reduce(fs []framework.Framework) []framework.Framework {
	sorted := dedupe(fs)
	slices.SortStableFunc(sorted, func(a, b framework.Framework) int {
		return cmp.Compare(strings.ToLower(a.CanonicalLongName()), strings.ToLower(b.CanonicalLongName()))
	})

	var out []framework.Framework
	for i, x := range sorted {
		eqs, _ := r.mappings.TryGetEquivalentFrameworks(x)
		later := slices.ContainsFunc(sorted[i+1:], func(y framework.Framework) bool {
			return slices.ContainsFunc(eqs, y.Equal)
		})
		if !later {
			out = append(out, x)
		}
	}
	return out
}

func (r *Reducer) names(fs []framework.Framework) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.ShortFolderName(r.mappings)
	}
	return out
}

// dedupe removes structurally equal frameworks, keeping first occurrences.
func dedupe(fs []framework.Framework) []framework.Framework {
	seen := make(map[string]bool, len(fs))
	out := make([]framework.Framework, 0, len(fs))
	for _, f := range fs {
		if k := f.Key(); !seen[k] {
			seen[k] = true
			out = append(out, f)
		}
	}
	return out
}

func filter(fs []framework.Framework, keep func(framework.Framework) bool) []framework.Framework {
	var out []framework.Framework
	for _, f := range fs {
		if keep(f) {
			out = append(out, f)
		}
	}
	return out
}

// preferIfAny narrows fs to the frameworks matching pred, unless none do.
func preferIfAny(fs []framework.Framework, pred func(framework.Framework) bool) []framework.Framework {
	if matched := filter(fs, pred); len(matched) > 0 {
		return matched
	}
	return fs
}

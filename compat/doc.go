// Package compat decides which frameworks can consume assets built for
// which others, and picks the nearest match among candidates.
//
// # Overview
//
// The package has four parts, all driven by a Mappings table source (usually
// *registry.Registry):
//
//   - Expander walks everything a framework can reach through equivalence,
//     subsets, one-way compatibility and portable profiles.
//   - Provider answers IsCompatible(target, candidate), memoizing verdicts.
//   - Reducer picks the nearest candidate and prunes candidate sets.
//   - Table precomputes compatible subsets for a fixed candidate list.
//
// # Quick Start
//
//	p, err := compat.NewProvider(registry.Default())
//	if err != nil {
//		return err
//	}
//	r := compat.NewReducer(p)
//	nearest, ok := r.GetNearest(project, candidates)
//
// # Thread Safety
//
// Provider, Reducer and Table are safe for concurrent use.
package compat

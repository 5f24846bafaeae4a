package registry

import (
	"fmt"
	"strings"

	"github.com/albertocavalcante/go-tfm/framework"
)

type portableProfile struct {
	required []framework.Framework
	optional []framework.Framework

	// substitutes[i] holds the keys of required[i] and its equivalents.
	substitutes [][]string
}

func (r *Registry) portableProfile(p PortableProfile, groups map[string][]string) (portableProfile, error) {
	var out portableProfile
	for _, name := range p.Required {
		f, ok := r.resolve(name)
		if !ok {
			return portableProfile{}, fmt.Errorf("cannot resolve required framework %q", name)
		}
		out.required = append(out.required, f)
	}

	optional := p.Optional
	if p.OptionalGroup != "" {
		group, ok := groups[p.OptionalGroup]
		if !ok {
			return portableProfile{}, fmt.Errorf("unknown optional group %q", p.OptionalGroup)
		}
		optional = append(optional[:len(optional):len(optional)], group...)
	}
	for _, name := range optional {
		f, ok := r.resolve(name)
		if !ok {
			return portableProfile{}, fmt.Errorf("cannot resolve optional framework %q", name)
		}
		out.optional = append(out.optional, f)
	}

	for _, req := range out.required {
		keys := []string{req.Key()}
		if eqs, ok := r.TryGetEquivalentFrameworks(req); ok {
			for _, e := range eqs {
				keys = append(keys, e.Key())
			}
		}
		out.substitutes = append(out.substitutes, keys)
	}
	return out, nil
}

// TryGetPortableFrameworks decomposes a portable profile. The profile is
// either "ProfileN" or a "+"-joined list of folder names such as
// "net45+win8". Optional frameworks are included only for numbered profiles
// and only when includeOptional is set.
func (r *Registry) TryGetPortableFrameworks(profile string, includeOptional bool) ([]framework.Framework, bool) {
	if n, ok := framework.PortableProfileNumber(profile); ok {
		p, ok := r.portable[n]
		if !ok {
			return nil, false
		}
		out := make([]framework.Framework, 0, len(p.required)+len(p.optional))
		out = append(out, p.required...)
		if includeOptional {
			out = append(out, p.optional...)
		}
		return out, true
	}

	if profile == "" {
		return nil, false
	}
	var out []framework.Framework
	for name := range strings.SplitSeq(profile, "+") {
		f, ok := r.resolve(name)
		if !ok {
			return nil, false
		}
		out = append(out, f)
	}
	return out, true
}

// TryResolveCapabilityProfile returns the lowest numbered profile whose
// required frameworks, each replaceable by an equivalent, are exactly the
// given frameworks once duplicates and the profile's optional frameworks are
// removed. The result does not depend on input order.
func (r *Registry) TryResolveCapabilityProfile(frameworks []framework.Framework) (int, bool) {
	input := r.dedupeEquivalent(frameworks)
	if len(input) == 0 {
		return 0, false
	}

	for _, n := range r.numbers {
		p := r.portable[n]
		if len(p.required) > len(input) {
			continue
		}
		remaining := make([]framework.Framework, 0, len(input))
		for _, f := range input {
			if !p.isOptional(f) {
				remaining = append(remaining, f)
			}
		}
		if p.coversExactly(remaining) {
			return n, true
		}
	}
	return 0, false
}

// dedupeEquivalent keeps the first of each group of equivalent frameworks.
func (r *Registry) dedupeEquivalent(frameworks []framework.Framework) []framework.Framework {
	seen := make(map[string]bool)
	var out []framework.Framework
	for _, f := range frameworks {
		if seen[f.Key()] {
			continue
		}
		out = append(out, f)
		seen[f.Key()] = true
		if eqs, ok := r.TryGetEquivalentFrameworks(f); ok {
			for _, e := range eqs {
				seen[e.Key()] = true
			}
		}
	}
	return out
}

func (p portableProfile) isOptional(f framework.Framework) bool {
	for _, o := range p.optional {
		if strings.EqualFold(o.Identifier(), f.Identifier()) &&
			strings.EqualFold(o.Profile(), f.Profile()) &&
			f.Version().Compare(o.Version()) >= 0 {
			return true
		}
	}
	return false
}

// coversExactly reports whether the required frameworks can each be
// replaced by themselves or an equivalent so that the replacements form
// exactly set. That holds when every required framework has a candidate in
// set and a matching assigns a distinct required framework to every member
// of set.
func (p portableProfile) coversExactly(set []framework.Framework) bool {
	if len(set) == 0 || len(set) > len(p.required) {
		return false
	}
	index := make(map[string]int, len(set))
	for j, f := range set {
		index[f.Key()] = j
	}

	// owners[j] lists the required frameworks that can stand for set[j].
	owners := make([][]int, len(set))
	for i, keys := range p.substitutes {
		found := false
		for _, k := range keys {
			if j, ok := index[k]; ok {
				owners[j] = append(owners[j], i)
				found = true
			}
		}
		if !found {
			return false
		}
	}

	match := make([]int, len(p.required))
	for i := range match {
		match[i] = -1
	}
	var augment func(j int, visited []bool) bool
	augment = func(j int, visited []bool) bool {
		for _, i := range owners[j] {
			if visited[i] {
				continue
			}
			visited[i] = true
			if match[i] < 0 || augment(match[i], visited) {
				match[i] = j
				return true
			}
		}
		return false
	}
	for j := range set {
		if !augment(j, make([]bool, len(p.required))) {
			return false
		}
	}
	return true
}

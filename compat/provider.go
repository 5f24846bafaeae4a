package compat

import (
	"fmt"
	"log/slog"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/albertocavalcante/go-tfm/framework"
)

// Provider decides whether a target framework can consume assets built for
// a candidate framework.
type Provider struct {
	mappings Mappings
	expander *Expander
	cache    *lru.Cache[pairKey, bool] // nil when disabled
	metrics  *Metrics
	log      *slog.Logger
}

type pairKey struct {
	target    string
	candidate string
}

// NewProvider creates a Provider over m.
func NewProvider(m Mappings, opts ...Option) (*Provider, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	p := &Provider{
		mappings: m,
		expander: NewExpander(m),
		metrics:  cfg.metrics,
		log:      cfg.log(),
	}
	if cfg.cacheSize > 0 {
		p.cache, err = lru.New[pairKey, bool](cfg.cacheSize)
		if err != nil {
			return nil, fmt.Errorf("creating compatibility cache: %w", err)
		}
	}
	p.log.Debug("compatibility provider created", "cache_size", cfg.cacheSize)
	return p, nil
}

// Mappings returns the table source.
func (p *Provider) Mappings() Mappings { return p.mappings }

// Expander returns the expander used by the predicate.
func (p *Provider) Expander() *Expander { return p.expander }

// IsCompatible reports whether target can consume assets built for
// candidate. The relation is reflexive but not symmetric.
func (p *Provider) IsCompatible(target, candidate framework.Framework) bool {
	if p.cache == nil {
		return p.isCompatible(target, candidate)
	}
	key := pairKey{target.Key(), candidate.Key()}
	if v, ok := p.cache.Get(key); ok {
		p.metrics.cacheResult(true)
		return v
	}
	p.metrics.cacheResult(false)
	v := p.isCompatible(target, candidate)
	p.cache.Add(key, v)
	return v
}

func (p *Provider) isCompatible(target, candidate framework.Framework) bool {
	if target.Equal(candidate) {
		return true
	}
	if v, decided := sentinelVerdict(target, candidate); decided {
		return v
	}
	if target.IsPCL() || candidate.IsPCL() {
		return p.isPortableCompatible(target, candidate)
	}
	return p.isCompatibleWithTarget(target, candidate)
}

// sentinelVerdict decides pairs involving Any, Agnostic or Unsupported. An
// Agnostic target with a specific candidate is left undecided.
func sentinelVerdict(target, candidate framework.Framework) (compatible, decided bool) {
	if target.IsSpecific() && candidate.IsSpecific() {
		return false, false
	}
	switch {
	case target.IsAny() || candidate.IsAny():
		return true, true
	case target.IsUnsupported():
		return false, true
	case candidate.IsAgnostic():
		return true, true
	case candidate.IsUnsupported():
		return false, true
	}
	return false, false
}

// isPortableCompatible requires every framework the target needs to be
// served by some framework the candidate covers, optional ones included.
func (p *Provider) isPortableCompatible(target, candidate framework.Framework) bool {
	if target.IsPCL() && !candidate.IsPCL() {
		return p.isCompatibleWithTarget(target, candidate)
	}

	targets := []framework.Framework{target}
	if target.IsPCL() {
		fs, ok := p.mappings.TryGetPortableFrameworks(target.Profile(), false)
		if !ok {
			return false
		}
		targets = fs
	}
	candidates := []framework.Framework{candidate}
	if candidate.IsPCL() {
		fs, ok := p.mappings.TryGetPortableFrameworks(candidate.Profile(), true)
		if !ok {
			return false
		}
		candidates = fs
	}
	if len(targets) > len(candidates) {
		return false
	}

	for _, t := range targets {
		served := false
		for _, c := range candidates {
			if p.IsCompatible(t, c) {
				served = true
				break
			}
		}
		if !served {
			return false
		}
	}
	return true
}

// isCompatibleWithTarget walks everything the target reaches, without
// portable decomposition, and looks for the candidate or an equivalent.
func (p *Provider) isCompatibleWithTarget(target, candidate framework.Framework) bool {
	candidates := []framework.Framework{candidate}
	if eqs, ok := p.mappings.TryGetEquivalentFrameworks(candidate); ok {
		candidates = append(candidates, eqs...)
	}

	if p.reaches(target, candidates) {
		return true
	}
	for t := range p.expander.walk(target, false) {
		if p.reaches(t, candidates) {
			return true
		}
	}
	return false
}

func (p *Provider) reaches(t framework.Framework, candidates []framework.Framework) bool {
	for _, c := range candidates {
		if sameFamilyCompatible(t, c) {
			return true
		}
	}
	ranges, ok := p.mappings.TryGetCompatibilityRanges(t)
	if !ok {
		return false
	}
	for _, r := range ranges {
		for _, c := range candidates {
			if r.Satisfies(c) {
				return true
			}
		}
	}
	return false
}

// sameFamilyCompatible reports whether t is a same-or-later version of c's
// identifier and profile. A candidate platform must match the target's, at
// the same or an earlier platform version.
func sameFamilyCompatible(t, c framework.Framework) bool {
	if !strings.EqualFold(t.Identifier(), c.Identifier()) ||
		!strings.EqualFold(t.Profile(), c.Profile()) ||
		t.Version().Compare(c.Version()) < 0 {
		return false
	}
	if !c.HasPlatform() {
		return true
	}
	return strings.EqualFold(t.Platform(), c.Platform()) &&
		t.PlatformVersion().Compare(c.PlatformVersion()) >= 0
}

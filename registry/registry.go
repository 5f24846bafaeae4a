package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/albertocavalcante/go-tfm/framework"
)

// Registry answers name and relationship queries over framework mapping
// tables. It implements framework.NameProvider.
type Registry struct {
	identifiers   map[string]string // lowercase alias -> identifier
	shortNames    map[string]string // lowercase identifier -> short name
	decimal       map[string]bool
	singleDigit   map[string]bool
	profiles      map[profileKey]string // short -> long
	shortProfiles map[profileKey]string // long -> short
	profileSets   map[string][][]string // lowercase identifier -> interchangeable profiles

	classes      map[string][]framework.Framework // Key -> equivalence class, in declaration order
	compat       []compatEntry
	subsets      map[string][]string
	packageBased []framework.Range

	portable map[int]portableProfile
	numbers  []int
}

type profileKey struct {
	identifier string
	profile    string
}

func newProfileKey(identifier, profile string) profileKey {
	return profileKey{strings.ToLower(identifier), strings.ToLower(profile)}
}

type compatEntry struct {
	target   framework.Range
	supports framework.Range
}

var _ framework.NameProvider = (*Registry)(nil)

// Option configures a Registry.
type Option func(*config) error

type config struct {
	mappings   []*Mappings
	noDefaults bool
	logger     *slog.Logger
}

// WithMappings layers additional tables after the defaults.
func WithMappings(m *Mappings) Option {
	return func(c *config) error {
		if m == nil {
			return errors.New("mappings must not be nil")
		}
		c.mappings = append(c.mappings, m)
		return nil
	}
}

// WithoutDefaults builds the registry only from tables given by WithMappings.
func WithoutDefaults() Option {
	return func(c *config) error {
		c.noDefaults = true
		return nil
	}
}

// WithLogger sets a structured logger for construction diagnostics.
// If not set, logging is disabled (silent mode).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) error {
		c.logger = l
		return nil
	}
}

func (c *config) validate() error {
	if c.noDefaults && len(c.mappings) == 0 {
		return errors.New("WithoutDefaults requires at least one WithMappings")
	}
	return nil
}

func (c *config) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return slog.New(discardHandler{})
}

// discardHandler is a slog.Handler that discards all log records.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }

var defaultRegistry = sync.OnceValue(func() *Registry {
	r, err := New()
	if err != nil {
		panic(fmt.Sprintf("registry: embedded defaults are invalid: %v", err))
	}
	return r
})

// Default returns the registry built from the embedded tables. It is built
// once on first use.
func Default() *Registry {
	return defaultRegistry()
}

// New builds a Registry from the default tables plus any WithMappings
// tables.
func New(opts ...Option) (*Registry, error) {
	cfg := &config{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	all := &Mappings{}
	if !cfg.noDefaults {
		defaults, err := DefaultMappings()
		if err != nil {
			return nil, err
		}
		all.merge(defaults)
	}
	for _, m := range cfg.mappings {
		all.merge(m)
	}

	r, err := build(all)
	if err != nil {
		return nil, err
	}
	cfg.log().Debug("framework registry built",
		"identifiers", len(r.shortNames),
		"equivalence_classes", r.classCount(),
		"compatibility_ranges", len(r.compat),
		"portable_profiles", len(r.numbers))
	return r, nil
}

func build(m *Mappings) (*Registry, error) {
	r := &Registry{
		identifiers:   make(map[string]string),
		shortNames:    make(map[string]string),
		decimal:       make(map[string]bool),
		singleDigit:   make(map[string]bool),
		profiles:      make(map[profileKey]string),
		shortProfiles: make(map[profileKey]string),
		profileSets:   make(map[string][][]string),
		subsets:       make(map[string][]string),
		portable:      make(map[int]portableProfile),
	}

	for _, id := range m.Identifiers {
		r.addAlias(id.Name, id.Name)
		if id.Short != "" {
			r.addAlias(id.Short, id.Name)
			r.shortNames[strings.ToLower(id.Name)] = id.Short
		}
		for _, s := range id.Synonyms {
			r.addAlias(s, id.Name)
		}
		r.decimal[strings.ToLower(id.Name)] = id.Decimal
		r.singleDigit[strings.ToLower(id.Name)] = id.SingleDigit
	}

	for _, p := range m.Profiles {
		identifier := r.identifier(p.Identifier)
		r.profiles[newProfileKey(identifier, p.Short)] = p.Long
		if p.Long != "" {
			r.shortProfiles[newProfileKey(identifier, p.Long)] = p.Short
		}
	}
	for _, s := range m.EquivalentProfiles {
		key := strings.ToLower(r.identifier(s.Identifier))
		r.profileSets[key] = append(r.profileSets[key], slices.Clone(s.Profiles))
	}
	for _, s := range m.Subsets {
		key := strings.ToLower(r.identifier(s.Identifier))
		r.subsets[key] = append(r.subsets[key], s.Subsets...)
	}

	errs := &ValidationErrors{}

	eq := newEquivalence()
	for i, set := range m.Equivalents {
		var first string
		for j, name := range set.Frameworks {
			f, ok := r.resolve(name)
			if !ok {
				errs.Add(fmt.Sprintf("equivalent[%d].frameworks[%d]", i, j), fmt.Sprintf("cannot resolve %q", name))
				continue
			}
			k := eq.add(f)
			if first == "" {
				first = k
			} else {
				eq.union(first, k)
			}
		}
	}
	r.classes = eq.classes()

	for i, c := range m.Compatibility {
		target, err := r.rangeOf(c.Target)
		if err != nil {
			errs.Add(fmt.Sprintf("compatibility[%d].target", i), err.Error())
			continue
		}
		supports, err := r.rangeOf(c.Supports)
		if err != nil {
			errs.Add(fmt.Sprintf("compatibility[%d].supports", i), err.Error())
			continue
		}
		r.compat = append(r.compat, compatEntry{target: target, supports: supports})
	}
	for i, s := range m.Standard {
		entry, err := r.standardEntry(s)
		if err != nil {
			errs.Add(fmt.Sprintf("standard[%d]", i), err.Error())
			continue
		}
		r.compat = append(r.compat, entry)
	}
	for i, p := range m.PackageBased {
		rng, err := r.rangeOf(p)
		if err != nil {
			errs.Add(fmt.Sprintf("package_based[%d]", i), err.Error())
			continue
		}
		r.packageBased = append(r.packageBased, rng)
	}

	for i, p := range m.Portable {
		profile, err := r.portableProfile(p, m.OptionalGroups)
		if err != nil {
			errs.Add(fmt.Sprintf("portable[%d]", i), err.Error())
			continue
		}
		r.portable[p.Number] = profile
		r.numbers = append(r.numbers, p.Number)
	}
	slices.Sort(r.numbers)
	r.numbers = slices.Compact(r.numbers)

	if err := errs.ToError(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMappings, err)
	}
	return r, nil
}

// addAlias registers alias for identifier unless it is already taken.
func (r *Registry) addAlias(alias, identifier string) {
	key := strings.ToLower(alias)
	if _, ok := r.identifiers[key]; !ok {
		r.identifiers[key] = identifier
	}
}

// identifier resolves an alias, returning the input unchanged when unknown.
func (r *Registry) identifier(alias string) string {
	if id, ok := r.identifiers[strings.ToLower(alias)]; ok {
		return id
	}
	return alias
}

// resolve parses a table folder name; it must denote a specific framework.
func (r *Registry) resolve(name string) (framework.Framework, bool) {
	f := framework.ParseFolder(name, r)
	if !f.IsSpecific() || f.IsPCL() {
		return framework.Framework{}, false
	}
	return f, true
}

func (r *Registry) rangeOf(s RangeSpec) (framework.Range, error) {
	identifier, ok := r.TryGetIdentifier(s.Identifier)
	if !ok {
		return framework.Range{}, fmt.Errorf("unknown identifier %q", s.Identifier)
	}
	lower, upper := framework.Version{}, framework.MaxVersion
	var err error
	if s.Min != "" {
		if lower, err = framework.ParseVersion(s.Min); err != nil {
			return framework.Range{}, err
		}
	}
	if s.Max != "" {
		if upper, err = framework.ParseVersion(s.Max); err != nil {
			return framework.Range{}, err
		}
	}
	return framework.NewRange(
		framework.NewWithProfile(identifier, lower, s.Profile),
		framework.NewWithProfile(identifier, upper, s.Profile),
		!s.ExcludeMin, !s.ExcludeMax)
}

func (r *Registry) standardEntry(s StandardMapping) (compatEntry, error) {
	f, ok := r.resolve(s.Framework)
	if !ok {
		return compatEntry{}, fmt.Errorf("cannot resolve framework %q", s.Framework)
	}
	std, ok := r.resolve(s.Standard)
	if !ok {
		return compatEntry{}, fmt.Errorf("cannot resolve standard %q", s.Standard)
	}
	target, err := framework.NewRange(f,
		framework.NewWithProfile(f.Identifier(), framework.MaxVersion, f.Profile()), true, true)
	if err != nil {
		return compatEntry{}, err
	}
	supports, err := framework.NewRange(framework.New(std.Identifier(), framework.Version{}), std, true, true)
	if err != nil {
		return compatEntry{}, err
	}
	return compatEntry{target: target, supports: supports}, nil
}

func (r *Registry) classCount() int {
	seen := make(map[string]bool)
	for _, members := range r.classes {
		seen[members[0].Key()] = true
	}
	return len(seen)
}

// TryGetIdentifier maps a short name, synonym or identifier to its
// canonical identifier.
func (r *Registry) TryGetIdentifier(alias string) (string, bool) {
	id, ok := r.identifiers[strings.ToLower(alias)]
	return id, ok
}

// TryGetShortIdentifier maps an identifier to its folder short name.
func (r *Registry) TryGetShortIdentifier(identifier string) (string, bool) {
	short, ok := r.shortNames[strings.ToLower(identifier)]
	return short, ok
}

// TryGetProfile maps a profile short name to its long form.
func (r *Registry) TryGetProfile(identifier, shortProfile string) (string, bool) {
	long, ok := r.profiles[newProfileKey(identifier, shortProfile)]
	return long, ok
}

// TryGetShortProfile maps a long profile name to its short form.
func (r *Registry) TryGetShortProfile(identifier, profile string) (string, bool) {
	short, ok := r.shortProfiles[newProfileKey(identifier, profile)]
	return short, ok
}

// TryGetVersion parses a folder version. Dotted input takes two to four
// parts. Compact input takes at most four digits, one per part, so "45" is
// 4.5 and "4721" is 4.7.2.1. Empty input is 0.0.
func (r *Registry) TryGetVersion(s string) (framework.Version, bool) {
	if s == "" {
		return framework.Version{}, true
	}
	if strings.Contains(s, ".") {
		parts := strings.Split(s, ".")
		if len(parts) < 2 || len(parts) > 4 {
			return framework.Version{}, false
		}
		nums := make([]int, len(parts))
		for i, p := range parts {
			n, err := strconv.ParseUint(p, 10, 31)
			if err != nil {
				return framework.Version{}, false
			}
			nums[i] = int(n)
		}
		return framework.NewVersion(nums...), true
	}
	if len(s) > 4 {
		return framework.Version{}, false
	}
	nums := make([]int, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return framework.Version{}, false
		}
		nums[i] = int(s[i] - '0')
	}
	return framework.NewVersion(nums...), true
}

// GetVersionString renders v for a folder name of identifier. Zero versions
// render empty.
func (r *Registry) GetVersionString(identifier string, v framework.Version) string {
	if v.IsZero() {
		return ""
	}
	parts := []int{v.Major, v.Minor, v.Build, v.Revision}
	useDecimals := r.decimal[strings.ToLower(identifier)] || slices.ContainsFunc(parts, func(p int) bool { return p > 9 })

	keep := 2
	if !useDecimals && r.singleDigit[strings.ToLower(identifier)] {
		keep = 1
	}
	n := len(parts)
	for n > keep && parts[n-1] == 0 {
		n--
	}

	strs := make([]string, n)
	for i := range n {
		strs[i] = strconv.Itoa(parts[i])
	}
	if useDecimals {
		return strings.Join(strs, ".")
	}
	return strings.Join(strs, "")
}

// TryGetEquivalentFrameworks returns every descriptor that names the same
// platform as f, excluding f itself: its equivalence class plus profile
// substitutions of each member.
func (r *Registry) TryGetEquivalentFrameworks(f framework.Framework) ([]framework.Framework, bool) {
	members, ok := r.classes[f.Key()]
	if !ok {
		members = []framework.Framework{f}
	}

	seen := map[string]bool{f.Key(): true}
	var out []framework.Framework
	add := func(x framework.Framework) {
		if k := x.Key(); !seen[k] {
			seen[k] = true
			out = append(out, x)
		}
	}
	for _, m := range members {
		add(m)
		for _, p := range r.equivalentProfiles(m) {
			add(framework.NewWithProfile(m.Identifier(), m.Version(), p))
		}
	}
	return out, len(out) > 0
}

func (r *Registry) equivalentProfiles(f framework.Framework) []string {
	if f.HasPlatform() {
		return nil
	}
	var out []string
	for _, set := range r.profileSets[strings.ToLower(f.Identifier())] {
		if !slices.ContainsFunc(set, func(p string) bool { return strings.EqualFold(p, f.Profile()) }) {
			continue
		}
		for _, p := range set {
			if !strings.EqualFold(p, f.Profile()) {
				out = append(out, p)
			}
		}
	}
	return out
}

// TryGetCompatibilityRanges returns the ranges f supports through one-way
// compatibility entries whose target range contains f.
func (r *Registry) TryGetCompatibilityRanges(f framework.Framework) ([]framework.Range, bool) {
	var out []framework.Range
	for _, e := range r.compat {
		if e.target.Satisfies(f) {
			out = append(out, e.supports)
		}
	}
	return out, len(out) > 0
}

// CompatibilityTargets returns the target range of every one-way
// compatibility entry, in declaration order.
func (r *Registry) CompatibilityTargets() []framework.Range {
	out := make([]framework.Range, len(r.compat))
	for i, e := range r.compat {
		out[i] = e.target
	}
	return out
}

// TryGetSubsetFrameworks returns the identifiers whose assets frameworks of
// identifier also consume.
func (r *Registry) TryGetSubsetFrameworks(identifier string) ([]string, bool) {
	subsets, ok := r.subsets[strings.ToLower(identifier)]
	return slices.Clone(subsets), ok
}

// IsPackageBased reports whether assets for f come from packages.
func (r *Registry) IsPackageBased(f framework.Framework) bool {
	probe := framework.New(f.Identifier(), f.Version())
	for _, rng := range r.packageBased {
		if rng.Satisfies(probe) {
			return true
		}
	}
	return false
}

// ProfileNumbers returns the known portable profile numbers in ascending
// order.
func (r *Registry) ProfileNumbers() []int {
	return slices.Clone(r.numbers)
}

package versioning

import (
	"fmt"
	"slices"
	"strings"
)

// Bound is one end of a Range.
type Bound struct {
	Version   Version
	Inclusive bool
}

// Range is an interval of versions with optional lower and upper bounds.
//
// The zero Range has no bounds and admits every stable version.
type Range struct {
	min               Version
	max               Version
	hasMin            bool
	hasMax            bool
	includeMin        bool
	includeMax        bool
	includePrerelease bool
	original          string
}

// NewRange creates a range from optional bounds. A nil bound is unbounded.
// It returns ErrInvalidRange if the bounds describe an empty interval.
func NewRange(lower, upper *Bound, includePrerelease bool) (Range, error) {
	r := Range{includePrerelease: includePrerelease}
	if lower != nil {
		r.min, r.hasMin, r.includeMin = lower.Version, true, lower.Inclusive
	}
	if upper != nil {
		r.max, r.hasMax, r.includeMax = upper.Version, true, upper.Inclusive
	}
	if r.isEmpty() {
		return Range{}, fmt.Errorf("%w: %s is empty", ErrInvalidRange, r.String())
	}
	return r, nil
}

// All returns a range admitting every version, prereleases included.
func All() Range {
	return Range{includePrerelease: true}
}

// AtLeast returns the range [v, ).
func AtLeast(v Version) Range {
	return Range{min: v, hasMin: true, includeMin: true}
}

// Exactly returns the range [v].
func Exactly(v Version) Range {
	return Range{min: v, max: v, hasMin: true, hasMax: true, includeMin: true, includeMax: true}
}

// ParseRange parses a range in bracket notation. A bare version means
// "at least this version". The returned error is a *ParseError wrapping
// ErrInvalidRangeFormat.
func ParseRange(s string) (Range, error) {
	value := strings.TrimSpace(s)
	if value == "" {
		return Range{}, rangeError(s, "empty range")
	}

	r := Range{original: s}
	if value[0] != '[' && value[0] != '(' {
		v, err := Parse(value)
		if err != nil {
			return Range{}, rangeError(s, "invalid version %q", value)
		}
		r.min, r.hasMin, r.includeMin = v, true, true
		return r, nil
	}

	if len(value) < 3 {
		return Range{}, rangeError(s, "too short")
	}
	r.includeMin = value[0] == '['
	switch value[len(value)-1] {
	case ']':
		r.includeMax = true
	case ')':
		r.includeMax = false
	default:
		return Range{}, rangeError(s, "missing closing bracket")
	}

	parts := strings.Split(value[1:len(value)-1], ",")
	if len(parts) > 2 {
		return Range{}, rangeError(s, "more than one comma")
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if !slices.ContainsFunc(parts, func(p string) bool { return p != "" }) {
		return Range{}, rangeError(s, "no bounds")
	}

	minString, maxString := parts[0], parts[0]
	if len(parts) == 1 {
		// [1.0] is exact; (1.0], [1.0) and (1.0) are meaningless
		if !r.includeMin || !r.includeMax {
			return Range{}, rangeError(s, "single version must use inclusive brackets")
		}
	} else {
		maxString = parts[1]
	}

	if minString != "" {
		v, err := Parse(minString)
		if err != nil {
			return Range{}, rangeError(s, "invalid lower bound %q", minString)
		}
		r.min, r.hasMin = v, true
	}
	if maxString != "" {
		v, err := Parse(maxString)
		if err != nil {
			return Range{}, rangeError(s, "invalid upper bound %q", maxString)
		}
		r.max, r.hasMax = v, true
	}

	r.normalize()
	if r.isEmpty() {
		return Range{}, rangeError(s, "empty interval")
	}
	return r, nil
}

// MustParseRange parses a range or panics. Use only for constants/tests.
func MustParseRange(s string) Range {
	r, err := ParseRange(s)
	if err != nil {
		panic(err)
	}
	return r
}

// normalize clears inclusivity flags of absent bounds so equal ranges
// compare equal regardless of the bracket used for an omitted bound.
func (r *Range) normalize() {
	if !r.hasMin {
		r.includeMin = false
	}
	if !r.hasMax {
		r.includeMax = false
	}
}

func (r Range) isEmpty() bool {
	if !r.hasMin || !r.hasMax {
		return false
	}
	c := Compare(r.min, r.max)
	return c > 0 || (c == 0 && (!r.includeMin || !r.includeMax))
}

// Min returns the lower bound version, if any.
func (r Range) Min() (Version, bool) {
	return r.min, r.hasMin
}

// Max returns the upper bound version, if any.
func (r Range) Max() (Version, bool) {
	return r.max, r.hasMax
}

// HasLowerBound returns true if the range has a lower bound.
func (r Range) HasLowerBound() bool {
	return r.hasMin
}

// HasUpperBound returns true if the range has an upper bound.
func (r Range) HasUpperBound() bool {
	return r.hasMax
}

// IsMinInclusive returns true if the lower bound is inclusive.
func (r Range) IsMinInclusive() bool {
	return r.hasMin && r.includeMin
}

// IsMaxInclusive returns true if the upper bound is inclusive.
func (r Range) IsMaxInclusive() bool {
	return r.hasMax && r.includeMax
}

// IncludePrerelease returns true if the range admits any prerelease version.
func (r Range) IncludePrerelease() bool {
	return r.includePrerelease
}

// Original returns the string the range was parsed from, if any.
func (r Range) Original() string {
	return r.original
}

// HasPrereleaseBounds returns true if either bound carries release labels.
func (r Range) HasPrereleaseBounds() bool {
	return (r.hasMin && r.min.IsPrerelease()) || (r.hasMax && r.max.IsPrerelease())
}

// Satisfies reports whether v lies within the range using the default comparer.
func (r Range) Satisfies(v Version) bool {
	return r.SatisfiesWith(v, DefaultComparer)
}

// SatisfiesWith reports whether v lies within the range under c.
//
// Unless the range includes prereleases, a prerelease version satisfies it
// only when its numbers equal those of a bound that is itself a prerelease.
func (r Range) SatisfiesWith(v Version, c Comparer) bool {
	if r.hasMin {
		switch cmp := c.Compare(r.min, v); {
		case r.includeMin && cmp > 0, !r.includeMin && cmp >= 0:
			return false
		}
	}
	if r.hasMax {
		switch cmp := c.Compare(r.max, v); {
		case r.includeMax && cmp < 0, !r.includeMax && cmp <= 0:
			return false
		}
	}
	if r.includePrerelease || !v.IsPrerelease() {
		return true
	}
	return (r.hasMin && r.min.IsPrerelease() && EqualWith(r.min, v, VersionOnly)) ||
		(r.hasMax && r.max.IsPrerelease() && EqualWith(r.max, v, VersionOnly))
}

// FindBestMatch returns the lowest version that satisfies the range.
func (r Range) FindBestMatch(versions []Version) (Version, bool) {
	var best Version
	found := false
	for _, v := range versions {
		if !r.Satisfies(v) {
			continue
		}
		if !found || Compare(v, best) < 0 {
			best, found = v, true
		}
	}
	return best, found
}

// Equal reports whether two ranges admit the same versions.
func (r Range) Equal(other Range) bool {
	if r.hasMin != other.hasMin || r.hasMax != other.hasMax || r.includePrerelease != other.includePrerelease {
		return false
	}
	if r.hasMin && (r.includeMin != other.includeMin || !r.min.Equal(other.min)) {
		return false
	}
	if r.hasMax && (r.includeMax != other.includeMax || !r.max.Equal(other.max)) {
		return false
	}
	return true
}

// Intersect returns the versions admitted by both ranges.
// It returns false if the intersection is empty.
func (r Range) Intersect(other Range) (Range, bool) {
	out := Range{includePrerelease: r.includePrerelease && other.includePrerelease}

	switch {
	case !r.hasMin:
		out.min, out.hasMin, out.includeMin = other.min, other.hasMin, other.includeMin
	case !other.hasMin:
		out.min, out.hasMin, out.includeMin = r.min, r.hasMin, r.includeMin
	default:
		out.hasMin = true
		switch c := Compare(r.min, other.min); {
		case c > 0:
			out.min, out.includeMin = r.min, r.includeMin
		case c < 0:
			out.min, out.includeMin = other.min, other.includeMin
		default:
			out.min, out.includeMin = r.min, r.includeMin && other.includeMin
		}
	}

	switch {
	case !r.hasMax:
		out.max, out.hasMax, out.includeMax = other.max, other.hasMax, other.includeMax
	case !other.hasMax:
		out.max, out.hasMax, out.includeMax = r.max, r.hasMax, r.includeMax
	default:
		out.hasMax = true
		switch c := Compare(r.max, other.max); {
		case c < 0:
			out.max, out.includeMax = r.max, r.includeMax
		case c > 0:
			out.max, out.includeMax = other.max, other.includeMax
		default:
			out.max, out.includeMax = r.max, r.includeMax && other.includeMax
		}
	}

	out.normalize()
	if out.isEmpty() {
		return Range{}, false
	}
	return out, true
}

// String renders the canonical bracket form, e.g. "[1.0.0, 2.0.0)".
func (r Range) String() string {
	if r.hasMin && r.hasMax && r.includeMin && r.includeMax && r.min.Equal(r.max) {
		return "[" + r.min.ToFullString() + "]"
	}

	var b strings.Builder
	if r.hasMin && r.includeMin {
		b.WriteByte('[')
	} else {
		b.WriteByte('(')
	}
	if r.hasMin {
		b.WriteString(r.min.ToFullString())
	}
	b.WriteString(", ")
	if r.hasMax {
		b.WriteString(r.max.ToFullString())
	}
	if r.hasMax && r.includeMax {
		b.WriteByte(']')
	} else {
		b.WriteByte(')')
	}
	return b.String()
}

// PrettyPrint renders the range with comparison operators,
// e.g. "(>= 1.0.0 && < 2.0.0)". An unbounded range renders empty.
func (r Range) PrettyPrint() string {
	if !r.hasMin && !r.hasMax {
		return ""
	}
	if r.hasMin && r.hasMax && r.includeMin && r.includeMax && r.min.Equal(r.max) {
		return "(= " + r.min.ToNormalizedString() + ")"
	}

	var terms []string
	if r.hasMin {
		op := ">"
		if r.includeMin {
			op = ">="
		}
		terms = append(terms, op+" "+r.min.ToNormalizedString())
	}
	if r.hasMax {
		op := "<"
		if r.includeMax {
			op = "<="
		}
		terms = append(terms, op+" "+r.max.ToNormalizedString())
	}
	return "(" + strings.Join(terms, " && ") + ")"
}

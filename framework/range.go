package framework

import (
	"fmt"
	"strings"
)

// Range is a version interval over a single identifier, profile and
// platform.
type Range struct {
	min        Framework
	max        Framework
	includeMin bool
	includeMax bool
}

// NewRange creates an interval. Both endpoints must share identifier,
// profile and platform, otherwise ErrInvalidArgument is returned.
func NewRange(lower, upper Framework, includeMin, includeMax bool) (Range, error) {
	if !strings.EqualFold(lower.identifier, upper.identifier) {
		return Range{}, fmt.Errorf("%w: range endpoints %s and %s have different identifiers",
			ErrInvalidArgument, lower.identifier, upper.identifier)
	}
	if !strings.EqualFold(lower.profile, upper.profile) {
		return Range{}, fmt.Errorf("%w: range endpoints have different profiles %q and %q",
			ErrInvalidArgument, lower.profile, upper.profile)
	}
	if !strings.EqualFold(lower.platform, upper.platform) {
		return Range{}, fmt.Errorf("%w: range endpoints have different platforms %q and %q",
			ErrInvalidArgument, lower.platform, upper.platform)
	}
	return Range{min: lower, max: upper, includeMin: includeMin, includeMax: includeMax}, nil
}

// MustRange is like NewRange but panics on error.
func MustRange(lower, upper Framework, includeMin, includeMax bool) Range {
	r, err := NewRange(lower, upper, includeMin, includeMax)
	if err != nil {
		panic(err)
	}
	return r
}

// Min returns the lower endpoint.
func (r Range) Min() Framework { return r.min }

// Max returns the upper endpoint.
func (r Range) Max() Framework { return r.max }

// IncludeMin reports whether the lower endpoint is inclusive.
func (r Range) IncludeMin() bool { return r.includeMin }

// IncludeMax reports whether the upper endpoint is inclusive.
func (r Range) IncludeMax() bool { return r.includeMax }

// Satisfies reports whether f has the range's identifier, profile and
// platform and a version inside the interval.
func (r Range) Satisfies(f Framework) bool {
	if !strings.EqualFold(f.identifier, r.min.identifier) ||
		!strings.EqualFold(f.profile, r.min.profile) ||
		!strings.EqualFold(f.platform, r.min.platform) {
		return false
	}
	lo := f.version.Compare(r.min.version)
	if lo < 0 || (lo == 0 && !r.includeMin) {
		return false
	}
	hi := f.version.Compare(r.max.version)
	return hi < 0 || (hi == 0 && r.includeMax)
}

// String renders the range as "identifier[-profile] [min, max]". An upper
// endpoint at MaxVersion renders as "max".
func (r Range) String() string {
	var b strings.Builder
	b.WriteString(r.min.identifier)
	if r.min.profile != "" {
		b.WriteByte('-')
		b.WriteString(r.min.profile)
	}
	if r.min.platform != "" {
		b.WriteByte('-')
		b.WriteString(r.min.platform)
	}
	b.WriteByte(' ')
	if r.includeMin {
		b.WriteByte('[')
	} else {
		b.WriteByte('(')
	}
	b.WriteString(r.min.version.String())
	b.WriteString(", ")
	if r.max.version == MaxVersion {
		b.WriteString("max")
	} else {
		b.WriteString(r.max.version.String())
	}
	if r.includeMax {
		b.WriteByte(']')
	} else {
		b.WriteByte(')')
	}
	return b.String()
}

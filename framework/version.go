package framework

import (
	"cmp"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Version is the four-part version of a framework or platform.
type Version struct {
	Major    int
	Minor    int
	Build    int
	Revision int
}

// MaxVersion is the open upper end used by compatibility ranges.
var MaxVersion = Version{Major: math.MaxInt32}

// NewVersion creates a Version from up to four parts. It panics on more.
func NewVersion(parts ...int) Version {
	if len(parts) > 4 {
		panic(fmt.Sprintf("framework version takes at most 4 parts, got %d", len(parts)))
	}
	var p [4]int
	copy(p[:], parts)
	return Version{Major: p[0], Minor: p[1], Build: p[2], Revision: p[3]}
}

// ParseVersion parses a dotted version with one to four numeric parts,
// optionally prefixed by "v" (e.g. "4.5", "v10.0.19041").
func ParseVersion(s string) (Version, error) {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(s, "v"), "V")
	parts := strings.Split(trimmed, ".")
	if trimmed == "" || len(parts) > 4 {
		return Version{}, fmt.Errorf("%w: bad version %q", ErrInvalidFramework, s)
	}
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 31)
		if err != nil {
			return Version{}, fmt.Errorf("%w: bad version %q", ErrInvalidFramework, s)
		}
		nums[i] = int(n)
	}
	return NewVersion(nums...), nil
}

// IsZero returns true for 0.0.0.0.
func (v Version) IsZero() bool {
	return v == Version{}
}

// Compare compares two versions part by part.
func (v Version) Compare(other Version) int {
	if c := cmp.Compare(v.Major, other.Major); c != 0 {
		return c
	}
	if c := cmp.Compare(v.Minor, other.Minor); c != 0 {
		return c
	}
	if c := cmp.Compare(v.Build, other.Build); c != 0 {
		return c
	}
	return cmp.Compare(v.Revision, other.Revision)
}

// String renders MAJOR.MINOR with build and revision only when non-zero.
func (v Version) String() string {
	s := strconv.Itoa(v.Major) + "." + strconv.Itoa(v.Minor)
	if v.Build > 0 || v.Revision > 0 {
		s += "." + strconv.Itoa(v.Build)
		if v.Revision > 0 {
			s += "." + strconv.Itoa(v.Revision)
		}
	}
	return s
}

// parts returns the four components in order.
func (v Version) parts() []int {
	return []int{v.Major, v.Minor, v.Build, v.Revision}
}

package versioning

import (
	"cmp"
	"slices"
	"strings"
)

// Granularity selects which parts of a version participate in comparison.
type Granularity int

const (
	// Default is VersionRelease.
	Default Granularity = iota
	// VersionOnly compares the four numeric components.
	VersionOnly
	// VersionRelease compares numbers and release labels.
	VersionRelease
	// VersionReleaseMetadata compares numbers, release labels and metadata.
	VersionReleaseMetadata
)

func (g Granularity) String() string {
	switch g {
	case Default:
		return "default"
	case VersionOnly:
		return "version"
	case VersionRelease:
		return "version-release"
	case VersionReleaseMetadata:
		return "version-release-metadata"
	default:
		return "unknown"
	}
}

// Comparer orders versions.
type Comparer interface {
	Compare(a, b Version) int
}

// ComparerFunc adapts a function to the Comparer interface.
type ComparerFunc func(a, b Version) int

// Compare calls f(a, b).
func (f ComparerFunc) Compare(a, b Version) int {
	return f(a, b)
}

// NewComparer returns a Comparer for the given granularity.
func NewComparer(g Granularity) Comparer {
	return ComparerFunc(func(a, b Version) int {
		return CompareWith(a, b, g)
	})
}

// DefaultComparer compares numbers and release labels.
var DefaultComparer = NewComparer(Default)

// Compare compares two versions using the default granularity.
func Compare(a, b Version) int {
	return CompareWith(a, b, Default)
}

// CompareWith compares two versions at the given granularity.
// Returns -1 if a < b, 0 if a == b, 1 if a > b.
func CompareWith(a, b Version, g Granularity) int {
	if c := cmp.Compare(a.major, b.major); c != 0 {
		return c
	}
	if c := cmp.Compare(a.minor, b.minor); c != 0 {
		return c
	}
	if c := cmp.Compare(a.patch, b.patch); c != 0 {
		return c
	}
	if c := cmp.Compare(a.revision, b.revision); c != 0 {
		return c
	}
	if g == VersionOnly {
		return 0
	}

	// Stable versions have higher precedence than prereleases
	switch {
	case !a.IsPrerelease() && b.IsPrerelease():
		return 1
	case a.IsPrerelease() && !b.IsPrerelease():
		return -1
	}
	if c := compareReleaseLabels(a.release, b.release); c != 0 {
		return c
	}

	if g == VersionReleaseMetadata {
		return compareIgnoreCase(a.metadata, b.metadata)
	}
	return 0
}

// EqualWith reports whether a and b are equal at the given granularity.
func EqualWith(a, b Version, g Granularity) bool {
	return CompareWith(a, b, g) == 0
}

// compareReleaseLabels compares label lists pairwise. A list that is a strict
// prefix of the other sorts lower.
func compareReleaseLabels(a, b []string) int {
	for i := range min(len(a), len(b)) {
		if c := compareLabel(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}

// compareLabel compares two release labels. Numeric labels compare
// numerically and sort below alphanumeric labels, which compare
// case-insensitively.
func compareLabel(a, b string) int {
	aNum, bNum := isDigits(a), isDigits(b)
	switch {
	case aNum && bNum:
		return compareNumeric(a, b)
	case aNum:
		return -1
	case bNum:
		return 1
	default:
		return compareIgnoreCase(a, b)
	}
}

// compareNumeric compares digit strings of arbitrary length.
func compareNumeric(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if c := cmp.Compare(len(a), len(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

func compareIgnoreCase(a, b string) int {
	return strings.Compare(strings.ToUpper(a), strings.ToUpper(b))
}

// Sort sorts versions in ascending order using the default granularity.
func Sort(versions []Version) {
	slices.SortStableFunc(versions, Compare)
}

// Max returns the highest version, or false if versions is empty.
func Max(versions []Version) (Version, bool) {
	if len(versions) == 0 {
		return Version{}, false
	}
	return slices.MaxFunc(versions, Compare), true
}

package versioning

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

// maxComponents is the number of numeric components a version may carry.
const maxComponents = 4

// Version is an immutable package version.
// Format: MAJOR[.MINOR[.PATCH[.REVISION]]][-RELEASE][+METADATA]
type Version struct {
	major    int
	minor    int
	patch    int
	revision int
	release  []string
	metadata string
	original string
}

// New creates a Version from its parts. The release labels are copied.
func New(major, minor, patch, revision int, release []string, metadata string) Version {
	return Version{
		major:    major,
		minor:    minor,
		patch:    patch,
		revision: revision,
		release:  slices.Clone(release),
		metadata: metadata,
	}
}

// Parse parses a version string.
//
// Omitted minor, patch and revision components default to zero. The returned
// error is a *ParseError wrapping ErrInvalidVersionFormat.
func Parse(s string) (Version, error) {
	if s == "" {
		return Version{}, versionError(s, "empty version")
	}

	rest, metadata, hasMetadata := strings.Cut(s, "+")
	if hasMetadata && !validDottedParts(metadata) {
		return Version{}, versionError(s, "invalid metadata %q", metadata)
	}

	numbers, release, hasRelease := strings.Cut(rest, "-")
	if hasRelease && !validDottedParts(release) {
		return Version{}, versionError(s, "invalid release label %q", release)
	}

	parts := strings.Split(numbers, ".")
	if len(parts) > maxComponents {
		return Version{}, versionError(s, "more than %d numeric components", maxComponents)
	}

	var nums [maxComponents]int
	for i, p := range parts {
		n, ok := parseComponent(p)
		if !ok {
			return Version{}, versionError(s, "invalid numeric component %q", p)
		}
		nums[i] = n
	}

	v := Version{
		major:    nums[0],
		minor:    nums[1],
		patch:    nums[2],
		revision: nums[3],
		metadata: metadata,
		original: s,
	}
	if hasRelease {
		v.release = strings.Split(release, ".")
	}
	return v, nil
}

// MustParse parses a version or panics. Use only for constants/tests.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

func parseComponent(s string) (int, bool) {
	if s == "" || !isDigits(s) {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n > math.MaxInt32 {
		return 0, false
	}
	return int(n), true
}

// validDottedParts reports whether s is a non-empty list of dot-separated
// parts made of ASCII letters, digits and hyphens.
func validDottedParts(s string) bool {
	if s == "" {
		return false
	}
	for part := range strings.SplitSeq(s, ".") {
		if part == "" {
			return false
		}
		for i := 0; i < len(part); i++ {
			c := part[i]
			if !isAlnum(c) && c != '-' {
				return false
			}
		}
	}
	return true
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

func isAlnum(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// Major returns the major version number.
func (v Version) Major() int {
	return v.major
}

// Minor returns the minor version number.
func (v Version) Minor() int {
	return v.minor
}

// Patch returns the patch version number.
func (v Version) Patch() int {
	return v.patch
}

// Revision returns the fourth, legacy version number.
func (v Version) Revision() int {
	return v.revision
}

// ReleaseLabels returns a copy of the release labels.
func (v Version) ReleaseLabels() []string {
	return slices.Clone(v.release)
}

// Release returns the dot-joined release labels (e.g., "beta.2").
func (v Version) Release() string {
	return strings.Join(v.release, ".")
}

// Metadata returns the build metadata.
func (v Version) Metadata() string {
	return v.metadata
}

// Original returns the string the version was parsed from, if any.
func (v Version) Original() string {
	return v.original
}

// IsPrerelease returns true if the version carries release labels.
func (v Version) IsPrerelease() bool {
	return len(v.release) > 0
}

// HasMetadata returns true if the version carries build metadata.
func (v Version) HasMetadata() bool {
	return v.metadata != ""
}

// IsLegacy returns true if the version uses the fourth numeric component.
func (v Version) IsLegacy() bool {
	return v.revision > 0
}

// String returns the original string when available, otherwise ToFullString.
func (v Version) String() string {
	if v.original != "" {
		return v.original
	}
	return v.ToFullString()
}

// ToNormalizedString renders MAJOR.MINOR.PATCH, the revision when non-zero,
// and the release labels. Metadata is omitted.
func (v Version) ToNormalizedString() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(v.major))
	b.WriteByte('.')
	b.WriteString(strconv.Itoa(v.minor))
	b.WriteByte('.')
	b.WriteString(strconv.Itoa(v.patch))
	if v.revision > 0 {
		b.WriteByte('.')
		b.WriteString(strconv.Itoa(v.revision))
	}
	if len(v.release) > 0 {
		b.WriteByte('-')
		b.WriteString(v.Release())
	}
	return b.String()
}

// ToFullString renders the normalized version followed by its metadata.
func (v Version) ToFullString() string {
	if v.metadata == "" {
		return v.ToNormalizedString()
	}
	return v.ToNormalizedString() + "+" + v.metadata
}

// Compare compares v with other using the default granularity.
// Returns -1 if v < other, 0 if v == other, 1 if v > other.
func (v Version) Compare(other Version) int {
	return CompareWith(v, other, Default)
}

// Equal reports whether v and other are equal under the default granularity.
// Metadata is ignored.
func (v Version) Equal(other Version) bool {
	return v.Compare(other) == 0
}

package framework

import (
	"cmp"
	"regexp"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Framework is an immutable platform descriptor.
//
// Identifier, profile and platform compare case-insensitively. Use Equal
// rather than == to compare two descriptors.
type Framework struct {
	identifier      string
	version         Version
	profile         string
	platform        string
	platformVersion Version
}

// Sentinel descriptors.
var (
	// Any is compatible with everything in both directions.
	Any = Framework{identifier: AnyIdentifier}

	// Agnostic marks assets that work on every framework.
	Agnostic = Framework{identifier: AgnosticIdentifier}

	// Unsupported marks descriptors that could not be understood. It is
	// compatible with nothing except Any.
	Unsupported = Framework{identifier: UnsupportedIdentifier}
)

// New creates a descriptor without a profile or platform.
func New(identifier string, version Version) Framework {
	return Framework{identifier: identifier, version: version}
}

// NewWithProfile creates a descriptor with a profile.
func NewWithProfile(identifier string, version Version, profile string) Framework {
	return Framework{identifier: identifier, version: version, profile: profile}
}

// NewWithPlatform creates a net5.0-era descriptor with an operating system
// platform, such as net6.0-windows10.0.
func NewWithPlatform(identifier string, version Version, platform string, platformVersion Version) Framework {
	return Framework{
		identifier:      identifier,
		version:         version,
		platform:        platform,
		platformVersion: platformVersion,
	}
}

// Identifier returns the framework identifier, e.g. ".NETFramework".
func (f Framework) Identifier() string { return f.identifier }

// Version returns the framework version.
func (f Framework) Version() Version { return f.version }

// Profile returns the profile, or "" if there is none.
func (f Framework) Profile() string { return f.profile }

// Platform returns the operating system platform, or "" if there is none.
func (f Framework) Platform() string { return f.platform }

// PlatformVersion returns the platform version.
func (f Framework) PlatformVersion() Version { return f.platformVersion }

// HasProfile reports whether the descriptor carries a profile.
func (f Framework) HasProfile() bool { return f.profile != "" }

// HasPlatform reports whether the descriptor carries a platform.
func (f Framework) HasPlatform() bool { return f.platform != "" }

// IsAny reports whether f is the Any sentinel.
func (f Framework) IsAny() bool { return strings.EqualFold(f.identifier, AnyIdentifier) }

// IsAgnostic reports whether f is the Agnostic sentinel.
func (f Framework) IsAgnostic() bool { return strings.EqualFold(f.identifier, AgnosticIdentifier) }

// IsUnsupported reports whether f is the Unsupported sentinel.
func (f Framework) IsUnsupported() bool {
	return strings.EqualFold(f.identifier, UnsupportedIdentifier)
}

// IsSpecific reports whether f is a real framework rather than a sentinel.
func (f Framework) IsSpecific() bool {
	return !f.IsAny() && !f.IsAgnostic() && !f.IsUnsupported()
}

// IsPCL reports whether f is a portable class library descriptor with a profile.
func (f Framework) IsPCL() bool {
	return strings.EqualFold(f.identifier, Portable) && f.profile != ""
}

// IsNet5Era reports whether f is .NETCoreApp 5.0 or later, which renders
// with the "net" short name and may carry a platform.
func (f Framework) IsNet5Era() bool {
	return strings.EqualFold(f.identifier, NetCoreApp) && f.version.Major >= 5
}

// Equal reports structural equality, ignoring case in names.
func (f Framework) Equal(other Framework) bool {
	return strings.EqualFold(f.identifier, other.identifier) &&
		f.version == other.version &&
		strings.EqualFold(f.profile, other.profile) &&
		strings.EqualFold(f.platform, other.platform) &&
		f.platformVersion == other.platformVersion
}

// Key returns a normalized string that is equal for equal descriptors. It is
// suitable as a map key.
func (f Framework) Key() string {
	var b strings.Builder
	b.WriteString(strings.ToLower(f.identifier))
	writeKeyVersion(&b, f.version)
	b.WriteByte('|')
	b.WriteString(strings.ToLower(f.profile))
	b.WriteByte('|')
	b.WriteString(strings.ToLower(f.platform))
	writeKeyVersion(&b, f.platformVersion)
	return b.String()
}

func writeKeyVersion(b *strings.Builder, v Version) {
	for _, p := range v.parts() {
		b.WriteByte('|')
		b.WriteString(strconv.Itoa(p))
	}
}

// Hash returns a structural hash, equal for equal descriptors.
func (f Framework) Hash() uint64 {
	return xxhash.Sum64String(f.Key())
}

// Compare orders descriptors by identifier, version, profile, platform and
// platform version. Names compare case-insensitively.
func Compare(a, b Framework) int {
	if c := compareFold(a.identifier, b.identifier); c != 0 {
		return c
	}
	if c := a.version.Compare(b.version); c != 0 {
		return c
	}
	if c := compareFold(a.profile, b.profile); c != 0 {
		return c
	}
	if c := compareFold(a.platform, b.platform); c != 0 {
		return c
	}
	return a.platformVersion.Compare(b.platformVersion)
}

func compareFold(a, b string) int {
	return cmp.Compare(strings.ToLower(a), strings.ToLower(b))
}

var portableProfilePattern = regexp.MustCompile(`^(?i:profile)([0-9]+)$`)

// PortableProfileNumber extracts N from a "ProfileN" name.
func PortableProfileNumber(profile string) (int, bool) {
	m := portableProfilePattern.FindStringSubmatch(profile)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// PortableProfileName returns the canonical "ProfileN" name.
func PortableProfileName(n int) string {
	return "Profile" + strconv.Itoa(n)
}

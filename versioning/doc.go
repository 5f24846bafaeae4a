// Package versioning implements package versions and version ranges.
//
// A Version has four numeric components (major, minor, patch and an optional
// legacy revision), dot-separated release labels and opaque build metadata:
//
//	v, err := versioning.Parse("1.2.3-beta.2+sha.5114f85")
//
// Versions compare numerically first, then by release labels: a stable
// version sorts above any prerelease with the same numbers, numeric labels
// sort below alphanumeric ones and alphanumeric labels compare without regard
// to case. Metadata never affects the default ordering; use CompareWith with
// VersionReleaseMetadata to include it.
//
// A Range is an interval written in bracket notation:
//
//	1.0         >= 1.0
//	[1.0]       exactly 1.0
//	(1.0,)      > 1.0
//	(,1.0]      <= 1.0
//	[1.0,2.0)   >= 1.0 and < 2.0
//
// Range.String always renders the canonical "[min, max]" form.
package versioning

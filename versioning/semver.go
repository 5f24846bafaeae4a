package versioning

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ToSemver converts v to a SemVer 2.0.0 version. Versions that use the
// fourth numeric component have no equivalent and return ErrNoSemverEquivalent.
func (v Version) ToSemver() (*semver.Version, error) {
	if v.revision > 0 {
		return nil, fmt.Errorf("%w: %s has a revision component", ErrNoSemverEquivalent, v.ToFullString())
	}
	return semver.New(uint64(v.major), uint64(v.minor), uint64(v.patch), v.Release(), v.metadata), nil
}

// FromSemver converts a SemVer 2.0.0 version.
func FromSemver(sv *semver.Version) Version {
	v := Version{
		major:    int(sv.Major()),
		minor:    int(sv.Minor()),
		patch:    int(sv.Patch()),
		metadata: sv.Metadata(),
	}
	if pre := sv.Prerelease(); pre != "" {
		v.release = strings.Split(pre, ".")
	}
	return v
}

// ToConstraints converts the range to SemVer constraints.
// Prerelease matching then follows the semver package rules, not SatisfiesWith.
func (r Range) ToConstraints() (*semver.Constraints, error) {
	var terms []string
	if r.hasMin {
		if _, err := r.min.ToSemver(); err != nil {
			return nil, err
		}
		op := ">"
		if r.includeMin {
			op = ">="
		}
		terms = append(terms, op+" "+r.min.ToNormalizedString())
	}
	if r.hasMax {
		if _, err := r.max.ToSemver(); err != nil {
			return nil, err
		}
		op := "<"
		if r.includeMax {
			op = "<="
		}
		terms = append(terms, op+" "+r.max.ToNormalizedString())
	}
	if len(terms) == 0 {
		terms = append(terms, "*")
	}

	c, err := semver.NewConstraint(strings.Join(terms, ", "))
	if err != nil {
		return nil, fmt.Errorf("convert range %s: %w", r, err)
	}
	return c, nil
}

package versioning

import (
	"errors"
	"testing"

	"github.com/Masterminds/semver/v3"
)

func TestToSemver(t *testing.T) {
	v := MustParse("1.2.3-beta.1+build.9")
	sv, err := v.ToSemver()
	if err != nil {
		t.Fatalf("ToSemver() error = %v", err)
	}
	if sv.String() != "1.2.3-beta.1+build.9" {
		t.Errorf("ToSemver() = %q", sv.String())
	}

	back := FromSemver(sv)
	if !EqualWith(back, v, VersionReleaseMetadata) {
		t.Errorf("FromSemver(ToSemver(%s)) = %s", v, back)
	}
}

func TestToSemver_Revision(t *testing.T) {
	_, err := MustParse("1.2.3.4").ToSemver()
	if !errors.Is(err, ErrNoSemverEquivalent) {
		t.Errorf("ToSemver() error = %v, want ErrNoSemverEquivalent", err)
	}
}

func TestRange_ToConstraints(t *testing.T) {
	tests := []struct {
		rng     string
		version string
		want    bool
	}{
		{"[1.0,2.0)", "1.5.0", true},
		{"[1.0,2.0)", "2.0.0", false},
		{"(1.0,)", "1.0.0", false},
		{"(,3.0]", "3.0.0", true},
	}

	for _, tt := range tests {
		t.Run(tt.rng+"_"+tt.version, func(t *testing.T) {
			c, err := MustParseRange(tt.rng).ToConstraints()
			if err != nil {
				t.Fatalf("ToConstraints() error = %v", err)
			}
			if got := c.Check(semver.MustParse(tt.version)); got != tt.want {
				t.Errorf("constraint %s check %s = %v, want %v", c, tt.version, got, tt.want)
			}
		})
	}

	if _, err := MustParseRange("[1.0.0.5,)").ToConstraints(); !errors.Is(err, ErrNoSemverEquivalent) {
		t.Errorf("ToConstraints() with revision error = %v", err)
	}
}

package versioning

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidVersionFormat indicates a string is not a valid version.
	ErrInvalidVersionFormat = errors.New("invalid version format")

	// ErrInvalidRangeFormat indicates a string is not a valid version range.
	ErrInvalidRangeFormat = errors.New("invalid range format")

	// ErrInvalidRange indicates range bounds that describe an empty interval.
	ErrInvalidRange = errors.New("invalid range")

	// ErrNoSemverEquivalent indicates a version that cannot be expressed as SemVer 2.0.0.
	ErrNoSemverEquivalent = errors.New("no semver equivalent")
)

// ParseError reports a version or range string that failed to parse.
// It unwraps to ErrInvalidVersionFormat or ErrInvalidRangeFormat.
type ParseError struct {
	Input  string
	Reason string
	kind   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.kind, e.Input, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.kind
}

func versionError(input, format string, args ...any) error {
	return &ParseError{Input: input, Reason: fmt.Sprintf(format, args...), kind: ErrInvalidVersionFormat}
}

func rangeError(input, format string, args ...any) error {
	return &ParseError{Input: input, Reason: fmt.Sprintf(format, args...), kind: ErrInvalidRangeFormat}
}

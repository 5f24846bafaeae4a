package framework

import "errors"

var (
	// ErrInvalidFramework indicates a long framework name that cannot be parsed.
	ErrInvalidFramework = errors.New("invalid framework")

	// ErrInvalidArgument indicates inconsistent arguments, such as a range
	// whose endpoints name different frameworks.
	ErrInvalidArgument = errors.New("invalid argument")
)

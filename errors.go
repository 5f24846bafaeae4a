package gotfm

import (
	"errors"

	"github.com/albertocavalcante/go-tfm/framework"
	"github.com/albertocavalcante/go-tfm/registry"
	"github.com/albertocavalcante/go-tfm/versioning"
)

// Sentinel errors for common failures.
var (
	// ErrInvalidOption indicates an engine option was rejected.
	ErrInvalidOption = errors.New("invalid option")

	// ErrInvalidFramework indicates a framework descriptor could not be parsed.
	ErrInvalidFramework = framework.ErrInvalidFramework

	// ErrInvalidMappings indicates framework name tables failed to load or build.
	ErrInvalidMappings = registry.ErrInvalidMappings

	// ErrInvalidVersion indicates a package version could not be parsed.
	ErrInvalidVersion = versioning.ErrInvalidVersionFormat

	// ErrInvalidRange indicates a version range could not be parsed.
	ErrInvalidRange = versioning.ErrInvalidRangeFormat
)

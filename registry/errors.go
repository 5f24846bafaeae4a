package registry

import "errors"

// ErrInvalidMappings indicates mapping tables that cannot be decoded or that
// reference unknown identifiers.
var ErrInvalidMappings = errors.New("invalid mappings")

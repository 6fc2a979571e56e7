package nfo

import "errors"

// ErrMalformed indicates a sidecar document exists but could not be parsed.
var ErrMalformed = errors.New("malformed sidecar document")

package mediainfo

import "errors"

// ErrUnavailable indicates the metadata capability is not installed or disabled.
var ErrUnavailable = errors.New("container metadata capability unavailable")

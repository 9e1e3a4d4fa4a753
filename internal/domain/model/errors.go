package model

import "errors"

// ErrProviderUnavailable marks failures of the upstream standings or history source.
var ErrProviderUnavailable = errors.New("provider unavailable")

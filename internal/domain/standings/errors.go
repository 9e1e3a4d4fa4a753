package standings

import "errors"

// Sentinel errors for trophy resolution.
var (
	ErrNotFinished  = errors.New("quarter not finished")
	ErrUndetermined = errors.New("quarter winners cannot be determined")
)

package calculation

import "errors"

var (
	// ErrEmptySeries is returned when a parameter series has no control points.
	ErrEmptySeries = errors.New("parameter series has no entries")
	// ErrInvalidConfig is returned when a configuration cannot be projected.
	ErrInvalidConfig = errors.New("invalid configuration")
)

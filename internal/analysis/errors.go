package analysis

import "errors"

// Common analysis errors
var (
	// ErrInvalidSpan is returned when the EMA span is below 1.
	ErrInvalidSpan = errors.New("EMA span must be at least 1")
)

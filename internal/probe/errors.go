package probe

import "errors"

// Sentinel kinds for probe failures.
var (
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrMismatch         = errors.New("response mismatch")
	ErrChecksFailed     = errors.New("checks failed")
)

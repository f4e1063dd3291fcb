package sweep

import "errors"

// Configuration errors; a sweep never fails for per-trial reasons.
var (
	ErrMissingName    = errors.New("sweep: name is required")
	ErrEmptyAxis      = errors.New("sweep: empty axis")
	ErrOutOfRange     = errors.New("sweep: value out of range")
	ErrDuplicateValue = errors.New("sweep: duplicate axis value")
	ErrUnknownPreset  = errors.New("sweep: unknown preset")
	ErrUnknownAxis    = errors.New("sweep: unknown axis")
)

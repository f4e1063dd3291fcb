package gate

import "errors"

var (
	ErrInvalidCapacity = errors.New("gate: capacity must be > 0")
	ErrNotAcquired     = errors.New("gate: release without matching acquire")
)

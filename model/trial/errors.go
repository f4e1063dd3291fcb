package trial

import "errors"

var (
	ErrUnknownAlgorithm = errors.New("trial: unknown algorithm")
	ErrInvalidSpec      = errors.New("trial: invalid spec")
	ErrInvalidName      = errors.New("trial: invalid result name")
	ErrInvalidState     = errors.New("trial: invalid state transition")
)

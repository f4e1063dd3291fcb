package orchestrator

import "errors"

var (
	// ErrNoSupervisor is returned when the service has no supervisor.
	ErrNoSupervisor = errors.New("orchestrator: supervisor was nil")
	// ErrNoNamer is returned when the service cannot resolve output paths.
	ErrNoNamer = errors.New("orchestrator: namer was nil")
	// ErrDuplicateTrial is returned when two specs map to the same output file.
	ErrDuplicateTrial = errors.New("orchestrator: duplicate trial")
)

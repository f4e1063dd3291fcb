package sweeper

import "errors"

// ErrNoProgram is returned by Run when neither a program path nor a command
// builder was configured.
var ErrNoProgram = errors.New("sweeper: program was not configured")

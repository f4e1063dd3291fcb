// Package orchestrator runs a list of trials with bounded parallelism.
//
// Trials are admitted in the order given: for each one a gate slot is
// acquired first and only then a goroutine is started to run the supervisor.
// The slot is released and the run counter incremented on every exit path,
// including a supervisor panic. A failed trial never stops the others.
package orchestrator

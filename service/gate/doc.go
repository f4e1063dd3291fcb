// Package gate implements the admission gate: a fixed pool of execution slots
// shared by every trial of an orchestrator run. A trial must hold a slot while
// its process runs; the orchestrator returns the slot when the trial ends.
package gate

// Package sweep defines experiment sweeps and expands them into the ordered
// list of trial specs the orchestrator admits.
package sweep

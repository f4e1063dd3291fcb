// Package sink maps trial specs onto files of a single result directory.
// The file name is trial.Spec.Name(), so the mapping is deterministic and
// reversible, and re-running a trial overwrites its previous output.
package sink

// Package supervisor owns the lifecycle of a single program invocation:
// it creates the trial's output file, launches the program in its own process
// group with stdout redirected to that file, waits for exit, timeout or
// cancellation, and always terminates the process group before returning.
package supervisor

// Package trial defines a single parameterised run of the program under test:
// its parameters (Spec), the deterministic result name derived from them, the
// lifecycle states a trial passes through and the Outcome it terminates with.
package trial

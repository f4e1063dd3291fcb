// Package tracing wraps OpenTelemetry so that sweeps, trials and aggregation
// passes can be recorded as spans. Without Init every span is a no-op.
package tracing

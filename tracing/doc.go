// Package tracing wraps OpenTelemetry so the scheduler can record spans for
// process creation, termination and every granted quantum. Until Init is
// called the global provider is a no-op and spans cost next to nothing.
package tracing

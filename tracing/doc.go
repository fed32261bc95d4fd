// Package tracing wraps OpenTelemetry so that the marking run, every worker
// and every exam advance can be recorded as spans. Without Init the global
// no-op provider is used and spans cost next to nothing.
package tracing

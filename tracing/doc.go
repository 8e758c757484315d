// Package tracing wraps OpenTelemetry so the simulator can record a span per
// run, per simulation step and per worker protocol exchange.  Tracing stays
// disabled (spans are no-op) until Init or InitWithExporter is called.
package tracing

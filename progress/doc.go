// Package progress keeps per-state process counters for a simulation run and
// notifies an optional observer on every change.
package progress

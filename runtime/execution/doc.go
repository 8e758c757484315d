// Package execution holds the runtime record of a simulated process: its
// remaining CPU time, lifecycle state, allocated memory block and worker
// handle.
package execution

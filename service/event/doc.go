// Package event defines the simulation events (memory assignment, dispatch,
// completion and worker digest) and the listeners that print or record them.
package event

// Package model contains the declarative representation of a workload: the
// processes a simulation run is asked to schedule, exactly as the workload
// reader produced them.  Runtime state (remaining time, memory block, worker
// handle) lives in runtime/execution so that model values stay immutable for
// the whole run.
package model

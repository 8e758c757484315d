// Package scheduler runs the discrete-time simulation loop.
//
// Every Step performs, in this order: completion check of the running
// process, arrivals, a single memory allocation pass over the input queue,
// round-robin preemption, dispatch, and time advance.  Time advances by one
// quantum while any process is left unfinished.  Worker processes are driven
// through the control service in lock-step with simulated time, so at most
// one worker is ever continued at a time.
//
// A process asking for more memory than the allocator holds never leaves the
// input queue; Run does not return in that case unless its context is
// cancelled.
package scheduler

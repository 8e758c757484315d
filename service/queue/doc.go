// Package queue provides the ordered process queues owned by the simulation
// loop: FIFO append for arrival and round-robin order, and stable sorted
// insertion for shortest-job-first.
//
// Queues are not safe for concurrent use; the simulation loop is their only
// owner.
package queue

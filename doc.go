// Package procman simulates an operating system process scheduler driving
// real worker processes.
//
// A workload of processes (arrival time, service time, memory requirement) is
// scheduled with shortest-job-first or round-robin, optionally constrained by
// a best-fit memory allocator, while each scheduled process is backed by a
// worker that is started, suspended, resumed and terminated in lock-step with
// simulated time:
//
//	srv, _ := procman.New(procman.DefaultConfig())
//	stats, err := srv.Run(ctx, "workload.txt")
//
// Event lines and the final statistics are written to the configured output.
// See the service sub-packages for the allocator, the control protocol and
// the simulation loop.
package procman
